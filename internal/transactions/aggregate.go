package transactions

// Aggregate menyusun baris flat hasil join menjadi transaksi nested.
// Group by transaction id; urutan output = first-seen order dari input
// (bukan sort by id/date), jadi posisi transaksi mengikuti baris pertamanya.
func Aggregate(rows []Row) []Transaction {
	byID := make(map[string]int, len(rows)) // id -> index di out
	out := make([]Transaction, 0, len(rows))

	for _, r := range rows {
		idx, seen := byID[r.TransactionID]
		if !seen {
			idx = len(out)
			byID[r.TransactionID] = idx
			out = append(out, Transaction{
				ID:         r.TransactionID,
				CustomerID: r.CustomerID,
				TotalCents: r.TotalCents,
				Status:     r.Status,
				CreatedAt:  r.CreatedAt,
				Items:      []Item{},
			})
		}
		out[idx].Items = append(out[idx].Items, Item{
			ID:          r.ItemID,
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Qty:         r.Qty,
			PriceCents:  r.PriceCents,
		})
	}
	return out
}
