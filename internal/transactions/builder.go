package transactions

import "context"

// Catalog adalah read-side yang dibutuhkan builder. Di production ini
// di-back oleh tx pgx (product rows di-lock FOR UPDATE), di test cukup fake.
type Catalog interface {
	// CustomerExists returns false (bukan error) kalau customer tidak ada.
	CustomerExists(ctx context.Context, id string) (bool, error)
	// FindProduct returns nil (bukan error) kalau product tidak ada.
	FindProduct(ctx context.Context, id string) (*Product, error)
}

// Build memvalidasi order dan menghitung total, tanpa write sama sekali.
// Fail-fast dalam urutan input: item pertama yang unknown atau kurang stok
// menghentikan proses, item setelahnya tidak pernah dievaluasi.
func Build(ctx context.Context, cat Catalog, customerID string, items []ItemInput) (*BuildResult, error) {
	if customerID == "" || len(items) == 0 {
		return nil, ErrInvalidRequest
	}

	ok, err := cat.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCustomerNotFound
	}

	res := &BuildResult{Items: make([]ProcessedItem, 0, len(items))}
	for _, it := range items {
		p, err := cat.FindProduct(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &ProductNotFoundError{ProductID: it.ProductID}
		}
		if p.Stock < it.Qty {
			return nil, &InsufficientStockError{ProductName: p.Name, Available: p.Stock}
		}

		res.TotalCents += p.PriceCents * it.Qty
		res.Items = append(res.Items, ProcessedItem{
			ProductID:      p.ID,
			Qty:            it.Qty,
			PriceCents:     p.PriceCents,
			RemainingStock: p.Stock - it.Qty,
		})
	}
	return res, nil
}
