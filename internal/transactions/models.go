package transactions

import "time"

type Product struct {
	ID         string
	Name       string
	Stock      int
	PriceCents int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Transaction struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	TotalCents int       `json:"total_cents"`
	Status     Status    `json:"status"` // lihat status.go
	CreatedAt  time.Time `json:"created_at"`
	Items      []Item    `json:"items"`
}

// Item adalah line item yang sudah tersimpan (immutable setelah insert).
type Item struct {
	ID          int64  `json:"item_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"` // denormalized via join saat read
	Qty         int    `json:"qty"`
	PriceCents  int    `json:"price_cents"`
}

// Row adalah satu baris hasil join transactions x transaction_items x products.
// Reader mengembalikan bentuk flat ini; Aggregate yang menyusun jadi nested.
type Row struct {
	TransactionID string
	CustomerID    string
	TotalCents    int
	Status        Status
	CreatedAt     time.Time

	ItemID      int64
	ProductID   string
	ProductName string
	Qty         int
	PriceCents  int
}

// ItemInput: item sebagaimana dikirim client, belum divalidasi.
type ItemInput struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// ProcessedItem: output builder per item, snapshot harga + stok sisa yang
// akan di-apply oleh writer. Belum di-commit ke DB.
type ProcessedItem struct {
	ProductID      string
	Qty            int
	PriceCents     int
	RemainingStock int
}

// BuildResult: hasil validasi + pricing utk satu order, sebelum persist.
type BuildResult struct {
	TotalCents int
	Items      []ProcessedItem
}
