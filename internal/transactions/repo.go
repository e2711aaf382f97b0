package transactions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// txCatalog: Catalog yang di-back transaksi pgx. Product rows di-lock
// FOR UPDATE supaya dua order bersamaan tidak lolos cek stok yang sama.
type txCatalog struct{ tx pgx.Tx }

func (c txCatalog) CustomerExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := c.tx.QueryRow(ctx, `SELECT 1 FROM customers WHERE id=$1`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c txCatalog) FindProduct(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := c.tx.QueryRow(ctx,
		`SELECT id, name, stock, price_cents FROM products WHERE id=$1 FOR UPDATE`, id).
		Scan(&p.ID, &p.Name, &p.Stock, &p.PriceCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateTransaction: validasi (builder) + persist dalam SATU transaksi DB.
// Header dulu, lalu per item: line item + stock decrement. Kalau ada step
// yang gagal, rollback via defer — tidak ada partial write yang tersisa.
func (r *Repo) CreateTransaction(ctx context.Context, customerID string, items []ItemInput) (string, *BuildResult, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := Build(ctx, txCatalog{tx: tx}, customerID, items)
	if err != nil {
		return "", nil, err
	}

	txnID := uuid.NewString()
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions(id, customer_id, total_cents, status)
		VALUES ($1, $2, $3, $4)
	`, txnID, customerID, res.TotalCents, StatusPending)
	if err != nil {
		return "", nil, err
	}

	for _, it := range res.Items {
		if _, err = tx.Exec(ctx, `
			INSERT INTO transaction_items(transaction_id, product_id, qty, price_cents)
			VALUES ($1, $2, $3, $4)`,
			txnID, it.ProductID, it.Qty, it.PriceCents,
		); err != nil {
			return "", nil, err
		}
		if _, err = tx.Exec(ctx,
			`UPDATE products SET stock=$2, updated_at=now() WHERE id=$1`,
			it.ProductID, it.RemainingStock,
		); err != nil {
			return "", nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", nil, err
	}
	return txnID, res, nil
}

const rowSelect = `
	SELECT t.id, t.customer_id, t.total_cents, t.status, t.created_at,
	       i.id, i.product_id, p.name, i.qty, i.price_cents
	FROM transactions t
	JOIN transaction_items i ON i.transaction_id = t.id
	JOIN products p ON p.id = i.product_id`

func (r *Repo) scanRows(rows pgx.Rows) ([]Row, error) {
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.TransactionID, &row.CustomerID, &row.TotalCents, &row.Status, &row.CreatedAt,
			&row.ItemID, &row.ProductID, &row.ProductName, &row.Qty, &row.PriceCents,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// FetchByID: flat rows utk satu transaksi. Slice kosong kalau id tidak ada.
func (r *Repo) FetchByID(ctx context.Context, id string) ([]Row, error) {
	rows, err := r.DB.Query(ctx, rowSelect+`
		WHERE t.id = $1
		ORDER BY i.id`, id)
	if err != nil {
		return nil, err
	}
	return r.scanRows(rows)
}

// FetchByCustomer: semua transaksi satu customer, urut creation order.
func (r *Repo) FetchByCustomer(ctx context.Context, customerID string) ([]Row, error) {
	rows, err := r.DB.Query(ctx, rowSelect+`
		WHERE t.customer_id = $1
		ORDER BY t.created_at, t.id, i.id`, customerID)
	if err != nil {
		return nil, err
	}
	return r.scanRows(rows)
}

func (r *Repo) FetchAll(ctx context.Context) ([]Row, error) {
	rows, err := r.DB.Query(ctx, rowSelect+`
		ORDER BY t.created_at, t.id, i.id`)
	if err != nil {
		return nil, err
	}
	return r.scanRows(rows)
}

// UpdateStatus: plain field overwrite. Caller yang cek enum valid.
// Rows affected = 0 artinya transaksi tidak ada.
func (r *Repo) UpdateStatus(ctx context.Context, id string, status Status) (int64, error) {
	ct, err := r.DB.Exec(ctx, `UPDATE transactions SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// Delete: line items ikut terhapus via ON DELETE CASCADE di schema.
func (r *Repo) Delete(ctx context.Context, id string) (int64, error) {
	ct, err := r.DB.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
