package transactions

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest      = errors.New("customer id and a non-empty item list are required")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidStatus       = errors.New("invalid status")
)

// ProductNotFoundError menyebut product id mana yang gagal.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// InsufficientStockError membawa nama produk + stok tersedia supaya caller
// bisa kasih pesan yang actionable.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d", e.ProductName, e.Available)
}
