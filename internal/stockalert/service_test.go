package stockalert

import (
	"testing"

	"github.com/ariefcatur/go-retail-transactions.git/internal/transactions"
)

func TestLowStockItems(t *testing.T) {
	items := []transactions.CreatedItem{
		{ProductID: "P1", RemainingStock: 3},
		{ProductID: "P2", RemainingStock: 5},
		{ProductID: "P3", RemainingStock: 6},
		{ProductID: "P4", RemainingStock: 0},
	}

	out := LowStockItems(items, 5)
	if len(out) != 3 {
		t.Fatalf("got %d items, want 3", len(out))
	}
	for _, it := range out {
		if it.RemainingStock > 5 {
			t.Errorf("product %s remaining %d is above threshold", it.ProductID, it.RemainingStock)
		}
	}

	if got := LowStockItems(items, -1); len(got) != 0 {
		t.Errorf("threshold -1: got %d items, want 0", len(got))
	}
	if got := LowStockItems(nil, 5); len(got) != 0 {
		t.Errorf("nil items: got %d, want 0", len(got))
	}
}
