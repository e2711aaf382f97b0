package transactions

import (
	"reflect"
	"testing"
	"time"
)

func sampleRows() []Row {
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(1 * time.Hour)
	return []Row{
		{TransactionID: "T1", CustomerID: "C1", TotalCents: 2300, Status: StatusPending, CreatedAt: t0,
			ItemID: 1, ProductID: "P1", ProductName: "Kopi Gayo", Qty: 2, PriceCents: 1000},
		{TransactionID: "T1", CustomerID: "C1", TotalCents: 2300, Status: StatusPending, CreatedAt: t0,
			ItemID: 2, ProductID: "P2", ProductName: "Teh Melati", Qty: 1, PriceCents: 300},
		{TransactionID: "T2", CustomerID: "C1", TotalCents: 500, Status: StatusCompleted, CreatedAt: t1,
			ItemID: 3, ProductID: "P3", ProductName: "Gula Aren", Qty: 1, PriceCents: 500},
		{TransactionID: "T2", CustomerID: "C1", TotalCents: 500, Status: StatusCompleted, CreatedAt: t1,
			ItemID: 4, ProductID: "P1", ProductName: "Kopi Gayo", Qty: 1, PriceCents: 1000},
	}
}

func TestAggregate_GroupsAndPreservesOrder(t *testing.T) {
	// dua transaksi, masing-masing dua item -> dua objek nested,
	// urut sesuai baris pertamanya
	out := Aggregate(sampleRows())
	if len(out) != 2 {
		t.Fatalf("got %d transactions, want 2", len(out))
	}
	if out[0].ID != "T1" || out[1].ID != "T2" {
		t.Errorf("order = [%s %s], want [T1 T2]", out[0].ID, out[1].ID)
	}
	if len(out[0].Items) != 2 || len(out[1].Items) != 2 {
		t.Errorf("item counts = %d,%d, want 2,2", len(out[0].Items), len(out[1].Items))
	}
	if out[0].Items[0].ID != 1 || out[0].Items[1].ID != 2 {
		t.Error("T1 items not in row order")
	}
	if out[0].TotalCents != 2300 || out[0].Status != StatusPending {
		t.Error("T1 header fields mismatch")
	}
}

func TestAggregate_InterleavedRows(t *testing.T) {
	rows := sampleRows()
	// susun A, B, A: item kedua T1 datang setelah baris pertama T2
	interleaved := []Row{rows[0], rows[2], rows[1], rows[3]}

	out := Aggregate(interleaved)
	if len(out) != 2 {
		t.Fatalf("got %d transactions, want 2", len(out))
	}
	// first-seen order tetap T1, T2
	if out[0].ID != "T1" || out[1].ID != "T2" {
		t.Errorf("order = [%s %s], want [T1 T2]", out[0].ID, out[1].ID)
	}
	if len(out[0].Items) != 2 {
		t.Errorf("T1 reconstructed with %d items, want 2", len(out[0].Items))
	}
}

func TestAggregate_SingleTransactionManyItems(t *testing.T) {
	var rows []Row
	for i := 0; i < 7; i++ {
		rows = append(rows, Row{
			TransactionID: "T1", CustomerID: "C1", TotalCents: 700, Status: StatusPending,
			ItemID: int64(i + 1), ProductID: "P1", ProductName: "Kopi Gayo", Qty: 1, PriceCents: 100,
		})
	}
	out := Aggregate(rows)
	if len(out) != 1 {
		t.Fatalf("got %d transactions, want 1", len(out))
	}
	if len(out[0].Items) != 7 {
		t.Fatalf("got %d items, want 7", len(out[0].Items))
	}
	for i, it := range out[0].Items {
		if it.ID != int64(i+1) {
			t.Errorf("item %d has id %d, rows must keep input order", i, it.ID)
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	out := Aggregate(nil)
	if out == nil {
		t.Fatal("want empty slice, not nil (listing penuh serialize ke [])")
	}
	if len(out) != 0 {
		t.Fatalf("got %d, want 0", len(out))
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	rows := sampleRows()
	a := Aggregate(rows)
	b := Aggregate(rows)
	if !reflect.DeepEqual(a, b) {
		t.Error("same flat input must always yield the same nested structure")
	}
}
