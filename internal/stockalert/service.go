package stockalert

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-retail-transactions.git/internal/kafka"
	"github.com/ariefcatur/go-retail-transactions.git/internal/redisx"
	"github.com/ariefcatur/go-retail-transactions.git/internal/transactions"
)

// Service memantau transaction.created dan menandai produk yang stok sisanya
// jatuh di bawah threshold. Payload builder sudah bawa remaining_stock, jadi
// tidak perlu query balik ke DB.
type Service struct {
	Redis       *redis.Client
	Threshold   int
	ServiceName string
}

// HandleTransactionCreated: dipasang sebagai handler consumer.
func (s *Service) HandleTransactionCreated(ctx context.Context, m kafkago.Message) error {
	// 1) decode envelope
	var env transactions.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != transactions.EventTransactionCreated {
		return nil
	} // ignore

	// 2) dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, "stockalert", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	// 3) decode payload
	p, err := kafkax.UnwrapPayload[transactions.TransactionCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	for _, it := range LowStockItems(p.Items, s.Threshold) {
		log.Printf("low stock: product=%s remaining=%d (txn=%s)", it.ProductID, it.RemainingStock, p.TransactionID)
		key := fmt.Sprintf(redisx.KeyLowStock, it.ProductID)
		_ = s.Redis.Set(ctx, key, it.RemainingStock, redisx.TTLLowStock).Err()
	}
	return nil
}

// LowStockItems memilih item yang remaining stock-nya <= threshold.
func LowStockItems(items []transactions.CreatedItem, threshold int) []transactions.CreatedItem {
	var out []transactions.CreatedItem
	for _, it := range items {
		if it.RemainingStock <= threshold {
			out = append(out, it)
		}
	}
	return out
}
