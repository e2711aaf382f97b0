package redisx

import "time"

const (
	// Cache detail transaksi (nested JSON): tx:detail:{transaction_id}
	KeyTxDetail = "tx:detail:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Flag low stock: stock:low:{product_id} -> remaining
	KeyLowStock = "stock:low:%s"
)

var (
	TTLDetailCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
	TTLLowStock    = 24 * time.Hour
)
