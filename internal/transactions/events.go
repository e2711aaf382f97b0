package transactions

import (
	"encoding/json"
	"time"
)

const (
	EventTransactionCreated       = "TransactionCreated"
	EventTransactionStatusUpdated = "TransactionStatusUpdated"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "transaction-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // transaction_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type CreatedItem struct {
	ProductID      string `json:"product_id"`
	Qty            int    `json:"qty"`
	PriceCents     int    `json:"price_cents"`
	RemainingStock int    `json:"remaining_stock"`
}

type TransactionCreatedPayload struct {
	TransactionID string        `json:"transaction_id"`
	CustomerID    string        `json:"customer_id"`
	TotalCents    int           `json:"total_cents"`
	Items         []CreatedItem `json:"items"`
}

type TransactionStatusUpdatedPayload struct {
	TransactionID string `json:"transaction_id"`
	Status        Status `json:"status"`
}
