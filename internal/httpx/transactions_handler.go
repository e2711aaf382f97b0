package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-retail-transactions.git/internal/kafka"
	"github.com/ariefcatur/go-retail-transactions.git/internal/redisx"
	"github.com/ariefcatur/go-retail-transactions.git/internal/transactions"
)

// Store adalah yang dibutuhkan handler dari storage layer.
// Diimplementasikan *transactions.Repo; di test cukup fake.
type Store interface {
	CreateTransaction(ctx context.Context, customerID string, items []transactions.ItemInput) (string, *transactions.BuildResult, error)
	FetchByID(ctx context.Context, id string) ([]transactions.Row, error)
	FetchByCustomer(ctx context.Context, customerID string) ([]transactions.Row, error)
	FetchAll(ctx context.Context) ([]transactions.Row, error)
	UpdateStatus(ctx context.Context, id string, status transactions.Status) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type TransactionsHandler struct {
	Store          Store
	ProducerCreate *kafkax.Producer // publish transaction.created
	ProducerStatus *kafkax.Producer // publish transaction.status.updated
	Redis          *redis.Client
	Service        string
}

type CreateTransactionReq struct {
	CustomerID string                   `json:"customer_id"`
	Items      []transactions.ItemInput `json:"items"`
}

type CreateTransactionResp struct {
	TransactionID string `json:"transaction_id"`
	TotalCents    int    `json:"total_cents"`
}

type UpdateStatusReq struct {
	Status transactions.Status `json:"status"`
}

func (h *TransactionsHandler) Register(r *chi.Mux) {
	r.Post("/transactions", h.createTransaction)
	r.Get("/transactions", h.listTransactions)
	r.Get("/transactions/{id}", h.getTransaction)
	r.Get("/customers/{customerID}/transactions", h.getCustomerTransactions)
	r.Patch("/transactions/{id}/status", h.updateStatus)
	r.Delete("/transactions/{id}", h.deleteTransaction)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeDomainError: taxonomy error domain -> status code. Fault storage yang
// tak terduga di-log di sini dan keluar sebagai 500 generik, detail internal
// tidak pernah bocor ke caller.
func writeDomainError(w http.ResponseWriter, err error) {
	var pnf *transactions.ProductNotFoundError
	var ins *transactions.InsufficientStockError
	switch {
	case errors.Is(err, transactions.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, transactions.ErrCustomerNotFound),
		errors.Is(err, transactions.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &pnf):
		writeError(w, http.StatusNotFound, pnf.Error())
	case errors.As(err, &ins):
		writeError(w, http.StatusBadRequest, ins.Error())
	default:
		log.Printf("storage failure: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *TransactionsHandler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.CustomerID == "" || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "customer_id and items are required")
		return
	}
	for _, it := range req.Items {
		if it.ProductID == "" || it.Qty <= 0 {
			writeError(w, http.StatusBadRequest, "each item needs product_id and qty > 0")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	txnID, res, err := h.Store.CreateTransaction(ctx, req.CustomerID, req.Items)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Publish event setelah commit; event loss tidak menggagalkan request.
	items := make([]transactions.CreatedItem, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, transactions.CreatedItem{
			ProductID:      it.ProductID,
			Qty:            it.Qty,
			PriceCents:     it.PriceCents,
			RemainingStock: it.RemainingStock,
		})
	}
	h.publish(h.ProducerCreate, transactions.EventTransactionCreated, txnID, r.Header.Get("X-Request-Id"),
		transactions.TransactionCreatedPayload{
			TransactionID: txnID,
			CustomerID:    req.CustomerID,
			TotalCents:    res.TotalCents,
			Items:         items,
		})

	writeJSON(w, http.StatusCreated, CreateTransactionResp{TransactionID: txnID, TotalCents: res.TotalCents})
}

func (h *TransactionsHandler) getTransaction(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")
	if txnID == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache
	key := fmt.Sprintf(redisx.KeyTxDetail, txnID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	// 2) fallback DB
	rows, err := h.Store.FetchByID(ctx, txnID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusNotFound, transactions.ErrTransactionNotFound.Error())
		return
	}

	txn := transactions.Aggregate(rows)[0]
	b, _ := json.Marshal(txn)
	_ = h.Redis.Set(ctx, key, b, redisx.TTLDetailCache).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *TransactionsHandler) getCustomerTransactions(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "missing customer id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rows, err := h.Store.FetchByCustomer(ctx, customerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// by-customer: no rows berarti 404, beda kontrak dgn listing penuh
	if len(rows) == 0 {
		writeError(w, http.StatusNotFound, "no transactions for this customer")
		return
	}
	writeJSON(w, http.StatusOK, transactions.Aggregate(rows))
}

func (h *TransactionsHandler) listTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rows, err := h.Store.FetchAll(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// listing penuh: kosong ya [] saja
	writeJSON(w, http.StatusOK, transactions.Aggregate(rows))
}

func (h *TransactionsHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")
	var req UpdateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	// cek enum sebelum lookup apa pun
	if !transactions.ValidStatus(req.Status) {
		writeError(w, http.StatusBadRequest, transactions.ErrInvalidStatus.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	n, err := h.Store.UpdateStatus(ctx, txnID, req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, transactions.ErrTransactionNotFound.Error())
		return
	}

	// cache detail sudah basi
	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyTxDetail, txnID)).Err()

	h.publish(h.ProducerStatus, transactions.EventTransactionStatusUpdated, txnID, r.Header.Get("X-Request-Id"),
		transactions.TransactionStatusUpdatedPayload{TransactionID: txnID, Status: req.Status})

	writeJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

func (h *TransactionsHandler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	n, err := h.Store.Delete(ctx, txnID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, transactions.ErrTransactionNotFound.Error())
		return
	}

	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyTxDetail, txnID)).Err()

	writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

func (h *TransactionsHandler) publish(p *kafkax.Producer, eventType, txnID, trace string, payload any) {
	if p == nil {
		return
	}
	ev := transactions.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       trace,
		CorrelationID: txnID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(transactions.PartitionKey(txnID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
