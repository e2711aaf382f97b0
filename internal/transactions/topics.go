package transactions

const (
	TopicTransactionCreated       = "transaction.created"
	TopicTransactionStatusUpdated = "transaction.status.updated"
)

// Partition key = transaction_id, supaya semua event 1 transaksi maintain urutan.
func PartitionKey(transactionID string) []byte { return []byte(transactionID) }
