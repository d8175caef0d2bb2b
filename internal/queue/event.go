// Package queue publishes domain events to the message broker.
package queue

// SaleRecordedQueue is the durable queue sale notifications go to.
const SaleRecordedQueue = "sale.recorded"

// SaleRecordedEvent is published after a sale has been committed. It
// carries enough for downstream consumers (receipts, analytics) to act
// without querying the store.
type SaleRecordedEvent struct {
	SaleID     int64  `json:"sale_id"`
	TicketID   int64  `json:"ticket_id"`
	BuyerID    int64  `json:"buyer_id"`
	Quantity   int    `json:"quantity"`
	SaleDate   string `json:"sale_date"` // YYYY-MM-DD
	RecordedBy string `json:"recorded_by"`
	RecordedAt string `json:"recorded_at"` // RFC 3339, UTC
}
