package repository

import (
	"context"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// ReportRepo runs the read-only sales reports.
type ReportRepo struct {
	db *database.Provider
}

// NewReportRepo returns a ReportRepo backed by db.
func NewReportRepo(db *database.Provider) *ReportRepo {
	return &ReportRepo{db: db}
}

// SalesByBuyer lists a buyer's purchases, newest first, with the line
// total computed by the store.
func (r *ReportRepo) SalesByBuyer(ctx context.Context, buyerID int64) ([]model.BuyerSaleLine, error) {
	const q = `SELECT s.id AS sale_id, s.sale_date, e.name AS event_name,
                      t.price, s.quantity, t.price * s.quantity AS total
               FROM sales s
               JOIN tickets t ON t.id = s.ticket_id
               JOIN events e ON e.id = t.event_id
               WHERE s.buyer_id = ?
               ORDER BY s.sale_date DESC, s.id DESC`
	out := []model.BuyerSaleLine{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q, buyerID)
	})
	return out, err
}

// SalesByEvent lists the sales of an event's tickets, oldest first.
func (r *ReportRepo) SalesByEvent(ctx context.Context, eventID int64) ([]model.EventSaleLine, error) {
	const q = `SELECT s.id AS sale_id, s.sale_date, b.name AS buyer_name, b.email AS buyer_email,
                      t.id AS ticket_id, t.price, s.quantity
               FROM sales s
               JOIN tickets t ON t.id = s.ticket_id
               JOIN buyers b ON b.id = s.buyer_id
               WHERE t.event_id = ?
               ORDER BY s.sale_date, s.id`
	out := []model.EventSaleLine{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q, eventID)
	})
	return out, err
}
