package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// SaleRepo manages the sales table. The per-buyer and per-event listings
// live in ReportRepo.
type SaleRepo struct {
	db *database.Provider
}

// NewSaleRepo returns a SaleRepo backed by db.
func NewSaleRepo(db *database.Provider) *SaleRepo {
	return &SaleRepo{db: db}
}

// Create records a sale. Quantity must be positive; the ticket and buyer
// must exist.
func (r *SaleRepo) Create(ctx context.Context, in model.NewSale) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	if in.SaleDate.IsZero() {
		return 0, model.Invalid("date", "is required")
	}
	const q = `INSERT INTO sales (sale_date, quantity, ticket_id, buyer_id) VALUES (?, ?, ?, ?)`
	var id int64
	err := r.db.Do(ctx, func(s *database.Session) (err error) {
		id, err = s.Insert(ctx, "sales", q, in.SaleDate, in.Quantity, in.TicketID, in.BuyerID)
		return err
	})
	return id, err
}

// GetByID returns ErrSaleNotFound for an unknown id.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*model.Sale, error) {
	const q = `SELECT id, sale_date, quantity, ticket_id, buyer_id FROM sales WHERE id = ?`
	var sale model.Sale
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Get(ctx, &sale, q, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// Update writes the supplied fields of p and returns the rows matched.
func (r *SaleRepo) Update(ctx context.Context, id int64, p model.SalePatch) (int64, error) {
	if d, ok := p.SaleDate.Get(); ok && d.IsZero() {
		return 0, model.Invalid("date", "is required")
	}
	u := newUpdate("sales")
	set(u, column{name: "sale_date", field: "date"}, p.SaleDate)
	set(u, column{name: "quantity", field: "quantity", tag: "gt=0"}, p.Quantity)
	set(u, column{name: "ticket_id", field: "ticket_id", tag: "gt=0"}, p.TicketID)
	set(u, column{name: "buyer_id", field: "buyer_id", tag: "gt=0"}, p.BuyerID)
	return u.exec(ctx, r.db, id)
}

// Delete removes a sale, releasing its ticket and buyer for deletion.
func (r *SaleRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteByID(ctx, r.db, "sales", id)
}
