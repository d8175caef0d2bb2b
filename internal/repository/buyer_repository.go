package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// BuyerRepo manages the buyers table. Emails are unique; a buyer with
// sales cannot be deleted.
type BuyerRepo struct {
	db *database.Provider
}

// NewBuyerRepo returns a BuyerRepo backed by db.
func NewBuyerRepo(db *database.Provider) *BuyerRepo {
	return &BuyerRepo{db: db}
}

// Create inserts a buyer. A taken email is a Uniqueness violation.
func (r *BuyerRepo) Create(ctx context.Context, in model.NewBuyer) (int64, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := check(in); err != nil {
		return 0, err
	}
	const q = `INSERT INTO buyers (name, email) VALUES (?, ?)`
	var id int64
	err := r.db.Do(ctx, func(s *database.Session) (err error) {
		id, err = s.Insert(ctx, "buyers", q, in.Name, in.Email)
		return err
	})
	return id, err
}

// GetByID returns ErrBuyerNotFound for an unknown id.
func (r *BuyerRepo) GetByID(ctx context.Context, id int64) (*model.Buyer, error) {
	const q = `SELECT id, name, email FROM buyers WHERE id = ?`
	var b model.Buyer
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Get(ctx, &b, q, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBuyerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns every buyer ordered by name.
func (r *BuyerRepo) List(ctx context.Context) ([]model.Buyer, error) {
	const q = `SELECT id, name, email FROM buyers ORDER BY name, id`
	out := []model.Buyer{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q)
	})
	return out, err
}

// Update writes the supplied fields of p and returns the rows matched.
func (r *BuyerRepo) Update(ctx context.Context, id int64, p model.BuyerPatch) (int64, error) {
	if e, ok := p.Email.Get(); ok {
		p.Email = model.Set(strings.TrimSpace(e))
	}
	u := newUpdate("buyers")
	set(u, column{name: "name", field: "name", tag: "required,max=100"}, p.Name)
	set(u, column{name: "email", field: "email", tag: "required,email,max=150"}, p.Email)
	return u.exec(ctx, r.db, id)
}

// Delete fails with a restrict violation while the buyer has sales.
func (r *BuyerRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteByID(ctx, r.db, "buyers", id)
}
