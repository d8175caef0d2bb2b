package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// SeatRepo manages the seats table. A seat is unique by sector, row and
// number.
type SeatRepo struct {
	db *database.Provider
}

// NewSeatRepo returns a SeatRepo backed by db.
func NewSeatRepo(db *database.Provider) *SeatRepo {
	return &SeatRepo{db: db}
}

// Create inserts a seat. Row and number are unique within a sector.
func (r *SeatRepo) Create(ctx context.Context, in model.NewSeat) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	const q = `INSERT INTO seats (sector_id, row_label, seat_number) VALUES (?, ?, ?)`
	var id int64
	err := r.db.Do(ctx, func(s *database.Session) (err error) {
		id, err = s.Insert(ctx, "seats", q, in.SectorID, in.RowLabel, in.SeatNumber)
		return err
	})
	return id, err
}

// GetByID returns ErrSeatNotFound for an unknown id.
func (r *SeatRepo) GetByID(ctx context.Context, id int64) (*model.Seat, error) {
	const q = `SELECT id, sector_id, row_label, seat_number FROM seats WHERE id = ?`
	var seat model.Seat
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Get(ctx, &seat, q, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeatNotFound
	}
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

// ListBySector returns the seats of a sector ordered by row, then number.
func (r *SeatRepo) ListBySector(ctx context.Context, sectorID int64) ([]model.Seat, error) {
	const q = `SELECT id, sector_id, row_label, seat_number FROM seats
               WHERE sector_id = ?
               ORDER BY row_label, seat_number`
	out := []model.Seat{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q, sectorID)
	})
	return out, err
}

// Update writes the supplied fields of p and returns the rows matched.
func (r *SeatRepo) Update(ctx context.Context, id int64, p model.SeatPatch) (int64, error) {
	u := newUpdate("seats")
	set(u, column{name: "sector_id", field: "sector_id", tag: "gt=0"}, p.SectorID)
	set(u, column{name: "row_label", field: "row", tag: "required,max=10"}, p.RowLabel)
	set(u, column{name: "seat_number", field: "number", tag: "required,max=10"}, p.SeatNumber)
	return u.exec(ctx, r.db, id)
}

// Delete removes a seat. Tickets for it stay and become unseated.
func (r *SeatRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteByID(ctx, r.db, "seats", id)
}
