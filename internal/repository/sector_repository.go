package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// SectorRepo manages the sectors table. Names are unique within a venue;
// deleting a sector deletes its seats.
type SectorRepo struct {
	db *database.Provider
}

// NewSectorRepo returns a SectorRepo backed by db.
func NewSectorRepo(db *database.Provider) *SectorRepo {
	return &SectorRepo{db: db}
}

// Create inserts a sector into an existing venue.
func (r *SectorRepo) Create(ctx context.Context, in model.NewSector) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	const q = `INSERT INTO sectors (name, venue_id) VALUES (?, ?)`
	var id int64
	err := r.db.Do(ctx, func(s *database.Session) (err error) {
		id, err = s.Insert(ctx, "sectors", q, in.Name, in.VenueID)
		return err
	})
	return id, err
}

// GetByID returns ErrSectorNotFound for an unknown id.
func (r *SectorRepo) GetByID(ctx context.Context, id int64) (*model.Sector, error) {
	const q = `SELECT id, name, venue_id FROM sectors WHERE id = ?`
	var sec model.Sector
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Get(ctx, &sec, q, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSectorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// List returns all sectors grouped by venue, by name within a venue.
func (r *SectorRepo) List(ctx context.Context) ([]model.Sector, error) {
	const q = `SELECT id, name, venue_id FROM sectors ORDER BY venue_id, name`
	out := []model.Sector{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q)
	})
	return out, err
}

// ListByVenue returns the sectors of one venue ordered by name.
func (r *SectorRepo) ListByVenue(ctx context.Context, venueID int64) ([]model.Sector, error) {
	const q = `SELECT id, name, venue_id FROM sectors WHERE venue_id = ? ORDER BY name`
	out := []model.Sector{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q, venueID)
	})
	return out, err
}

// Update writes the supplied fields of p and returns the rows matched.
func (r *SectorRepo) Update(ctx context.Context, id int64, p model.SectorPatch) (int64, error) {
	u := newUpdate("sectors")
	set(u, column{name: "name", field: "name", tag: "required,max=100"}, p.Name)
	set(u, column{name: "venue_id", field: "venue_id", tag: "gt=0"}, p.VenueID)
	return u.exec(ctx, r.db, id)
}

// Delete removes the sector and, by cascade, all of its seats. Tickets on
// those seats lose their seat reference.
func (r *SectorRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteByID(ctx, r.db, "sectors", id)
}
