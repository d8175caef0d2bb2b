package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// VenueRepo manages the venues table. A venue cannot be deleted while
// events reference it; its sectors (and their seats) go with it.
type VenueRepo struct {
	db *database.Provider
}

// NewVenueRepo constructs a VenueRepo with the given provider.
func NewVenueRepo(db *database.Provider) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a venue and returns its id. Capacity must be positive.
func (r *VenueRepo) Create(ctx context.Context, in model.NewVenue) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	const q = `INSERT INTO venues (name, address, capacity) VALUES (?, ?, ?)`
	var id int64
	err := r.db.Do(ctx, func(s *database.Session) (err error) {
		id, err = s.Insert(ctx, "venues", q, in.Name, in.Address, in.Capacity)
		return err
	})
	return id, err
}

// GetByID returns ErrVenueNotFound when no venue has that id.
func (r *VenueRepo) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	const q = `SELECT id, name, address, capacity FROM venues WHERE id = ?`
	var v model.Venue
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Get(ctx, &v, q, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns every venue ordered by name.
func (r *VenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT id, name, address, capacity FROM venues ORDER BY name, id`
	out := []model.Venue{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q)
	})
	return out, err
}

// Update applies the supplied fields and returns the number of rows
// matched (0 when the venue does not exist).
func (r *VenueRepo) Update(ctx context.Context, id int64, p model.VenuePatch) (int64, error) {
	u := newUpdate("venues")
	set(u, column{name: "name", field: "name", tag: "required,max=100"}, p.Name)
	set(u, column{name: "address", field: "address", nullable: true, tag: "max=255"}, p.Address)
	set(u, column{name: "capacity", field: "capacity", tag: "gt=0"}, p.Capacity)
	return u.exec(ctx, r.db, id)
}

// Delete removes a venue. It fails with a restrict violation while any
// event is scheduled there.
func (r *VenueRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteByID(ctx, r.db, "venues", id)
}

// deleteByID is the single-row delete shared by the entity repositories.
func deleteByID(ctx context.Context, db *database.Provider, table string, id int64) (int64, error) {
	var n int64
	err := db.Do(ctx, func(s *database.Session) (err error) {
		n, err = s.Exec(ctx, database.OpDelete, table, "DELETE FROM "+table+" WHERE id = ?", id)
		return err
	})
	return n, err
}
