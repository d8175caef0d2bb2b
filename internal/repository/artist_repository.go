package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// ArtistRepo stores artists.
type ArtistRepo struct {
	db *database.Provider
}

// NewArtistRepo returns an ArtistRepo backed by db.
func NewArtistRepo(db *database.Provider) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Create validates in and inserts it, returning the new id.
func (r *ArtistRepo) Create(ctx context.Context, in model.NewArtist) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	const q = `INSERT INTO artists (name, genre) VALUES (?, ?)`
	var id int64
	err := r.db.Do(ctx, func(s *database.Session) (err error) {
		id, err = s.Insert(ctx, "artists", q, in.Name, in.Genre)
		return err
	})
	return id, err
}

// GetByID returns ErrArtistNotFound for an unknown id.
func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	const q = `SELECT id, name, genre FROM artists WHERE id = ?`
	var a model.Artist
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Get(ctx, &a, q, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns every artist ordered by name.
func (r *ArtistRepo) List(ctx context.Context) ([]model.Artist, error) {
	const q = `SELECT id, name, genre FROM artists ORDER BY name, id`
	out := []model.Artist{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q)
	})
	return out, err
}

// Update writes the supplied fields of p and returns the rows matched.
func (r *ArtistRepo) Update(ctx context.Context, id int64, p model.ArtistPatch) (int64, error) {
	u := newUpdate("artists")
	set(u, column{name: "name", field: "name", tag: "required,max=100"}, p.Name)
	set(u, column{name: "genre", field: "genre", nullable: true, tag: "max=50"}, p.Genre)
	return u.exec(ctx, r.db, id)
}

// Delete removes an artist together with its event line-up entries.
func (r *ArtistRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteByID(ctx, r.db, "artists", id)
}
