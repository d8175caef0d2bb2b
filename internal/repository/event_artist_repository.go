package repository

import (
	"context"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// EventArtistRepo manages the event_artists junction table.
type EventArtistRepo struct {
	db *database.Provider
}

// NewEventArtistRepo returns an EventArtistRepo backed by db.
func NewEventArtistRepo(db *database.Provider) *EventArtistRepo {
	return &EventArtistRepo{db: db}
}

// Associate books an artist for an event. A repeated pair is a uniqueness
// violation; an unknown event or artist is a foreign key violation.
func (r *EventArtistRepo) Associate(ctx context.Context, eventID, artistID int64) (int64, error) {
	if err := checkIDs(eventID, artistID); err != nil {
		return 0, err
	}
	const q = `INSERT INTO event_artists (event_id, artist_id) VALUES (?, ?)`
	var n int64
	err := r.db.Do(ctx, func(s *database.Session) (err error) {
		n, err = s.Exec(ctx, database.OpInsert, "event_artists", q, eventID, artistID)
		return err
	})
	return n, err
}

// Dissociate removes the pair. Removing a pair that does not exist
// returns 0 and no error.
func (r *EventArtistRepo) Dissociate(ctx context.Context, eventID, artistID int64) (int64, error) {
	const q = `DELETE FROM event_artists WHERE event_id = ? AND artist_id = ?`
	var n int64
	err := r.db.Do(ctx, func(s *database.Session) (err error) {
		n, err = s.Exec(ctx, database.OpDelete, "event_artists", q, eventID, artistID)
		return err
	})
	return n, err
}

// ArtistsOfEvent returns the line-up of an event ordered by artist name.
func (r *EventArtistRepo) ArtistsOfEvent(ctx context.Context, eventID int64) ([]model.Artist, error) {
	const q = `SELECT a.id, a.name, a.genre
               FROM artists a
               JOIN event_artists ea ON ea.artist_id = a.id
               WHERE ea.event_id = ?
               ORDER BY a.name, a.id`
	out := []model.Artist{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q, eventID)
	})
	return out, err
}

// EventsOfArtist returns the events an artist plays in calendar order.
func (r *EventArtistRepo) EventsOfArtist(ctx context.Context, artistID int64) ([]model.Event, error) {
	const q = `SELECT e.id, e.name, e.event_date, e.start_time, e.description, e.venue_id
               FROM events e
               JOIN event_artists ea ON ea.event_id = e.id
               WHERE ea.artist_id = ?
               ORDER BY e.event_date, e.start_time, e.id`
	out := []model.Event{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q, artistID)
	})
	return out, err
}

func checkIDs(eventID, artistID int64) error {
	if eventID <= 0 {
		return model.Invalid("event_id", "must be greater than 0")
	}
	if artistID <= 0 {
		return model.Invalid("artist_id", "must be greater than 0")
	}
	return nil
}
