package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// EventRepo manages the events table. Deleting an event cascades to its
// tickets and artist line-up, and is blocked if any of those tickets has
// been sold.
type EventRepo struct {
	db *database.Provider
}

// NewEventRepo returns an EventRepo backed by db.
func NewEventRepo(db *database.Provider) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `id, name, event_date, start_time, description, venue_id`

// Create inserts an event. The venue must exist; the store reports a
// missing one as a foreign key violation.
func (r *EventRepo) Create(ctx context.Context, in model.NewEvent) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	if in.Date.IsZero() {
		return 0, model.Invalid("date", "is required")
	}
	const q = `INSERT INTO events (name, event_date, start_time, description, venue_id) VALUES (?, ?, ?, ?, ?)`
	var id int64
	err := r.db.Do(ctx, func(s *database.Session) (err error) {
		id, err = s.Insert(ctx, "events", q, in.Name, in.Date, in.StartTime, in.Description, in.VenueID)
		return err
	})
	return id, err
}

// GetByID returns ErrEventNotFound for an unknown id.
func (r *EventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	var e model.Event
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Get(ctx, &e, q, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns every event in calendar order.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events ORDER BY event_date, start_time, id`
	out := []model.Event{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q)
	})
	return out, err
}

// ListByVenue returns the events held at one venue in calendar order.
func (r *EventRepo) ListByVenue(ctx context.Context, venueID int64) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE venue_id = ? ORDER BY event_date, start_time, id`
	out := []model.Event{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q, venueID)
	})
	return out, err
}

// Update writes the supplied fields of p. Moving an event to an unknown
// venue is a ForeignKeyMissing violation.
func (r *EventRepo) Update(ctx context.Context, id int64, p model.EventPatch) (int64, error) {
	if d, ok := p.Date.Get(); ok && d.IsZero() {
		return 0, model.Invalid("date", "is required")
	}
	u := newUpdate("events")
	set(u, column{name: "name", field: "name", tag: "required,max=150"}, p.Name)
	set(u, column{name: "event_date", field: "date"}, p.Date)
	set(u, column{name: "start_time", field: "time", nullable: true}, p.StartTime)
	set(u, column{name: "description", field: "description", nullable: true, tag: "max=1000"}, p.Description)
	set(u, column{name: "venue_id", field: "venue_id", tag: "gt=0"}, p.VenueID)
	return u.exec(ctx, r.db, id)
}

// Delete removes the event with its lineup and tickets. A ticket with sales
// blocks it as a ForeignKeyRestrict violation.
func (r *EventRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteByID(ctx, r.db, "events", id)
}
