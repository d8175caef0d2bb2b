package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
)

// TicketRepo manages the ticket hierarchy: a generic row in tickets plus
// exactly one specialization row in tickets_vip or tickets_standard. The
// generic row carries the kind so the specialization insert can be guarded
// against it.
type TicketRepo struct {
	db *database.Provider
}

// NewTicketRepo returns a TicketRepo backed by db.
func NewTicketRepo(db *database.Provider) *TicketRepo {
	return &TicketRepo{db: db}
}

// ErrSpecialization is returned when the specialization row could not be
// paired with its generic row. The ticket is rolled back.
var ErrSpecialization = errors.New("ticket specialization not created")

const ticketDetailSelect = `
SELECT t.id, t.event_id, t.price, t.seat_id, t.kind,
       v.benefits, v.ticket_id AS vip_id, st.ticket_id AS standard_id
FROM tickets t
LEFT JOIN tickets_vip v ON v.ticket_id = t.id
LEFT JOIN tickets_standard st ON st.ticket_id = t.id`

// CreateVIP inserts a VIP ticket and its benefits in one transaction.
func (r *TicketRepo) CreateVIP(ctx context.Context, in model.NewVIPTicket) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	const q = `INSERT INTO tickets_vip (ticket_id, benefits)
               SELECT id, ? FROM tickets WHERE id = ? AND kind = 'VIP'`
	return r.create(ctx, model.KindVIP, in.EventID, in.Price, in.SeatID, func(s *database.Session, id int64) (int64, error) {
		return s.Exec(ctx, database.OpInsert, "tickets_vip", q, in.Benefits, id)
	})
}

// CreateStandard inserts a Standard ticket in one transaction.
func (r *TicketRepo) CreateStandard(ctx context.Context, in model.NewStandardTicket) (int64, error) {
	if err := check(in); err != nil {
		return 0, err
	}
	const q = `INSERT INTO tickets_standard (ticket_id)
               SELECT id FROM tickets WHERE id = ? AND kind = 'STANDARD'`
	return r.create(ctx, model.KindStandard, in.EventID, in.Price, in.SeatID, func(s *database.Session, id int64) (int64, error) {
		return s.Exec(ctx, database.OpInsert, "tickets_standard", q, id)
	})
}

// create writes the generic row and then the specialization row. Both
// commit together or not at all.
func (r *TicketRepo) create(ctx context.Context, kind model.TicketKind, eventID int64, price float64, seatID *int64,
	specialize func(s *database.Session, id int64) (int64, error)) (int64, error) {

	const q = `INSERT INTO tickets (event_id, price, seat_id, kind) VALUES (?, ?, ?, ?)`
	var id int64
	err := r.db.Tx(ctx, func(s *database.Session) error {
		var err error
		id, err = s.Insert(ctx, "tickets", q, eventID, price, seatID, string(kind))
		if err != nil {
			return err
		}
		n, err := specialize(s, id)
		if err != nil {
			return err
		}
		if n != 1 {
			return fmt.Errorf("%w: ticket %d (%s) paired %d rows", ErrSpecialization, id, kind, n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID returns one ticket with its specialization.
func (r *TicketRepo) GetByID(ctx context.Context, id int64) (*model.TicketDetail, error) {
	const q = ticketDetailSelect + ` WHERE t.id = ?`
	var t model.TicketDetail
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Get(ctx, &t, q, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Resolve()
	return &t, nil
}

// ListByEvent returns the tickets of an event ordered by id. Each row
// carries the VIP benefits (null for Standard tickets) and one marker per
// specialization.
func (r *TicketRepo) ListByEvent(ctx context.Context, eventID int64) ([]model.TicketDetail, error) {
	const q = ticketDetailSelect + ` WHERE t.event_id = ? ORDER BY t.id`
	out := []model.TicketDetail{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q, eventID)
	})
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Resolve()
	}
	return out, nil
}

// UpdateCommon updates the generic ticket row only. The kind is fixed at
// creation and cannot be patched.
func (r *TicketRepo) UpdateCommon(ctx context.Context, id int64, p model.TicketPatch) (int64, error) {
	u := newUpdate("tickets")
	set(u, column{name: "event_id", field: "event_id", tag: "gt=0"}, p.EventID)
	set(u, column{name: "price", field: "price", tag: "gte=0,lte=99999999.99"}, p.Price)
	set(u, column{name: "seat_id", field: "seat_id", nullable: true, tag: "gt=0"}, p.SeatID)
	return u.exec(ctx, r.db, id)
}

// UpdateVIPBenefits rewrites the benefits of a VIP ticket. It returns 0
// when the ticket does not exist or is not VIP.
func (r *TicketRepo) UpdateVIPBenefits(ctx context.Context, id int64, benefits *string) (int64, error) {
	if benefits != nil {
		if err := checkValue("benefits", *benefits, "max=255"); err != nil {
			return 0, err
		}
	}
	const q = `UPDATE tickets_vip SET benefits = ? WHERE ticket_id = ?`
	var n int64
	err := r.db.Do(ctx, func(s *database.Session) (err error) {
		n, err = s.Exec(ctx, database.OpUpdate, "tickets_vip", q, benefits, id)
		return err
	})
	return n, err
}

// Delete removes a ticket and its specialization. It fails with a restrict
// violation while a sale references the ticket.
func (r *TicketRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteByID(ctx, r.db, "tickets", id)
}

// Inconsistent lists tickets that do not have exactly one specialization
// row matching their kind. It is empty unless rows were written around
// this repository.
func (r *TicketRepo) Inconsistent(ctx context.Context) ([]model.TicketIntegrity, error) {
	const q = `
SELECT id, kind, vip_rows, standard_rows FROM (
    SELECT t.id, t.kind,
           (SELECT COUNT(*) FROM tickets_vip v WHERE v.ticket_id = t.id) AS vip_rows,
           (SELECT COUNT(*) FROM tickets_standard st WHERE st.ticket_id = t.id) AS standard_rows
    FROM tickets t
) c
WHERE vip_rows + standard_rows <> 1
   OR (kind = 'VIP' AND vip_rows <> 1)
   OR (kind = 'STANDARD' AND standard_rows <> 1)
ORDER BY id`
	out := []model.TicketIntegrity{}
	err := r.db.Do(ctx, func(s *database.Session) error {
		return s.Select(ctx, &out, q)
	})
	return out, err
}
