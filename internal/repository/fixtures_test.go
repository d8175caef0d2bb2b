package repository

import (
	"context"
	"testing"
	"time"

	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/model"
	"github.com/tikevents/tikevents/internal/testutil"
)

// repos bundles every repository over one test store.
type repos struct {
	db      *database.Provider
	venues  *VenueRepo
	sectors *SectorRepo
	seats   *SeatRepo
	artists *ArtistRepo
	events  *EventRepo
	lineup  *EventArtistRepo
	tickets *TicketRepo
	buyers  *BuyerRepo
	sales   *SaleRepo
	reports *ReportRepo
}

func newRepos(t *testing.T) *repos {
	t.Helper()
	db := testutil.NewProvider(t)
	return &repos{
		db:      db,
		venues:  NewVenueRepo(db),
		sectors: NewSectorRepo(db),
		seats:   NewSeatRepo(db),
		artists: NewArtistRepo(db),
		events:  NewEventRepo(db),
		lineup:  NewEventArtistRepo(db),
		tickets: NewTicketRepo(db),
		buyers:  NewBuyerRepo(db),
		sales:   NewSaleRepo(db),
		reports: NewReportRepo(db),
	}
}

func ptr[T any](v T) *T { return &v }

// mustID wraps a Create call: mustID(t)(repo.Create(ctx, in)).
func mustID(t *testing.T) func(int64, error) int64 {
	return func(id int64, err error) int64 {
		t.Helper()
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if id <= 0 {
			t.Fatalf("create returned id %d", id)
		}
		return id
	}
}

func (r *repos) venue(t *testing.T, name string) int64 {
	t.Helper()
	return mustID(t)(r.venues.Create(context.Background(), model.NewVenue{Name: name, Capacity: 5000}))
}

func (r *repos) sector(t *testing.T, venueID int64, name string) int64 {
	t.Helper()
	return mustID(t)(r.sectors.Create(context.Background(), model.NewSector{Name: name, VenueID: venueID}))
}

func (r *repos) seat(t *testing.T, sectorID int64, row, number string) int64 {
	t.Helper()
	return mustID(t)(r.seats.Create(context.Background(), model.NewSeat{SectorID: sectorID, RowLabel: row, SeatNumber: number}))
}

func (r *repos) event(t *testing.T, venueID int64, name string, day time.Time) int64 {
	t.Helper()
	in := model.NewEvent{Name: name, Date: model.NewDate(day.Date()), VenueID: venueID}
	return mustID(t)(r.events.Create(context.Background(), in))
}

func (r *repos) artist(t *testing.T, name string) int64 {
	t.Helper()
	return mustID(t)(r.artists.Create(context.Background(), model.NewArtist{Name: name}))
}

func (r *repos) vip(t *testing.T, eventID int64, price float64, seatID *int64, benefits string) int64 {
	t.Helper()
	in := model.NewVIPTicket{EventID: eventID, Price: price, SeatID: seatID, Benefits: ptr(benefits)}
	return mustID(t)(r.tickets.CreateVIP(context.Background(), in))
}

func (r *repos) standard(t *testing.T, eventID int64, price float64, seatID *int64) int64 {
	t.Helper()
	in := model.NewStandardTicket{EventID: eventID, Price: price, SeatID: seatID}
	return mustID(t)(r.tickets.CreateStandard(context.Background(), in))
}

func (r *repos) buyer(t *testing.T, name, email string) int64 {
	t.Helper()
	return mustID(t)(r.buyers.Create(context.Background(), model.NewBuyer{Name: name, Email: email}))
}

func (r *repos) sale(t *testing.T, ticketID, buyerID int64, qty int, day time.Time) int64 {
	t.Helper()
	in := model.NewSale{SaleDate: model.NewDate(day.Date()), Quantity: qty, TicketID: ticketID, BuyerID: buyerID}
	return mustID(t)(r.sales.Create(context.Background(), in))
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func count(t *testing.T, r *repos, query string, args ...any) int {
	t.Helper()
	return testutil.Count(t, r.db, query, args...)
}
