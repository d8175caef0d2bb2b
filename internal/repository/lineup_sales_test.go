package repository

import (
	"context"
	"testing"

	"github.com/tikevents/tikevents/internal/model"
)

func TestEventArtistAssociation(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	venueID := r.venue(t, "Arena")
	spring := r.event(t, venueID, "Spring", day(2025, 4, 1))
	winter := r.event(t, venueID, "Winter", day(2025, 12, 1))
	zed := r.artist(t, "Zed")
	amy := r.artist(t, "Amy")

	for _, pair := range [][2]int64{{spring, zed}, {spring, amy}, {winter, zed}} {
		if n, err := r.lineup.Associate(ctx, pair[0], pair[1]); err != nil || n != 1 {
			t.Fatalf("Associate%v: n=%d err=%v", pair, n, err)
		}
	}
	if _, err := r.lineup.Associate(ctx, spring, zed); !model.IsUniqueness(err) {
		t.Fatalf("duplicate pair: %v", err)
	}
	if _, err := r.lineup.Associate(ctx, spring, 999); !model.IsForeignKeyMissing(err) {
		t.Fatalf("unknown artist: %v", err)
	}
	if _, err := r.lineup.Associate(ctx, 999, amy); !model.IsForeignKeyMissing(err) {
		t.Fatalf("unknown event: %v", err)
	}

	artists, err := r.lineup.ArtistsOfEvent(ctx, spring)
	if err != nil || len(artists) != 2 || artists[0].Name != "Amy" || artists[1].Name != "Zed" {
		t.Fatalf("ArtistsOfEvent = %+v, %v", artists, err)
	}
	events, err := r.lineup.EventsOfArtist(ctx, zed)
	if err != nil || len(events) != 2 || events[0].ID != spring || events[1].ID != winter {
		t.Fatalf("EventsOfArtist = %+v, %v", events, err)
	}

	if n, err := r.lineup.Dissociate(ctx, winter, amy); err != nil || n != 0 {
		t.Fatalf("dissociate absent pair: n=%d err=%v", n, err)
	}
	if n, err := r.lineup.Dissociate(ctx, spring, zed); err != nil || n != 1 {
		t.Fatalf("dissociate: n=%d err=%v", n, err)
	}

	if _, err := r.artists.Delete(ctx, amy); err != nil {
		t.Fatal(err)
	}
	if artists, _ := r.lineup.ArtistsOfEvent(ctx, spring); len(artists) != 0 {
		t.Fatalf("line-up after artist delete = %+v", artists)
	}
}

func TestBuyerEmailUnique(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	r.buyer(t, "Ann", "a@x.com")
	_, err := r.buyers.Create(ctx, model.NewBuyer{Name: "Other Ann", Email: "a@x.com"})
	if !model.IsUniqueness(err) {
		t.Fatalf("duplicate email: %v", err)
	}
	if _, err := r.buyers.Create(ctx, model.NewBuyer{Name: "Bob", Email: "not-an-email"}); !model.IsValidation(err) {
		t.Fatalf("bad email: %v", err)
	}
	bob := r.buyer(t, "Bob", "bob@x.com")
	if _, err := r.buyers.Update(ctx, bob, model.BuyerPatch{Email: model.Set("a@x.com")}); !model.IsUniqueness(err) {
		t.Fatalf("update to taken email: %v", err)
	}
	list, err := r.buyers.List(ctx)
	if err != nil || len(list) != 2 || list[0].Name != "Ann" {
		t.Fatalf("List = %+v, %v", list, err)
	}
}

func TestBuyerDeleteRestrictedBySales(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	eventID := r.event(t, r.venue(t, "Arena"), "Show", day(2025, 10, 29))
	ticketID := r.standard(t, eventID, 25, nil)
	buyerID := r.buyer(t, "Ann", "ann@example.com")
	saleID := r.sale(t, ticketID, buyerID, 1, day(2025, 9, 1))

	if _, err := r.buyers.Delete(ctx, buyerID); !model.IsRestrict(err) {
		t.Fatalf("want restrict, got %v", err)
	}
	b, err := r.buyers.GetByID(ctx, buyerID)
	if err != nil || b.Email != "ann@example.com" {
		t.Fatalf("buyer changed: %+v, %v", b, err)
	}

	if _, err := r.sales.Delete(ctx, saleID); err != nil {
		t.Fatal(err)
	}
	if n, err := r.buyers.Delete(ctx, buyerID); err != nil || n != 1 {
		t.Fatalf("delete after sale removed: n=%d err=%v", n, err)
	}
}

func TestSaleLifecycle(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	eventID := r.event(t, r.venue(t, "Arena"), "Show", day(2025, 10, 29))
	ticketID := r.standard(t, eventID, 25, nil)
	buyerID := r.buyer(t, "Ann", "ann@example.com")

	if _, err := r.sales.Create(ctx, model.NewSale{SaleDate: model.NewDate(2025, 9, 1), Quantity: 0, TicketID: ticketID, BuyerID: buyerID}); !model.IsValidation(err) {
		t.Fatalf("zero quantity: %v", err)
	}
	if _, err := r.sales.Create(ctx, model.NewSale{SaleDate: model.NewDate(2025, 9, 1), Quantity: 1, TicketID: 999, BuyerID: buyerID}); !model.IsForeignKeyMissing(err) {
		t.Fatalf("unknown ticket: %v", err)
	}

	id := r.sale(t, ticketID, buyerID, 2, day(2025, 9, 1))
	got, err := r.sales.GetByID(ctx, id)
	if err != nil || got.Quantity != 2 || got.SaleDate.String() != "2025-09-01" || got.TicketID != ticketID || got.BuyerID != buyerID {
		t.Fatalf("read back %+v, %v", got, err)
	}

	if n, err := r.sales.Update(ctx, id, model.SalePatch{Quantity: model.Set(3)}); err != nil || n != 1 {
		t.Fatalf("update: n=%d err=%v", n, err)
	}
	if _, err := r.sales.Update(ctx, id, model.SalePatch{Quantity: model.Set(-1)}); !model.IsValidation(err) {
		t.Fatalf("negative quantity: %v", err)
	}
	if _, err := r.sales.Update(ctx, id, model.SalePatch{BuyerID: model.Set(int64(999))}); !model.IsForeignKeyMissing(err) {
		t.Fatalf("unknown buyer: %v", err)
	}
	got, _ = r.sales.GetByID(ctx, id)
	if got.Quantity != 3 || got.BuyerID != buyerID {
		t.Fatalf("after updates %+v", got)
	}
}

func TestSalesReports(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	venueID := r.venue(t, "Arena")
	show := r.event(t, venueID, "Show", day(2025, 10, 29))
	gala := r.event(t, venueID, "Gala", day(2025, 11, 5))
	vip := r.vip(t, show, 150, nil, "Backstage")
	std := r.standard(t, gala, 40, nil)
	ann := r.buyer(t, "Ann", "ann@example.com")
	bob := r.buyer(t, "Bob", "bob@example.com")

	first := r.sale(t, vip, ann, 2, day(2025, 9, 1))
	second := r.sale(t, std, ann, 3, day(2025, 9, 15))
	r.sale(t, vip, bob, 1, day(2025, 8, 20))

	lines, err := r.reports.SalesByBuyer(ctx, ann)
	if err != nil || len(lines) != 2 {
		t.Fatalf("SalesByBuyer = %+v, %v", lines, err)
	}
	if lines[0].SaleID != second || lines[1].SaleID != first {
		t.Fatalf("not newest first: %+v", lines)
	}
	if lines[1].EventName != "Show" || lines[1].Total != 300 || lines[0].Total != 120 {
		t.Fatalf("totals: %+v", lines)
	}
	if got := model.GrandTotal(lines); got != 420 {
		t.Fatalf("grand total = %v", got)
	}

	byEvent, err := r.reports.SalesByEvent(ctx, show)
	if err != nil || len(byEvent) != 2 {
		t.Fatalf("SalesByEvent = %+v, %v", byEvent, err)
	}
	if byEvent[0].BuyerName != "Bob" || byEvent[1].BuyerEmail != "ann@example.com" || byEvent[1].TicketID != vip {
		t.Fatalf("not oldest first: %+v", byEvent)
	}

	empty, err := r.reports.SalesByBuyer(ctx, 999)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("unknown buyer report = %v, %v", empty, err)
	}
}
