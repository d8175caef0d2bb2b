package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tikevents/tikevents/internal/config"
	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/handler"
	"github.com/tikevents/tikevents/internal/queue"
	"github.com/tikevents/tikevents/internal/repository"
	"github.com/tikevents/tikevents/internal/router"
	"github.com/tikevents/tikevents/internal/testutil"
	"github.com/tikevents/tikevents/internal/utils"
)

const (
	testSecret   = "handler-test-secret"
	testOperator = "ops@tikevents.test"
	testPassword = "correct horse"
)

// recordingPublisher keeps every published event and optionally fails.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.SaleRecordedEvent
	fail   bool
}

func (p *recordingPublisher) PublishSaleRecorded(_ context.Context, ev queue.SaleRecordedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) published() []queue.SaleRecordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.SaleRecordedEvent(nil), p.events...)
}

type server struct {
	e    *echo.Echo
	db   *database.Provider
	pub  *recordingPublisher
	logs *bytes.Buffer
	tok  string
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testutil.NewProvider(t)
	hash, err := utils.HashPassword(testPassword, 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg := config.Config{
		JWTSecret:            testSecret,
		AccessTTLMin:         5,
		OperatorEmail:        testOperator,
		OperatorPasswordHash: hash,
	}
	logs := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(logs, nil))
	pub := &recordingPublisher{}

	venues := repository.NewVenueRepo(db)
	events := repository.NewEventRepo(db)

	e := echo.New()
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg))
	router.RegisterLayout(e, handler.NewLayoutHandler(venues, repository.NewSectorRepo(db), repository.NewSeatRepo(db)), testSecret)
	router.RegisterEvents(e, handler.NewEventHandler(events, repository.NewArtistRepo(db), repository.NewEventArtistRepo(db), venues), testSecret)
	router.RegisterTickets(e, handler.NewTicketHandler(repository.NewTicketRepo(db), events), testSecret)
	router.RegisterSales(e, handler.NewSalesHandler(repository.NewBuyerRepo(db), repository.NewSaleRepo(db),
		repository.NewReportRepo(db), events, pub, log), testSecret)

	tok, err := utils.NewAccessToken(testSecret, testOperator, utils.RoleOperator, 5)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &server{e: e, db: db, pub: pub, logs: logs, tok: tok.Token}
}

// call performs a request. body may be nil, a string of raw JSON, or any
// value to marshal. Operator requests carry the bearer token.
func (s *server) call(t *testing.T, method, path string, body any, operator bool) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	switch b := body.(type) {
	case nil:
		r = httptest.NewRequest(method, path, nil)
	case string:
		r = httptest.NewRequest(method, path, strings.NewReader(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = httptest.NewRequest(method, path, bytes.NewReader(raw))
	}
	if body != nil {
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if operator {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+s.tok)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, r)
	return rec
}

// write is an operator call that must answer want.
func (s *server) write(t *testing.T, method, path string, body any, want int) *httptest.ResponseRecorder {
	t.Helper()
	rec := s.call(t, method, path, body, true)
	if rec.Code != want {
		t.Fatalf("%s %s: status %d, want %d: %s", method, path, rec.Code, want, rec.Body.String())
	}
	return rec
}

// read is a public GET that must answer want.
func (s *server) read(t *testing.T, path string, want int) *httptest.ResponseRecorder {
	t.Helper()
	rec := s.call(t, http.MethodGet, path, nil, false)
	if rec.Code != want {
		t.Fatalf("GET %s: status %d, want %d: %s", path, rec.Code, want, rec.Body.String())
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

// created posts body and returns the id of the created row.
func (s *server) created(t *testing.T, path string, body any) int64 {
	t.Helper()
	rec := s.write(t, http.MethodPost, path, body, http.StatusCreated)
	out := decode[struct {
		ID int64 `json:"id"`
	}](t, rec)
	if out.ID <= 0 {
		t.Fatalf("POST %s: no id in %s", path, rec.Body.String())
	}
	return out.ID
}

// layout seeds a venue with one sector and one seat and an event there.
func (s *server) layout(t *testing.T) (venueID, seatID, eventID int64) {
	t.Helper()
	venueID = s.created(t, "/v1/venues", map[string]any{"name": "Arena", "capacity": 8000})
	sectorID := s.created(t, "/v1/sectors", map[string]any{"name": "North", "venue_id": venueID})
	seatID = s.created(t, "/v1/seats", map[string]any{"sector_id": sectorID, "row": "A", "number": "1"})
	eventID = s.created(t, "/v1/events", map[string]any{"name": "Opening Night", "date": "2026-05-01", "venue_id": venueID})
	return venueID, seatID, eventID
}
