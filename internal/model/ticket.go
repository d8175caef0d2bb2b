package model

// TicketKind is the discriminant stored on every ticket row. It names the
// one specialization table that holds the ticket's variant part.
type TicketKind string

const (
	KindVIP      TicketKind = "VIP"
	KindStandard TicketKind = "STANDARD"
)

// Valid reports whether k is one of the known kinds.
func (k TicketKind) Valid() bool { return k == KindVIP || k == KindStandard }

// TicketDetail is a ticket projected together with its specialization.
// VIPMarker and StandardMarker come from outer joins against tickets_vip
// and tickets_standard; in a consistent store exactly one of them is set.
type TicketDetail struct {
	ID             int64      `db:"id" json:"id"`
	EventID        int64      `db:"event_id" json:"event_id"`
	Price          float64    `db:"price" json:"price"`
	SeatID         *int64     `db:"seat_id" json:"seat_id"`
	Kind           TicketKind `db:"kind" json:"kind"`
	Benefits       *string    `db:"benefits" json:"benefits"`
	VIPMarker      *int64     `db:"vip_id" json:"-"`
	StandardMarker *int64     `db:"standard_id" json:"-"`
	IsVIP          bool       `db:"-" json:"is_vip"`
	IsStandard     bool       `db:"-" json:"is_standard"`
}

// Resolve derives the boolean markers from the joined columns.
func (t *TicketDetail) Resolve() {
	t.IsVIP = t.VIPMarker != nil
	t.IsStandard = t.StandardMarker != nil
}

// NewVIPTicket creates a ticket with a VIP specialization.
type NewVIPTicket struct {
	EventID  int64   `json:"event_id" validate:"gt=0"`
	Price    float64 `json:"price" validate:"gte=0,lte=99999999.99"`
	SeatID   *int64  `json:"seat_id" validate:"omitempty,gt=0"`
	Benefits *string `json:"benefits" validate:"omitempty,max=255"`
}

// NewStandardTicket creates a ticket with a Standard specialization.
type NewStandardTicket struct {
	EventID int64   `json:"event_id" validate:"gt=0"`
	Price   float64 `json:"price" validate:"gte=0,lte=99999999.99"`
	SeatID  *int64  `json:"seat_id" validate:"omitempty,gt=0"`
}

// TicketPatch touches only the generic ticket row.
type TicketPatch struct {
	EventID Field[int64]   `json:"event_id"`
	Price   Field[float64] `json:"price"`
	SeatID  Field[int64]   `json:"seat_id"`
}

// TicketIntegrity describes a ticket whose specialization rows disagree
// with the exactly-one rule.
type TicketIntegrity struct {
	TicketID     int64      `db:"id" json:"ticket_id"`
	Kind         TicketKind `db:"kind" json:"kind"`
	VIPRows      int        `db:"vip_rows" json:"vip_rows"`
	StandardRows int        `db:"standard_rows" json:"standard_rows"`
}

// Empty reports whether the patch touches no column.
func (p TicketPatch) Empty() bool {
	return !p.EventID.IsSet() && !p.Price.IsSet() && !p.SeatID.IsSet()
}
