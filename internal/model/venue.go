package model

// Venue is a place that hosts events. A venue is divided into sectors and
// sectors into seats.
//
// Fields:
//
//	ID       – primary key identifier.
//	Name     – display name, used for ordering.
//	Address  – optional street address.
//	Capacity – total capacity, always > 0.
type Venue struct {
	ID       int64   `db:"id" json:"id"`             // venues.id
	Name     string  `db:"name" json:"name"`         // venues.name
	Address  *string `db:"address" json:"address"`   // venues.address (nullable)
	Capacity int     `db:"capacity" json:"capacity"` // venues.capacity
}

// NewVenue carries the fields required to create a venue.
type NewVenue struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
	Capacity int     `json:"capacity" validate:"gt=0"`
}

// VenuePatch is a sparse update of a venue.
type VenuePatch struct {
	Name     Field[string] `json:"name"`
	Address  Field[string] `json:"address"`
	Capacity Field[int]    `json:"capacity"`
}

// Sector is a named area inside a venue. Names are unique per venue.
type Sector struct {
	ID      int64  `db:"id" json:"id"`             // sectors.id
	Name    string `db:"name" json:"name"`         // sectors.name
	VenueID int64  `db:"venue_id" json:"venue_id"` // sectors.venue_id
}

// NewSector is the input of SectorRepo.Create.
type NewSector struct {
	Name    string `json:"name" validate:"required,max=100"`
	VenueID int64  `json:"venue_id" validate:"gt=0"`
}

// SectorPatch holds the sector columns to change.
type SectorPatch struct {
	Name    Field[string] `json:"name"`
	VenueID Field[int64]  `json:"venue_id"`
}

// Seat is a physical seat identified by its sector, row label and number.
// Deleting a seat keeps the tickets that pointed at it; they become
// general admission.
type Seat struct {
	ID         int64  `db:"id" json:"id"`               // seats.id
	SectorID   int64  `db:"sector_id" json:"sector_id"` // seats.sector_id
	RowLabel   string `db:"row_label" json:"row"`       // seats.row_label, e.g. A, B, AA
	SeatNumber string `db:"seat_number" json:"number"`  // seats.seat_number, free text ("12", "12A")
}

// NewSeat is the input of SeatRepo.Create.
type NewSeat struct {
	SectorID   int64  `json:"sector_id" validate:"gt=0"`
	RowLabel   string `json:"row" validate:"required,max=10"`
	SeatNumber string `json:"number" validate:"required,max=10"`
}

// SeatPatch holds the seat columns to change.
type SeatPatch struct {
	SectorID   Field[int64]  `json:"sector_id"`
	RowLabel   Field[string] `json:"row"`
	SeatNumber Field[string] `json:"number"`
}

// Empty reports whether the patch touches no column.
func (p VenuePatch) Empty() bool {
	return !p.Name.IsSet() && !p.Address.IsSet() && !p.Capacity.IsSet()
}

// Empty reports whether the patch touches no column.
func (p SectorPatch) Empty() bool { return !p.Name.IsSet() && !p.VenueID.IsSet() }

// Empty reports whether the patch touches no column.
func (p SeatPatch) Empty() bool {
	return !p.SectorID.IsSet() && !p.RowLabel.IsSet() && !p.SeatNumber.IsSet()
}
