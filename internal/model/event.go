package model

// Artist performs at events.
type Artist struct {
	ID    int64   `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Genre *string `db:"genre" json:"genre"`
}

// NewArtist is the input of ArtistRepo.Create.
type NewArtist struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Genre *string `json:"genre" validate:"omitempty,max=50"`
}

// ArtistPatch holds the artist columns to change.
type ArtistPatch struct {
	Name  Field[string] `json:"name"`
	Genre Field[string] `json:"genre"`
}

// Event is a dated happening at a venue. Events own their tickets and their
// artist line-up: deleting an event removes both.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – event title.
//	Date        – calendar day of the event.
//	StartTime   – optional start time.
//	Description – optional free text.
//	VenueID     – hosting venue; the venue cannot be deleted while events reference it.
type Event struct {
	ID          int64      `db:"id" json:"id"`                   // events.id
	Name        string     `db:"name" json:"name"`               // events.name
	Date        Date       `db:"event_date" json:"date"`         // events.event_date
	StartTime   *ClockTime `db:"start_time" json:"time"`         // events.start_time (nullable)
	Description *string    `db:"description" json:"description"` // events.description (nullable)
	VenueID     int64      `db:"venue_id" json:"venue_id"`       // events.venue_id
}

// NewEvent is the input of EventRepo.Create.
type NewEvent struct {
	Name        string     `json:"name" validate:"required,max=150"`
	Date        Date       `json:"date"`
	StartTime   *ClockTime `json:"time"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	VenueID     int64      `json:"venue_id" validate:"gt=0"`
}

// EventPatch holds the event columns to change. Null clears the start
// time or the description.
type EventPatch struct {
	Name        Field[string]    `json:"name"`
	Date        Field[Date]      `json:"date"`
	StartTime   Field[ClockTime] `json:"time"`
	Description Field[string]    `json:"description"`
	VenueID     Field[int64]     `json:"venue_id"`
}

// Empty reports whether the patch touches no column.
func (p ArtistPatch) Empty() bool { return !p.Name.IsSet() && !p.Genre.IsSet() }

// Empty reports whether the patch touches no column.
func (p EventPatch) Empty() bool {
	return !p.Name.IsSet() && !p.Date.IsSet() && !p.StartTime.IsSet() &&
		!p.Description.IsSet() && !p.VenueID.IsSet()
}
