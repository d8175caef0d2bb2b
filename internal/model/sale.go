package model

// Buyer purchases tickets. Emails are unique.
type Buyer struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

// NewBuyer is the input of BuyerRepo.Create.
type NewBuyer struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=150"`
}

// BuyerPatch holds the buyer columns to change.
type BuyerPatch struct {
	Name  Field[string] `json:"name"`
	Email Field[string] `json:"email"`
}

// Sale records a buyer purchasing a quantity of one ticket on a day.
// A sale pins both its ticket and its buyer: neither can be deleted while
// the sale exists.
type Sale struct {
	ID       int64 `db:"id" json:"id"`               // sales.id
	SaleDate Date  `db:"sale_date" json:"date"`      // sales.sale_date
	Quantity int   `db:"quantity" json:"quantity"`   // sales.quantity, always > 0
	TicketID int64 `db:"ticket_id" json:"ticket_id"` // sales.ticket_id
	BuyerID  int64 `db:"buyer_id" json:"buyer_id"`   // sales.buyer_id
}

// NewSale is the input of SaleRepo.Create.
type NewSale struct {
	SaleDate Date  `json:"date"`
	Quantity int   `json:"quantity" validate:"gt=0"`
	TicketID int64 `json:"ticket_id" validate:"gt=0"`
	BuyerID  int64 `json:"buyer_id" validate:"gt=0"`
}

// SalePatch holds the sale columns to change.
type SalePatch struct {
	SaleDate Field[Date]  `json:"date"`
	Quantity Field[int]   `json:"quantity"`
	TicketID Field[int64] `json:"ticket_id"`
	BuyerID  Field[int64] `json:"buyer_id"`
}

// BuyerSaleLine is one row of the per-buyer sales report. Total is
// price × quantity computed by the store.
type BuyerSaleLine struct {
	SaleID    int64   `db:"sale_id" json:"sale_id"`
	SaleDate  Date    `db:"sale_date" json:"date"`
	EventName string  `db:"event_name" json:"event_name"`
	Price     float64 `db:"price" json:"price"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Total     float64 `db:"total" json:"total"`
}

// EventSaleLine is one row of the per-event sales report.
type EventSaleLine struct {
	SaleID     int64   `db:"sale_id" json:"sale_id"`
	SaleDate   Date    `db:"sale_date" json:"date"`
	BuyerName  string  `db:"buyer_name" json:"buyer_name"`
	BuyerEmail string  `db:"buyer_email" json:"buyer_email"`
	TicketID   int64   `db:"ticket_id" json:"ticket_id"`
	Price      float64 `db:"price" json:"price"`
	Quantity   int     `db:"quantity" json:"quantity"`
}

// GrandTotal sums the line totals of a buyer report. It is a presentation
// reduction; no total is ever stored.
func GrandTotal(lines []BuyerSaleLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Total
	}
	return sum
}

// Empty reports whether the patch touches no column.
func (p BuyerPatch) Empty() bool { return !p.Name.IsSet() && !p.Email.IsSet() }

// Empty reports whether the patch touches no column.
func (p SalePatch) Empty() bool {
	return !p.SaleDate.IsSet() && !p.Quantity.IsSet() && !p.TicketID.IsSet() && !p.BuyerID.IsSet()
}
