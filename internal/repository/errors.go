// Package repository owns every statement the application sends to the
// store. Each repository covers one table (or one small join) and returns
// fresh value snapshots; nothing is cached between calls.
//
// Store-side rule violations come back as *model.ConstraintViolation,
// pre-statement checks as *model.ValidationError, and absent rows as one of
// the sentinels below, all of which wrap model.ErrNotFound.
package repository

import (
	"fmt"

	"github.com/tikevents/tikevents/internal/model"
)

var (
	ErrVenueNotFound  = fmt.Errorf("venue %w", model.ErrNotFound)
	ErrSectorNotFound = fmt.Errorf("sector %w", model.ErrNotFound)
	ErrSeatNotFound   = fmt.Errorf("seat %w", model.ErrNotFound)
	ErrArtistNotFound = fmt.Errorf("artist %w", model.ErrNotFound)
	ErrEventNotFound  = fmt.Errorf("event %w", model.ErrNotFound)
	ErrTicketNotFound = fmt.Errorf("ticket %w", model.ErrNotFound)
	ErrBuyerNotFound  = fmt.Errorf("buyer %w", model.ErrNotFound)
	ErrSaleNotFound   = fmt.Errorf("sale %w", model.ErrNotFound)
)
