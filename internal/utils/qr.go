package utils

import (
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Edge lengths in pixels of generated pass images.
const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

// ErrQRSize is returned for sizes outside MinQRSize..MaxQRSize.
var ErrQRSize = errors.New("qr size out of range")

// TicketPassRef is the text encoded in a ticket's QR pass. Scanners at
// the gate look the ticket up by these ids.
func TicketPassRef(ticketID, eventID int64, kind string) string {
	return fmt.Sprintf("tikevents:ticket:%d:event:%d:%s", ticketID, eventID, kind)
}

// TicketPassPNG renders ref as a PNG QR code. A zero size means
// DefaultQRSize.
func TicketPassPNG(ref string, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultQRSize
	}
	if !ValidQRSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrQRSize, size)
	}
	png, err := qrcode.Encode(ref, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// ValidQRSize reports whether size lies within MinQRSize..MaxQRSize.
func ValidQRSize(size int) bool {
	return size >= MinQRSize && size <= MaxQRSize
}
