package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownJobType = errors.New("unknown job type")
	ErrInvalidPayload = errors.New("invalid job payload")
)

// DecodeBookingReceipt unmarshals a booking.receipt payload and rejects
// anything structurally unusable before the worker touches a provider.
func DecodeBookingReceipt(raw json.RawMessage) (BookingReceiptPayload, error) {
	if len(raw) == 0 {
		return BookingReceiptPayload{}, ErrInvalidPayload
	}

	var p BookingReceiptPayload

	if err := json.Unmarshal(raw, &p); err != nil {
		return BookingReceiptPayload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if p.BookingID == "" || p.OwnerEmail == "" {
		return BookingReceiptPayload{}, ErrInvalidPayload
	}

	return p, nil
}
