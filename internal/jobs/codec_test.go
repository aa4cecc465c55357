package jobs

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDecodeBookingReceiptRoundTrip(t *testing.T) {
	in := BookingReceiptPayload{
		BookingID:     "b-1",
		PaymentID:     "p-1",
		TransactionID: "T1",
		OwnerEmail:    "dave@example.com",
		PartName:      "Carbon Fork",
		AmountCents:   19900,
		RequestedAt:   time.Now().UTC().Truncate(time.Second),
	}

	raw, err := in.JSON()

	if err != nil {
		t.Fatalf("JSON() returned error: %v", err)
	}

	out, err := DecodeBookingReceipt(raw)

	if err != nil {
		t.Fatalf("DecodeBookingReceipt returned error: %v", err)
	}

	if out != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestDecodeBookingReceiptRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  json.RawMessage
	}{
		{"empty", nil},
		{"not json", json.RawMessage(`{{`)},
		{"missing booking id", json.RawMessage(`{"ownerEmail": "dave@example.com"}`)},
		{"missing owner email", json.RawMessage(`{"bookingId": "b-1"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBookingReceipt(tt.raw)

			if !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("err = %v, want ErrInvalidPayload", err)
			}
		})
	}
}
