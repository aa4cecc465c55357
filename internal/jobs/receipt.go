package jobs

import (
	"encoding/json"
	"time"
)

const TypeBookingReceipt = "booking.receipt"

type BookingReceiptPayload struct {
	BookingID     string    `json:"bookingId"`
	PaymentID     string    `json:"paymentId"`
	TransactionID string    `json:"transactionId"`
	OwnerEmail    string    `json:"ownerEmail"`
	PartName      string    `json:"partName"`
	AmountCents   int64     `json:"amountCents"`
	RequestedAt   time.Time `json:"requestedAt"`
}

func (p BookingReceiptPayload) JSON() (json.RawMessage, error) {
	b, err := json.Marshal(p)

	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
