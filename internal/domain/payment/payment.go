package payment

import (
	"time"

	"github.com/google/uuid"
)

// Payment is an append-only record: written once at payment-completion time,
// never updated or deleted.
type Payment struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"bookingId"`
	TransactionID string    `json:"transactionId"`
	AmountCents   int64     `json:"amountCents"`
	OwnerEmail    string    `json:"ownerEmail"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CreatePaymentRequest struct {
	BookingID     string `json:"-"`
	TransactionID string `json:"transactionId" binding:"required"`
	AmountCents   int64  `json:"amountCents" binding:"required,gt=0"`
	OwnerEmail    string `json:"ownerEmail" binding:"omitempty,email"`
}

func NewFromCreateRequest(req CreatePaymentRequest) Payment {
	return Payment{
		ID:            uuid.NewString(),
		BookingID:     req.BookingID,
		TransactionID: req.TransactionID,
		AmountCents:   req.AmountCents,
		OwnerEmail:    req.OwnerEmail,
		CreatedAt:     time.Now().UTC(),
	}
}
