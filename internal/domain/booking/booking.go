package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("booking not found")
	ErrAlreadyPaid = errors.New("booking already paid")
)

type Booking struct {
	ID             string    `json:"id"`
	PartID         string    `json:"partId"`
	PartName       string    `json:"partName"`
	OwnerEmail     string    `json:"ownerEmail"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	Paid           bool      `json:"paid"`
	TransactionID  *string   `json:"transactionId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateBookingRequest struct {
	// OwnerEmail is never read from the body; the handler fills it from the
	// verified token identity.
	OwnerEmail     string `json:"-"`
	PartID         string `json:"partId" binding:"required,uuid"`
	PartName       string `json:"partName" binding:"required,min=2"`
	Quantity       int    `json:"quantity" binding:"required,gt=0"`
	UnitPriceCents int64  `json:"unitPriceCents" binding:"required,gt=0"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
}

func NewFromCreateRequest(req CreateBookingRequest) Booking {
	now := time.Now().UTC()

	return Booking{
		ID:             uuid.NewString(),
		PartID:         req.PartID,
		PartName:       req.PartName,
		OwnerEmail:     req.OwnerEmail,
		Quantity:       req.Quantity,
		UnitPriceCents: req.UnitPriceCents,
		Phone:          req.Phone,
		Address:        req.Address,
		Paid:           false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
