package part

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("part not found")

type Part struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	PriceCents   int64     `json:"priceCents"`
	MinOrderQty  int       `json:"minOrderQty"`
	AvailableQty int       `json:"availableQty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreatePartRequest struct {
	Name         string `json:"name" binding:"required,min=2"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"priceCents" binding:"required,gt=0"`
	MinOrderQty  int    `json:"minOrderQty" binding:"required,gt=0"`
	AvailableQty int    `json:"availableQty" binding:"required,gte=0"`
	ImageURL     string `json:"imageUrl" binding:"omitempty,url"`
}

// A factory to build a Part from the incoming DTO

func NewFromCreateRequest(req CreatePartRequest) Part {
	now := time.Now().UTC()

	return Part{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		MinOrderQty:  req.MinOrderQty,
		AvailableQty: req.AvailableQty,
		ImageURL:     req.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
