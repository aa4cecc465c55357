package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateProductRequest struct {
	Name       string `json:"name" binding:"required,min=2"`
	PriceCents int64  `json:"priceCents" binding:"required,gt=0"`
}

func NewFromCreateRequest(req CreateProductRequest) Product {
	return Product{
		ID:         uuid.NewString(),
		Name:       req.Name,
		PriceCents: req.PriceCents,
		CreatedAt:  time.Now().UTC(),
	}
}
