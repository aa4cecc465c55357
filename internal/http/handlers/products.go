package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/davesbikeparts/partshub/internal/config"
	"github.com/davesbikeparts/partshub/internal/domain/product"
	"github.com/gin-gonic/gin"
)

type ProductsRepository interface {
	Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	List(ctx context.Context) ([]product.Product, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
}

type ProductsHandler struct {
	repo ProductsRepository
}

func NewProductsHandler(repo ProductsRepository) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

// POST /product — admin only.
func (h *ProductsHandler) Create(ctx *gin.Context) {
	var req product.CreateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	p, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create product")
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

// GET /product — authenticated.
func (h *ProductsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	items, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list products")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// DELETE /product/:name — deletes by the route's declared identifier.
func (h *ProductsHandler) Delete(ctx *gin.Context) {
	name := ctx.Param("name")

	if name == "" {
		RespondBadRequest(ctx, "product name is required", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	deleted, err := h.repo.DeleteByName(cctx, name)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		RespondInternal(ctx, "Could not delete product")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"deletedCount": deleted,
	})
}
