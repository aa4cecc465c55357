package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/davesbikeparts/partshub/internal/cache"
	"github.com/davesbikeparts/partshub/internal/config"
	"github.com/davesbikeparts/partshub/internal/domain/part"
	"github.com/gin-gonic/gin"
)

type PartsRepository interface {
	Create(ctx context.Context, req part.CreatePartRequest) (part.Part, error)
	List(ctx context.Context) ([]part.Part, error)
}

type PartsHandler struct {
	repo    PartsRepository
	catalog *cache.Catalog
}

func NewPartsHandler(repo PartsRepository, catalog *cache.Catalog) *PartsHandler {
	return &PartsHandler{repo: repo, catalog: catalog}
}

// GET /bikepart — the open catalog. Served from the cache when warm.
func (h *PartsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	if h.catalog != nil {
		if parts, ok := h.catalog.Get(cctx); ok {
			ctx.JSON(http.StatusOK, gin.H{
				"items":  parts,
				"count":  len(parts),
				"cached": true,
			})
			return
		}
	}

	parts, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list bike parts")
		return
	}

	if h.catalog != nil {
		h.catalog.Set(cctx, parts)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": parts,
		"count": len(parts),
	})
}

// POST /bikepart — authenticated.
func (h *PartsHandler) Create(ctx *gin.Context) {
	var req part.CreatePartRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	p, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create bike part")
		return
	}

	if h.catalog != nil {
		h.catalog.Invalidate(cctx)
	}

	ctx.JSON(http.StatusCreated, p)
}
