package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davesbikeparts/partshub/internal/domain/product"
	"github.com/davesbikeparts/partshub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// Fake repository implementation of the handlers.ProductsRepository interface

type fakeProductsRepo struct {
	createFn func(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	listFn   func(ctx context.Context) ([]product.Product, error)
	deleteFn func(ctx context.Context, name string) (int64, error)
}

func (f *fakeProductsRepo) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}

	return product.NewFromCreateRequest(req), nil
}

func (f *fakeProductsRepo) List(ctx context.Context) ([]product.Product, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}

	return nil, nil
}

func (f *fakeProductsRepo) DeleteByName(ctx context.Context, name string) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, name)
	}

	return 0, product.ErrNotFound
}

func setupProductsRouter(h *handlers.ProductsHandler) *gin.Engine {
	r := gin.New()

	r.GET("/product", h.List)
	r.POST("/product", h.Create)
	r.DELETE("/product/:name", h.Delete)

	return r
}

func TestCreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           `{"name": "Chain Lube", "priceCents": 1299}`,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "missing price",
			body:           `{"name": "Chain Lube"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "negative price",
			body:           `{"name": "Chain Lube", "priceCents": -5}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewProductsHandler(&fakeProductsRepo{})

			r := setupProductsRouter(h)

			req := httptest.NewRequest(http.MethodPost, "/product", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

// Deletion is keyed by the route's name segment and reports how many rows
// went away.

func TestDeleteProductByName(t *testing.T) {
	tests := []struct {
		name           string
		deleteFn       func(ctx context.Context, name string) (int64, error)
		wantStatusCode int
		wantDeleted    int64
	}{
		{
			name: "deletes matching rows",
			deleteFn: func(ctx context.Context, name string) (int64, error) {
				if name != "Chain Lube" {
					return 0, product.ErrNotFound
				}

				return 2, nil
			},
			wantStatusCode: http.StatusOK,
			wantDeleted:    2,
		},
		{
			name: "unknown name",
			deleteFn: func(ctx context.Context, name string) (int64, error) {
				return 0, product.ErrNotFound
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "store failure",
			deleteFn: func(ctx context.Context, name string) (int64, error) {
				return 0, errors.New("connection reset")
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewProductsHandler(&fakeProductsRepo{deleteFn: tt.deleteFn})

			r := setupProductsRouter(h)

			req := httptest.NewRequest(http.MethodDelete, "/product/Chain%20Lube", nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatusCode)
			}

			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var resp struct {
				DeletedCount int64 `json:"deletedCount"`
			}

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}

			if resp.DeletedCount != tt.wantDeleted {
				t.Errorf("deletedCount = %d, want %d", resp.DeletedCount, tt.wantDeleted)
			}
		})
	}
}

func TestListProducts(t *testing.T) {
	repo := &fakeProductsRepo{
		listFn: func(ctx context.Context) ([]product.Product, error) {
			return []product.Product{
				{ID: newUUID(), Name: "Chain Lube", PriceCents: 1299},
				{ID: newUUID(), Name: "Bar Tape", PriceCents: 2199},
			}, nil
		},
	}

	h := handlers.NewProductsHandler(repo)

	r := setupProductsRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/product", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Items []product.Product `json:"items"`
		Count int               `json:"count"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Count != 2 || len(resp.Items) != 2 {
		t.Errorf("count = %d, items = %d, want 2 each", resp.Count, len(resp.Items))
	}
}
