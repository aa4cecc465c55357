package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

// The route gates, exercised end to end through the real router.

func TestGateMatrixIntegration(t *testing.T) {
	router, pool := setupTestRouter(t)
	resetDB(t, pool)

	token := login(t, router, "dave@example.com", "Dave")

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		body           string
		wantStatusCode int
	}{
		{
			name:           "open catalog needs no token",
			method:         http.MethodGet,
			path:           "/bikepart",
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "part insert without token is unauthenticated",
			method:         http.MethodPost,
			path:           "/bikepart",
			body:           `{"name": "Disc Rotor", "priceCents": 3499, "minOrderQty": 1, "availableQty": 40}`,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "part insert with garbage token is forbidden",
			method:         http.MethodPost,
			path:           "/bikepart",
			token:          "garbage",
			body:           `{"name": "Disc Rotor", "priceCents": 3499, "minOrderQty": 1, "availableQty": 40}`,
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "part insert with valid token succeeds",
			method:         http.MethodPost,
			path:           "/bikepart",
			token:          token,
			body:           `{"name": "Disc Rotor", "priceCents": 3499, "minOrderQty": 1, "availableQty": 40}`,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "user list is open",
			method:         http.MethodGet,
			path:           "/user",
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "booking list without token is unauthenticated",
			method:         http.MethodGet,
			path:           "/booking?myEmail=dave@example.com",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "admin promotion by a plain user is forbidden",
			method:         http.MethodPut,
			path:           "/user/admin/dave@example.com",
			token:          token,
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "product insert by a plain user is forbidden",
			method:         http.MethodPost,
			path:           "/product",
			token:          token,
			body:           `{"name": "Chain Lube", "priceCents": 1299}`,
			wantStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, tt.method, tt.path, tt.token, tt.body)

			if w.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestAdminPromotionTakesEffectImmediately(t *testing.T) {
	router, pool := setupTestRouter(t)
	resetDB(t, pool)

	adminToken := login(t, router, "boss@example.com", "Boss")
	makeAdmin(t, pool, "boss@example.com")

	userToken := login(t, router, "dave@example.com", "Dave")

	// the admin promotes dave
	w := doJSON(router, http.MethodPut, "/user/admin/dave@example.com", adminToken, "")

	if w.Code != http.StatusOK {
		t.Fatalf("promotion status = %d; body: %s", w.Code, w.Body.String())
	}

	// dave's existing token now passes the admin gate without re-login
	w = doJSON(router, http.MethodPost, "/product", userToken, `{"name": "Chain Lube", "priceCents": 1299}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("post-promotion product insert status = %d; body: %s", w.Code, w.Body.String())
	}

	// is-admin reflects the change too
	w = doJSON(router, http.MethodGet, "/admin/dave@example.com", userToken, "")

	if w.Code != http.StatusOK {
		t.Fatalf("is-admin status = %d", w.Code)
	}

	var resp struct {
		Admin bool `json:"admin"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal is-admin response: %v", err)
	}

	if !resp.Admin {
		t.Error("is-admin = false after promotion")
	}
}

func TestUpsertLoginIsIdempotent(t *testing.T) {
	router, pool := setupTestRouter(t)
	resetDB(t, pool)

	login(t, router, "dave@example.com", "Dave")
	makeAdmin(t, pool, "dave@example.com")

	// a repeat login updates the profile but never demotes
	token := login(t, router, "dave@example.com", "David")

	w := doJSON(router, http.MethodGet, "/admin/dave@example.com", token, "")

	if w.Code != http.StatusOK {
		t.Fatalf("is-admin status = %d", w.Code)
	}

	var resp struct {
		Admin bool `json:"admin"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal is-admin response: %v", err)
	}

	if !resp.Admin {
		t.Error("repeat login demoted the user")
	}
}
