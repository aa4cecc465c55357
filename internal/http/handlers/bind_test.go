package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davesbikeparts/partshub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type bindTarget struct {
	Name  string `json:"name" binding:"required,min=2"`
	Email string `json:"email" binding:"required,email"`
	Qty   int    `json:"qty" binding:"required,gt=0"`
}

func setupBindRouter() *gin.Engine {
	r := gin.New()

	r.POST("/bind", func(c *gin.Context) {
		var in bindTarget

		if !handlers.BindJSON(c, &in) {
			return
		}

		c.JSON(http.StatusOK, in)
	})

	return r
}

type bindErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			JSON   string                `json:"json"`
			Reason string                `json:"reason"`
			Fields []handlers.FieldError `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
		wantField      string
		wantRule       string
		wantJSONCode   string
	}{
		{
			name:           "valid body",
			body:           `{"name": "Dave", "email": "dave@example.com", "qty": 2}`,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing required field",
			body:           `{"name": "Dave", "qty": 2}`,
			wantStatusCode: http.StatusBadRequest,
			wantField:      "email",
			wantRule:       "required",
		},
		{
			name:           "value under minimum",
			body:           `{"name": "D", "email": "dave@example.com", "qty": 2}`,
			wantStatusCode: http.StatusBadRequest,
			wantField:      "name",
			wantRule:       "min",
		},
		{
			name:           "malformed json",
			body:           `{"name": `,
			wantStatusCode: http.StatusBadRequest,
			wantJSONCode:   "invalid_json_syntax",
		},
		{
			name:           "type mismatch",
			body:           `{"name": "Dave", "email": "dave@example.com", "qty": "two"}`,
			wantStatusCode: http.StatusBadRequest,
			wantJSONCode:   "invalid_json_type",
		},
	}

	r := setupBindRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/bind", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("status = %d, want %d; body: %s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				return
			}

			var resp bindErrorResponse

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal error envelope: %v", err)
			}

			if resp.Error.Code != "invalid_request" {
				t.Errorf("code = %q, want invalid_request", resp.Error.Code)
			}

			if tt.wantJSONCode != "" && resp.Error.Details.JSON != tt.wantJSONCode {
				t.Errorf("json detail = %q, want %q", resp.Error.Details.JSON, tt.wantJSONCode)
			}

			if tt.wantField == "" {
				return
			}

			found := false

			for _, f := range resp.Error.Details.Fields {
				if f.Field == tt.wantField && f.Rule == tt.wantRule {
					found = true
				}
			}

			if !found {
				t.Errorf("no field error %s/%s in %+v", tt.wantField, tt.wantRule, resp.Error.Details.Fields)
			}
		})
	}
}
