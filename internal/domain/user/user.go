package user

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrUserNotFound = errors.New("user not found")

// User is keyed by email; there is no separate credential. The role field is
// the single source of authorization truth and is re-read on every
// admin-gated request.
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UpsertUserRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}
