package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/davesbikeparts/partshub/internal/config"
	"github.com/davesbikeparts/partshub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UsersRepository interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Upsert(ctx context.Context, email string, req user.UpsertUserRequest) (user.User, error)
	PromoteToAdmin(ctx context.Context, email string) error
}

// TokenIssuer is what the upsert-login route needs from the token service.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

type UsersHandler struct {
	repo UsersRepository
	jwt  TokenIssuer
}

func NewUsersHandler(repo UsersRepository, jwt TokenIssuer) *UsersHandler {
	return &UsersHandler{repo: repo, jwt: jwt}
}

func validEmailParam(ctx *gin.Context) (string, bool) {
	email := ctx.Param("email")

	if _, err := mail.ParseAddress(email); err != nil {
		RespondBadRequest(ctx, "email must be a valid address", nil)
		return "", false
	}

	return email, true
}

// GET /user
func (h *UsersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	users, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": users,
		"count": len(users),
	})
}

// PUT /user/:email — upsert the profile and issue a fresh identity token.
// Save-profile and login are two logical operations composed by this one
// endpoint; the token issuance sits behind TokenIssuer so login can be
// split out later without touching the store path.
func (h *UsersHandler) Upsert(ctx *gin.Context) {
	email, ok := validEmailParam(ctx)

	if !ok {
		return
	}

	var req user.UpsertUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	u, err := h.repo.Upsert(cctx, email, req)

	if err != nil {
		RespondInternal(ctx, "Could not save user")
		return
	}

	token, err := h.jwt.Issue(u.Email)

	if err != nil {
		RespondInternal(ctx, "Could not issue token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"result": u,
		"token":  token,
	})
}

// PUT /user/admin/:email — admin-gated promotion. The role change takes
// effect on the target's next request; no token re-issue is needed because
// tokens carry no role claim.
func (h *UsersHandler) Promote(ctx *gin.Context) {
	email, ok := validEmailParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	err := h.repo.PromoteToAdmin(cctx, email)

	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not promote user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"email": email,
		"role":  user.RoleAdmin,
	})
}

// GET /admin/:email — authenticated is-admin check.
func (h *UsersHandler) IsAdmin(ctx *gin.Context) {
	email, ok := validEmailParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	u, err := h.repo.GetByEmail(cctx, email)

	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not check role")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"admin": u.Role == user.RoleAdmin,
	})
}
