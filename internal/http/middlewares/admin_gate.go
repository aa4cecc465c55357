package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/davesbikeparts/partshub/internal/config"
	"github.com/davesbikeparts/partshub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UserRoleReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// RequireAdmin runs after RequireAuth and re-reads the caller's role from
// the user store on every request. No caching: a demotion takes effect on
// the very next request. A missing user record fails closed (500) instead
// of being treated as a role mismatch.
func (m *AuthMiddleware) RequireAdmin(users UserRoleReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := EmailFromContext(c)

		if !ok || email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthenticated",
					"message": "Missing identity context",
				},
			})
			return
		}

		cctx, cancel := config.WithTimeout(2 * time.Second)

		defer cancel()

		u, err := users.GetByEmail(cctx, email)

		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				// token names a user the store has never seen; fail closed
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":    "internal_error",
						"message": "Could not resolve caller identity",
					},
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":    "internal_error",
					"message": "Could not check caller role",
				},
			})
			return
		}

		if u.Role != user.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Admin role required",
				},
			})
			return
		}

		c.Next()
	}
}
