package middlewares

import "github.com/gin-gonic/gin"

const ctxEmailKey = "auth.email"

// SetEmail attaches the verified identity. Called by RequireAuth; also
// handy for handler tests that bypass the middleware chain.
func SetEmail(c *gin.Context, email string) {
	c.Set(ctxEmailKey, email)
}

// EmailFromContext returns the verified token identity attached by
// RequireAuth, so handlers don't need to know the magic key.
func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
