package auth

import (
	"net/http"
	"strings"

	dom "github.com/adi-1080/notesapp/internal/domain"

	"github.com/gin-gonic/gin"
)

const contextKeyUser = "current_user"

// CurrentUser returns the account set by RequireAuth. ok is false if no
// authenticated user is in context.
func CurrentUser(c *gin.Context) (dom.User, bool) {
	v, exists := c.Get(contextKeyUser)
	if !exists {
		return dom.User{}, false
	}
	u, ok := v.(dom.User)
	return u, ok
}

// RequireAuth returns a middleware that resolves the Authorization
// bearer token to an account and stores it in context. Missing or
// invalid tokens get 401 before any handler runs.
func RequireAuth(guard *Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		user, err := guard.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Returns "" if the header is absent or not bearer-shaped.
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
