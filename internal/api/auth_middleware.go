package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextUserKey = "request_user"

// RequestUser is the authenticated principal attached to the gin context.
type RequestUser struct {
	ID    uint
	Email string
	Role  string
}

func (u *RequestUser) IsAdmin() bool      { return u.Role == "admin" }
func (u *RequestUser) IsStoreOwner() bool { return u.Role == "store_owner" }

// CurrentUser returns the authenticated user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*RequestUser, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*RequestUser)
	return user, ok
}

// AuthMiddleware validates the session token and attaches the user to the
// context. The token is read from the session cookie first, then from the
// Authorization header as a Bearer fallback.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := h.sessionToken(c)
		if token == "" {
			Unauthorized(c, "authentication required")
			return
		}

		claims, err := h.AuthManager.ParseToken(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, ErrCodeSessionExpired, "session is invalid or expired")
			return
		}

		c.Set(contextUserKey, &RequestUser{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		})
		c.Next()
	}
}

// RequireRole allows the request through only when the authenticated user
// holds one of the given roles.
func (h *HTTPHandler) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			Unauthorized(c, "authentication required")
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		Forbidden(c, "insufficient permissions for this resource")
	}
}

func (h *HTTPHandler) sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(h.Config.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
