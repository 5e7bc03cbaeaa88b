package middleware

import (
	"net/http"
	"strings"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AuthKey        = "auth"
	ClientIDHeader = "X-Client-ID"
	ClientIDCookie = "bp_client_id"
	clientIDMaxAge = 365 * 24 * 60 * 60
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		send := Send(c)
		if token == "" {
			send(&types.Response{Code: http.StatusUnauthorized, Message: "token not found"})
			return
		}

		user, err := jwt.ValidateToken(token)
		if err != nil {
			send(&types.Response{Code: http.StatusUnauthorized, Message: "invalid token", Error: err})
			return
		}

		c.Set(AuthKey, *user)
		c.Next()
	}
}

// OptionalAuth accepts a bearer token when one is sent and otherwise
// identifies the browser by X-Client-ID or a long-lived cookie, so
// preferences stay per visitor. A bad token is rejected, never downgraded.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader("Authorization"); token != "" {
			user, err := jwt.ValidateToken(token)
			if err != nil {
				Send(c)(&types.Response{Code: http.StatusUnauthorized, Message: "invalid token", Error: err})
				return
			}
			c.Set(AuthKey, *user)
			c.Next()
			return
		}

		id := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if id == "" {
			if cookie, err := c.Cookie(ClientIDCookie); err == nil {
				id = cookie
			}
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientIDCookie, id, clientIDMaxAge, "/", "", false, true)
		}

		c.Set(AuthKey, types.UserWithAuth{ID: "anon-" + id, Anonymous: true})
		c.Next()
	}
}

// GetUser returns the identity set by AuthMiddleware or OptionalAuth.
func GetUser(c *gin.Context) (types.UserWithAuth, bool) {
	v, ok := c.Get(AuthKey)
	if !ok {
		return types.UserWithAuth{}, false
	}
	user, ok := v.(types.UserWithAuth)
	return user, ok
}
