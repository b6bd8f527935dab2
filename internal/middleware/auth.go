package middleware

import (
	"net/http"
	"strings"

	"creatorhub/internal/response"
	"creatorhub/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Principal is the authenticated caller. It is only ever present in
// the context of requests that passed AuthRequired, so handlers never
// deal with a missing or nullable user.
type Principal struct {
	UserID uint
	Role   string
}

const principalKey = "principal"

// AuthRequired validates the bearer token and stores the typed
// principal in the context.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, response.Error("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, response.Error("invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(jwtSecret, parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.Error("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(principalKey, Principal{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// AuthOptional parses a bearer token when one is presented but lets
// anonymous requests through. Used on public routes that tailor their
// response to the viewer.
func AuthOptional(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				if claims, err := jwt.ParseToken(jwtSecret, parts[1]); err == nil {
					c.Set(principalKey, Principal{UserID: claims.UserID, Role: claims.Role})
				}
			}
		}
		c.Next()
	}
}

// MustPrincipal returns the principal set by AuthRequired. Calling it
// from an unprotected route is a programming error.
func MustPrincipal(c *gin.Context) Principal {
	return c.MustGet(principalKey).(Principal)
}

// PrincipalFrom returns the principal when the request was
// authenticated.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
