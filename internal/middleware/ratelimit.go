package middleware

import (
	"net/http"
	"time"

	"creatorhub/internal/response"
	"creatorhub/internal/services"
	"creatorhub/pkg/logging"

	"github.com/gin-gonic/gin"
)

// PaymentRateLimit throttles payment submissions per user. One
// submission opens a window during which further submissions are
// rejected. Redis errors fail open; losing the throttle is preferable
// to rejecting valid payments.
func PaymentRateLimit(nonces *services.NonceService, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := MustPrincipal(c)

		limited, err := nonces.CheckRateLimit(c.Request.Context(), principal.UserID)
		if err != nil {
			logging.Errorf("Rate limit check failed for user %d: %v", principal.UserID, err)
			c.Next()
			return
		}
		if limited {
			c.JSON(http.StatusTooManyRequests, response.Error("too many payment submissions, try again shortly"))
			c.Abort()
			return
		}

		if err := nonces.SetRateLimit(c.Request.Context(), principal.UserID, window); err != nil {
			logging.Errorf("Rate limit set failed for user %d: %v", principal.UserID, err)
		}
		c.Next()
	}
}
