package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/ratelimit"
)

// KeyFunc picks the bucket for a request. An empty key skips limiting.
type KeyFunc func(c *gin.Context) string

func ByIP(c *gin.Context) string {
	return c.ClientIP()
}

// GuestKey limits anonymous callers per link and address; signed-in
// callers are not limited.
func GuestKey(param string) KeyFunc {
	return func(c *gin.Context) string {
		if Principal(c) != nil {
			return ""
		}
		return c.Param(param) + "|" + c.ClientIP()
	}
}

// RateLimit fails open when the limiter itself errors.
func RateLimit(l ratelimit.Limiter, key KeyFunc, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			c.Next()
			return
		}

		ok, err := l.Allow(c.Request.Context(), k)
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			httperr.Write(c, http.StatusTooManyRequests, "too_many_requests", httperr.Message("too_many_requests"))
			c.Abort()
			return
		}
		c.Next()
	}
}
