package middleware

import (
	"math"
	"strconv"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/actionlog"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/ratelimit"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RateLimit enforces the named bucket for the request's identity. Must be
// registered after AuthMiddleware on protected routes so authenticated
// callers are tracked by user id instead of IP.
func RateLimit(limiter *ratelimit.Limiter, bucket string, actions *actionlog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := ratelimit.Identity(c)

		allowed, retryAfter := limiter.Allow(identity, bucket)
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}

			actions.Record(actionlog.EventRateLimited, logrus.Fields{
				"identity": identity,
				"bucket":   bucket,
				"path":     c.Request.URL.Path,
			})

			c.Header("Retry-After", strconv.Itoa(seconds))
			utils.TooManyRequests(c, seconds)
			c.Abort()
			return
		}

		c.Next()
	}
}
