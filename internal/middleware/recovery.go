package middleware

import (
	"runtime/debug"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware catches panics anywhere below it, logs full detail
// server-side and answers with a generic 500. Internals never reach the
// client.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithFields(logrus.Fields{
					"panic":  r,
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
					"stack":  string(debug.Stack()),
				}).Error("panic recovered")

				utils.InternalError(c)
				c.Abort()
			}
		}()

		c.Next()
	}
}
