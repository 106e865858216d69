package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/actionlog"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/config"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/models"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/ratelimit"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SessionCookie carries the session token for page routes; API clients may
// send it as a Bearer header instead.
const SessionCookie = "session"

// AuthMiddleware requires an authenticated session. API paths get a 401
// envelope, page paths are redirected to /login.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			denyUnauthenticated(c)
			return
		}

		claims, err := utils.ParseToken(token, cfg.JWT.Secret)
		if err != nil {
			denyUnauthenticated(c)
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				denyUnauthenticated(c)
			} else {
				utils.InternalError(c)
				c.Abort()
			}
			return
		}

		c.Set("user", &user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// AdminMiddleware requires the principal's role to be admin. A non-admin
// principal here is a distinct failure from "not authenticated": it is
// recorded as an unauthorized-access event.
func AdminMiddleware(actions *actionlog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			denyUnauthenticated(c)
			return
		}

		u := user.(*models.User)
		if !u.IsAdmin() {
			actions.Record(actionlog.EventUnauthorizedAccess, logrus.Fields{
				"user_id": u.ID,
				"role":    u.Role,
				"path":    c.Request.URL.Path,
				"ip":      ratelimit.ClientIP(c),
			})

			if isAPIPath(c) {
				utils.Forbidden(c, "access_denied")
			} else {
				c.Redirect(http.StatusFound, "/")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the principal resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get("user"); exists {
		return user.(*models.User)
	}
	return nil
}

func denyUnauthenticated(c *gin.Context) {
	if isAPIPath(c) {
		utils.Unauthorized(c, "unauthorized")
	} else {
		c.Redirect(http.StatusFound, "/login")
	}
	c.Abort()
}

func isAPIPath(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}

	return ""
}
