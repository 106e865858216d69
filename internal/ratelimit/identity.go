package ratelimit

import (
	"fmt"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// Identity derives the quota key for a request: "user:<id>" when the auth
// middleware has resolved a principal, otherwise "ip:<addr>". Deterministic
// and side-effect free; always yields a key.
func Identity(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		return fmt.Sprintf("user:%v", userID)
	}
	return "ip:" + ClientIP(c)
}

// ClientIP prefers the first X-Forwarded-For entry, then X-Real-IP, then
// the raw peer address.
func ClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
