package handlers

import (
	"net/http"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/i18n"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/utils"
	"github.com/gin-gonic/gin"
)

type MiscHandler struct{}

func NewMiscHandler() *MiscHandler {
	return &MiscHandler{}
}

func (h *MiscHandler) Home(c *gin.Context) {
	utils.Success(c, gin.H{
		"service": "notes",
		"locale":  i18n.Locale(c),
	})
}

func (h *MiscHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *MiscHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetLocale switches the UI language via the locale cookie.
func (h *MiscHandler) SetLocale(c *gin.Context) {
	locale := c.Param("lang")
	if !i18n.IsSupported(locale) {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return
	}

	c.SetCookie(i18n.LocaleCookie, locale, 365*24*3600, "/", "", false, false)

	if referer := c.GetHeader("Referer"); referer != "" {
		c.Redirect(http.StatusFound, referer)
		return
	}
	utils.Success(c, gin.H{"locale": locale})
}
