package handlers

import (
	"os"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/actionlog"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/config"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/middleware"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	actions *actionlog.Logger
	config  *config.Config
}

func NewAdminHandler(actions *actionlog.Logger, cfg *config.Config) *AdminHandler {
	return &AdminHandler{actions: actions, config: cfg}
}

// DownloadLogs streams the action log file. Admin role is enforced by the
// middleware chain.
func (h *AdminHandler) DownloadLogs(c *gin.Context) {
	logFile := h.config.Log.ActionFile
	if _, err := os.Stat(logFile); err != nil {
		utils.NotFound(c, "not_found")
		return
	}

	if user := middleware.CurrentUser(c); user != nil {
		h.actions.Record(actionlog.EventLogsDownloaded, logrus.Fields{
			"user_id": user.ID,
		})
	}

	c.FileAttachment(logFile, "actions.log")
}
