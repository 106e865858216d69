package handlers

import (
	"errors"
	"net/http"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/actionlog"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/config"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/middleware"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/models"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/services"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/utils"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authService *services.AuthService
	actions     *actionlog.Logger
	config      *config.Config
}

func NewAuthHandler(authService *services.AuthService, actions *actionlog.Logger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		actions:     actions,
		config:      cfg,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return
	}

	_, err := h.authService.Register(&req)
	if err != nil {
		var fieldErrors services.FieldErrors
		switch {
		case errors.As(err, &fieldErrors):
			utils.ValidationError(c, fieldErrors)
		case errors.Is(err, services.ErrEmailExists):
			utils.Error(c, http.StatusBadRequest, "email_exists")
		default:
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "register_success", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return
	}

	user, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.Error(c, http.StatusBadRequest, "invalid_credentials")
		} else {
			utils.InternalError(c)
		}
		return
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	token, err := utils.GenerateToken(user.ID, email, user.Role,
		h.config.JWT.Secret, h.config.JWT.ExpireHours)
	if err != nil {
		utils.InternalError(c)
		return
	}

	c.SetCookie(middleware.SessionCookie, token,
		h.config.JWT.ExpireHours*3600, "/", "", false, true)

	utils.SuccessWithMessage(c, "login_success", models.SessionResponse{
		User:     user,
		Token:    token,
		Redirect: "/profile",
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		h.actions.Record(actionlog.EventLogout, logrus.Fields{"user_id": user.ID})
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
