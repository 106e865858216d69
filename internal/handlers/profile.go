package handlers

import (
	"errors"
	"net/http"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/models"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/services"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/utils"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	noteService    *services.NoteService
}

func NewProfileHandler(profileService *services.ProfileService, noteService *services.NoteService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		noteService:    noteService,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, _ := c.Get("user_id")

	user, err := h.profileService.Get(userID.(uint))
	if err != nil {
		utils.InternalError(c)
		return
	}

	stats, err := h.noteService.Stats(userID.(uint))
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{
		"user":  user,
		"stats": stats,
	})
}

// UpdateProfile handles the profile form post, optionally carrying an
// avatar file in the multipart body.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.ProfileUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return
	}

	if _, err := h.profileService.Update(userID.(uint), &req); err != nil {
		utils.InternalError(c)
		return
	}

	if fileHeader, err := c.FormFile("avatar"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			utils.InternalError(c)
			return
		}
		defer src.Close()

		if _, err := h.profileService.SaveAvatar(userID.(uint), src, fileHeader.Filename); err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAvatarType):
				utils.Error(c, http.StatusBadRequest, "invalid_avatar_type")
			case errors.Is(err, services.ErrAvatarTooLarge):
				utils.Error(c, http.StatusRequestEntityTooLarge, "avatar_too_large")
			default:
				utils.InternalError(c)
			}
			return
		}
	}

	c.Redirect(http.StatusFound, "/profile")
}

func (h *ProfileHandler) DeleteAvatar(c *gin.Context) {
	userID, _ := c.Get("user_id")

	if err := h.profileService.DeleteAvatar(userID.(uint)); err != nil {
		utils.InternalError(c)
		return
	}

	c.Redirect(http.StatusFound, "/profile")
}
