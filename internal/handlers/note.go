package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/cache"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/models"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/services"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/utils"
	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// GetNotes lists the caller's notes. The response is fingerprinted after
// ownership scoping so a matching If-None-Match precondition short-circuits
// with an empty 304.
func (h *NoteHandler) GetNotes(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.NoteListRequest
	// Unrecognized values fall back to defaults inside the service, so a
	// bind failure here only means a malformed query string.
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return
	}

	notes, err := h.noteService.List(userID.(uint), &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	etag, err := cache.Fingerprint(notes)
	if err != nil {
		utils.InternalError(c)
		return
	}
	if cache.NotModified(c, etag) {
		return
	}

	utils.Success(c, notes)
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.NoteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return
	}

	note, err := h.noteService.Create(userID.(uint), &req)
	if err != nil {
		var fieldErrors services.FieldErrors
		if errors.As(err, &fieldErrors) {
			utils.ValidationError(c, fieldErrors)
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.Created(c, "note_created", note)
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, _ := c.Get("user_id")

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	var req models.NoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return
	}

	note, err := h.noteService.Update(userID.(uint), noteID, &req)
	if err != nil {
		var fieldErrors services.FieldErrors
		switch {
		case errors.As(err, &fieldErrors):
			utils.ValidationError(c, fieldErrors)
		case errors.Is(err, services.ErrNoteNotFound):
			utils.NotFound(c, "note_not_found")
		default:
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "note_updated", note)
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, _ := c.Get("user_id")

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	if err := h.noteService.Delete(userID.(uint), noteID); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			utils.NotFound(c, "note_not_found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	utils.SuccessWithMessage(c, "note_deleted", nil)
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	userID, _ := c.Get("user_id")

	noteID, ok := parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.noteService.Get(userID.(uint), noteID)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			utils.NotFound(c, "note_not_found")
		} else {
			utils.InternalError(c)
		}
		return
	}

	etag, err := cache.Fingerprint(note)
	if err != nil {
		utils.InternalError(c)
		return
	}
	if cache.NotModified(c, etag) {
		return
	}

	utils.Success(c, note)
}

func parseNoteID(c *gin.Context) (uint, bool) {
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid_request")
		return 0, false
	}
	return uint(noteID), true
}
