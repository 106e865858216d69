package services

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/actionlog"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/models"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/pkg/validator"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type NoteService struct {
	db      *gorm.DB
	actions *actionlog.Logger
}

func NewNoteService(db *gorm.DB, actions *actionlog.Logger) *NoteService {
	return &NoteService{db: db, actions: actions}
}

var noteSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
}

// List returns the caller's notes. Unrecognized sort/order/status values
// silently fall back to created_at/desc/all instead of failing.
func (s *NoteService) List(userID uint, req *models.NoteListRequest) ([]models.Note, error) {
	sortField := req.Sort
	if !noteSortFields[sortField] {
		sortField = "created_at"
	}

	direction := "DESC"
	if req.Order == "asc" {
		direction = "ASC"
	}

	query := s.db.Model(&models.Note{}).Where("user_id = ?", userID)

	if models.ValidNoteStatus(req.Status) {
		query = query.Where("status = ?", req.Status)
	}

	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("(LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?))", pattern, pattern)
	}

	notes := make([]models.Note, 0)
	if err := query.Order(fmt.Sprintf("%s %s", sortField, direction)).Find(&notes).Error; err != nil {
		return nil, err
	}

	return notes, nil
}

func (s *NoteService) Get(userID, noteID uint) (*models.Note, error) {
	var note models.Note
	if err := s.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) Create(userID uint, req *models.NoteCreateRequest) (*models.Note, error) {
	title := validator.Sanitize(req.Title)
	content := validator.Sanitize(req.Content)

	// Limits are in characters, not bytes: Cyrillic input takes two bytes
	// per character.
	fieldErrors := FieldErrors{}
	if title == "" {
		fieldErrors["title"] = "title_required"
	} else if utf8.RuneCountInString(title) > validator.MaxTitleLength {
		fieldErrors["title"] = "title_too_long"
	}
	if content == "" {
		fieldErrors["content"] = "content_required"
	} else if utf8.RuneCountInString(content) > validator.MaxContentLength {
		fieldErrors["content"] = "content_too_long"
	}
	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	status := req.Status
	if !models.ValidNoteStatus(status) {
		status = models.NoteStatusActive
	}

	note := models.Note{
		UserID:  userID,
		Title:   title,
		Content: content,
		Status:  status,
	}

	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}

	s.actions.Record(actionlog.EventNoteCreated, logrus.Fields{
		"user_id":     userID,
		"note_id":     note.ID,
		"title":       note.Title,
		"content_len": len(note.Content),
		"status":      note.Status,
	})

	return &note, nil
}

// Update changes only the supplied fields; each one is validated
// independently. updated_at is refreshed on every accepted update.
func (s *NoteService) Update(userID, noteID uint, req *models.NoteUpdateRequest) (*models.Note, error) {
	var note models.Note
	if err := s.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	fieldErrors := FieldErrors{}
	diff := logrus.Fields{"user_id": userID, "note_id": note.ID}

	if req.Title != nil {
		title := validator.Sanitize(*req.Title)
		switch {
		case title == "":
			fieldErrors["title"] = "title_required"
		case utf8.RuneCountInString(title) > validator.MaxTitleLength:
			fieldErrors["title"] = "title_too_long"
		case title != note.Title:
			updates["title"] = title
			diff["title"] = fmt.Sprintf("%q -> %q", note.Title, title)
		}
	}

	if req.Content != nil {
		content := validator.Sanitize(*req.Content)
		switch {
		case content == "":
			fieldErrors["content"] = "content_required"
		case utf8.RuneCountInString(content) > validator.MaxContentLength:
			fieldErrors["content"] = "content_too_long"
		case content != note.Content:
			updates["content"] = content
			// content diffs record length change only to keep log entries small
			diff["content_len"] = fmt.Sprintf("%d -> %d", len(note.Content), len(content))
		}
	}

	if req.Status != nil && models.ValidNoteStatus(*req.Status) && *req.Status != note.Status {
		updates["status"] = *req.Status
		diff["status"] = fmt.Sprintf("%s -> %s", note.Status, *req.Status)
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	updates["updated_at"] = time.Now()
	if err := s.db.Model(&note).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(&note, note.ID).Error; err != nil {
		return nil, err
	}

	s.actions.Record(actionlog.EventNoteUpdated, diff)

	return &note, nil
}

func (s *NoteService) Delete(userID, noteID uint) error {
	var note models.Note
	if err := s.db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	result := s.db.Delete(&note)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}

	s.actions.Record(actionlog.EventNoteDeleted, logrus.Fields{
		"user_id":     userID,
		"note_id":     noteID,
		"title":       note.Title,
		"content_len": len(note.Content),
	})

	return nil
}

type NoteStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Archived  int64 `json:"archived"`
}

func (s *NoteService) Stats(userID uint) (*NoteStats, error) {
	var stats NoteStats

	if err := s.db.Model(&models.Note{}).Where("user_id = ?", userID).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	byStatus := map[string]*int64{
		models.NoteStatusActive:    &stats.Active,
		models.NoteStatusCompleted: &stats.Completed,
		models.NoteStatusArchived:  &stats.Archived,
	}
	for status, dst := range byStatus {
		if err := s.db.Model(&models.Note{}).
			Where("user_id = ? AND status = ?", userID, status).
			Count(dst).Error; err != nil {
			return nil, err
		}
	}

	return &stats, nil
}
