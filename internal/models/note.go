package models

import "time"

const (
	NoteStatusActive    = "active"
	NoteStatusCompleted = "completed"
	NoteStatusArchived  = "archived"
)

type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:100;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Status    string    `json:"status" gorm:"size:20;default:active"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// ValidNoteStatus reports whether s is one of the three note states.
func ValidNoteStatus(s string) bool {
	return s == NoteStatusActive || s == NoteStatusCompleted || s == NoteStatusArchived
}

type NoteCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

// Pointer fields so an absent key can be told apart from an empty value.
type NoteUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

type NoteListRequest struct {
	Sort   string `form:"sort"`
	Order  string `form:"order"`
	Status string `form:"status"`
	Search string `form:"search"`
}
