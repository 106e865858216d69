package models

import (
	"time"

	"gorm.io/gorm"
)

// Email and PasswordHash are nullable: rows created before the auth
// migration have neither.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Email        *string        `json:"email" gorm:"uniqueIndex;size:120"`
	PasswordHash *string        `json:"-" gorm:"size:255"`
	FirstName    string         `json:"first_name" gorm:"size:50"`
	LastName     string         `json:"last_name" gorm:"size:50"`
	Age          int            `json:"age"`
	About        string         `json:"about" gorm:"type:text"`
	Avatar       *string        `json:"avatar" gorm:"size:255"`
	Role         string         `json:"role" gorm:"size:20;default:user"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Notes []Note `json:"notes,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

type RegisterRequest struct {
	Email           string `json:"email" form:"email" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type ProfileUpdateRequest struct {
	FirstName string `json:"first_name" form:"first_name" validate:"max=50"`
	LastName  string `json:"last_name" form:"last_name" validate:"max=50"`
	Age       int    `json:"age" form:"age" validate:"min=0,max=150"`
	About     string `json:"about" form:"about" validate:"max=1000"`
}

type SessionResponse struct {
	User     *User  `json:"user"`
	Token    string `json:"token"`
	Redirect string `json:"redirect"`
}
