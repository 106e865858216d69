package services

import (
	"errors"
	"strings"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/actionlog"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/models"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/utils"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/pkg/validator"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthService struct {
	db      *gorm.DB
	actions *actionlog.Logger
}

func NewAuthService(db *gorm.DB, actions *actionlog.Logger) *AuthService {
	return &AuthService{db: db, actions: actions}
}

func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	fieldErrors := FieldErrors{}
	if !validator.IsValidEmail(email) {
		fieldErrors["email"] = "invalid_email"
	}
	if !validator.IsValidPassword(req.Password) {
		fieldErrors["password"] = "password_too_short"
	} else if req.Password != req.ConfirmPassword {
		fieldErrors["confirm_password"] = "passwords_dont_match"
	}
	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        &email,
		PasswordHash: &hash,
		Role:         "user",
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	s.actions.Record(actionlog.EventRegister, logrus.Fields{
		"user_id": user.ID,
		"email":   email,
	})

	return &user, nil
}

// Login verifies the credentials. Unknown email and wrong password produce
// the same error.
func (s *AuthService) Login(req *models.LoginRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.recordLoginFailed(email)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// Legacy rows may lack a password hash; they cannot log in.
	if user.PasswordHash == nil || !utils.VerifyPassword(req.Password, *user.PasswordHash) {
		s.recordLoginFailed(email)
		return nil, ErrInvalidCredentials
	}

	s.actions.Record(actionlog.EventLogin, logrus.Fields{
		"user_id": user.ID,
		"email":   email,
	})

	return &user, nil
}

func (s *AuthService) recordLoginFailed(email string) {
	s.actions.Record(actionlog.EventLoginFailed, logrus.Fields{"email": email})
}
