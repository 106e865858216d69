package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/actionlog"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/config"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/models"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/pkg/validator"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProfileService struct {
	db      *gorm.DB
	cfg     *config.Config
	actions *actionlog.Logger
}

func NewProfileService(db *gorm.DB, cfg *config.Config, actions *actionlog.Logger) *ProfileService {
	return &ProfileService{db: db, cfg: cfg, actions: actions}
}

func (s *ProfileService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *ProfileService) Update(userID uint, req *models.ProfileUpdateRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"first_name": validator.Sanitize(req.FirstName),
		"last_name":  validator.Sanitize(req.LastName),
		"age":        req.Age,
		"about":      validator.Sanitize(req.About),
	}

	diff := logrus.Fields{"user_id": userID}
	if updates["first_name"] != user.FirstName {
		diff["first_name"] = fmt.Sprintf("%q -> %q", user.FirstName, updates["first_name"])
	}
	if updates["last_name"] != user.LastName {
		diff["last_name"] = fmt.Sprintf("%q -> %q", user.LastName, updates["last_name"])
	}
	if req.Age != user.Age {
		diff["age"] = fmt.Sprintf("%d -> %d", user.Age, req.Age)
	}
	if updates["about"] != user.About {
		diff["about_len"] = fmt.Sprintf("%d -> %d", len(user.About), len(updates["about"].(string)))
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.actions.Record(actionlog.EventProfileUpdated, diff)

	return &user, nil
}

// SaveAvatar stores the uploaded image under a generated safe filename and
// points the user's avatar at it. The previous file is removed best-effort.
func (s *ProfileService) SaveAvatar(userID uint, src io.Reader, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	if !s.cfg.IsImageType(ext) {
		return "", ErrInvalidAvatarType
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return "", err
	}

	avatarDir := filepath.Join(s.cfg.File.UploadPath, "avatars")
	if err := os.MkdirAll(avatarDir, 0755); err != nil {
		return "", err
	}

	fileName := uuid.New().String() + ext
	fullPath := filepath.Join(avatarDir, fileName)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// One byte past the cap distinguishes "exactly at the limit" from over.
	written, err := io.Copy(dst, io.LimitReader(src, s.cfg.File.MaxAvatarSize+1))
	if err != nil {
		os.Remove(fullPath)
		return "", err
	}
	if written > s.cfg.File.MaxAvatarSize {
		os.Remove(fullPath)
		return "", ErrAvatarTooLarge
	}

	oldAvatar := user.Avatar
	if err := s.db.Model(&user).Update("avatar", fileName).Error; err != nil {
		os.Remove(fullPath)
		return "", err
	}

	if oldAvatar != nil {
		os.Remove(filepath.Join(avatarDir, *oldAvatar))
	}

	s.actions.Record(actionlog.EventAvatarUploaded, logrus.Fields{
		"user_id": userID,
		"file":    fileName,
	})

	return fileName, nil
}

func (s *ProfileService) DeleteAvatar(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if user.Avatar == nil {
		return nil
	}

	fileName := *user.Avatar
	if err := s.db.Model(&user).Update("avatar", nil).Error; err != nil {
		return err
	}

	os.Remove(filepath.Join(s.cfg.File.UploadPath, "avatars", fileName))

	s.actions.Record(actionlog.EventAvatarDeleted, logrus.Fields{
		"user_id": userID,
		"file":    fileName,
	})

	return nil
}
