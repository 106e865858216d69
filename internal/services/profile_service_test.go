package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/config"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfileService(t *testing.T) (*ProfileService, *models.User, *config.Config) {
	t.Helper()

	db := newTestDB(t)
	user := createTestUser(t, db, "profile@test.com")

	cfg := &config.Config{}
	cfg.File.UploadPath = t.TempDir()
	cfg.File.MaxAvatarSize = 64
	cfg.File.AllowedImageTypes = []string{"jpg", "png"}

	return NewProfileService(db, cfg, newTestActions(t)), user, cfg
}

func TestProfileService_Update(t *testing.T) {
	svc, user, _ := newTestProfileService(t)

	updated, err := svc.Update(user.ID, &models.ProfileUpdateRequest{
		FirstName: "  Alice ",
		LastName:  "<b>Smith</b>",
		Age:       30,
		About:     "hello",
	})
	require.NoError(t, err)

	got, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.ID, got.ID)
	assert.Equal(t, "Alice", got.FirstName)
	assert.Equal(t, "Smith", got.LastName, "markup must be stripped")
	assert.Equal(t, 30, got.Age)
	assert.Equal(t, "hello", got.About)
}

func TestProfileService_SaveAvatar(t *testing.T) {
	t.Run("stores file and records filename", func(t *testing.T) {
		svc, user, cfg := newTestProfileService(t)

		name, err := svc.SaveAvatar(user.ID, strings.NewReader("imagedata"), "photo.jpg")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, ".jpg"))

		data, err := os.ReadFile(filepath.Join(cfg.File.UploadPath, "avatars", name))
		require.NoError(t, err)
		assert.Equal(t, "imagedata", string(data))

		got, err := svc.Get(user.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Avatar)
		assert.Equal(t, name, *got.Avatar)
	})

	t.Run("replacing removes the previous file", func(t *testing.T) {
		svc, user, cfg := newTestProfileService(t)

		first, err := svc.SaveAvatar(user.ID, strings.NewReader("one"), "a.jpg")
		require.NoError(t, err)
		second, err := svc.SaveAvatar(user.ID, strings.NewReader("two"), "b.png")
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		_, err = os.Stat(filepath.Join(cfg.File.UploadPath, "avatars", first))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("rejects disallowed extension", func(t *testing.T) {
		svc, user, _ := newTestProfileService(t)

		_, err := svc.SaveAvatar(user.ID, strings.NewReader("x"), "script.svg")
		assert.ErrorIs(t, err, ErrInvalidAvatarType)
	})

	t.Run("rejects oversized upload", func(t *testing.T) {
		svc, user, cfg := newTestProfileService(t)

		big := strings.Repeat("x", int(cfg.File.MaxAvatarSize)+1)
		_, err := svc.SaveAvatar(user.ID, strings.NewReader(big), "big.jpg")
		assert.ErrorIs(t, err, ErrAvatarTooLarge)

		// nothing left behind
		entries, err := os.ReadDir(filepath.Join(cfg.File.UploadPath, "avatars"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("exactly at the cap is accepted", func(t *testing.T) {
		svc, user, cfg := newTestProfileService(t)

		exact := strings.Repeat("x", int(cfg.File.MaxAvatarSize))
		_, err := svc.SaveAvatar(user.ID, strings.NewReader(exact), "edge.jpg")
		assert.NoError(t, err)
	})
}

func TestProfileService_DeleteAvatar(t *testing.T) {
	svc, user, cfg := newTestProfileService(t)

	name, err := svc.SaveAvatar(user.ID, strings.NewReader("imagedata"), "photo.jpg")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAvatar(user.ID))

	got, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Avatar)

	_, err = os.Stat(filepath.Join(cfg.File.UploadPath, "avatars", name))
	assert.True(t, os.IsNotExist(err))

	// deleting again is a no-op
	assert.NoError(t, svc.DeleteAvatar(user.ID))
}
