package services

import (
	"errors"
	"sort"
	"strings"
)

// Domain errors. The string values double as i18n message keys.
var (
	ErrEmailExists        = errors.New("email_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNoteNotFound       = errors.New("note_not_found")
	ErrInvalidAvatarType  = errors.New("invalid_avatar_type")
	ErrAvatarTooLarge     = errors.New("avatar_too_large")
)

// FieldErrors maps an offending field to its message key, so every
// violation is reported against the specific field that caused it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for field, key := range e {
		keys = append(keys, field+": "+key)
	}
	sort.Strings(keys)
	return strings.Join(keys, "; ")
}
