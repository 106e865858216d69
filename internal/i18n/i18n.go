// Package i18n is a static string lookup for the two supported locales.
// Message keys double as stable machine-readable error codes.
package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLocale = "ru"
	LocaleCookie  = "locale"
)

var translations = map[string]map[string]string{
	"ru": {
		// Messages
		"login_success":    "Вход выполнен успешно!",
		"register_success": "Регистрация успешна! Теперь войдите в систему.",
		"logout_success":   "Вы вышли из системы.",
		"profile_updated":  "Профиль обновлен!",
		"note_created":     "Заметка создана!",
		"note_updated":     "Заметка обновлена!",
		"note_deleted":     "Заметка удалена!",

		// Errors
		"invalid_email":        "Некорректный формат email",
		"password_too_short":   "Пароль должен содержать минимум 6 символов",
		"passwords_dont_match": "Пароли не совпадают",
		"email_exists":         "Пользователь с таким email уже существует",
		"invalid_credentials":  "Неверный email или пароль",
		"access_denied":        "Доступ запрещен",
		"unauthorized":         "Для доступа требуется авторизация",
		"note_not_found":       "Заметка не найдена",
		"not_found":            "Страница не найдена",
		"title_required":       "Название обязательно",
		"content_required":     "Содержимое обязательно",
		"title_too_long":       "Название не должно превышать 100 символов",
		"content_too_long":     "Содержимое не должно превышать 10000 символов",
		"invalid_avatar_type":  "Недопустимый тип файла аватара",
		"avatar_too_large":     "Файл аватара слишком большой",
		"invalid_request":      "Некорректный запрос",
		"rate_limit_exceeded":  "Слишком много запросов. Попробуйте позже.",
		"internal_error":       "Произошла непредвиденная ошибка. Попробуйте позже.",
	},

	"en": {
		// Messages
		"login_success":    "Login successful!",
		"register_success": "Registration successful! Now log in.",
		"logout_success":   "You have been logged out.",
		"profile_updated":  "Profile updated!",
		"note_created":     "Note created!",
		"note_updated":     "Note updated!",
		"note_deleted":     "Note deleted!",

		// Errors
		"invalid_email":        "Invalid email format",
		"password_too_short":   "Password must be at least 6 characters",
		"passwords_dont_match": "Passwords do not match",
		"email_exists":         "User with this email already exists",
		"invalid_credentials":  "Invalid email or password",
		"access_denied":        "Access denied",
		"unauthorized":         "Authorization required",
		"note_not_found":       "Note not found",
		"not_found":            "Page not found",
		"title_required":       "Title is required",
		"content_required":     "Content is required",
		"title_too_long":       "Title must not exceed 100 characters",
		"content_too_long":     "Content must not exceed 10000 characters",
		"invalid_avatar_type":  "Invalid avatar file type",
		"avatar_too_large":     "Avatar file is too large",
		"invalid_request":      "Bad request",
		"rate_limit_exceeded":  "Too many requests. Try again later.",
		"internal_error":       "An unexpected error occurred. Try again later.",
	},
}

// T returns the translation for key, the key itself when no translation
// exists, falling back to the default locale for unknown locales.
func T(locale, key string) string {
	msgs, ok := translations[locale]
	if !ok {
		msgs = translations[DefaultLocale]
	}
	if msg, ok := msgs[key]; ok {
		return msg
	}
	return key
}

// IsSupported reports whether the locale has a translation table.
func IsSupported(locale string) bool {
	_, ok := translations[locale]
	return ok
}

// Locale resolves the request locale: cookie first, then Accept-Language,
// then the default.
func Locale(c *gin.Context) string {
	if locale, err := c.Cookie(LocaleCookie); err == nil && IsSupported(locale) {
		return locale
	}

	acceptLanguage := strings.ToLower(c.GetHeader("Accept-Language"))
	if strings.Contains(acceptLanguage, "ru") {
		return "ru"
	}
	if strings.Contains(acceptLanguage, "en") {
		return "en"
	}

	return DefaultLocale
}
