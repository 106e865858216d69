package utils

import (
	"net/http"

	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/i18n"
	"github.com/Alex-Piletski/Junior-s-QA-Pet-project/internal/models"
	"github.com/gin-gonic/gin"
)

// Message keys are i18n lookup keys; every helper localizes them against
// the request locale before writing the envelope.

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, messageKey string, data interface{}) {
	c.JSON(http.StatusOK, models.Response{
		Code:    http.StatusOK,
		Message: i18n.T(i18n.Locale(c), messageKey),
		Data:    data,
	})
}

func Created(c *gin.Context, messageKey string, data interface{}) {
	c.JSON(http.StatusCreated, models.Response{
		Code:    http.StatusCreated,
		Message: i18n.T(i18n.Locale(c), messageKey),
		Data:    data,
	})
}

func Error(c *gin.Context, code int, messageKey string) {
	c.JSON(code, models.Response{
		Code:    code,
		Message: i18n.T(i18n.Locale(c), messageKey),
		Error:   messageKey,
	})
}

// ValidationError reports per-field violations: fieldErrors maps the
// offending field name to a message key.
func ValidationError(c *gin.Context, fieldErrors map[string]string) {
	locale := i18n.Locale(c)
	localized := make(map[string]string, len(fieldErrors))
	for field, key := range fieldErrors {
		localized[field] = i18n.T(locale, key)
	}

	c.JSON(http.StatusBadRequest, models.Response{
		Code:    http.StatusBadRequest,
		Message: i18n.T(locale, "invalid_request"),
		Error:   "invalid_request",
		Errors:  localized,
	})
}

func NotFound(c *gin.Context, messageKey string) {
	if messageKey == "" {
		messageKey = "not_found"
	}
	Error(c, http.StatusNotFound, messageKey)
}

func Unauthorized(c *gin.Context, messageKey string) {
	if messageKey == "" {
		messageKey = "unauthorized"
	}
	Error(c, http.StatusUnauthorized, messageKey)
}

func Forbidden(c *gin.Context, messageKey string) {
	if messageKey == "" {
		messageKey = "access_denied"
	}
	Error(c, http.StatusForbidden, messageKey)
}

func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal_error")
}

// TooManyRequests writes the structured 429 with a machine-readable
// retry-after hint, distinct from the business error envelope.
func TooManyRequests(c *gin.Context, retryAfter int) {
	c.JSON(http.StatusTooManyRequests, models.RateLimitResponse{
		Error:      "rate_limit_exceeded",
		Message:    i18n.T(i18n.Locale(c), "rate_limit_exceeded"),
		RetryAfter: retryAfter,
	})
}
