// Package cache implements ETag/Last-Modified negotiation for read paths.
// It is an optimization only and must run after auth and ownership scoping.
package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// FreshnessSeconds is the max-age hint sent with every fingerprinted
// response.
const FreshnessSeconds = 60

// Fingerprint digests the deterministic JSON serialization of v.
// encoding/json sorts map keys and struct fields keep declaration order,
// so equal results always produce equal fingerprints.
func Fingerprint(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", md5.Sum(data)), nil
}

// NotModified writes the validation headers for etag and, when the client's
// If-None-Match precondition already carries it, short-circuits with an
// empty 304 body and reports true.
func NotModified(c *gin.Context, etag string) bool {
	c.Header("ETag", `"`+etag+`"`)
	c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", FreshnessSeconds))
	c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))

	clientTag := c.GetHeader("If-None-Match")
	clientTag = strings.TrimPrefix(clientTag, "W/")
	clientTag = strings.Trim(clientTag, `"`)

	if clientTag != "" && clientTag == etag {
		c.Status(http.StatusNotModified)
		return true
	}

	return false
}
