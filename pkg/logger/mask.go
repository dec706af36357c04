package logger

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"strings"
)

// sensitiveParams are query parameters replaced by a short hash in logs.
var sensitiveParams = []string{"token"}

// MaskURL replaces widget tokens in rawURL with a short hash.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	base, query, ok := strings.Cut(rawURL, "?")
	if !ok {
		return rawURL
	}

	parts := strings.Split(query, "&")
	for i, part := range parts {
		key, value, _ := strings.Cut(part, "=")
		if isSensitive(key) && value != "" {
			parts[i] = key + "=" + shortHash(value)
		}
	}
	return base + "?" + strings.Join(parts, "&")
}

func isSensitive(key string) bool {
	if unescaped, err := url.QueryUnescape(key); err == nil {
		key = unescaped
	}
	for _, p := range sensitiveParams {
		if strings.EqualFold(key, p) {
			return true
		}
	}
	return false
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return fmt.Sprintf("masked#%x", sum[:4])
}
