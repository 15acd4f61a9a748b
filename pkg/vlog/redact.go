package vlog

import "strings"

// sensitiveHeaders is the set of HTTP header names redacted at DEBUG level
// before a request or response is logged.
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"api-key":       true,
	"x-api-key":     true,
	"token":         true,
}

// isSecretHeader reports whether name should be redacted, also matching any
// header prefixed "secret-" or "token-" case-insensitively.
func isSecretHeader(name string) bool {
	lower := strings.ToLower(name)
	if sensitiveHeaders[lower] {
		return true
	}
	return strings.HasPrefix(lower, "secret-") || strings.HasPrefix(lower, "token-")
}

// RedactHeaders returns a copy of headers with sensitive values replaced by
// "[redacted]", leaving the caller's map untouched. It is pure so it can be
// exercised directly by tests without routing requests through the logger.
func RedactHeaders(headers map[string][]string) map[string][]string {
	out := make(map[string][]string, len(headers))
	for k, v := range headers {
		if isSecretHeader(k) {
			out[k] = []string{"[redacted]"}
			continue
		}
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}
