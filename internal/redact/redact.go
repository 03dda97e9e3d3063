// Package redact scrubs sensitive values from strings before they reach
// logs or error responses: connection strings, credentials, file paths
// and raw SQL fragments that tend to ride along inside wrapped errors.
package redact

import "regexp"

// RedactionPlaceholder replaces any matched sensitive fragment.
const RedactionPlaceholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Database connection strings with inline credentials
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`),

	// Credentials, API keys and tokens in key=value or key: value form
	regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`),
	regexp.MustCompile(`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),

	// Absolute file paths
	regexp.MustCompile(`(/[\w.-]+){2,}`),

	// SQL fragments leaking schema details
	regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)\s[\s\w,*()='"$]+\s(FROM|INTO|SET)\s[\s\w,*()='"$]+`),
}

// String returns s with all sensitive fragments replaced.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, RedactionPlaceholder)
	}
	return s
}

// Error returns the redacted message of err, or "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
