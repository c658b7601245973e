package log

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// maskedKeys are attribute keys whose values are always masked, compared
// case-insensitively.
var maskedKeys = map[string]struct{}{
	"authorization":       {},
	"proxy-authorization": {},
	"cookie":              {},
	"set-cookie":          {},
	"x-api-key":           {},
	"x-auth-token":        {},
	"api_key":             {},
	"apikey":              {},
	"api-key":             {},
	"session":             {},
	"session_id":          {},
	"sessionid":           {},
	"sid":                 {},
	"secret_key":          {},
	"private_key":         {},
}

// maskedKeyParts mask any key containing them. The bare word "key" is
// not listed because it matches "doc_key" and "primary_key".
var maskedKeyParts = []string{
	"password", "passwd", "secret", "token", "auth", "credential", "private",
}

// secretShapes match values that look like secrets whatever their key.
var secretShapes = []*regexp.Regexp{
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`), // JWT
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	regexp.MustCompile(`^[a-zA-Z0-9]{32,}$`),
	regexp.MustCompile(`^AKIA[0-9A-Z]{16}$`),
	regexp.MustCompile(`(?i)-----BEGIN.*(PRIVATE|SECRET).*KEY-----`),
}

// redact returns the attribute with sensitive content masked. Groups are
// walked recursively.
func redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		masked := make([]slog.Attr, len(members))
		for i, m := range members {
			masked[i] = redact(m)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	if isMaskedKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}
	v := a.Value.String()
	if isSensitiveValue(v) {
		return slog.String(a.Key, MaskValue)
	}
	if masked, ok := redactUserInfo(v); ok {
		return slog.String(a.Key, masked)
	}
	return a
}

// isMaskedKey reports whether values logged under key must be masked.
func isMaskedKey(key string) bool {
	lower := strings.ToLower(key)
	if _, ok := maskedKeys[lower]; ok {
		return true
	}
	return containsSensitiveKeyword(lower)
}

// containsSensitiveKeyword reports whether key contains one of maskedKeyParts.
func containsSensitiveKeyword(key string) bool {
	for _, part := range maskedKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}

// isSensitiveValue reports whether value matches one of secretShapes.
func isSensitiveValue(value string) bool {
	for _, shape := range secretShapes {
		if shape.MatchString(value) {
			return true
		}
	}
	return false
}

// redactUserInfo replaces the user information of a URI with MaskValue,
// keeping scheme, host and path. It reports false when value is not a URI
// or carries no user information.
func redactUserInfo(value string) (string, bool) {
	if !strings.Contains(value, "://") || !strings.Contains(value, "@") {
		return "", false
	}
	u, err := url.Parse(value)
	if err != nil || u.User == nil {
		return "", false
	}
	u.User = nil
	rest := strings.TrimPrefix(u.String(), u.Scheme+"://")
	return u.Scheme + "://" + MaskValue + "@" + rest, true
}
