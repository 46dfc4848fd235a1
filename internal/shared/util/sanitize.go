package util

import (
	"errors"
	"strings"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// SlugFilename normalizes a model-suggested filename base into a
// filesystem-safe snake_case slug capped at maxLen runes. Returns the
// fallback when nothing usable remains.
func SlugFilename(raw string, maxLen int, fallback string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return fallback
	}

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	// Collapse runs of underscores left behind by replaced characters.
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '_' })
	slug := strings.Join(parts, "_")
	if len(slug) > maxLen {
		slug = slug[:maxLen]
		slug = strings.TrimRight(slug, "_")
	}
	if slug == "" {
		return fallback
	}
	return slug
}
