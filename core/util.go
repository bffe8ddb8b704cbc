package core

import (
	"strings"

	"github.com/google/uuid"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NewID returns a new random identifier.
func NewID() string {
	return uuid.New().String()
}

// EnsureID returns `id` cleaned, or a new identifier if it is blank.
func EnsureID(id string) string {
	if id = CleanString(id); id != "" {
		return id
	}
	return NewID()
}
