package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// ShortCode returns the first 8 hex digits of id, upper-cased.
// It is the human reference printed on booklets and receipts.
func ShortCode(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}
