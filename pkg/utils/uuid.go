package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	repeatedDashes  = regexp.MustCompile(`-+`)
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// NewSessionID generates an opaque session identifier for the session cookie
func NewSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SafeFileName turns an arbitrary label (e.g. an invoice number) into a
// string usable in a file name and a Content-Disposition header
func SafeFileName(s string) string {
	s = unsafeFileChars.ReplaceAllString(strings.TrimSpace(s), "-")
	s = repeatedDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-.")
	if s == "" {
		return "unnamed"
	}
	return s
}

// ReceiptFileName returns the download name for a sale's receipt PDF
func ReceiptFileName(invoiceNumber string) string {
	return "Receipt-" + SafeFileName(invoiceNumber) + ".pdf"
}
