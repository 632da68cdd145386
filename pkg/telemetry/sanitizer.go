// Package telemetry renders user content safely for logs and span attributes.
package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// PIILevel defines how much user content may appear in logs.
type PIILevel string

const (
	// PIILevelNone redacts all user content
	PIILevelNone PIILevel = "none"
	// PIILevelHashed replaces detected PII with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull logs content as is
	PIILevelFull PIILevel = "full"
)

const redacted = "[REDACTED]"

// ParsePIILevel maps a config value onto a level. Unknown values become PIILevelHashed.
func ParsePIILevel(raw string) PIILevel {
	switch PIILevel(strings.ToLower(strings.TrimSpace(raw))) {
	case PIILevelNone:
		return PIILevelNone
	case PIILevelFull:
		return PIILevelFull
	default:
		return PIILevelHashed
	}
}

// Sanitizer redacts message content and owner identifiers before they are logged.
type Sanitizer struct {
	level PIILevel
	salt  string

	emailPattern      *regexp.Regexp
	phonePattern      *regexp.Regexp
	creditCardPattern *regexp.Regexp
	ipv4Pattern       *regexp.Regexp
	bearerPattern     *regexp.Regexp
}

// NewSanitizer creates a sanitizer. salt keeps hashes stable within one deployment only.
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	return &Sanitizer{
		level:             level,
		salt:              salt,
		emailPattern:      regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		phonePattern:      regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		creditCardPattern: regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`),
		ipv4Pattern:       regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
		bearerPattern:     regexp.MustCompile(`(?i)bearer\s+[a-z0-9._~+/-]+=*`),
	}
}

// Level returns the configured level.
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// SanitizeContent returns message content as it may be logged.
func (s *Sanitizer) SanitizeContent(input string) string {
	switch s.level {
	case PIILevelNone:
		return redacted
	case PIILevelFull:
		return input
	default:
		return s.hashPII(input)
	}
}

// Preview sanitizes content and cuts it to maxRunes characters.
func (s *Sanitizer) Preview(content string, maxRunes int) string {
	out := s.SanitizeContent(content)
	if maxRunes <= 0 || utf8.RuneCountInString(out) <= maxRunes {
		return out
	}
	return string([]rune(out)[:maxRunes]) + "..."
}

// SanitizeOwnerID renders a user id or client session id.
func (s *Sanitizer) SanitizeOwnerID(id string) string {
	if id == "" {
		return ""
	}
	switch s.level {
	case PIILevelNone:
		return redacted
	case PIILevelFull:
		return id
	default:
		return s.hash(id)
	}
}

func (s *Sanitizer) hashPII(input string) string {
	result := s.bearerPattern.ReplaceAllString(input, "[TOKEN:REDACTED]")

	result = s.emailPattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})

	// Cards before phones, a card number contains phone-shaped runs.
	result = s.creditCardPattern.ReplaceAllString(result, "[CC:REDACTED]")

	result = s.phonePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", s.hash(match))
	})

	result = s.ipv4Pattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[IP:%s]", s.hash(match))
	})

	return result
}

// hash returns the first 8 hex chars of a salted SHA-256.
func (s *Sanitizer) hash(data string) string {
	h := sha256.New()
	h.Write([]byte(data + s.salt))
	return hex.EncodeToString(h.Sum(nil))[:8]
}
