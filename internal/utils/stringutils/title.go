package stringutils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis is appended to text cut by Truncate.
const Ellipsis = "..."

var (
	urlPattern          = regexp.MustCompile(`(?i)(https?://|ftp://|www\.)[^\s]+`)
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	titlePrefixPattern  = regexp.MustCompile(`(?i)^\s*(title|conversation title)\s*:\s*`)
	multiSpacePattern   = regexp.MustCompile(`\s+`)
)

// Truncate keeps the first maxRunes characters of s and appends Ellipsis when anything was cut.
// Counting is done in runes so multi-byte text is never split mid-character.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + Ellipsis
}

// SanitizeTitleContent removes URLs, markdown link targets and stray symbols so the text reads as a title.
func SanitizeTitleContent(content string) string {
	content = urlPattern.ReplaceAllString(content, "")
	content = markdownLinkPattern.ReplaceAllString(content, "$1")

	var result strings.Builder
	for _, r := range content {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) ||
			r == '.' || r == ',' || r == '!' || r == '?' || r == '-' || r == '\'' {
			result.WriteRune(r)
		}
	}

	content = multiSpacePattern.ReplaceAllString(result.String(), " ")
	content = strings.TrimSpace(content)
	return strings.TrimRight(content, " .,!?-'")
}

// CleanModelTitle normalizes a title produced by a language model: first line only,
// no "Title:" prefix, no wrapping quotes or markdown emphasis.
func CleanModelTitle(raw string) string {
	line := strings.TrimSpace(raw)
	if idx := strings.IndexAny(line, "\r\n"); idx >= 0 {
		line = line[:idx]
	}
	line = titlePrefixPattern.ReplaceAllString(line, "")
	line = strings.Trim(line, " \t\"'`*#")
	return multiSpacePattern.ReplaceAllString(line, " ")
}
