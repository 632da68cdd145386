// Package idgen mints identifiers for rows whose callers did not supply one.
package idgen

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefixes for generated identifiers.
const (
	PrefixConversation = "conv"
	PrefixMessage      = "msg"
	PrefixToolResult   = "tr"
	PrefixArtifact     = "art"
)

// New returns prefix_<ulid>. ULIDs sort by creation time, so generated ids
// follow the order in which they were minted.
func New(prefix string) string {
	id := strings.ToLower(ulid.Make().String())
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

// Time extracts the mint time from an id produced by New. ok is false for
// caller-supplied ids that are not ULID based.
func Time(id string) (t time.Time, ok bool) {
	raw := id
	if idx := strings.LastIndexByte(id, '_'); idx >= 0 {
		raw = id[idx+1:]
	}
	parsed, err := ulid.ParseStrict(strings.ToUpper(raw))
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(parsed.Time()), true
}
