// Package title derives human readable conversation titles. The deterministic
// fallback needs nothing but the messages; the AI path improves on it when a
// model is reachable and silently falls back when it is not.
package title

import (
	"strings"

	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/utils/stringutils"
)

const (
	// Placeholder is returned when there is no user message to derive a title from.
	Placeholder = "New Conversation"

	// MaxRunes is the length of a fallback title before the ellipsis.
	MaxRunes = 50
)

// GenerateConversationTitle returns the first user message, trimmed and cut to
// MaxRunes characters plus an ellipsis. Without a user message it returns Placeholder.
func GenerateConversationTitle(messages []*conversation.Message) string {
	content, ok := firstUserContent(messages)
	if !ok {
		return Placeholder
	}
	return stringutils.Truncate(content, MaxRunes)
}

func firstUserContent(messages []*conversation.Message) (string, bool) {
	for _, m := range messages {
		if m == nil || m.Role != conversation.RoleUser {
			continue
		}
		content := strings.TrimSpace(m.Content)
		if content != "" {
			return content, true
		}
	}
	return "", false
}
