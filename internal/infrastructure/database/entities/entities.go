package entities

// All lists every entity in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&Session{},
		&Conversation{},
		&Message{},
		&Artifact{},
		&ToolResult{},
	}
}
