package model

// Role tags who produced a Turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message in a conversation. Treat it as a value;
// nothing mutates a Turn after it is created.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewTurn creates a Turn.
func NewTurn(role Role, content string) Turn {
	return Turn{Role: role, Content: content}
}
