package chat

// Role identifies who authored a conversation turn.
type Role string

// RoleUser is the only role recognised verbatim; every other value is
// treated as the assistant.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "ai"
)

// Turn is one chronological exchange unit supplied by the client.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// IsUser reports whether the turn was written by the end user.
func (t Turn) IsUser() bool {
	return t.Role == RoleUser
}
