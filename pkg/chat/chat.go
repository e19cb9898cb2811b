package chat

const (
	ChatRoleUser   = "user"      // player input or rendered instruction
	ChatRoleAgent  = "assistant" // model reply
	ChatRoleSystem = "system"    // referee / generator instructions
)

// ChatMessage represents a single chat message in the conversation sent to
// the completion service.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the text returned by the completion service for one call.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
	Model   string `json:"model,omitempty"`
}
