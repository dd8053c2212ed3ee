package types

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // RoleSystem carries the fixed assistant instruction.
	RoleUser      MessageRole = "user"      // RoleUser carries the built prompt.
	RoleAssistant MessageRole = "assistant" // RoleAssistant carries the model reply.
)

// Message is a single entry of a chat conversation.
type Message struct {
	Role    MessageRole
	Content string
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) *Message {
	return &Message{Role: RoleAssistant, Content: content}
}

// ModelInfo describes the model a provider sends requests to.
type ModelInfo struct {
	Metadata  map[string]interface{}
	Provider  string
	Name      string
	MaxTokens int
}
