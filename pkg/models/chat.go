package models

import "time"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

// ChatTurn is a single exchange. Session history is owned by the caller.
type ChatTurn struct {
	Role      ChatRole       `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type ChatRequest struct {
	Message        string         `json:"message"                  validate:"required"`
	SessionContext map[string]any `json:"sessionContext,omitempty"`
	Language       string         `json:"language,omitempty"`
}

type ChatResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

const DefaultLanguage = "English"
