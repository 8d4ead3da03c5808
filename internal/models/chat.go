package models

// ChatTurn is a single message in a conversation.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// SendChatRequest is the payload sent to the chat endpoint.
type SendChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the assistant's answer to a single message. Fallback is true
// when the reply is the canned connectivity message rather than a genuine
// generator response; fallback replies are never persisted to the transcript.
type ChatReply struct {
	Reply     string `json:"reply"`
	Fallback  bool   `json:"fallback"`
	Generator string `json:"generator"`
}

// ChatHistoryResponse returns the persisted transcript plus the greeting the
// client shows before any turns exist.
type ChatHistoryResponse struct {
	Greeting string     `json:"greeting"`
	Turns    []ChatTurn `json:"turns"`
}
