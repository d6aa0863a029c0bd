package models

// ChatRequest carries one user turn. APIKey is forwarded to the
// upstream model provider and never persisted. SessionToken is the
// signed token returned by a previous response; omit it to start a new
// conversation.
type ChatRequest struct {
	Message      string `json:"message" binding:"required"`
	APIKey       string `json:"api_key" binding:"required"`
	Model        string `json:"model"`
	SessionToken string `json:"session_token"`
}

type ChatResponse struct {
	Reply        string `json:"reply"`
	SessionToken string `json:"session_token"`
	Model        string `json:"model"`
}

// ChatTurn is one exchange kept in conversation memory.
type ChatTurn struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}
