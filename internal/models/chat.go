package models

// ChatMessage is a single message in an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body accepted by the chat endpoint.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}
