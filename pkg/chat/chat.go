package chat

import (
	"errors"
	"strings"
)

// ErrEmptyMessage is returned when a request carries no text.
var ErrEmptyMessage = errors.New("message cannot be empty")

// ChatRequest is the body POSTed to the remote chat endpoint.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"` // stable per scene, see internal/session
}

// ChatResponse is the body the chat endpoint returns. Response is a pointer
// so a missing field can be told apart from an empty one.
type ChatResponse struct {
	Response *string `json:"response"`
}

// Text returns the reply text, or "" when the field was absent.
func (cr *ChatResponse) Text() string {
	if cr == nil || cr.Response == nil {
		return ""
	}
	return *cr.Response
}

func (cr *ChatRequest) Validate() error {
	if strings.TrimSpace(cr.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}
