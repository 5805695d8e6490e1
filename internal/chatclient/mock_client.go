package chatclient

import (
	"context"
	"sync"

	"github.com/jwebster45206/wizard-village/pkg/chat"
)

// MockClient is a mock implementation of Client for testing
type MockClient struct {
	SendFunc func(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error)

	// Track calls for testing
	SendCalls []chat.ChatRequest

	mu sync.Mutex // protects all fields above
}

// NewMockClient creates a mock that answers every message with reply.
func NewMockClient(reply string) *MockClient {
	return &MockClient{
		SendFunc: func(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
			return &chat.ChatResponse{Response: &reply}, nil
		},
		SendCalls: make([]chat.ChatRequest, 0),
	}
}

// Send records the request and delegates to SendFunc.
func (m *MockClient) Send(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
	m.mu.Lock()
	m.SendCalls = append(m.SendCalls, req)
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	// Default behavior - empty reply, treated as malformed by callers
	return &chat.ChatResponse{}, nil
}

// Calls returns a copy of the recorded requests.
func (m *MockClient) Calls() []chat.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]chat.ChatRequest, len(m.SendCalls))
	copy(out, m.SendCalls)
	return out
}
