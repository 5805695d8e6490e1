package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantErr error
	}{
		{"plain text", "Who are you?", nil},
		{"empty", "", ErrEmptyMessage},
		{"whitespace only", "  \t ", ErrEmptyMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ChatRequest{Message: tt.message, SessionID: "abc"}
			assert.ErrorIs(t, req.Validate(), tt.wantErr)
		})
	}
}

func TestChatRequest_WireFormat(t *testing.T) {
	data, err := json.Marshal(ChatRequest{Message: "hello", SessionID: "s-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hello","session_id":"s-1"}`, string(data))
}

func TestChatResponse_MissingField(t *testing.T) {
	var withField, without ChatResponse
	require.NoError(t, json.Unmarshal([]byte(`{"response":"I am the wizard."}`), &withField))
	require.NoError(t, json.Unmarshal([]byte(`{"other":1}`), &without))

	assert.Equal(t, "I am the wizard.", withField.Text())
	assert.Nil(t, without.Response)
	assert.Equal(t, "", without.Text())
}
