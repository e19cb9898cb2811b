package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/poke-arena/pkg/chat"
	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
)

// MockLLMAPI is a mock implementation of LLMService for testing
type MockLLMAPI struct {
	CompleteFunc func(ctx context.Context, apiKey string, req CompletionRequest) (*chat.ChatResponse, error)

	// Track calls for testing
	CompleteCalls []CompleteCall

	mu sync.Mutex // protects all fields above
}

type CompleteCall struct {
	APIKey  string
	Request CompletionRequest
}

var _ LLMService = (*MockLLMAPI)(nil)

// NewMockLLMAPI creates a new mock LLM service
func NewMockLLMAPI() *MockLLMAPI {
	return &MockLLMAPI{
		CompleteCalls: make([]CompleteCall, 0),
	}
}

func (m *MockLLMAPI) ModelName() string {
	return "mock-model"
}

// Complete records the call and delegates to CompleteFunc. Like the real
// service it rejects a blank credential before doing anything else.
func (m *MockLLMAPI) Complete(ctx context.Context, apiKey string, req CompletionRequest) (*chat.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if apiKey == "" {
		return nil, arenaerr.MissingCredential("a Groq API key is required")
	}

	m.CompleteCalls = append(m.CompleteCalls, CompleteCall{APIKey: apiKey, Request: req})

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, apiKey, req)
	}

	return &chat.ChatResponse{
		Message: "Mock response",
	}, nil
}

// SetCompleteError sets up the mock to return an error on Complete
func (m *MockLLMAPI) SetCompleteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteFunc = func(ctx context.Context, apiKey string, req CompletionRequest) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// SetCompleteResponse sets up the mock to return a fixed reply
func (m *MockLLMAPI) SetCompleteResponse(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteFunc = func(ctx context.Context, apiKey string, req CompletionRequest) (*chat.ChatResponse, error) {
		return &chat.ChatResponse{Message: message}, nil
	}
}

// Reset clears all call tracking
func (m *MockLLMAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteCalls = make([]CompleteCall, 0)
}

// GetCalls returns a copy of the call tracking data in a thread-safe way
func (m *MockLLMAPI) GetCalls() []CompleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]CompleteCall, len(m.CompleteCalls))
	copy(calls, m.CompleteCalls)
	return calls
}
