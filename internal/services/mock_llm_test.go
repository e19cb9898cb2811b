package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jwebster45206/poke-arena/pkg/chat"
	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
)

func TestMockLLMService(t *testing.T) {
	mockService := NewMockLLMAPI()
	ctx := context.Background()

	req := NewCompletionRequest(ModeMatching, []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "Hello"},
	})

	resp, err := mockService.Complete(ctx, "key-1", req)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Message != "Mock response" {
		t.Errorf("Expected default mock response, got %q", resp.Message)
	}

	calls := mockService.GetCalls()
	if len(calls) != 1 {
		t.Fatalf("Expected 1 Complete call, got %d", len(calls))
	}
	if calls[0].APIKey != "key-1" || calls[0].Request.Mode != ModeMatching {
		t.Errorf("Unexpected recorded call: %+v", calls[0])
	}

	mockService.SetCompleteResponse("Pika")
	resp, err = mockService.Complete(ctx, "key-1", req)
	if err != nil || resp.Message != "Pika" {
		t.Errorf("Expected configured response, got %v, %v", resp, err)
	}

	boom := errors.New("boom")
	mockService.SetCompleteError(boom)
	if _, err := mockService.Complete(ctx, "key-1", req); !errors.Is(err, boom) {
		t.Errorf("Expected configured error, got %v", err)
	}

	mockService.Reset()
	if len(mockService.GetCalls()) != 0 {
		t.Error("Expected calls to be cleared after Reset")
	}
}

func TestMockLLMService_MissingCredential(t *testing.T) {
	mockService := NewMockLLMAPI()

	_, err := mockService.Complete(context.Background(), "", CompletionRequest{})
	if !arenaerr.IsMissingCredential(err) {
		t.Errorf("Expected missing credential error, got %v", err)
	}
	if len(mockService.GetCalls()) != 0 {
		t.Error("A rejected call must not be recorded")
	}
}

func TestNewCompletionRequest(t *testing.T) {
	tests := []struct {
		mode        Mode
		temperature float32
		jsonObject  bool
	}{
		{ModeGeneration, 0.9, true},
		{ModeMatching, 0.3, false},
		{ModeNarration, 0.7, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			req := NewCompletionRequest(tt.mode, nil)
			if req.Temperature != tt.temperature {
				t.Errorf("Temperature = %v, want %v", req.Temperature, tt.temperature)
			}
			if req.JSONObject != tt.jsonObject {
				t.Errorf("JSONObject = %v, want %v", req.JSONObject, tt.jsonObject)
			}
		})
	}
}
