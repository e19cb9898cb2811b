package services

import (
	"context"

	"github.com/jwebster45206/poke-arena/pkg/chat"
)

// Mode identifies which arena action a completion call serves.
type Mode string

const (
	ModeGeneration Mode = "generation"
	ModeMatching   Mode = "matching"
	ModeNarration  Mode = "narration"
)

// Sampling temperatures per mode. Generation favours novelty, matching is
// close to deterministic.
const (
	GenerationTemperature float32 = 0.9
	NarrationTemperature  float32 = 0.7
	MatchingTemperature   float32 = 0.3
)

// TemperatureFor returns the sampling temperature used for mode.
func TemperatureFor(mode Mode) float32 {
	switch mode {
	case ModeGeneration:
		return GenerationTemperature
	case ModeMatching:
		return MatchingTemperature
	default:
		return NarrationTemperature
	}
}

// CompletionRequest is one chat-completion call.
type CompletionRequest struct {
	Mode        Mode
	Messages    []chat.ChatMessage
	Temperature float32
	// JSONObject asks the service to return a single JSON object.
	JSONObject bool
}

// NewCompletionRequest applies the mode's temperature and output mode.
// Only generation requests structured output.
func NewCompletionRequest(mode Mode, messages []chat.ChatMessage) CompletionRequest {
	return CompletionRequest{
		Mode:        mode,
		Messages:    messages,
		Temperature: TemperatureFor(mode),
		JSONObject:  mode == ModeGeneration,
	}
}

// LLMService defines the interface for interacting with the completion API
type LLMService interface {
	// Complete performs a single completion call authenticated with apiKey
	// and returns the raw reply text. There are no retries.
	Complete(ctx context.Context, apiKey string, req CompletionRequest) (*chat.ChatResponse, error)

	// ModelName returns the model identifier sent with every request.
	ModelName() string
}
