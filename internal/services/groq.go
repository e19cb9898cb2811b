package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jwebster45206/poke-arena/pkg/chat"
	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
)

// GroqService implements LLMService against Groq's OpenAI-compatible
// chat completions API.
type GroqService struct {
	baseURL    string
	modelName  string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure GroqService implements LLMService
var _ LLMService = (*GroqService)(nil)

// NewGroqService creates a new Groq service. Empty values fall back to the
// public endpoint and the default model.
func NewGroqService(baseURL, modelName string, timeout time.Duration, logger *slog.Logger) *GroqService {
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	if modelName == "" {
		modelName = DefaultGroqModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GroqService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		modelName:  modelName,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (g *GroqService) ModelName() string {
	return g.modelName
}

// Complete sends one chat completion request. The API client is built from
// apiKey for this call only.
func (g *GroqService) Complete(ctx context.Context, apiKey string, req CompletionRequest) (*chat.ChatResponse, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, arenaerr.MissingCredential("a Groq API key is required")
	}
	if len(req.Messages) == 0 {
		return nil, arenaerr.Internal("no messages provided")
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = g.baseURL
	cfg.HTTPClient = g.httpClient
	client := openai.NewClientWithConfig(cfg)

	oaReq := openai.ChatCompletionRequest{
		Model:       g.modelName,
		Messages:    toOpenAIMessages(req.Messages),
		Temperature: req.Temperature,
	}
	if req.JSONObject {
		oaReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.Debug("Sending completion request",
		"mode", req.Mode,
		"model", g.modelName,
		"temperature", req.Temperature,
		"json_object", req.JSONObject,
		"message_count", len(req.Messages))

	start := time.Now()
	resp, err := client.CreateChatCompletion(ctx, oaReq)
	duration := time.Since(start)

	if err != nil {
		observeCompletion(req.Mode, statusError, duration)
		g.logger.Error("Completion request failed", "mode", req.Mode, "duration", duration, "error", err)
		return nil, arenaerr.ExternalService(err)
	}
	if len(resp.Choices) == 0 {
		observeCompletion(req.Mode, statusEmpty, duration)
		g.logger.Error("Completion returned no choices", "mode", req.Mode, "duration", duration)
		return nil, arenaerr.ExternalService(errors.New("no choices returned from API"))
	}

	observeCompletion(req.Mode, statusSuccess, duration)
	g.logger.Info("Completion received",
		"mode", req.Mode,
		"duration", duration,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"response_length", len(resp.Choices[0].Message.Content))

	return &chat.ChatResponse{
		Message: resp.Choices[0].Message.Content,
		Model:   resp.Model,
	}, nil
}

func toOpenAIMessages(messages []chat.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case chat.ChatRoleSystem:
			role = openai.ChatMessageRoleSystem
		case chat.ChatRoleAgent:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}
	return out
}
