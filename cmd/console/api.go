package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/poke-arena/internal/arena"
	"github.com/jwebster45206/poke-arena/internal/handlers"
	"github.com/jwebster45206/poke-arena/pkg/creature"
	"github.com/jwebster45206/poke-arena/pkg/state"
)

// APIClient talks to the arena HTTP API.
type APIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewAPIClient(baseURL, apiKey string, client *http.Client) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

// APIError is an error body returned by the API.
type APIError struct {
	Status   int
	Response handlers.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Response.Error == "" {
		return fmt.Sprintf("API returned status %d", e.Status)
	}
	return e.Response.Error
}

// do sends body as JSON and decodes a 2xx reply into out. When out is a
// *string the raw body is stored instead.
func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(handlers.APIKeyHeader, c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, &apiErr.Response); err != nil {
			apiErr.Response.Error = fmt.Sprintf("API returned status %d: %s", resp.StatusCode, string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(data)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *APIClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *APIClient) Environments(ctx context.Context) ([]creature.Environment, error) {
	var resp handlers.EnvironmentsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/environments", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Environments, nil
}

func (c *APIClient) CreateSession(ctx context.Context) (*state.Session, error) {
	var sess state.Session
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func sessionPath(id uuid.UUID, suffix string) string {
	return "/v1/sessions/" + id.String() + suffix
}

func (c *APIClient) ResetSession(ctx context.Context, id uuid.UUID) (*state.Session, error) {
	var sess state.Session
	if err := c.do(ctx, http.MethodDelete, sessionPath(id, ""), nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *APIClient) Generate(ctx context.Context, id uuid.UUID, count int, theme string) (creature.Collection, error) {
	var resp handlers.GenerateResponse
	req := handlers.GenerateRequest{Count: &count, Theme: theme}
	if err := c.do(ctx, http.MethodPost, sessionPath(id, "/generate"), req, &resp); err != nil {
		return nil, err
	}
	return resp.Collection, nil
}

func (c *APIClient) Match(ctx context.Context, id uuid.UUID, description string) (*arena.MatchResult, error) {
	var result arena.MatchResult
	req := handlers.MatchRequest{Description: description}
	if err := c.do(ctx, http.MethodPost, sessionPath(id, "/match"), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *APIClient) ExportMatch(ctx context.Context, id uuid.UUID) (string, error) {
	var out string
	if err := c.do(ctx, http.MethodGet, sessionPath(id, "/match/export"), nil, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (c *APIClient) ValidateProfile(ctx context.Context, label, profile string) (*handlers.ValidateProfileResponse, error) {
	var resp handlers.ValidateProfileResponse
	req := handlers.ValidateProfileRequest{Label: label, Profile: profile}
	if err := c.do(ctx, http.MethodPost, "/v1/profiles/validate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) Battle(ctx context.Context, champion, opponent string, env creature.Environment) (*handlers.BattleResponse, error) {
	var resp handlers.BattleResponse
	req := handlers.BattleRequest{
		Champion:    champion,
		Opponent:    opponent,
		Environment: env.String(),
	}
	if err := c.do(ctx, http.MethodPost, "/v1/battles", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
