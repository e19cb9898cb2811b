package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/poke-arena/internal/arena"
	"github.com/jwebster45206/poke-arena/internal/logger"
	"github.com/jwebster45206/poke-arena/pkg/creature"
	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
	"github.com/jwebster45206/poke-arena/pkg/prompts"
)

type GenerateRequest struct {
	Count *int   `json:"count,omitempty"`
	Theme string `json:"theme"`
}

type GenerateResponse struct {
	Collection creature.Collection `json:"collection"`
}

type MatchRequest struct {
	Description string `json:"description"`
}

type SessionHandler struct {
	arena  *arena.Service
	logger *slog.Logger
}

func NewSessionHandler(svc *arena.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		arena:  svc,
		logger: logger,
	}
}

// ServeHTTP handles HTTP requests for session operations
// Routes:
// POST /v1/sessions                      - Create a session
// GET /v1/sessions/{id}                  - Read a session
// DELETE /v1/sessions/{id}               - Reset a session
// POST /v1/sessions/{id}/generate        - Generate a new collection
// POST /v1/sessions/{id}/match           - Match a personality description
// GET /v1/sessions/{id}/match/export     - Export the selected match
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, h.logger, http.MethodPost)
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id, err := uuid.Parse(parts[0])
	if err != nil {
		writeError(w, h.logger, arenaerr.InputValidationf("invalid session ID format: %q", parts[0]))
		return
	}
	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}
	log := logger.WithSession(h.logger, id.String())

	switch action {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, log, id)
		case http.MethodDelete:
			h.handleReset(w, r, log, id)
		default:
			writeMethodNotAllowed(w, log, "GET, DELETE")
		}
	case "generate":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, log, http.MethodPost)
			return
		}
		h.handleGenerate(w, r, log, id)
	case "match":
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, log, http.MethodPost)
			return
		}
		h.handleMatch(w, r, log, id)
	case "match/export":
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w, log, http.MethodGet)
			return
		}
		h.handleExport(w, r, log, id)
	default:
		writeError(w, log, arenaerr.NotFoundf("unknown session resource %q", action))
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := h.arena.NewSession(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.Header().Set("Location", "/v1/sessions/"+sess.ID.String())
	writeJSON(w, h.logger, http.StatusCreated, sess)
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	sess, err := h.arena.GetSession(r.Context(), id)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, sess)
}

func (h *SessionHandler) handleReset(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	sess, err := h.arena.Reset(r.Context(), id)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, sess)
}

func (h *SessionHandler) handleGenerate(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	var req GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, log, err)
		return
	}
	count := prompts.DefaultCount
	if req.Count != nil {
		count = *req.Count
	}

	collection, err := h.arena.Generate(r.Context(), id, r.Header.Get(APIKeyHeader), count, req.Theme)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, GenerateResponse{Collection: collection})
}

func (h *SessionHandler) handleMatch(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	var req MatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	result, err := h.arena.Match(r.Context(), id, r.Header.Get(APIKeyHeader), req.Description)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, result)
}

// handleExport writes the exported profile itself as the body, ready to be
// pasted into a battle.
func (h *SessionHandler) handleExport(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	out, err := h.arena.ExportMatch(r.Context(), id)
	if err != nil {
		writeError(w, log, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out)); err != nil {
		log.Error("Failed to write export", "error", err)
	}
}
