package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/poke-arena/internal/arena"
	"github.com/jwebster45206/poke-arena/pkg/creature"
)

type BattleRequest struct {
	Champion    string `json:"champion"`
	Opponent    string `json:"opponent"`
	Environment string `json:"environment"`
}

type BattleResponse struct {
	Narrative   string               `json:"narrative"`
	Winner      string               `json:"winner,omitempty"`
	Environment creature.Environment `json:"environment"`
}

// BattleHandler narrates a battle between two pasted profiles.
// POST /v1/battles
type BattleHandler struct {
	arena  *arena.Service
	logger *slog.Logger
}

func NewBattleHandler(svc *arena.Service, logger *slog.Logger) *BattleHandler {
	return &BattleHandler{
		arena:  svc,
		logger: logger,
	}
}

func (h *BattleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger, http.MethodPost)
		return
	}

	var req BattleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	narrative, err := h.arena.Narrate(r.Context(), r.Header.Get(APIKeyHeader), req.Champion, req.Opponent, req.Environment)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	// Narrate already rejected unknown environments.
	env, _ := creature.ParseEnvironment(req.Environment)
	writeJSON(w, h.logger, http.StatusOK, BattleResponse{
		Narrative:   narrative.Text,
		Winner:      narrative.Winner,
		Environment: env,
	})
}
