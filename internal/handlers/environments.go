package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/poke-arena/pkg/creature"
)

type EnvironmentsResponse struct {
	Environments []creature.Environment `json:"environments"`
	Default      creature.Environment   `json:"default"`
}

type EnvironmentHandler struct {
	logger *slog.Logger
}

func NewEnvironmentHandler(logger *slog.Logger) *EnvironmentHandler {
	return &EnvironmentHandler{logger: logger}
}

func (h *EnvironmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, h.logger, http.MethodGet)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, EnvironmentsResponse{
		Environments: creature.Environments(),
		Default:      creature.DefaultEnvironment,
	})
}
