package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/poke-arena/pkg/creature"
)

type ValidateProfileRequest struct {
	Label   string `json:"label"`
	Profile string `json:"profile"`
}

// ValidateProfileResponse has Valid=false for a blank profile. Malformed
// profiles come back as errors instead.
type ValidateProfileResponse struct {
	Valid bool   `json:"valid"`
	Nom   string `json:"nom,omitempty"`
	Type  string `json:"type,omitempty"`
}

// ProfileHandler checks a pasted creature profile before a battle.
// POST /v1/profiles/validate
type ProfileHandler struct {
	logger *slog.Logger
}

func NewProfileHandler(logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{logger: logger}
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, h.logger, http.MethodPost)
		return
	}

	var req ValidateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	label := req.Label
	if label == "" {
		label = "Profil"
	}

	record, err := creature.ParseProfile(req.Profile, label)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if record == nil {
		writeJSON(w, h.logger, http.StatusOK, ValidateProfileResponse{Valid: false})
		return
	}

	nom, typ := creature.Summary(record)
	writeJSON(w, h.logger, http.StatusOK, ValidateProfileResponse{
		Valid: true,
		Nom:   nom,
		Type:  typ,
	})
}
