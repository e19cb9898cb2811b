package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
)

// APIKeyHeader lets a caller supply their own Groq credential per request.
const APIKeyHeader = "X-Groq-API-Key"

type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    arenaerr.Code          `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError converts err into a JSON error body with the status for its
// code. Causes of internal errors are logged, not returned.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	code := arenaerr.GetCode(err)
	resp := ErrorResponse{Code: code}

	var e *arenaerr.Error
	switch {
	case errors.As(err, &e) && code != arenaerr.CodeInternal:
		resp.Error = e.Message
		if e.Cause != nil {
			resp.Error += ": " + e.Cause.Error()
		}
		resp.Details = e.Meta
	case errors.As(err, &e):
		resp.Error = e.Message
	default:
		resp.Error = "internal server error"
	}

	if code == arenaerr.CodeInternal {
		log.Error("Request failed", "error", err)
	} else {
		log.Warn("Request rejected", "code", code, "error", err)
	}
	writeJSON(w, log, code.HTTPStatus(), resp)
}

func writeMethodNotAllowed(w http.ResponseWriter, log *slog.Logger, allowed string) {
	w.Header().Set("Allow", allowed)
	writeJSON(w, log, http.StatusMethodNotAllowed, ErrorResponse{
		Error: "Method not allowed. Supported methods: " + allowed,
		Code:  arenaerr.CodeInputValidation,
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return arenaerr.WrapWithCode(err, arenaerr.CodeInputValidation, "invalid request body")
	}
	return nil
}
