package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/poke-arena/internal/arena"
	"github.com/jwebster45206/poke-arena/internal/services"
	"github.com/jwebster45206/poke-arena/pkg/storage"
)

const generationReply = `{"pokemons": [
	{"Nom": "Pyrolux", "Type": "Feu", "Description": "Un lézard ardent", "Personnalite": "Colérique", "Stats": "PV 80"},
	{"Nom": "Aquarion", "Type": "Eau", "Description": "Un poisson sage", "Personnalite": "Calme", "Stats": "PV 90"},
	{"Nom": "Floravie", "Type": "Plante", "Description": "Une fleur timide", "Personnalite": "Timide", "Stats": "PV 70"}
]}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestArena(t *testing.T) (*arena.Service, *services.MockLLMAPI, *storage.MockStorage) {
	t.Helper()
	llm := services.NewMockLLMAPI()
	store := storage.NewMockStorage()
	return arena.NewService(llm, store, "", testLogger()), llm, store
}

// doRequest sends body (raw when it is a string, JSON-encoded otherwise)
// to h, with apiKey in the credential header when non-empty.
func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}, apiKey string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set(APIKeyHeader, apiKey)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}
