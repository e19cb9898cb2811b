package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/poke-arena/internal/arena"
	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
	"github.com/jwebster45206/poke-arena/pkg/state"
)

func createSession(t *testing.T, h http.Handler) uuid.UUID {
	t.Helper()
	rr := doRequest(t, h, http.MethodPost, "/v1/sessions", nil, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	sess := decodeResponse[state.Session](t, rr)
	assert.Equal(t, "/v1/sessions/"+sess.ID.String(), rr.Header().Get("Location"))
	return sess.ID
}

func TestSessionHandler_CreateReadReset(t *testing.T) {
	svc, llm, _ := newTestArena(t)
	handler := NewSessionHandler(svc, testLogger())
	id := createSession(t, handler)
	base := "/v1/sessions/" + id.String()

	llm.SetCompleteResponse(generationReply)
	rr := doRequest(t, handler, http.MethodPost, base+"/generate", GenerateRequest{Theme: "Feu"}, "key")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(t, handler, http.MethodGet, base, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	sess := decodeResponse[state.Session](t, rr)
	assert.Len(t, sess.Collection, 3)

	rr = doRequest(t, handler, http.MethodDelete, base, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	sess = decodeResponse[state.Session](t, rr)
	assert.Empty(t, sess.Collection)
	assert.Nil(t, sess.Match)
}

func TestSessionHandler_Generate(t *testing.T) {
	svc, llm, _ := newTestArena(t)
	handler := NewSessionHandler(svc, testLogger())
	id := createSession(t, handler)
	path := "/v1/sessions/" + id.String() + "/generate"

	t.Run("default count", func(t *testing.T) {
		llm.Reset()
		llm.SetCompleteResponse(generationReply)
		rr := doRequest(t, handler, http.MethodPost, path, map[string]string{}, "key")
		require.Equal(t, http.StatusOK, rr.Code)

		resp := decodeResponse[GenerateResponse](t, rr)
		require.Len(t, resp.Collection, 3)
		assert.Equal(t, "Floravie", resp.Collection[2].Nom)
		assert.Contains(t, llm.GetCalls()[0].Request.Messages[1].Content, "5 Pokémon")
	})

	t.Run("count out of range", func(t *testing.T) {
		count := 11
		rr := doRequest(t, handler, http.MethodPost, path, GenerateRequest{Count: &count}, "key")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse[ErrorResponse](t, rr)
		assert.Equal(t, arenaerr.CodeInputValidation, resp.Code)
	})

	t.Run("missing credential", func(t *testing.T) {
		rr := doRequest(t, handler, http.MethodPost, path, GenerateRequest{}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		resp := decodeResponse[ErrorResponse](t, rr)
		assert.Equal(t, arenaerr.CodeMissingCredential, resp.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		llm.SetCompleteError(arenaerr.ExternalService(errors.New("invalid api key")))
		rr := doRequest(t, handler, http.MethodPost, path, GenerateRequest{}, "bad-key")
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		resp := decodeResponse[ErrorResponse](t, rr)
		assert.Equal(t, arenaerr.CodeExternalService, resp.Code)
		assert.Contains(t, resp.Error, "invalid api key")
	})

	t.Run("unparseable reply", func(t *testing.T) {
		llm.SetCompleteResponse("Voici vos Pokémon !")
		rr := doRequest(t, handler, http.MethodPost, path, GenerateRequest{}, "key")
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		resp := decodeResponse[ErrorResponse](t, rr)
		assert.Equal(t, arenaerr.CodeResponseFormat, resp.Code)
		assert.Equal(t, "Voici vos Pokémon !", resp.Details["raw"])
	})
}

func TestSessionHandler_MatchAndExport(t *testing.T) {
	svc, llm, _ := newTestArena(t)
	handler := NewSessionHandler(svc, testLogger())
	id := createSession(t, handler)
	base := "/v1/sessions/" + id.String()

	rr := doRequest(t, handler, http.MethodPost, base+"/match", MatchRequest{Description: "calme"}, "key")
	assert.Equal(t, http.StatusConflict, rr.Code, "matching before generation should fail")

	llm.SetCompleteResponse(generationReply)
	rr = doRequest(t, handler, http.MethodPost, base+"/generate", GenerateRequest{}, "key")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, handler, http.MethodGet, base+"/match/export", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, handler, http.MethodPost, base+"/match", MatchRequest{Description: " "}, "key")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	llm.SetCompleteResponse("Dracolosse")
	rr = doRequest(t, handler, http.MethodPost, base+"/match", MatchRequest{Description: "calme"}, "key")
	require.Equal(t, http.StatusOK, rr.Code)
	result := decodeResponse[arena.MatchResult](t, rr)
	assert.Nil(t, result.Match)
	assert.NotEmpty(t, result.Warning)

	llm.SetCompleteResponse("Aquarion")
	rr = doRequest(t, handler, http.MethodPost, base+"/match", MatchRequest{Description: "calme"}, "key")
	require.Equal(t, http.StatusOK, rr.Code)
	result = decodeResponse[arena.MatchResult](t, rr)
	require.NotNil(t, result.Match)
	assert.Equal(t, "Aquarion", result.Match.Nom)
	assert.Empty(t, result.Warning)

	rr = doRequest(t, handler, http.MethodGet, base+"/match/export", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, "{\n  \"Nom\": \"Aquarion\",\n  \"Type\": \"Eau\""), body)
	assert.Contains(t, body, "Un poisson sage")
}

func TestSessionHandler_Routing(t *testing.T) {
	svc, _, _ := newTestArena(t)
	handler := NewSessionHandler(svc, testLogger())
	id := uuid.New().String()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"list not supported", http.MethodGet, "/v1/sessions", http.StatusMethodNotAllowed},
		{"invalid id", http.MethodGet, "/v1/sessions/not-a-uuid", http.StatusBadRequest},
		{"unknown session", http.MethodGet, "/v1/sessions/" + id, http.StatusNotFound},
		{"reset unknown session", http.MethodDelete, "/v1/sessions/" + id, http.StatusNotFound},
		{"patch not supported", http.MethodPatch, "/v1/sessions/" + id, http.StatusMethodNotAllowed},
		{"generate via GET", http.MethodGet, "/v1/sessions/" + id + "/generate", http.StatusMethodNotAllowed},
		{"match via GET", http.MethodGet, "/v1/sessions/" + id + "/match", http.StatusMethodNotAllowed},
		{"export via POST", http.MethodPost, "/v1/sessions/" + id + "/match/export", http.StatusMethodNotAllowed},
		{"unknown resource", http.MethodGet, "/v1/sessions/" + id + "/battles", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, handler, tt.method, tt.path, nil, "")
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.NotEmpty(t, decodeResponse[ErrorResponse](t, rr).Error)
		})
	}
}

func TestSessionHandler_StorageFailure(t *testing.T) {
	svc, _, store := newTestArena(t)
	handler := NewSessionHandler(svc, testLogger())
	store.SetSaveError(errors.New("redis: connection refused"))

	rr := doRequest(t, handler, http.MethodPost, "/v1/sessions", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	resp := decodeResponse[ErrorResponse](t, rr)
	assert.Equal(t, arenaerr.CodeInternal, resp.Code)
	assert.NotContains(t, resp.Error, "connection refused", "internal causes must not leak")
}
