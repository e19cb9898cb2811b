package arena

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/poke-arena/internal/services"
	"github.com/jwebster45206/poke-arena/pkg/chat"
	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
	"github.com/jwebster45206/poke-arena/pkg/storage"
)

const generationReply = `{"pokemons": [
	{"Nom": "Pyrolux", "Type": "Feu", "Description": "Un lézard ardent", "Personnalite": "Colérique", "Stats": "PV 80"},
	{"Nom": "Aquarion", "Type": "Eau", "Description": "Un poisson sage", "Personnalite": "Calme", "Stats": "PV 90"},
	{"Nom": "Floravie", "Type": "Plante", "Description": "Une fleur timide", "Personnalite": "Timide", "Stats": "PV 70"}
]}`

const championProfile = `{"Nom": "Pyrolux", "Type": "Feu"}`
const opponentProfile = `{"Nom": "Aquarion", "Type": "Eau"}`

func newTestService(t *testing.T, defaultKey string) (*Service, *services.MockLLMAPI, *storage.MockStorage) {
	t.Helper()
	llm := services.NewMockLLMAPI()
	store := storage.NewMockStorage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(llm, store, defaultKey, logger), llm, store
}

func newGeneratedSession(t *testing.T, svc *Service, llm *services.MockLLMAPI) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	sess, err := svc.NewSession(ctx)
	require.NoError(t, err)

	llm.SetCompleteResponse(generationReply)
	_, err = svc.Generate(ctx, sess.ID, "key", 3, "")
	require.NoError(t, err)
	llm.Reset()
	return sess.ID
}

func TestService_NewAndGetSession(t *testing.T) {
	svc, _, store := newTestService(t, "")
	ctx := context.Background()

	sess, err := svc.NewSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Count())

	loaded, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Empty(t, loaded.Collection)

	_, err = svc.GetSession(ctx, uuid.New())
	assert.True(t, arenaerr.IsNotFound(err))
}

func TestService_NewSession_StorageFailure(t *testing.T) {
	svc, _, store := newTestService(t, "")
	store.SetSaveError(errors.New("redis down"))

	_, err := svc.NewSession(context.Background())
	require.Error(t, err)
	assert.Equal(t, arenaerr.CodeInternal, arenaerr.GetCode(err))
}

func TestService_APIKey(t *testing.T) {
	svc, _, _ := newTestService(t, " server-key ")
	assert.Equal(t, "caller", svc.APIKey("  caller "))
	assert.Equal(t, "server-key", svc.APIKey(""))

	noDefault, _, _ := newTestService(t, "")
	assert.Equal(t, "", noDefault.APIKey("   "))
}

func TestService_Generate(t *testing.T) {
	svc, llm, _ := newTestService(t, "")
	ctx := context.Background()
	sess, err := svc.NewSession(ctx)
	require.NoError(t, err)

	llm.SetCompleteResponse(generationReply)
	collection, err := svc.Generate(ctx, sess.ID, "key", 3, "Feu")
	require.NoError(t, err)
	require.Len(t, collection, 3)
	assert.Equal(t, "Pyrolux", collection[0].Nom)

	calls := llm.GetCalls()
	require.Len(t, calls, 1)
	req := calls[0].Request
	assert.Equal(t, services.ModeGeneration, req.Mode)
	assert.True(t, req.JSONObject)
	assert.Equal(t, services.GenerationTemperature, req.Temperature)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, chat.ChatRoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[1].Content, "3 Pokémon")
	assert.Contains(t, req.Messages[1].Content, "Feu")

	loaded, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, collection, loaded.Collection)
}

func TestService_Generate_CountOutOfRange(t *testing.T) {
	svc, llm, _ := newTestService(t, "")
	ctx := context.Background()
	sess, err := svc.NewSession(ctx)
	require.NoError(t, err)

	for _, count := range []int{2, 11} {
		_, err := svc.Generate(ctx, sess.ID, "key", count, "")
		assert.True(t, arenaerr.IsInputValidation(err), "count %d", count)
	}
	assert.Empty(t, llm.GetCalls(), "no call should be made for an invalid count")
}

func TestService_Generate_FailureKeepsCollection(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		setup   func(*services.MockLLMAPI)
		checkFn func(error) bool
	}{
		{
			name:    "missing credential",
			apiKey:  "",
			setup:   func(m *services.MockLLMAPI) {},
			checkFn: arenaerr.IsMissingCredential,
		},
		{
			name:   "service failure",
			apiKey: "key",
			setup: func(m *services.MockLLMAPI) {
				m.SetCompleteError(arenaerr.ExternalService(errors.New("rate limited")))
			},
			checkFn: arenaerr.IsExternalService,
		},
		{
			name:   "prose instead of json",
			apiKey: "key",
			setup: func(m *services.MockLLMAPI) {
				m.SetCompleteResponse("Voici trois Pokémon : Pyrolux, Aquarion, Floravie")
			},
			checkFn: arenaerr.IsResponseFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, llm, _ := newTestService(t, "")
			ctx := context.Background()
			id := newGeneratedSession(t, svc, llm)

			tt.setup(llm)
			collection, err := svc.Generate(ctx, id, tt.apiKey, 5, "")
			require.Error(t, err)
			assert.True(t, tt.checkFn(err), "unexpected error: %v", err)
			assert.Nil(t, collection)

			loaded, err := svc.GetSession(ctx, id)
			require.NoError(t, err)
			assert.Len(t, loaded.Collection, 3, "failed generation must keep the previous collection")
		})
	}
}

func TestService_Generate_UsesDefaultKey(t *testing.T) {
	svc, llm, _ := newTestService(t, "server-key")
	ctx := context.Background()
	sess, err := svc.NewSession(ctx)
	require.NoError(t, err)

	llm.SetCompleteResponse(generationReply)
	_, err = svc.Generate(ctx, sess.ID, "", 3, "")
	require.NoError(t, err)
	assert.Equal(t, "server-key", llm.GetCalls()[0].APIKey)
}

func TestService_Generate_UnknownSession(t *testing.T) {
	svc, llm, _ := newTestService(t, "")

	_, err := svc.Generate(context.Background(), uuid.New(), "key", 3, "")
	assert.True(t, arenaerr.IsNotFound(err))
	assert.Empty(t, llm.GetCalls())
}

func TestService_Match(t *testing.T) {
	svc, llm, _ := newTestService(t, "")
	ctx := context.Background()
	id := newGeneratedSession(t, svc, llm)

	llm.SetCompleteResponse("  aquarion \n")
	result, err := svc.Match(ctx, id, "key", "Quelqu'un de calme et réfléchi")
	require.NoError(t, err)
	require.NotNil(t, result.Match)
	assert.Equal(t, "Aquarion", result.Match.Nom)
	assert.Empty(t, result.Warning)

	req := llm.GetCalls()[0].Request
	assert.Equal(t, services.ModeMatching, req.Mode)
	assert.False(t, req.JSONObject)
	assert.Equal(t, services.MatchingTemperature, req.Temperature)
	assert.Contains(t, req.Messages[1].Content, "Quelqu'un de calme et réfléchi")
	assert.Contains(t, req.Messages[1].Content, "PyroluxFeuColériquePV 80")

	loaded, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded.Match)
	assert.Equal(t, "Aquarion", loaded.Match.Nom)
}

func TestService_Match_NoResolutionKeepsPreviousMatch(t *testing.T) {
	svc, llm, _ := newTestService(t, "")
	ctx := context.Background()
	id := newGeneratedSession(t, svc, llm)

	llm.SetCompleteResponse("Floravie")
	_, err := svc.Match(ctx, id, "key", "timide")
	require.NoError(t, err)

	llm.SetCompleteResponse("Mewtwo")
	result, err := svc.Match(ctx, id, "key", "puissant")
	require.NoError(t, err)
	assert.Nil(t, result.Match)
	assert.Contains(t, result.Warning, "Mewtwo")

	loaded, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded.Match)
	assert.Equal(t, "Floravie", loaded.Match.Nom)
}

func TestService_Match_Errors(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		svc, llm, _ := newTestService(t, "")
		ctx := context.Background()
		sess, err := svc.NewSession(ctx)
		require.NoError(t, err)

		_, err = svc.Match(ctx, sess.ID, "key", "calme")
		assert.Equal(t, arenaerr.CodeFailedPrecondition, arenaerr.GetCode(err))
		assert.Empty(t, llm.GetCalls())
	})

	t.Run("blank description", func(t *testing.T) {
		svc, llm, _ := newTestService(t, "")
		id := newGeneratedSession(t, svc, llm)

		_, err := svc.Match(context.Background(), id, "key", "   ")
		assert.True(t, arenaerr.IsInputValidation(err))
		assert.Empty(t, llm.GetCalls())
	})

	t.Run("empty reply", func(t *testing.T) {
		svc, llm, _ := newTestService(t, "")
		ctx := context.Background()
		id := newGeneratedSession(t, svc, llm)

		llm.SetCompleteResponse("Pyrolux")
		_, err := svc.Match(ctx, id, "key", "colérique")
		require.NoError(t, err)

		llm.SetCompleteResponse("  \n ")
		_, err = svc.Match(ctx, id, "key", "calme")
		assert.True(t, arenaerr.IsResponseFormat(err))
		assert.Equal(t, arenaerr.KindEmpty, arenaerr.Kind(err))

		loaded, err := svc.GetSession(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Pyrolux", loaded.Match.Nom)
	})

	t.Run("missing credential", func(t *testing.T) {
		svc, llm, _ := newTestService(t, "")
		id := newGeneratedSession(t, svc, llm)

		_, err := svc.Match(context.Background(), id, "", "calme")
		assert.True(t, arenaerr.IsMissingCredential(err))
	})
}

func TestService_Narrate(t *testing.T) {
	svc, llm, _ := newTestService(t, "")
	reply := "Début du combat : ...\nRetournement de situation : ...\nFin du combat : ...\nVAINQUEUR : [Aquarion]"
	llm.SetCompleteResponse(reply)

	narrative, err := svc.Narrate(context.Background(), "key", championProfile, opponentProfile, "volcan")
	require.NoError(t, err)
	assert.Equal(t, reply, narrative.Text)
	assert.Equal(t, "Aquarion", narrative.Winner)

	req := llm.GetCalls()[0].Request
	assert.Equal(t, services.ModeNarration, req.Mode)
	assert.Equal(t, services.NarrationTemperature, req.Temperature)
	user := req.Messages[1].Content
	assert.Contains(t, user, "Volcan")
	for _, phase := range []string{"Début du combat", "Retournement de situation", "Fin du combat"} {
		assert.Contains(t, user, phase)
	}
}

func TestService_Narrate_Validation(t *testing.T) {
	tests := []struct {
		name      string
		champion  string
		opponent  string
		env       string
		wantLabel string
	}{
		{"missing champion", "  ", opponentProfile, "", ChampionLabel},
		{"missing opponent", championProfile, "", "", OpponentLabel},
		{"invalid champion json", `{"Nom": "A",}`, opponentProfile, "", ChampionLabel},
		{"opponent is a list", championProfile, `[{"Nom": "A"}]`, "", OpponentLabel},
		{"unknown environment", championProfile, opponentProfile, "Lune", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, llm, _ := newTestService(t, "")

			_, err := svc.Narrate(context.Background(), "key", tt.champion, tt.opponent, tt.env)
			require.Error(t, err)
			assert.True(t, arenaerr.IsInputValidation(err))
			if tt.wantLabel != "" {
				assert.Equal(t, tt.wantLabel, arenaerr.GetMeta(err)["label"])
			}
			assert.Empty(t, llm.GetCalls())
		})
	}
}

func TestService_Narrate_MissingCredential(t *testing.T) {
	svc, _, _ := newTestService(t, "")

	_, err := svc.Narrate(context.Background(), "", championProfile, opponentProfile, "")
	assert.True(t, arenaerr.IsMissingCredential(err))
}

func TestService_ResetAndExport(t *testing.T) {
	svc, llm, _ := newTestService(t, "")
	ctx := context.Background()
	id := newGeneratedSession(t, svc, llm)

	_, err := svc.ExportMatch(ctx, id)
	assert.True(t, arenaerr.IsNotFound(err), "export without a match should fail")

	llm.SetCompleteResponse("Pyrolux")
	_, err = svc.Match(ctx, id, "key", "colérique")
	require.NoError(t, err)

	out, err := svc.ExportMatch(ctx, id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n  \"Nom\": \"Pyrolux\""), "got %s", out)
	assert.Contains(t, out, `"Description": "Un lézard ardent"`)
	assert.Contains(t, out, `"Personnalite": "Colérique"`)

	sess, err := svc.Reset(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, sess.Collection)
	assert.Nil(t, sess.Match)

	loaded, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, loaded.Collection)
	assert.Nil(t, loaded.Match)

	_, err = svc.Reset(ctx, uuid.New())
	assert.True(t, arenaerr.IsNotFound(err))
}
