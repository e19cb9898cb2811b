// Package arena implements the user actions of the arena: generating a
// collection, matching a personality to one of its creatures, and narrating
// a battle. Each action runs validation, prompt building, one completion
// call and interpretation, then commits the result to the session.
package arena

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/poke-arena/internal/services"
	"github.com/jwebster45206/poke-arena/pkg/creature"
	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
	"github.com/jwebster45206/poke-arena/pkg/interpret"
	"github.com/jwebster45206/poke-arena/pkg/prompts"
	"github.com/jwebster45206/poke-arena/pkg/state"
	"github.com/jwebster45206/poke-arena/pkg/storage"
)

// Labels identifying the two battle profiles in validation errors.
const (
	ChampionLabel = "Mon Champion"
	OpponentLabel = "L'Adversaire"
)

// MatchResult is the outcome of a match query. Exactly one of Match and
// Warning is set.
type MatchResult struct {
	Match   *creature.Creature `json:"match,omitempty"`
	Warning string             `json:"warning,omitempty"`
}

type Service struct {
	llm           services.LLMService
	storage       storage.Storage
	defaultAPIKey string
	logger        *slog.Logger
}

// NewService wires the completion service and the session store.
// defaultAPIKey is used whenever a caller supplies no credential.
func NewService(llm services.LLMService, store storage.Storage, defaultAPIKey string, logger *slog.Logger) *Service {
	return &Service{
		llm:           llm,
		storage:       store,
		defaultAPIKey: strings.TrimSpace(defaultAPIKey),
		logger:        logger,
	}
}

// APIKey returns the credential to use for a call: the caller's own key when
// given, otherwise the configured default. It may be empty.
func (s *Service) APIKey(callerKey string) string {
	if k := strings.TrimSpace(callerKey); k != "" {
		return k
	}
	return s.defaultAPIKey
}

func (s *Service) NewSession(ctx context.Context) (*state.Session, error) {
	sess := state.NewSession()
	if err := s.storage.SaveSession(ctx, sess); err != nil {
		return nil, arenaerr.WrapWithCode(err, arenaerr.CodeInternal, "failed to create session")
	}
	s.logger.Info("Session created", "session_id", sess.ID)
	return sess, nil
}

// GetSession loads a session, failing with a not-found error when it does
// not exist or has expired.
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*state.Session, error) {
	sess, err := s.storage.LoadSession(ctx, id)
	if err != nil {
		return nil, arenaerr.WrapWithCode(err, arenaerr.CodeInternal, "failed to load session")
	}
	if sess == nil {
		return nil, arenaerr.NotFoundf("session %s not found", id)
	}
	return sess, nil
}

func (s *Service) save(ctx context.Context, sess *state.Session) error {
	if err := s.storage.SaveSession(ctx, sess); err != nil {
		return arenaerr.WrapWithCode(err, arenaerr.CodeInternal, "failed to save session")
	}
	return nil
}

// Generate asks the model for count new creatures and replaces the session
// collection with them. On any failure the previous collection is kept.
func (s *Service) Generate(ctx context.Context, id uuid.UUID, apiKey string, count int, theme string) (creature.Collection, error) {
	prompt, err := prompts.Generation(count, theme)
	if err != nil {
		return nil, err
	}

	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	resp, err := s.llm.Complete(ctx, s.APIKey(apiKey), services.NewCompletionRequest(services.ModeGeneration, prompt.Messages()))
	if err != nil {
		s.logger.Warn("Generation call failed", "session_id", id, "error", err)
		return nil, err
	}

	collection, err := interpret.ParseGeneration(resp.Message)
	if err != nil {
		s.logger.Warn("Unusable generation reply", "session_id", id, "error", err)
		return nil, err
	}

	sess.ReplaceCollection(collection)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Collection generated",
		"session_id", id,
		"requested", count,
		"received", len(collection),
		"theme", strings.TrimSpace(theme))
	return collection, nil
}

// Match asks the model which creature of the session collection best fits
// description. A reply naming no known creature yields a warning and leaves
// the previous match in place.
func (s *Service) Match(ctx context.Context, id uuid.UUID, apiKey, description string) (*MatchResult, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.HasCollection() {
		return nil, arenaerr.FailedPrecondition("generate a collection before matching")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, arenaerr.InputValidation("a personality description is required")
	}

	prompt := prompts.Matching(sess.Collection, description)
	resp, err := s.llm.Complete(ctx, s.APIKey(apiKey), services.NewCompletionRequest(services.ModeMatching, prompt.Messages()))
	if err != nil {
		s.logger.Warn("Matching call failed", "session_id", id, "error", err)
		return nil, err
	}

	match, ok, err := interpret.ResolveMatch(resp.Message, sess.Collection)
	if err != nil {
		return nil, err
	}
	if !ok {
		reply := strings.TrimSpace(resp.Message)
		s.logger.Warn("Match reply names no creature", "session_id", id, "reply", reply)
		return &MatchResult{
			Warning: fmt.Sprintf("the model answered %q, which is not in the collection", reply),
		}, nil
	}

	sess.SelectMatch(match)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Match selected", "session_id", id, "match", match.Nom)
	return &MatchResult{Match: &match}, nil
}

// Narrate validates both pasted profiles and asks the model to narrate their
// battle in env. It does not touch any session.
func (s *Service) Narrate(ctx context.Context, apiKey, championProfile, opponentProfile, env string) (*interpret.Narrative, error) {
	champion, err := requireProfile(championProfile, ChampionLabel)
	if err != nil {
		return nil, err
	}
	opponent, err := requireProfile(opponentProfile, OpponentLabel)
	if err != nil {
		return nil, err
	}
	environment, err := creature.ParseEnvironment(env)
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.Narration(champion, opponent, environment)
	if err != nil {
		return nil, err
	}

	resp, err := s.llm.Complete(ctx, s.APIKey(apiKey), services.NewCompletionRequest(services.ModeNarration, prompt.Messages()))
	if err != nil {
		s.logger.Warn("Narration call failed", "environment", environment, "error", err)
		return nil, err
	}

	narrative := interpret.ParseNarrative(resp.Message)
	s.logger.Info("Battle narrated", "environment", environment, "winner", narrative.Winner)
	return &narrative, nil
}

func requireProfile(text, label string) (creature.Record, error) {
	record, err := creature.ParseProfile(text, label)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, arenaerr.InputValidationf("%s: profile is missing", label).WithMeta("label", label)
	}
	return record, nil
}

// Reset clears the session collection and selected match.
func (s *Service) Reset(ctx context.Context, id uuid.UUID) (*state.Session, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Reset()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("Session reset", "session_id", id)
	return sess, nil
}

// ExportMatch renders the selected match as indented JSON.
func (s *Service) ExportMatch(ctx context.Context, id uuid.UUID) (string, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return "", err
	}
	if sess.Match == nil {
		return "", arenaerr.NotFound("no match selected")
	}
	out, err := creature.Export(sess.Match)
	if err != nil {
		return "", arenaerr.WrapWithCode(err, arenaerr.CodeInternal, "failed to export match")
	}
	return out, nil
}
