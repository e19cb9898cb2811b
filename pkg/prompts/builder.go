package prompts

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/poke-arena/pkg/chat"
	"github.com/jwebster45206/poke-arena/pkg/creature"
	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
)

// Generation count bounds, inclusive.
const (
	MinCount     = 3
	MaxCount     = 10
	DefaultCount = 5
)

// Prompt is a rendered system + user instruction pair.
type Prompt struct {
	System string
	User   string
}

// Messages returns the prompt as the two-message chat sent to the model.
func (p Prompt) Messages() []chat.ChatMessage {
	return []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: p.System},
		{Role: chat.ChatRoleUser, Content: p.User},
	}
}

// Generation builds the creature generation prompt. count must be within
// [MinCount, MaxCount]. A non-blank theme adds a shared-theme clause.
func Generation(count int, theme string) (Prompt, error) {
	if count < MinCount || count > MaxCount {
		return Prompt{}, arenaerr.InputValidationf("count must be between %d and %d, got %d", MinCount, MaxCount, count).
			WithKind(arenaerr.KindRange)
	}

	user := fmt.Sprintf(GenerationUserPrompt, count)
	if theme = strings.TrimSpace(theme); theme != "" {
		user += fmt.Sprintf(GenerationThemeClause, theme)
	}

	return Prompt{
		System: GenerationSystemPrompt,
		User:   user,
	}, nil
}

// Matching builds the compatibility prompt for a collection and a free-text
// personality description.
func Matching(c creature.Collection, description string) Prompt {
	return Prompt{
		System: MatchingSystemPrompt,
		User:   fmt.Sprintf(MatchingUserPrompt, RenderCollection(c), strings.TrimSpace(description)),
	}
}

// RenderCollection renders one line per creature: name, type, personality and
// stats concatenated without separators.
func RenderCollection(c creature.Collection) string {
	var sb strings.Builder
	for i, cr := range c {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(cr.Nom + cr.Type + cr.Personnalite + cr.Stats)
	}
	return sb.String()
}

// Narration builds the battle narration prompt for two fighters on env.
func Narration(champion, opponent creature.Record, env creature.Environment) (Prompt, error) {
	championJSON, err := creature.Export(champion)
	if err != nil {
		return Prompt{}, fmt.Errorf("error rendering champion: %w", err)
	}
	opponentJSON, err := creature.Export(opponent)
	if err != nil {
		return Prompt{}, fmt.Errorf("error rendering opponent: %w", err)
	}

	return Prompt{
		System: NarrationSystemPrompt,
		User:   fmt.Sprintf(NarrationUserPrompt, env, championJSON, opponentJSON),
	}, nil
}
