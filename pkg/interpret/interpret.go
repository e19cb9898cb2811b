// Package interpret turns raw completion text into arena values: a creature
// collection, a resolved match, or a narrative with its verdict.
package interpret

import (
	"encoding/json"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jwebster45206/poke-arena/pkg/creature"
	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
	"github.com/jwebster45206/poke-arena/pkg/prompts"
)

// CollectionField is the top-level field holding generated creatures.
const CollectionField = "pokemons"

// ParseGeneration parses a generation reply. The raw text is attached to
// format errors under the "raw" meta key.
func ParseGeneration(raw string) (creature.Collection, error) {
	var top any
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, arenaerr.ResponseFormat("generation reply is not valid JSON").
			WithKind(arenaerr.KindParse).
			WithMeta("raw", raw)
	}

	obj, ok := top.(map[string]any)
	if !ok {
		return nil, arenaerr.ResponseFormat("generation reply is not a JSON object").
			WithKind(arenaerr.KindType).
			WithMeta("raw", raw)
	}

	field, ok := obj[CollectionField]
	if !ok || field == nil {
		return creature.Collection{}, nil
	}

	items, ok := field.([]any)
	if !ok {
		return nil, arenaerr.ResponseFormatf("%q is not a list", CollectionField).
			WithKind(arenaerr.KindType).
			WithMeta("raw", raw)
	}

	c := make(creature.Collection, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		c = append(c, creature.Normalize(m))
	}
	return c, nil
}

// ResolveMatch resolves a matching reply against c. It tries a
// case-insensitive exact name match first, then a case-insensitive substring
// of the candidate inside a name. The first creature in collection order wins.
// ok is false when nothing matches.
func ResolveMatch(raw string, c creature.Collection) (match creature.Creature, ok bool, err error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return creature.Creature{}, false, arenaerr.ResponseFormat("matching reply is empty").
			WithKind(arenaerr.KindEmpty).
			WithMeta("raw", raw)
	}

	fold := cases.Fold()
	want := fold.String(candidate)

	for _, cr := range c {
		if fold.String(cr.Nom) == want {
			return cr, true, nil
		}
	}
	for _, cr := range c {
		if strings.Contains(fold.String(cr.Nom), want) {
			return cr, true, nil
		}
	}
	return creature.Creature{}, false, nil
}

// Narrative is a battle narration. Winner is taken from the trailing verdict
// line when the model produced one; it is advisory and may be empty.
type Narrative struct {
	Text   string `json:"text"`
	Winner string `json:"winner,omitempty"`
}

var verdictLine = regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(strings.TrimSpace(strings.TrimSuffix(prompts.VerdictPrefix, ":"))) + `\s*:\s*(.+?)$`)

// ParseNarrative returns the trimmed narration text and its advisory winner.
func ParseNarrative(raw string) Narrative {
	text := strings.TrimSpace(raw)
	return Narrative{
		Text:   text,
		Winner: extractWinner(text),
	}
}

func extractWinner(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		line = strings.Trim(line, "*_")
		m := verdictLine.FindStringSubmatch(line)
		if m == nil {
			return ""
		}
		return strings.TrimSpace(strings.Trim(m[1], "[]"))
	}
	return ""
}
