// Package creature holds the creature profile types shared by the prompt
// builder, the response interpreter and the arena service.
package creature

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field names as they appear in model output and user-pasted profiles.
const (
	FieldName        = "Nom"
	FieldType        = "Type"
	FieldDescription = "Description"
	FieldPersonality = "Personnalite"
	FieldStats       = "Stats"
)

// Fields lists the recognized fields in their fixed order.
var Fields = []string{FieldName, FieldType, FieldDescription, FieldPersonality, FieldStats}

// Record is a profile exactly as parsed from JSON text. No schema is applied.
type Record map[string]any

// Creature is a normalized profile. Field order matches Fields.
type Creature struct {
	Nom          string `json:"Nom"`
	Type         string `json:"Type"`
	Description  string `json:"Description"`
	Personnalite string `json:"Personnalite"`
	Stats        string `json:"Stats"`
}

// Collection is an ordered set of creatures produced by one generation call.
type Collection []Creature

// Normalize keeps the five recognized fields of raw, in order. Missing or null
// fields become "", extra fields are dropped and non-string values are kept
// as their JSON text.
func Normalize(raw map[string]any) Creature {
	return Creature{
		Nom:          stringField(raw, FieldName),
		Type:         stringField(raw, FieldType),
		Description:  stringField(raw, FieldDescription),
		Personnalite: stringField(raw, FieldPersonality),
		Stats:        stringField(raw, FieldStats),
	}
}

// Record returns c as a generic record, e.g. to feed the narration prompt.
func (c Creature) Record() Record {
	return Record{
		FieldName:        c.Nom,
		FieldType:        c.Type,
		FieldDescription: c.Description,
		FieldPersonality: c.Personnalite,
		FieldStats:       c.Stats,
	}
}

// Names returns the creature names in collection order.
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for _, cr := range c {
		names = append(names, cr.Nom)
	}
	return names
}

func stringField(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// Export renders v as indented JSON without escaping non-ASCII or HTML
// characters. It is the text users copy out of a selected match.
func Export(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to export profile: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
