package creature

import (
	"encoding/json"
	"strings"

	arenaerr "github.com/jwebster45206/poke-arena/pkg/errors"
)

// ParseProfile parses user-supplied JSON text into a Record.
//
// Blank input returns (nil, nil): nothing has been entered yet. Invalid JSON
// and non-object JSON return an INPUT_VALIDATION error naming label, with kind
// "parse" or "type" respectively.
func ParseProfile(text, label string) (Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, arenaerr.InputValidationf("%s: invalid JSON, check quotes, commas and braces", label).
			WithKind(arenaerr.KindParse).
			WithMeta("label", label)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, arenaerr.InputValidationf("%s: JSON must be an object, not a list or another type", label).
			WithKind(arenaerr.KindType).
			WithMeta("label", label)
	}

	return Record(obj), nil
}

// Summary returns the name and type of a parsed profile for confirmation
// messages. Absent fields yield "".
func Summary(r Record) (name, typ string) {
	return stringField(r, FieldName), stringField(r, FieldType)
}
