package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/poke-arena/pkg/creature"
	"github.com/jwebster45206/poke-arena/pkg/interpret"
)

var strict bool

var rootCmd = &cobra.Command{
	Use:   "poke-validate <file.json>...",
	Short: "Validate creature profile files",
	Long: `poke-validate checks creature JSON files before they are pasted into a battle.
A file holds either one profile object or a collection {"pokemons": [...]}.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.Flags().BoolVar(&strict, "strict", false, "Treat missing or unknown fields as errors")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, filename := range args {
		v := &ProfileValidator{strict: strict}
		fmt.Fprintf(cmd.OutOrStdout(), "Validating %s...\n", filename)

		summary, err := v.validateFile(filename)
		for _, w := range v.warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "  warning: %s\n", w)
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  valid: %s\n", summary)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(args))
	}
	return nil
}

type ProfileValidator struct {
	strict   bool
	errors   []string
	warnings []string
}

// validateFile checks one file and returns a one-line summary of what it
// holds.
func (v *ProfileValidator) validateFile(filename string) (string, error) {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return "", fmt.Errorf("profile file must have .json extension: %s", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil
	v.warnings = nil

	record, err := creature.ParseProfile(string(data), baseName)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", fmt.Errorf("file %s is empty", filename)
	}

	var summary string
	if _, ok := record[interpret.CollectionField]; ok {
		summary = v.validateCollection(string(data))
	} else {
		v.validateRecord(record, baseName)
		nom, typ := creature.Summary(record)
		summary = fmt.Sprintf("%s (%s)", nom, typ)
	}

	if len(v.errors) > 0 {
		return "", fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return summary, nil
}

func (v *ProfileValidator) validateCollection(data string) string {
	collection, err := interpret.ParseGeneration(data)
	if err != nil {
		v.errors = append(v.errors, err.Error())
		return ""
	}
	if len(collection) == 0 {
		v.errors = append(v.errors, "collection is empty")
		return ""
	}

	seen := make(map[string]bool)
	for i, c := range collection {
		where := fmt.Sprintf("pokemons[%d]", i)
		v.validateRecord(c.Record(), where)
		key := strings.ToLower(c.Nom)
		if c.Nom != "" && seen[key] {
			v.errors = append(v.errors, fmt.Sprintf("%s: duplicate name %q; matching picks the first one", where, c.Nom))
		}
		seen[key] = true
	}
	return fmt.Sprintf("collection of %d: %s", len(collection), strings.Join(collection.Names(), ", "))
}

// validateRecord requires a name and reports missing or unknown fields.
func (v *ProfileValidator) validateRecord(record creature.Record, where string) {
	nom, _ := creature.Summary(record)
	if strings.TrimSpace(nom) == "" {
		v.errors = append(v.errors, fmt.Sprintf("%s: %s is required", where, creature.FieldName))
	}

	known := make(map[string]bool, len(creature.Fields))
	for _, f := range creature.Fields {
		known[f] = true
		if _, ok := record[f]; !ok {
			v.report(fmt.Sprintf("%s: missing field %s", where, f))
		}
	}

	var unknown []string
	for k := range record {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		v.report(fmt.Sprintf("%s: unknown field %s", where, k))
	}
}

func (v *ProfileValidator) report(msg string) {
	if v.strict {
		v.errors = append(v.errors, msg)
		return
	}
	v.warnings = append(v.warnings, msg)
}
