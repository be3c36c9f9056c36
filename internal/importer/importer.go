// Package importer turns external schedule files into base-schedule
// tasks. Records are validated against an embedded CUE schema before
// any Task is constructed, and durations are derived with the same
// start/end arithmetic as the rest of the model, so a file can never
// smuggle in a duration of its own.
package importer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/rkeller/cadence/internal/sched"
)

//go:embed schema.cue
var schemaCUE string

// Entry is one imported schedule record on the wire.
type Entry struct {
	Label string `json:"label" yaml:"label"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Mode selects how imported tasks combine with the existing schedule.
type Mode int

const (
	// Replace discards the existing schedule in favor of the import.
	Replace Mode = iota
	// Append adds the imported tasks to the existing schedule.
	Append
)

// ReadFile loads and decodes a schedule file by extension:
// .json, .yaml, or .yml.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule file: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return entries, nil
	case ".yaml", ".yml":
		var entries []Entry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unsupported schedule format %q (want .json, .yaml, or .yml)", ext)
	}
}

// Build validates entries against the embedded schema and derives a
// Task for each. Validation collects nothing: the first offending
// record aborts the import so a half-valid file never lands partially.
func Build(entries []Entry) ([]sched.Task, error) {
	if err := validate(entries); err != nil {
		return nil, err
	}

	tasks := make([]sched.Task, 0, len(entries))
	for i, e := range entries {
		t, err := sched.NewTask(e.Label, e.Start, e.End)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.Label, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// validate unifies the entries with the CUE schema. The schema catches
// shape errors (missing fields, malformed clock strings) with file-
// level positions before any model construction runs.
func validate(entries []Entry) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile import schema: %w", err)
	}

	doc := ctx.Encode(struct {
		Entries []Entry `json:"entries"`
	}{Entries: entries})
	if err := doc.Err(); err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schedule import rejected: %w", err)
	}
	return nil
}

// Merge combines imported tasks with the existing schedule per mode and
// returns the result sorted by start time, the order the base-schedule
// owner guarantees to the rollover engine.
func Merge(existing, imported []sched.Task, mode Mode) []sched.Task {
	var out []sched.Task
	if mode == Append {
		out = append(out, existing...)
	}
	out = append(out, imported...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}
