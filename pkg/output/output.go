// Package output renders detection reports and apply/undo summaries for
// the CLI, as a human listing or as JSON/YAML for scripting.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"attachmint/pkg/errors"
	"attachmint/pkg/types"
)

// Format names accepted by the --format flag.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formatter renders a report to a writer.
type Formatter interface {
	WriteReport(w io.Writer, report *types.DetectReport) error
	Name() string
}

// NewFormatter returns the formatter for the given format name.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case FormatHuman, "":
		return &HumanFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q", format)
	}
}

// JSONFormatter emits the raw report as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Name() string { return FormatJSON }

func (f *JSONFormatter) WriteReport(w io.Writer, report *types.DetectReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// YAMLFormatter emits the raw report as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Name() string { return FormatYAML }

func (f *YAMLFormatter) WriteReport(w io.Writer, report *types.DetectReport) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(report)
}

// HumanFormatter prints one line per entry with its mark, then the planned
// moves and the stats footer.
type HumanFormatter struct{}

func (f *HumanFormatter) Name() string { return FormatHuman }

func (f *HumanFormatter) WriteReport(w io.Writer, report *types.DetectReport) error {
	for _, e := range report.Entries {
		if _, err := fmt.Fprintf(w, "%s %-14s %s%s\n", e.Mark(), e.Zone, e.Path, entrySuffix(e)); err != nil {
			return err
		}
	}

	if len(report.Preview) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Planned moves:")
		for _, p := range report.Preview {
			fmt.Fprintf(w, "  %s -> %s\n", p.VirtualFrom, p.Path)
		}
	}

	s := report.Stats
	fmt.Fprintln(w)
	_, err := fmt.Fprintf(w, "%d files: %d notes, %d attachments | %d moves, %d conflicts, %d missing, %d orphans\n",
		s.Files, s.Notes, s.Attachments, s.Moves, s.Conflicts, s.Missing, s.Orphans)
	return err
}

// entrySuffix renders the details worth a glance: reason, references,
// colliding paths.
func entrySuffix(e *types.FileEntry) string {
	switch {
	case len(e.ConflictWith) > 0:
		return fmt.Sprintf("  (collides with %v)", e.ConflictWith)
	case e.Action.Kind == types.ActionMoveTo:
		return fmt.Sprintf("  -> %s", e.Action.Target)
	case e.Action.Reason != "":
		return fmt.Sprintf("  (%s)", e.Action.Reason)
	default:
		return ""
	}
}
