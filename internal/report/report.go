// Package report renders simulation results as Gantt charts, metrics tables
// and JSON or YAML documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/me/schedsim/pkg/model"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat converts a flag value to a Format. An empty string means table.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table", "text":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Options control the table renderer.
type Options struct {
	// Coalesce merges adjacent slices of the same process in the Gantt bar.
	Coalesce bool
	// Color enables terminal colors in headings and the Gantt bar.
	Color bool
	// Listing adds the line-per-interval timeline below the bar.
	Listing bool
}

// WriteResult prints a heading, the Gantt bar, optionally the interval
// listing, and the metrics table for res.
func WriteResult(w io.Writer, res *model.Result, opts Options) error {
	st := newStyle(opts.Color)
	if _, err := fmt.Fprintln(w, st.heading("== %s ==", res.Policy)); err != nil {
		return err
	}
	if err := WriteGantt(w, res.Timeline, opts); err != nil {
		return err
	}
	if opts.Listing {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		timeline := res.Timeline
		if opts.Coalesce {
			timeline = model.Coalesce(timeline)
		}
		if err := WriteListing(w, timeline); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	WriteTable(w, res)
	return nil
}

// Encode writes v as indented JSON or as YAML.
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not a document format", format)
	}
}
