// Package workload reads and writes process lists for the simulator.
//
// A workload is a YAML (or JSON) document:
//
//	name: classic
//	quantum: 2
//	processes:
//	  - {pid: 1, arrival: 3, burst: 10}
//	  - {pid: 2, arrival: 2, burst: 1, priority: 1}
//
// or a CSV file with rows pid,burst,arrival[,priority], an optional header row
// and '#' comments.
package workload

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/me/schedsim/pkg/model"
	"gopkg.in/yaml.v3"
)

// Workload is a named process list with an optional suggested quantum.
type Workload struct {
	Name        string          `json:"name,omitempty" yaml:"name,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Quantum     int             `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Processes   []model.Process `json:"processes" yaml:"processes"`
}

// Format identifies a workload file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown workload format %q (want yaml, json or csv)", s)
	}
}

// FormatFromPath picks a Format from the file extension. Unknown extensions
// are read as YAML, which also covers JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Encode writes w as a YAML document.
func Encode(out io.Writer, w *Workload) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(w); err != nil {
		return fmt.Errorf("encode workload: %w", err)
	}
	return enc.Close()
}
