package workload

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/me/schedsim/pkg/model"
	"gopkg.in/yaml.v3"
)

// Load reads a workload file, choosing the decoder from the extension.
// A workload without a name is named after the file.
func Load(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}
	w, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if w.Name == "" {
		w.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return w, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Workload, error) {
	switch format {
	case FormatCSV:
		procs, err := ParseCSV(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return &Workload{Processes: procs}, nil
	case FormatYAML, FormatJSON:
		return parseDocument(data)
	default:
		return nil, fmt.Errorf("unknown workload format %q", format)
	}
}

// parseDocument accepts either a full workload mapping or a bare sequence of
// processes. Unknown keys are rejected so that typos such as "brust" do not
// silently become zero values.
func parseDocument(data []byte) (*Workload, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, errors.New("empty workload document")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	w := &Workload{}
	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		if err := dec.Decode(&w.Processes); err != nil {
			return nil, fmt.Errorf("decode processes: %w", err)
		}
	case yaml.MappingNode:
		if err := dec.Decode(w); err != nil {
			return nil, fmt.Errorf("decode workload: %w", err)
		}
	default:
		return nil, errors.New("workload must be a mapping or a list of processes")
	}
	return w, nil
}

// ParseCSV reads rows of pid,burst,arrival[,priority]. A first row whose
// first field is "pid" is treated as a header. Blank lines and lines starting
// with '#' are skipped.
func ParseCSV(r io.Reader) ([]model.Process, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var procs []model.Process
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if first && strings.EqualFold(strings.TrimSpace(rec[0]), "pid") {
			continue
		}
		if len(rec) < 3 || len(rec) > 4 {
			return nil, fmt.Errorf("line %d: want pid,burst,arrival[,priority], got %d fields", line, len(rec))
		}

		vals := make([]int, len(rec))
		for i, field := range rec {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("line %d field %d: %q is not an integer", line, i+1, field)
			}
			vals[i] = v
		}
		p := model.Process{PID: vals[0], Burst: vals[1], Arrival: vals[2]}
		if len(vals) == 4 {
			p.Priority = vals[3]
		}
		procs = append(procs, p)
	}
	return procs, nil
}
