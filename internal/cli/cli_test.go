package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/internal/report"
	"github.com/me/schedsim/internal/scheduler"
	"github.com/me/schedsim/internal/server"
	"github.com/me/schedsim/internal/workload"
	"github.com/me/schedsim/pkg/model"
	"gopkg.in/yaml.v3"
)

// startTestServer starts an API server and returns its URL.
func startTestServer(t *testing.T) string {
	t.Helper()
	srvLogger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := server.New(config.DefaultServerConfig(), srvLogger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

// isolate keeps the user's config file and server variable out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCHEDSIM_SERVER", "")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIWithInput(t, nil, args...)
}

func runCLIWithInput(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	isolate(t)
	root := NewRootCmd()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func decodeDocument(t *testing.T, output string) report.Document {
	t.Helper()
	var doc report.Document
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("decode output: %v\n%s", err, output)
	}
	return doc
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunCommand_Table(t *testing.T) {
	output, err := runCLI(t, "run", "sample:rr-small", "-p", "rr", "--listing")
	if err != nil {
		t.Fatalf("run error: %v\noutput: %s", err, output)
	}
	for _, want := range []string{"== rr ==", "P1", "P2", "Process 2 from 2 to 4", "Process 1 from 7 to 8"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRunCommand_JSON(t *testing.T) {
	output, err := runCLI(t, "run", "sample:rr-small", "--policy", "rr", "--quantum", "2", "-o", "json")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	doc := decodeDocument(t, output)
	if doc.Policy != "rr" || doc.Quantum != 2 {
		t.Errorf("policy = %q quantum = %d, want rr 2", doc.Policy, doc.Quantum)
	}
	want := []model.Interval{
		{PID: 1, Start: 0, End: 2},
		{PID: 2, Start: 2, End: 4},
		{PID: 1, Start: 4, End: 6},
		{PID: 2, Start: 6, End: 7},
		{PID: 1, Start: 7, End: 8},
	}
	if len(doc.Timeline) != len(want) {
		t.Fatalf("timeline = %v, want %v", doc.Timeline, want)
	}
	for i := range want {
		if doc.Timeline[i] != want[i] {
			t.Errorf("timeline[%d] = %v, want %v", i, doc.Timeline[i], want[i])
		}
	}
	if doc.Summary.AvgWaiting != 3 {
		t.Errorf("avg waiting = %v, want 3", doc.Summary.AvgWaiting)
	}
}

func TestRunCommand_CSVFileYAMLOutput(t *testing.T) {
	path := writeFile(t, "jobs.csv", "pid,burst,arrival\n1,6,0\n2,2,1\n3,1,1\n")

	output, err := runCLI(t, "run", path, "-p", "sjf", "-o", "yaml")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	var doc report.Document
	if err := yaml.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, output)
	}
	var order []int
	for _, row := range doc.Processes {
		order = append(order, row.PID)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 3 || order[2] != 2 {
		t.Errorf("completion order = %v, want [1 3 2]", order)
	}
}

func TestRunCommand_Stdin(t *testing.T) {
	in := strings.NewReader("processes:\n  - {pid: 7, arrival: 0, burst: 3}\n")
	output, err := runCLIWithInput(t, in, "run", "-", "-o", "json")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	doc := decodeDocument(t, output)
	if len(doc.Processes) != 1 || doc.Processes[0].PID != 7 || doc.Processes[0].End != 3 {
		t.Errorf("processes = %+v", doc.Processes)
	}
}

func TestRunCommand_CustomExpr(t *testing.T) {
	const expr = "a.burst < b.burst || (a.burst == b.burst && a.arrival < b.arrival)"
	output, err := runCLI(t, "run", "sample:classic", "-p", "custom", "--expr", expr, "-o", "json")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	custom := decodeDocument(t, output)

	output, err = runCLI(t, "run", "sample:classic", "-p", "sjf", "-o", "json")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	sjf := decodeDocument(t, output)

	if custom.Expr != expr {
		t.Errorf("expr = %q", custom.Expr)
	}
	if custom.Summary != sjf.Summary {
		t.Errorf("custom burst ranking summary %+v differs from sjf %+v", custom.Summary, sjf.Summary)
	}
}

func TestRunCommand_ConfigDefaults(t *testing.T) {
	isolate(t)
	path := writeFile(t, "schedsim.yaml", "policy: sjf\n")

	output, err := runCLI(t, "--config", path, "run", "sample:classic", "-o", "json")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if doc := decodeDocument(t, output); doc.Policy != "sjf" {
		t.Errorf("policy = %q, want sjf from config", doc.Policy)
	}

	output, err = runCLI(t, "--config", path, "run", "sample:classic", "-p", "fcfs", "-o", "json")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if doc := decodeDocument(t, output); doc.Policy != "fcfs" {
		t.Errorf("policy = %q, want the flag to win over config", doc.Policy)
	}
}

func TestRunCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown sample", []string{"run", "sample:nope"}, "unknown sample"},
		{"missing file", []string{"run", filepath.Join(t.TempDir(), "missing.yaml")}, "missing.yaml"},
		{"unknown policy", []string{"run", "sample:classic", "-p", "lottery"}, "lottery"},
		{"bad format", []string{"run", "sample:classic", "-o", "xml"}, "unknown output format"},
		{"no args", []string{"run"}, "arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestRunCommand_Server(t *testing.T) {
	url := startTestServer(t)

	local, err := runCLI(t, "run", "sample:staggered", "-p", "srtf", "-o", "json")
	if err != nil {
		t.Fatalf("local run: %v", err)
	}
	remote, err := runCLI(t, "--server", url, "run", "sample:staggered", "-p", "srtf", "-o", "json")
	if err != nil {
		t.Fatalf("remote run: %v", err)
	}

	l, r := decodeDocument(t, local), decodeDocument(t, remote)
	if !strings.HasPrefix(r.ID, "sim_") {
		t.Errorf("remote id = %q, want sim_ prefix", r.ID)
	}
	if l.Summary != r.Summary || len(l.Timeline) != len(r.Timeline) {
		t.Errorf("remote result differs:\nlocal  %+v\nremote %+v", l, r)
	}

	table, err := runCLI(t, "--server", url, "run", "sample:staggered", "-p", "srtf")
	if err != nil {
		t.Fatalf("remote table run: %v", err)
	}
	if !strings.Contains(table, "== srtf ==") {
		t.Errorf("remote table output missing heading:\n%s", table)
	}
}

func TestRunCommand_ServerValidationError(t *testing.T) {
	url := startTestServer(t)
	path := writeFile(t, "dup.yaml", "processes:\n  - {pid: 1, arrival: 0, burst: 1}\n  - {pid: 1, arrival: 1, burst: 1}\n")

	_, err := runCLI(t, "--server", url, "run", path)
	if err == nil {
		t.Fatal("expected error for duplicate pids")
	}
	if !strings.Contains(err.Error(), "VALIDATION_ERROR") {
		t.Errorf("error = %q, want a validation error", err)
	}
}

func TestCompareCommand(t *testing.T) {
	output, err := runCLI(t, "compare", "sample:classic")
	if err != nil {
		t.Fatalf("compare error: %v", err)
	}
	for _, name := range scheduler.Builtins() {
		if !strings.Contains(output, "== "+name+" ==") {
			t.Errorf("output missing section for %s", name)
		}
	}
}

func TestCompareCommand_SummaryOnlyJSON(t *testing.T) {
	output, err := runCLI(t, "compare", "sample:classic", "--policies", "fcfs,sjf", "-o", "json")
	if err != nil {
		t.Fatalf("compare error: %v", err)
	}
	var entries []model.ComparisonEntry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("decode: %v\n%s", err, output)
	}
	if len(entries) != 2 || entries[0].Policy != "fcfs" || entries[1].Policy != "sjf" {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[1].Summary.AvgWaiting > entries[0].Summary.AvgWaiting {
		t.Errorf("sjf average waiting %v exceeds fcfs %v", entries[1].Summary.AvgWaiting, entries[0].Summary.AvgWaiting)
	}
}

func TestCompareCommand_Server(t *testing.T) {
	url := startTestServer(t)

	output, err := runCLI(t, "--server", url, "compare", "sample:priority", "--policies", "priority,preemptive-priority")
	if err != nil {
		t.Fatalf("compare error: %v", err)
	}
	if strings.Contains(output, "== priority ==") {
		t.Error("remote compare should only print the summary table")
	}
	if !strings.Contains(output, "preemptive-priority") {
		t.Errorf("summary missing policy row:\n%s", output)
	}
}

func TestPoliciesCommand(t *testing.T) {
	output, err := runCLI(t, "policies", "-o", "json")
	if err != nil {
		t.Fatalf("policies error: %v", err)
	}
	var infos []scheduler.Info
	if err := json.Unmarshal([]byte(output), &infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) != len(scheduler.Policies()) {
		t.Errorf("got %d policies, want %d", len(infos), len(scheduler.Policies()))
	}

	url := startTestServer(t)
	table, err := runCLI(t, "--server", url, "policies")
	if err != nil {
		t.Fatalf("remote policies error: %v", err)
	}
	for _, name := range scheduler.Names() {
		if !strings.Contains(table, name) {
			t.Errorf("table missing %s", name)
		}
	}
}

func TestSampleCommand(t *testing.T) {
	output, err := runCLI(t, "sample")
	if err != nil {
		t.Fatalf("sample error: %v", err)
	}
	for _, name := range workload.SampleNames() {
		if !strings.Contains(output, name) {
			t.Errorf("listing missing %s", name)
		}
	}

	output, err = runCLI(t, "sample", "classic")
	if err != nil {
		t.Fatalf("sample classic error: %v", err)
	}
	got, err := workload.Parse([]byte(output), workload.FormatYAML)
	if err != nil {
		t.Fatalf("parse printed sample: %v\n%s", err, output)
	}
	want, _ := workload.Sample("classic")
	if len(got.Processes) != len(want.Processes) || got.Quantum != want.Quantum {
		t.Errorf("printed sample = %+v, want %+v", got, want)
	}

	if _, err := runCLI(t, "sample", "nope"); err == nil {
		t.Error("expected error for unknown sample")
	}
}
