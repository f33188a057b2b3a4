package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/me/schedsim/internal/report"
	"github.com/me/schedsim/internal/scheduler"
	"github.com/me/schedsim/internal/workload"
	"github.com/me/schedsim/pkg/model"
	"github.com/spf13/cobra"
)

const samplePrefix = "sample:"

// loadWorkload resolves a workload argument: a file path, "-" for YAML or JSON
// on stdin, or sample:<name> for a built-in workload.
func loadWorkload(cmd *cobra.Command, arg string) (*workload.Workload, error) {
	switch {
	case strings.HasPrefix(arg, samplePrefix):
		name := strings.TrimPrefix(arg, samplePrefix)
		w, ok := workload.Sample(name)
		if !ok {
			return nil, fmt.Errorf("unknown sample %q (available: %s)", name, strings.Join(workload.SampleNames(), ", "))
		}
		return w, nil
	case arg == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return workload.Parse(data, workload.FormatYAML)
	default:
		return workload.Load(arg)
	}
}

// quantumFor picks the Round Robin quantum: the flag when set, then the
// workload's suggestion, then the config default.
func quantumFor(cmd *cobra.Command, flagValue int, w *workload.Workload) int {
	if cmd.Flags().Changed("quantum") {
		return flagValue
	}
	if w.Quantum > 0 {
		return w.Quantum
	}
	return cfg.Quantum
}

func newRunCmd() *cobra.Command {
	var (
		policyName string
		quantum    int
		direction  string
		expr       string
		format     string
		coalesce   bool
		color      bool
		listing    bool
	)

	cmd := &cobra.Command{
		Use:   "run <workload>",
		Short: "Simulate one scheduling policy over a workload",
		Long: `Simulate one scheduling policy over a workload and print the Gantt chart
and per-process metrics.

The workload is a YAML, JSON or CSV file, "-" to read YAML or JSON from stdin,
or sample:<name> for a built-in workload (see "schedsim sample").`,
		Example: `  schedsim run sample:classic --policy rr --quantum 2
  schedsim run jobs.csv -p sjf -o json
  schedsim run jobs.yaml -p custom --expr "a.burst < b.burst"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			w, err := loadWorkload(cmd, args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("policy") {
				policyName = cfg.Policy
			}
			if !cmd.Flags().Changed("direction") {
				direction = cfg.Direction
			}
			if !cmd.Flags().Changed("color") {
				color = cfg.Color
			}
			spec := scheduler.Spec{
				Name:      policyName,
				Quantum:   quantumFor(cmd, quantum, w),
				Direction: direction,
				Expr:      expr,
			}

			logger.Debug("running simulation",
				"workload", w.Name, "policy", spec.Name, "processes", len(w.Processes))

			var doc *report.Document
			var res *model.Result
			if client != nil {
				doc, err = client.Simulate(cmd.Context(), model.SimulationRequest{
					Policy:    spec.Name,
					Quantum:   spec.Quantum,
					Direction: spec.Direction,
					Expr:      spec.Expr,
					Processes: w.Processes,
				}, coalesce)
				if err != nil {
					return err
				}
				res = doc.Result()
			} else {
				policy, err := scheduler.Build(spec)
				if err != nil {
					return err
				}
				res, err = scheduler.New(logger).Run(policy, w.Processes)
				if err != nil {
					return err
				}
				doc = report.NewDocument(res, coalesce)
				if policy.Name() == "rr" {
					doc.Quantum = spec.Quantum
				}
				if expr != "" {
					doc.Expr = expr
				}
			}

			if out != report.FormatTable {
				return report.Encode(cmd.OutOrStdout(), doc, out)
			}
			return report.WriteResult(cmd.OutOrStdout(), res, report.Options{
				Coalesce: coalesce,
				Color:    color,
				Listing:  listing,
			})
		},
	}

	cmd.Flags().StringVarP(&policyName, "policy", "p", "fcfs", "Scheduling policy (see \"schedsim policies\")")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 2, "Round Robin time quantum")
	cmd.Flags().StringVar(&direction, "direction", "lower", "Priority direction: lower or higher number wins")
	cmd.Flags().StringVar(&expr, "expr", "", "Rank expression for the custom policies")
	cmd.Flags().StringVarP(&format, "format", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVar(&coalesce, "coalesce", false, "Merge adjacent slices of the same process")
	cmd.Flags().BoolVar(&color, "color", false, "Colored output")
	cmd.Flags().BoolVar(&listing, "listing", false, "List each timeline interval below the chart")

	return cmd
}
