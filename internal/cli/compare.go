package cli

import (
	"fmt"

	"github.com/me/schedsim/internal/report"
	"github.com/me/schedsim/internal/scheduler"
	"github.com/me/schedsim/pkg/model"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	var (
		policies    []string
		quantum     int
		direction   string
		format      string
		summaryOnly bool
		color       bool
	)

	cmd := &cobra.Command{
		Use:   "compare <workload>",
		Short: "Run several policies over one workload and compare their averages",
		Long: `Run several policies over the same workload. By default every built-in
policy that needs no expression is run; the table output prints each policy's
Gantt chart and metrics followed by a summary table. With --server only the
summary table is available.`,
		Example: `  schedsim compare sample:classic
  schedsim compare jobs.yaml --policies fcfs,sjf,srtf --summary-only`,
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
			if len(policies) == 0 {
				policies = scheduler.Builtins()
			}
			if !cmd.Flags().Changed("direction") {
				direction = cfg.Direction
			}
			if !cmd.Flags().Changed("color") {
				color = cfg.Color
			}
			q := quantumFor(cmd, quantum, w)

			var entries []model.ComparisonEntry
			var results []*model.Result
			if client != nil {
				entries, err = client.Compare(cmd.Context(), model.ComparisonRequest{
					Policies:  policies,
					Quantum:   q,
					Direction: direction,
					Processes: w.Processes,
				})
				if err != nil {
					return err
				}
			} else {
				sim := scheduler.New(logger)
				for _, name := range policies {
					policy, err := scheduler.Build(scheduler.Spec{Name: name, Quantum: q, Direction: direction})
					if err != nil {
						return err
					}
					res, err := sim.Run(policy, w.Processes)
					if err != nil {
						return fmt.Errorf("%s: %w", policy.Name(), err)
					}
					results = append(results, res)
				}
				entries = report.Compare(results)
			}

			if out != report.FormatTable {
				return report.Encode(cmd.OutOrStdout(), entries, out)
			}

			stdout := cmd.OutOrStdout()
			if !summaryOnly {
				for _, res := range results {
					if err := report.WriteResult(stdout, res, report.Options{Color: color}); err != nil {
						return err
					}
					fmt.Fprintln(stdout)
				}
			}
			report.WriteComparison(stdout, entries)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&policies, "policies", nil, "Policies to compare (default: all built-ins)")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 2, "Round Robin time quantum")
	cmd.Flags().StringVar(&direction, "direction", "lower", "Priority direction: lower or higher number wins")
	cmd.Flags().StringVarP(&format, "format", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "Print only the summary table")
	cmd.Flags().BoolVar(&color, "color", false, "Colored output")

	return cmd
}
