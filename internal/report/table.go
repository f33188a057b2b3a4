package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/me/schedsim/pkg/model"
	"github.com/olekukonko/tablewriter"
)

// WriteTable renders the per-process metrics of res in completion order with
// the averages in the footer.
func WriteTable(w io.Writer, res *model.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Burst", "Priority", "Start", "End", "Turnaround", "Waiting", "Response"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	rows := make([][]string, 0, len(res.Completed))
	for i := range res.Completed {
		e := &res.Completed[i]
		rows = append(rows, []string{
			strconv.Itoa(e.Process.PID),
			strconv.Itoa(e.Process.Arrival),
			strconv.Itoa(e.Process.Burst),
			strconv.Itoa(e.Process.Priority),
			strconv.Itoa(e.Start),
			strconv.Itoa(e.End),
			strconv.Itoa(e.Turnaround()),
			strconv.Itoa(e.Waiting()),
			strconv.Itoa(e.Response()),
		})
	}
	table.AppendBulk(rows)

	sum := res.Summary()
	table.SetFooter([]string{"", "", "", "", "", "Average",
		fmt.Sprintf("%.2f", sum.AvgTurnaround),
		fmt.Sprintf("%.2f", sum.AvgWaiting),
		fmt.Sprintf("%.2f", sum.AvgResponse),
	})
	table.Render()
}

// Compare summarizes results for WriteComparison.
func Compare(results []*model.Result) []model.ComparisonEntry {
	entries := make([]model.ComparisonEntry, len(results))
	for i, res := range results {
		entries[i] = model.ComparisonEntry{Policy: res.Policy, Summary: res.Summary()}
	}
	return entries
}

// WriteComparison renders one summary row per policy.
func WriteComparison(w io.Writer, entries []model.ComparisonEntry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Makespan", "Avg Turnaround", "Avg Waiting", "Avg Response", "Utilization", "Throughput", "Switches"})

	for _, e := range entries {
		sum := e.Summary
		table.Append([]string{
			e.Policy,
			strconv.Itoa(sum.Makespan),
			fmt.Sprintf("%.2f", sum.AvgTurnaround),
			fmt.Sprintf("%.2f", sum.AvgWaiting),
			fmt.Sprintf("%.2f", sum.AvgResponse),
			fmt.Sprintf("%.1f%%", sum.Utilization*100),
			fmt.Sprintf("%.3f/t", sum.Throughput),
			strconv.Itoa(sum.ContextSwitches),
		})
	}
	table.Render()
}
