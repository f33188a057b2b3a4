package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/me/schedsim/internal/workload"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample [name]",
		Short: "List the built-in workloads or print one as YAML",
		Long: `Without arguments, list the built-in workloads. With a name, print that
workload as YAML so it can be saved and edited:

  schedsim sample classic > classic.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				name := strings.TrimPrefix(args[0], samplePrefix)
				w, ok := workload.Sample(name)
				if !ok {
					return fmt.Errorf("unknown sample %q (available: %s)", name, strings.Join(workload.SampleNames(), ", "))
				}
				return workload.Encode(cmd.OutOrStdout(), w)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", "Processes", "Quantum", "Description"})
			table.SetAutoWrapText(false)
			for _, name := range workload.SampleNames() {
				w, _ := workload.Sample(name)
				quantum := "-"
				if w.Quantum > 0 {
					quantum = strconv.Itoa(w.Quantum)
				}
				table.Append([]string{name, strconv.Itoa(len(w.Processes)), quantum, w.Description})
			}
			table.Render()
			return nil
		},
	}
	return cmd
}
