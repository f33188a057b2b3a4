package cli

import (
	"github.com/me/schedsim/internal/report"
	"github.com/me/schedsim/internal/scheduler"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newPoliciesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "policies",
		Aliases: []string{"ls-policies"},
		Short:   "List the available scheduling policies",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			infos := scheduler.Policies()
			if client != nil {
				infos, err = client.Policies(cmd.Context())
				if err != nil {
					return err
				}
			}

			if out != report.FormatTable {
				return report.Encode(cmd.OutOrStdout(), infos, out)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", "Preemptive", "Description"})
			table.SetAutoWrapText(false)
			for _, info := range infos {
				preemptive := "no"
				if info.Preemptive {
					preemptive = "yes"
				}
				table.Append([]string{info.Name, preemptive, info.Description})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "table", "Output format (table, json, yaml)")
	return cmd
}
