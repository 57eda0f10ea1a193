package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGraphCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the campaign graph visualization",
		Long: `Outputs a Mermaid diagram (graph TD) of the scenario chain. With --campaign the
scenarios are painted with the statuses of that campaign instance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			campaignID, _ := cmd.Flags().GetString("campaign")
			eng, closer, err := a.newEngine()
			if err != nil {
				return err
			}
			defer closer.Close()

			out, err := eng.Graph(cmd.Context(), campaignID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("campaign", "", "Campaign instance whose statuses paint the graph")
	return cmd
}
