package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/campaignguide"
	"github.com/aretw0/campaignguide/internal/presentation/tui"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/spf13/cobra"
)

func newWalkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "walk <campaign-id>",
		Short: "Walk a campaign instance and print its trace",
		Long: `Replays every recorded decision of the campaign instance and prints the status
of each scenario. Output is rendered markdown on a terminal, plain text otherwise.`,
		Args: exactCampaignID,
		RunE: func(cmd *cobra.Command, args []string) error {
			standalone, _ := cmd.Flags().GetString("standalone")
			jsonMode, _ := cmd.Flags().GetBool("json")

			eng, closer, err := a.newEngine()
			if err != nil {
				return err
			}
			defer closer.Close()

			var trace *domain.ProcessedCampaign
			if standalone != "" {
				trace, err = eng.ProcessStandalone(cmd.Context(), args[0], standalone)
			} else {
				trace, err = eng.Process(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return printTrace(cmd.OutOrStdout(), eng, trace, jsonMode)
		},
	}
	cmd.Flags().String("standalone", "", "Walk only this scenario, played outside its campaign")
	cmd.Flags().Bool("json", false, "Print the trace as JSON")
	return cmd
}

func printTrace(w io.Writer, eng *campaignguide.Engine, trace *domain.ProcessedCampaign, jsonMode bool) error {
	if jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(trace)
	}

	if isTerminal(w) {
		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		out, err := render(tui.TraceMarkdown(eng.Guide().CampaignName(), trace))
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
		return nil
	}

	for _, s := range trace.Scenarios {
		fmt.Fprintf(w, "%s\t%s\n", s.ID.EncodedScenarioID, tui.Status(w, string(s.Status)))
	}
	return nil
}
