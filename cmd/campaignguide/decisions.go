package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/campaignguide"
	"github.com/spf13/cobra"
)

func newNextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "next <campaign-id>",
		Short: "Print the scenario that follows the campaign log",
		Args:  exactCampaignID,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closer, err := a.newEngine()
			if err != nil {
				return err
			}
			defer closer.Close()

			next, ok, err := eng.Next(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "End of campaign.")
				return nil
			}
			name, ok := eng.Guide().FullScenarioName(next.ID.EncodedScenarioID)
			if !ok && next.Scenario != nil {
				name = next.Scenario.FullName
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", next.ID.EncodedScenarioID, name)
			return nil
		},
	}
}

func newRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <campaign-id> <decision-json>...",
		Short: "Record player decisions and print the new trace",
		Long: `Appends decisions to the campaign instance. Each decision is a JSON object:

  {"type":"start_scenario","scenario":"$campaign_setup"}
  {"type":"choice","scenario":"the_gathering","step":"$play_scenario","number":0}

Nothing is written when any decision is invalid.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode, _ := cmd.Flags().GetBool("json")
			decisions, err := parseDecisions(args[1:])
			if err != nil {
				return err
			}

			eng, closer, err := a.newEngine()
			if err != nil {
				return err
			}
			defer closer.Close()

			trace, err := eng.Record(cmd.Context(), args[0], decisions...)
			if err != nil {
				return err
			}
			return printTrace(cmd.OutOrStdout(), eng, trace, jsonMode)
		},
	}
	cmd.Flags().Bool("json", false, "Print the trace as JSON")
	return cmd
}

func newUndoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <campaign-id> <scenario-id>",
		Short: "Remove the newest decision of the campaign (the scenario must be the undoable one)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode, _ := cmd.Flags().GetBool("json")
			eng, closer, err := a.newEngine()
			if err != nil {
				return err
			}
			defer closer.Close()

			trace, err := eng.Undo(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printTrace(cmd.OutOrStdout(), eng, trace, jsonMode)
		},
	}
	cmd.Flags().Bool("json", false, "Print the trace as JSON")
	return cmd
}

func parseDecisions(raw []string) ([]campaignguide.Decision, error) {
	out := make([]campaignguide.Decision, 0, len(raw))
	for i, r := range raw {
		var d campaignguide.Decision
		dec := json.NewDecoder(strings.NewReader(r))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decision %d: %w", i+1, err)
		}
		out = append(out, d)
	}
	return out, nil
}
