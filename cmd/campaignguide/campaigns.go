package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newCampaignsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Manage stored campaign instances",
		Long:  `List, inspect and remove the campaign instances kept in the decision store.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List all campaign instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closer, err := a.openStore()
			if err != nil {
				return err
			}
			defer closer.Close()

			ids, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list campaigns: %w", err)
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No campaigns found.")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "inspect <campaign-id>",
		Short: "Print the recorded decisions of a campaign instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closer, err := a.openStore()
			if err != nil {
				return err
			}
			defer closer.Close()

			snapshot, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load %q: %w", args[0], err)
			}
			data, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <campaign-id>...",
		Short: "Remove one or more campaign instances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closer, err := a.openStore()
			if err != nil {
				return err
			}
			defer closer.Close()

			var errs []error
			for _, id := range args {
				if err := store.Delete(cmd.Context(), id); err != nil {
					errs = append(errs, fmt.Errorf("remove %q: %w", id, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed campaign '%s'\n", id)
			}
			return errors.Join(errs...)
		},
	})
	return cmd
}
