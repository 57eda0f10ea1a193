package main

import (
	"fmt"
	"path/filepath"

	"github.com/aretw0/campaignguide/internal/validator"
	"github.com/aretw0/campaignguide/pkg/adapters/file"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Check the campaign content for consistency",
		Long: `Validates every document against its JSON schema, then checks that the play
order, step references, side scenario parents and scenario effects resolve.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.ContentDir
			if !cmd.Flags().Changed("dir") && len(args) > 0 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if err := validator.ValidateCampaign(file.NewLoader(abs)); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Campaign is valid! ✅")
			return nil
		},
	}
}
