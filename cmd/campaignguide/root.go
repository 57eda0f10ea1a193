package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/campaignguide/internal/config"
	"github.com/aretw0/campaignguide/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "campaignguide",
		Short: "Campaign guide walker for cooperative card game campaigns",
		Long: `campaignguide replays the recorded decisions of a campaign against its guide
and reports which scenario is playable, which are locked or skipped, and what
the campaign log holds.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("dir", "", "Directory containing campaign.yaml (env CAMPAIGNGUIDE_CONTENT_DIR)")
	flags.String("store", "", "Decision store: memory, file or redis (env CAMPAIGNGUIDE_STORE)")
	flags.String("data-dir", "", "Directory of the file store (env CAMPAIGNGUIDE_DATA_DIR)")
	flags.String("redis-addr", "", "Redis address of the redis store (env CAMPAIGNGUIDE_REDIS_ADDR)")
	flags.String("locale", "", "BCP 47 tag used to sort rules (env CAMPAIGNGUIDE_LOCALE)")
	flags.String("log-level", "", "debug, info, warn or error (env CAMPAIGNGUIDE_LOG_LEVEL)")
	flags.String("log-format", "", "text or json (env CAMPAIGNGUIDE_LOG_FORMAT)")

	rootCmd.AddCommand(
		newWalkCmd(a),
		newNextCmd(a),
		newRecordCmd(a),
		newUndoCmd(a),
		newCampaignsCmd(a),
		newValidateCmd(a),
		newGraphCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// configure loads the environment and lets explicit flags override it.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	overrides := map[string]*string{
		"dir":        &cfg.ContentDir,
		"store":      &cfg.StoreKind,
		"data-dir":   &cfg.DataDir,
		"redis-addr": &cfg.Redis.Addr,
		"locale":     &cfg.Locale,
		"log-level":  &cfg.LogLevel,
		"log-format": &cfg.LogFormat,
	}
	for name, target := range overrides {
		if cmd.Flags().Changed(name) {
			*target, _ = cmd.Flags().GetString(name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewWithFormat(cmd.ErrOrStderr(), level, logging.Format(cfg.LogFormat))
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func exactCampaignID(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%s requires exactly one campaign id", cmd.Name())
	}
	return nil
}
