// Package cli implements the workforce-dashboard command tree.
package cli

import (
	"fmt"

	"workforce-dashboard/config"
	"workforce-dashboard/logging"
	"workforce-dashboard/metrics"
	"workforce-dashboard/session"

	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	verbose bool
	pushURL string
	cfg     *config.Config
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "workforce-dashboard",
		Short: "Load staff rosters and call/care logs, then query or export them",
		Long: `workforce-dashboard ingests roster spreadsheets and call/care log exports (.xlsx, .xls, .csv),
normalizes their dates and headers, and answers schedule and productivity queries
from the command line or over HTTP.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			a.cfg = cfg
			if a.pushURL == "" {
				a.pushURL = cfg.PushURL
			}
			if err := logging.InitWriter(cmd.ErrOrStderr(), a.verbose || cfg.Verbose, cfg.LogDir); err != nil {
				return err
			}
			log.Debug().Str("version", Version).Str("command", cmd.Name()).Msg("Starting")
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&a.pushURL, "push-url", "", "Pushgateway URL to push metrics to after a run (e.g., http://localhost:9091)")

	root.AddCommand(
		newScheduleCommand(a),
		newProductivityCommand(a),
		newServeCommand(a),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) newSession() *session.Session {
	return session.New(session.Options{ExcludedSolutions: a.cfg.ExcludedSolutions})
}

// pushMetrics sends this run's metrics to the Pushgateway when one is configured.
func (a *app) pushMetrics() {
	if a.pushURL == "" {
		return
	}
	if err := push.New(a.pushURL, "workforce_dashboard").Gatherer(metrics.Registry).Push(); err != nil {
		log.Warn().Err(err).Str("url", a.pushURL).Msg("Could not push metrics")
		return
	}
	log.Info().Str("url", a.pushURL).Msg("Metrics pushed")
}
