package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"classifyd/internal/engine"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// Replaced by the configured logger once config has loaded.
	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "classifyd").Logger()
	if err := newRootCmd(&log).ExecuteContext(ctx); err != nil {
		logStartupError(log, err)
		os.Exit(1)
	}
}

// logStartupError records err at fatal level. Unlike log.Fatal it does not
// exit; main picks the exit code.
func logStartupError(log zerolog.Logger, err error) {
	log.WithLevel(zerolog.FatalLevel).Err(err).Msg("classifyd failed")
}

func newRootCmd(log *zerolog.Logger) *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "classifyd",
		Short: "Serve the umpire, email and url text classifiers over HTTP",
		Long: "classifyd loads the umpire, email-phishing and url-phishing sequence classifiers\n" +
			"at startup and serves one POST route per model plus /health.\n\n" +
			"Settings are layered: defaults, --config file, CLASSIFYD_* environment, flags.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), cfgPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
			if err != nil {
				return err
			}
			*log = logger
			return run(cmd.Context(), cfg, logger, engine.NewBackend, nil)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Config file (.yaml, .yml, .json, .toml)")
	registerFlags(cmd.Flags())
	return cmd
}
