package ctl

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"classifyd/pkg/types"
)

// buildRootCmdWith constructs the classifyctl command tree bound to cfg.
func buildRootCmdWith(cfg *Config, in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "classifyctl",
		Short:         "Command-line client for classifyd",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&cfg.Server, "server", "s", cfg.Server, "classifyd base URL (defaults CLASSIFYD_URL)")
	root.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout")
	root.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text|json")
	root.PersistentFlags().StringVar(&cfg.LogLvl, "log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults CLASSIFYCTL_LOG_LEVEL)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfg.Output != "text" && cfg.Output != "json" {
			return fmt.Errorf("unknown output format %q (want text or json)", cfg.Output)
		}
		SetLogLevel(cfg.LogLvl)
		return nil
	}

	models := make([]string, len(types.KnownModels))
	for i, id := range types.KnownModels {
		models[i] = string(id)
	}
	predictCmd := &cobra.Command{
		Use:       "predict <" + strings.Join(models, "|") + "> [text...]",
		Short:     "Classify text; reads stdin when no text is given",
		Example:   "  classifyctl predict email \"Your account is locked, verify now\"\n  cat message.txt | classifyctl predict email",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: models,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := types.ParseModelID(args[0])
			if !ok {
				return fmt.Errorf("unknown model %q (want one of %s)", args[0], strings.Join(models, ", "))
			}
			text := strings.Join(args[1:], " ")
			if len(args) == 1 {
				b, err := io.ReadAll(in)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = strings.TrimRight(string(b), "\r\n")
			}
			return runPredict(cmd.Context(), cfg, out, id, text)
		},
	}
	healthCmd := &cobra.Command{Use: "health", Short: "Show server health and loaded models", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return runHealth(cmd.Context(), cfg, out)
	}}
	modelsCmd := &cobra.Command{Use: "models", Short: "List loaded models", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return runModels(cmd.Context(), cfg, out)
	}}
	statusCmd := &cobra.Command{Use: "status", Short: "Show serving counters", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd.Context(), cfg, out)
	}}
	var waitTimeout, waitInterval time.Duration
	waitCmd := &cobra.Command{Use: "wait", Short: "Block until the server reports healthy", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return runWait(cmd.Context(), cfg, out, waitTimeout, waitInterval)
	}}
	waitCmd.Flags().DurationVar(&waitTimeout, "for", 60*time.Second, "How long to wait")
	waitCmd.Flags().DurationVar(&waitInterval, "interval", time.Second, "Polling interval")

	root.AddCommand(predictCmd, healthCmd, modelsCmd, statusCmd, waitCmd)
	return root
}
