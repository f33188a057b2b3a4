package cli

import (
	"log/slog"
	"os"

	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
	flagConfig    string

	cfg    config.SimConfig
	logger *slog.Logger
	client *Client // nil unless a server is configured
)

// defaultServer returns the server URL from SCHEDSIM_SERVER, if set.
func defaultServer() string {
	return os.Getenv("SCHEDSIM_SERVER")
}

// defaultConfigPath returns ~/.schedsim.yaml, or "" without a home directory.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + string(os.PathSeparator) + ".schedsim.yaml"
}

// NewRootCmd creates the root cobra command for the schedsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedsim",
		Short: "schedsim - CPU scheduling simulator",
		Long: `schedsim simulates single-CPU scheduling policies (FCFS, Round Robin, SJF,
SRTF, priority and expression-ranked policies) over a process list and prints
the Gantt timeline with turnaround, waiting and response metrics.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadSimConfig(flagConfig)
			if err != nil {
				return err
			}
			cfg = loaded

			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = flagLogLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = flagLogFormat
			}
			if flagDebug {
				cfg.LogLevel = "debug"
			}
			if flagServer != "" {
				cfg.Server = flagServer
			}

			logger = logging.ForApp(
				logging.NewLoggerWithWriter(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cmd.ErrOrStderr()),
				"schedsim")
			client = nil
			if cfg.Server != "" {
				client = NewClient(cfg.Server, logger)
				logger.Debug("delegating to server", "server", cfg.Server)
			}
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "Simulation server URL; simulate locally when empty (or SCHEDSIM_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentFlags().StringVar(&flagConfig, "config", defaultConfigPath(), "Config file (YAML)")

	root.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newPoliciesCmd(),
		newSampleCmd(),
	)

	return root
}
