package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/monitor"
	"github.com/rileyhilliard/sysdash/internal/telemetry"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// Global flags
var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "sysdash",
	Short: "Terminal system monitor",
	Long: `sysdash is a full-screen dashboard for the local machine's CPU, memory,
disks, network and processes. Metrics are sampled once per second and the
last minute of history is graphed.

Keyboard shortcuts:
  left / right  Switch view
  q             Quit`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .sysdash.yaml, then ~/.config/sysdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		stop()
		os.Exit(1)
	}
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// loadConfig resolves the effective config and applies its color mode.
// --no-color always wins over the config file.
func loadConfig() (*config.Config, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}

	if path != "" {
		logger.Default().Debug("using config %s", path)
	}

	mode := ui.ColorMode(cfg.Output.Color)
	if noColor {
		mode = ui.ColorNever
	}
	ui.ApplyColorMode(mode)

	return cfg, nil
}

// dashboardOptions maps config onto the dashboard's display options.
func dashboardOptions(cfg *config.Config, log logger.Logger) monitor.Options {
	return monitor.Options{
		Thresholds: monitor.Thresholds{
			CPU:    monitor.Threshold(cfg.Thresholds.CPU),
			Memory: monitor.Threshold(cfg.Thresholds.Memory),
			Disk:   monitor.Threshold(cfg.Thresholds.Disk),
		},
		ProcessLimit: cfg.Processes.Limit,
		ProcessSort:  telemetry.SortKey(cfg.Processes.Sort),
		Logger:       log,
	}
}
