package cli

import (
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sysdash/internal/errors"
)

// Command-specific flags
var (
	snapshotFormat string
	doctorJSON     bool
	initForce      bool
	initDefaults   bool
	initGlobal     bool
)

// snapshotCmd prints a single sample for scripts and pipes
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one sample of system metrics",
	Long: `Sample the host twice, one second apart, and print the result.

Works without a terminal, so it is the way to feed sysdash data into
scripts or logs.

Examples:
  sysdash snapshot
  sysdash snapshot --format json | jq .data.cpu
  sysdash snapshot --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd.Context(), cmd.OutOrStdout(), snapshotFormat)
	},
}

// doctorCmd diagnoses terminal, config and metrics problems
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose terminal, config and metrics issues",
	Long: `Run diagnostic checks to identify common issues.

Checks:
  - Terminal capabilities and size
  - Config file location and validity
  - Access to host metrics

Examples:
  sysdash doctor
  sysdash doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.Context(), cmd.OutOrStdout(), doctorJSON)
	},
}

// initCmd creates a new .sysdash.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .sysdash.yaml configuration",
	Long: `Create a sysdash configuration file.

Writes .sysdash.yaml in the current directory (or the --config path) after
a few prompts. Use --defaults to skip the prompts.

Examples:
  sysdash init
  sysdash init --defaults
  sysdash init --global --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			Path:           cfgFile,
			Global:         initGlobal,
			Overwrite:      initForce,
			NonInteractive: initDefaults || !interactive(),
		})
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for sysdash.

Examples:
  # Bash
  sysdash completion bash > /etc/bash_completion.d/sysdash

  # Zsh
  sysdash completion zsh > "${fpath[1]}/_sysdash"

  # Fish
  sysdash completion fish > ~/.config/fish/completions/sysdash.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotFormat, "format", "o", FormatText, "output format: text, yaml, or json")

	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "skip prompts and write the default config")
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "write ~/.config/sysdash/config.yaml")

	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
