package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Explicit output path; empty means ./.sysdash.yaml
	Global         bool   // Write ~/.config/sysdash/config.yaml instead
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// initTargetPath picks where the config file goes.
func initTargetPath(opts InitOptions) (string, error) {
	if opts.Global {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Can't find your home directory",
				"Set HOME, or pass --config with an explicit path.")
		}
		return config.GlobalConfigPath(home), nil
	}
	if opts.Path != "" {
		return config.ExpandTilde(opts.Path), nil
	}
	return filepath.Join(".", config.ConfigFileName), nil
}

// interactive reports whether prompts can be shown.
func interactive() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Init creates a new sysdash configuration file.
func Init(w io.Writer, opts InitOptions) error {
	configPath, err := initTargetPath(opts)
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Write(configPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Created %s\n", ui.SuccessStyle.Render(ui.SymbolSuccess), configPath)
	return nil
}

// promptConfig asks for the handful of settings worth changing up front.
func promptConfig(cfg *config.Config) error {
	limit := strconv.Itoa(cfg.Processes.Limit)
	sortKey := cfg.Processes.Sort
	color := cfg.Output.Color

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sort processes by").
				Options(
					huh.NewOption("CPU usage", "cpu"),
					huh.NewOption("Memory usage", "memory"),
					huh.NewOption("PID", "pid"),
					huh.NewOption("Name", "name"),
				).
				Value(&sortKey),
			huh.NewInput().
				Title("Processes to show").
				Description("Rows in the Processes view (1-1000)").
				Value(&limit).
				Validate(validateLimit),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color output").
				Options(
					huh.NewOption("Auto-detect", "auto"),
					huh.NewOption("Always", "always"),
					huh.NewOption("Never", "never"),
				).
				Value(&color),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --defaults")
	}

	n, _ := strconv.Atoi(strings.TrimSpace(limit))
	cfg.Processes.Limit = n
	cfg.Processes.Sort = sortKey
	cfg.Output.Color = color
	return nil
}

func validateLimit(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < 1 || n > 1000 {
		return fmt.Errorf("pick a number between 1 and 1000")
	}
	return nil
}
