package doctor

import (
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/sysdash/internal/config"
)

// ConfigFileCheck reports which config file sysdash would use. A missing
// file is only a warning since defaults work fine.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run() CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Error finding config: %v", firstLine(err)),
			Suggestion: "Check the --config path, or run 'sysdash init' to create a config",
		}
	}

	if path == "" {
		return CheckResult{
			Status:     StatusWarn,
			Message:    "No config file found, using defaults",
			Suggestion: "Run 'sysdash init' to create a " + config.ConfigFileName + " file",
			Fixable:    true,
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", filepath.Base(path)),
	}
}

// ConfigSchemaCheck verifies that the effective config, including
// SYSDASH_* overrides, passes validation.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run() CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Schema error: %s", firstLine(err)),
			Suggestion: "Fix the configuration errors in your " + config.ConfigFileName,
		}
	}

	return CheckResult{
		Status: StatusPass,
		Message: fmt.Sprintf("Schema valid (top %d processes by %s, color %s)",
			cfg.Processes.Limit, cfg.Processes.Sort, cfg.Output.Color),
	}
}

// NewConfigChecks creates all config-related checks.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
	}
}
