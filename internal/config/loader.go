package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/sysdash/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".sysdash.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/sysdash"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. SYSDASH_PROCESSES_LIMIT.
	EnvPrefix = "SYSDASH"
)

// Load reads config from the specified path, applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'sysdash init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .sysdash.yaml in current directory
// 3. .sysdash.yaml in parent directories (stops at git root or home)
// 4. ~/.config/sysdash/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	if local := filepath.Join(cwd, ConfigFileName); fileExists(local) {
		return local, nil
	}

	home, _ := os.UserHomeDir()
	dir := cwd
	for !fileExists(filepath.Join(dir, ".git")) {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		if candidate := filepath.Join(dir, ConfigFileName); fileExists(candidate) {
			return candidate, nil
		}
	}

	if home != "" {
		if global := GlobalConfigPath(home); fileExists(global) {
			return global, nil
		}
	}

	return "", nil
}

// GlobalConfigPath returns ~/.config/sysdash/config.yaml for the given home.
func GlobalConfigPath(home string) string {
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// LoadOrDefault finds and loads a config, falling back to defaults (still
// subject to environment overrides) when none exists. The returned path is
// empty when defaults were used.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// newViper returns a viper instance with defaults and SYSDASH_* overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("thresholds.cpu.warning", d.Thresholds.CPU.Warning)
	v.SetDefault("thresholds.cpu.critical", d.Thresholds.CPU.Critical)
	v.SetDefault("thresholds.memory.warning", d.Thresholds.Memory.Warning)
	v.SetDefault("thresholds.memory.critical", d.Thresholds.Memory.Critical)
	v.SetDefault("thresholds.disk.warning", d.Thresholds.Disk.Warning)
	v.SetDefault("thresholds.disk.critical", d.Thresholds.Disk.Critical)
	v.SetDefault("processes.limit", d.Processes.Limit)
	v.SetDefault("processes.sort", d.Processes.Sort)
	v.SetDefault("output.color", d.Output.Color)
}

// parseConfig converts viper config to our Config struct and validates it.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	cfg.Processes.Sort = strings.ToLower(strings.TrimSpace(cfg.Processes.Sort))
	cfg.Output.Color = strings.ToLower(strings.TrimSpace(cfg.Output.Color))

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ExpandTilde replaces ~ or ~/path with the user's home directory.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
