package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .sysdash.yaml configuration file.
// There is deliberately no sampling interval: sysdash always samples once
// per second.
type Config struct {
	Version    int              `yaml:"version" mapstructure:"version" validate:"gte=0"`
	Thresholds ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Processes  ProcessesConfig  `yaml:"processes" mapstructure:"processes"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// ThresholdsConfig holds the color bands for each resource gauge.
type ThresholdsConfig struct {
	CPU    ThresholdValues `yaml:"cpu" mapstructure:"cpu"`
	Memory ThresholdValues `yaml:"memory" mapstructure:"memory"`
	Disk   ThresholdValues `yaml:"disk" mapstructure:"disk"`
}

// ThresholdValues are percentages at which a gauge turns amber and red.
type ThresholdValues struct {
	Warning  int `yaml:"warning" mapstructure:"warning" validate:"gte=0,lte=100"`
	Critical int `yaml:"critical" mapstructure:"critical" validate:"gte=0,lte=100"`
}

// ProcessesConfig controls the Processes view.
type ProcessesConfig struct {
	// Limit is the maximum number of rows shown.
	Limit int `yaml:"limit" mapstructure:"limit" validate:"gte=1,lte=1000"`

	// Sort orders the table: "cpu", "memory", "pid" or "name".
	Sort string `yaml:"sort" mapstructure:"sort" validate:"oneof=cpu memory pid name"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	Color string `yaml:"color" mapstructure:"color" validate:"oneof=auto always never"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Thresholds: ThresholdsConfig{
			CPU:    ThresholdValues{Warning: 70, Critical: 90},
			Memory: ThresholdValues{Warning: 70, Critical: 90},
			Disk:   ThresholdValues{Warning: 80, Critical: 95},
		},
		Processes: ProcessesConfig{
			Limit: 50,
			Sort:  "cpu",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
