package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rileyhilliard/sysdash/internal/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks the config for errors and returns a structured error
// describing the first problem found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sysdash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest sysdash release, or lower 'version' in your config.")
	}

	if err := validate.Struct(cfg); err != nil {
		return friendlyError(err)
	}

	if err := validateThresholds(cfg.Thresholds); err != nil {
		return errors.New(errors.ErrConfig, err.Error(),
			"Check the 'thresholds' section in your .sysdash.yaml.")
	}

	return nil
}

// validateThresholds checks the ordering constraint the struct tags can't express.
func validateThresholds(t ThresholdsConfig) error {
	checks := []struct {
		name string
		v    ThresholdValues
	}{
		{"cpu", t.CPU},
		{"memory", t.Memory},
		{"disk", t.Disk},
	}
	for _, c := range checks {
		if c.v.Warning > c.v.Critical {
			return fmt.Errorf("thresholds.%s.warning (%d%%) is higher than critical (%d%%) - should be the other way around",
				c.name, c.v.Warning, c.v.Critical)
		}
	}
	return nil
}

// friendlyError turns the first validator failure into a message that names
// the YAML key and the accepted values.
func friendlyError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Config validation failed",
			"Check your .sysdash.yaml.")
	}

	fe := verrs[0]
	key := yamlKey(fe.Namespace())

	var msg, suggestion string
	switch fe.Tag() {
	case "oneof":
		opts := strings.Fields(fe.Param())
		msg = fmt.Sprintf("%s '%v' isn't valid - use %s", key, fe.Value(), quoteList(opts))
		suggestion = fmt.Sprintf("Set '%s' to one of the listed values.", key)
	case "gte", "lte":
		msg = fmt.Sprintf("%s is out of range (got %v)", key, fe.Value())
		suggestion = rangeHint(fe.StructField())
	default:
		msg = fmt.Sprintf("%s failed '%s' validation", key, fe.Tag())
		suggestion = "Check your .sysdash.yaml."
	}

	return errors.WrapWithCode(err, errors.ErrConfig, msg, suggestion)
}

func rangeHint(field string) string {
	switch field {
	case "Warning", "Critical":
		return "Thresholds are percentages and need to be 0-100."
	case "Limit":
		return "processes.limit needs to be between 1 and 1000."
	default:
		return "Check your .sysdash.yaml."
	}
}

// yamlKey converts a validator namespace like "Config.Thresholds.CPU.Warning"
// into the YAML path "thresholds.cpu.warning".
func yamlKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}

// quoteList renders ["a","b","c"] as "'a', 'b', or 'c'".
func quoteList(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = "'" + o + "'"
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
