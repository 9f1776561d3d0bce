package config

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/sysdash/internal/errors"
)

const fileHeader = `# sysdash configuration
# Environment variables override any key, e.g. SYSDASH_PROCESSES_LIMIT=20.
`

// Marshal renders cfg as commented YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	buf.WriteString("\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config",
			"This is unexpected - please report it.")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config",
			"This is unexpected - please report it.")
	}
	return buf.Bytes(), nil
}

// Write validates cfg and writes it to path, creating parent directories.
func Write(path string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't create config directory "+dir,
				"Check directory permissions.")
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+path,
			"Check file permissions.")
	}
	return nil
}
