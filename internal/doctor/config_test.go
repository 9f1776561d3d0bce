package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(work, ".git"), 0o755))
	t.Chdir(work)
	return work
}

func TestConfigFileCheck(t *testing.T) {
	t.Run("no config uses defaults", func(t *testing.T) {
		isolate(t)
		r := (&ConfigFileCheck{}).Run()
		assert.Equal(t, StatusWarn, r.Status)
		assert.True(t, r.Fixable)
		assert.Contains(t, r.Suggestion, "sysdash init")
	})

	t.Run("local config", func(t *testing.T) {
		work := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(work, ".sysdash.yaml"), []byte("version: 1\n"), 0o644))

		r := (&ConfigFileCheck{}).Run()
		assert.Equal(t, StatusPass, r.Status)
		assert.Equal(t, "Config file: .sysdash.yaml", r.Message)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		isolate(t)
		r := (&ConfigFileCheck{ConfigPath: "/definitely/not/here.yaml"}).Run()
		assert.Equal(t, StatusFail, r.Status)
		assert.Contains(t, r.Message, "Specified config file not found")
	})
}

func TestConfigSchemaCheck(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		isolate(t)
		r := (&ConfigSchemaCheck{}).Run()
		assert.Equal(t, StatusPass, r.Status)
		assert.Contains(t, r.Message, "top 50 processes by cpu")
	})

	t.Run("invalid file", func(t *testing.T) {
		work := isolate(t)
		path := filepath.Join(work, ".sysdash.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output:\n  color: rainbow\n"), 0o644))

		r := (&ConfigSchemaCheck{}).Run()
		assert.Equal(t, StatusFail, r.Status)
		assert.Contains(t, r.Message, "output.color 'rainbow' isn't valid")
	})

	t.Run("invalid env override", func(t *testing.T) {
		isolate(t)
		t.Setenv("SYSDASH_PROCESSES_SORT", "threads")

		r := (&ConfigSchemaCheck{}).Run()
		assert.Equal(t, StatusFail, r.Status)
	})
}

func TestNewConfigChecks(t *testing.T) {
	checks := NewConfigChecks("")
	require.Len(t, checks, 2)
	for _, c := range checks {
		assert.Equal(t, CategoryConfig, c.Category())
	}
}
