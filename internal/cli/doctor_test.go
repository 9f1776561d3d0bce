package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysdash/internal/doctor"
)

func sampleResults() []doctor.CheckResult {
	return []doctor.CheckResult{
		{Name: "provider", Category: doctor.CategoryProvider, Status: doctor.StatusPass, Message: "8 cores"},
		{Name: "config_file", Category: doctor.CategoryConfig, Status: doctor.StatusWarn,
			Message: "No config file found, using defaults", Suggestion: "Run 'sysdash init'", Fixable: true},
		{Name: "terminal", Category: doctor.CategoryTerminal, Status: doctor.StatusPass, Message: "Terminal is 120x40"},
		{Name: "extra", Category: "EXTRA", Status: doctor.StatusPass, Message: "extra"},
	}
}

func TestBuildDoctorOutput(t *testing.T) {
	out := buildDoctorOutput(sampleResults())

	require.Len(t, out.Categories, 4)
	assert.Equal(t, doctor.CategoryTerminal, out.Categories[0].Name)
	assert.Equal(t, doctor.CategoryConfig, out.Categories[1].Name)
	assert.Equal(t, doctor.CategoryProvider, out.Categories[2].Name)
	assert.Equal(t, "EXTRA", out.Categories[3].Name)

	assert.Equal(t, SummaryOutput{Pass: 3, Warn: 1, Fail: 0, Fixable: 1, AllClear: false}, out.Summary)
}

func TestOutputDoctorJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, outputDoctorJSON(&buf, sampleResults()))

	var env struct {
		Success bool         `json:"success"`
		Data    DoctorOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.Data.Summary.Warn)
	assert.Contains(t, buf.String(), `"status": "warn"`)
}

func TestOutputDoctorText(t *testing.T) {
	t.Run("issues", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, outputDoctorText(&buf, sampleResults()))

		out := buf.String()
		assert.Contains(t, out, "sysdash Diagnostic Report")
		assert.Contains(t, out, "TERMINAL")
		assert.Contains(t, out, "Terminal is 120x40")
		assert.Contains(t, out, "Run 'sysdash init'")
		assert.Contains(t, out, "1 issue found")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("TERMINAL")), bytes.Index(buf.Bytes(), []byte("CONFIG")))
	})

	t.Run("all clear", func(t *testing.T) {
		var buf bytes.Buffer
		results := []doctor.CheckResult{{Category: doctor.CategoryTerminal, Status: doctor.StatusPass, Message: "ok"}}
		require.NoError(t, outputDoctorText(&buf, results))
		assert.Contains(t, buf.String(), "Everything looks good")
	})
}
