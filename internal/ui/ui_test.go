package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Mount", Width: 20},
		{Title: "Usage", Width: 10},
	}
	rows := []table.Row{
		{"/", "42%"},
		{"/home", "7%"},
	}

	view := NewTable(columns, rows).View()
	assert.Contains(t, view, "Mount")
	assert.Contains(t, view, "Usage")
	assert.Contains(t, view, "/home")
	assert.Contains(t, view, "42%")
}

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Interface", Width: 15},
		{Title: "Received", Width: 10},
	}
	output := RenderSimpleTable(columns, [][]string{
		{"eth0", "1.0 GiB"},
		{"wlan0", "20 MiB"},
	})

	assert.Contains(t, output, "Interface")
	assert.Contains(t, output, "eth0")
	assert.Contains(t, output, "wlan0")
	assert.Contains(t, output, "20 MiB")
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "Name", Width: 20}}, nil))
}

func TestRenderDoctorTable(t *testing.T) {
	out := RenderDoctorTable([]DoctorCheckRow{
		{Status: CheckPass, Category: "Terminal", Message: "stdout is a terminal", Suggestion: "hidden"},
		{Status: CheckFail, Category: "Metrics", Message: "CPU unreadable", Suggestion: "check /proc"},
		{Status: CheckWarn, Category: "Terminal", Message: "small window", Suggestion: "resize"},
	})

	assert.Contains(t, out, "Terminal")
	assert.Contains(t, out, "Metrics")
	assert.Contains(t, out, "check /proc")
	assert.Contains(t, out, "resize")
	assert.NotContains(t, out, "hidden", "suggestions only for non-passing checks")
	// Categories keep first-seen order with rows grouped.
	assert.Less(t, strings.Index(out, "small window"), strings.Index(out, "Metrics"))
}

func TestRenderDoctorTable_Empty(t *testing.T) {
	assert.Equal(t, "No checks to display", RenderDoctorTable(nil))
}

func TestThresholdColor(t *testing.T) {
	assert.Equal(t, ColorSuccess, ThresholdColor(10, 70, 90))
	assert.Equal(t, ColorWarning, ThresholdColor(70, 70, 90))
	assert.Equal(t, ColorError, ThresholdColor(95, 70, 90))
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(-1))
	assert.Equal(t, 100.0, ClampPercent(101))
	assert.Equal(t, 55.5, ClampPercent(55.5))
}

func TestRenderBar(t *testing.T) {
	assert.Empty(t, RenderBar(50, 0, 70, 90))

	out := RenderBar(50, 10, 70, 90)
	assert.Equal(t, 5, strings.Count(out, string(BarFilled)))
	assert.Equal(t, 5, strings.Count(out, string(BarEmpty)))
	assert.Contains(t, out, " 50%")

	assert.Equal(t, 10, strings.Count(RenderBar(250, 10, 70, 90), string(BarFilled)))
}

func TestApplyColorMode(t *testing.T) {
	original := lipgloss.ColorProfile()
	defer lipgloss.SetColorProfile(original)

	ApplyColorMode(ColorNever)
	assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile())

	ApplyColorMode(ColorAlways)
	assert.Equal(t, termenv.TrueColor, lipgloss.ColorProfile())

	ApplyColorMode(ColorAuto)
	assert.Equal(t, termenv.TrueColor, lipgloss.ColorProfile(), "auto leaves the profile alone")
}
