package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a non-focused Bubbles table sized to show every row.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	// Nothing is selectable; keep the cursor row looking like the others.
	s.Selected = s.Cell
	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a static table. Returns "" when there are no rows.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}
	return NewTable(columns, tableRows).View()
}

// CheckStatus is the outcome shown for one diagnostic row.
type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// DoctorCheckRow represents a row in the doctor diagnostic table.
type DoctorCheckRow struct {
	Status     CheckStatus
	Category   string
	Message    string
	Suggestion string // shown only when the check did not pass
}

// RenderDoctorTable groups rows by category, in first-seen order.
func RenderDoctorTable(rows []DoctorCheckRow) string {
	if len(rows) == 0 {
		return "No checks to display"
	}

	byCategory := make(map[string][]DoctorCheckRow)
	var order []string
	for _, row := range rows {
		if _, ok := byCategory[row.Category]; !ok {
			order = append(order, row.Category)
		}
		byCategory[row.Category] = append(byCategory[row.Category], row)
	}

	var b strings.Builder
	for _, cat := range order {
		b.WriteString(HeadingStyle.Render(cat))
		b.WriteString("\n")

		for _, row := range byCategory[cat] {
			b.WriteString("  " + statusIcon(row.Status) + " " + row.Message + "\n")
			if row.Suggestion != "" && row.Status != CheckPass {
				b.WriteString("    " + MutedStyle.Render(row.Suggestion) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func statusIcon(s CheckStatus) string {
	switch s {
	case CheckPass:
		return SuccessStyle.Render(SymbolSuccess)
	case CheckWarn:
		return WarningStyle.Render(SymbolWarning)
	case CheckFail:
		return ErrorStyle.Render(SymbolFail)
	default:
		return MutedStyle.Render(SymbolPending)
	}
}
