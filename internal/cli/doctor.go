package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/sysdash/internal/collector"
	"github.com/rileyhilliard/sysdash/internal/doctor"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand(ctx context.Context, w io.Writer, jsonOut bool) error {
	if noColor {
		ui.DisableColors()
	}

	checks := collectChecks(ctx, cfgFile)
	results := doctor.RunAllParallel(checks)

	if jsonOut {
		return outputDoctorJSON(w, results)
	}
	return outputDoctorText(w, results)
}

// collectChecks gathers every diagnostic check.
func collectChecks(ctx context.Context, cfgPath string) []doctor.Check {
	var checks []doctor.Check
	checks = append(checks, doctor.NewTerminalChecks()...)
	checks = append(checks, doctor.NewConfigChecks(cfgPath)...)
	checks = append(checks, &doctor.ProviderCheck{
		Provider: collector.New(ctx, logger.New("collector")),
	})
	return checks
}

// buildDoctorOutput groups results by category in display order.
func buildDoctorOutput(results []doctor.CheckResult) DoctorOutput {
	grouped := doctor.GroupByCategory(results)

	out := DoctorOutput{Categories: make([]CategoryOutput, 0, len(grouped))}
	for _, cat := range doctor.CategoryOrder {
		if rs, ok := grouped[cat]; ok {
			out.Categories = append(out.Categories, CategoryOutput{Name: cat, Results: rs})
			delete(grouped, cat)
		}
	}
	// Anything outside the known categories goes last, in result order.
	for _, r := range results {
		if rs, ok := grouped[r.Category]; ok {
			out.Categories = append(out.Categories, CategoryOutput{Name: r.Category, Results: rs})
			delete(grouped, r.Category)
		}
	}

	counts := doctor.CountByStatus(results)
	out.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}
	return out
}

// outputDoctorJSON outputs results in JSON format.
func outputDoctorJSON(w io.Writer, results []doctor.CheckResult) error {
	return WriteJSONSuccess(w, buildDoctorOutput(results))
}

// outputDoctorText outputs results in human-readable format.
func outputDoctorText(w io.Writer, results []doctor.CheckResult) error {
	out := buildDoctorOutput(results)

	var rows []ui.DoctorCheckRow
	for _, cat := range out.Categories {
		for _, r := range cat.Results {
			rows = append(rows, ui.DoctorCheckRow{
				Status:     ui.CheckStatus(r.Status.String()),
				Category:   cat.Name,
				Message:    r.Message,
				Suggestion: r.Suggestion,
			})
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(ui.HeadingStyle.Render("sysdash Diagnostic Report"))
	b.WriteString("\n\n")
	b.WriteString(ui.RenderDoctorTable(rows))
	b.WriteString(strings.Repeat("━", 60))
	b.WriteString("\n\n")

	if out.Summary.AllClear {
		fmt.Fprintf(&b, "%s %s\n", ui.SuccessStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	} else {
		fmt.Fprintf(&b, "%s %s\n", ui.ErrorStyle.Render(ui.SymbolFail), doctor.Summary(results))
		if out.Summary.Fixable > 0 {
			fmt.Fprintf(&b, "\n  Run %s to create a config file.\n", ui.MutedStyle.Render("sysdash init"))
		}
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
