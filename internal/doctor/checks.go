// Package doctor runs the diagnostic checks behind `sysdash doctor`.
package doctor

import (
	"fmt"
	"sync"
)

// Check categories, in display order.
const (
	CategoryTerminal = "TERMINAL"
	CategoryConfig   = "CONFIG"
	CategoryProvider = "METRICS"
)

// CategoryOrder is the order categories are printed in.
var CategoryOrder = []string{CategoryTerminal, CategoryConfig, CategoryProvider}

// CheckStatus represents the result status of a check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

// String returns a human-readable status string.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText makes statuses readable in JSON output.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the form written by MarshalText.
func (s *CheckStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pass":
		*s = StatusPass
	case "warn":
		*s = StatusWarn
	case "fail":
		*s = StatusFail
	default:
		return fmt.Errorf("unknown check status %q", text)
	}
	return nil
}

// CheckResult contains the outcome of running a check.
type CheckResult struct {
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Fixable    bool        `json:"fixable,omitempty"` // `sysdash init` can address this
}

// Check defines the interface for diagnostic checks.
type Check interface {
	// Name returns the check's identifier.
	Name() string

	// Category returns the check's category (e.g., "CONFIG", "TERMINAL").
	Category() string

	// Run executes the check and returns the result.
	Run() CheckResult
}

// RunAll executes checks in order and returns the results.
func RunAll(checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	for i, check := range checks {
		results[i] = stamp(check, check.Run())
	}
	return results
}

// RunAllParallel executes all checks concurrently. Results keep the order
// of checks.
func RunAllParallel(checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	var wg sync.WaitGroup

	for i, check := range checks {
		wg.Add(1)
		go func(idx int, c Check) {
			defer wg.Done()
			results[idx] = stamp(c, c.Run())
		}(i, check)
	}

	wg.Wait()
	return results
}

// stamp fills in identity fields a check left blank.
func stamp(c Check, r CheckResult) CheckResult {
	if r.Name == "" {
		r.Name = c.Name()
	}
	if r.Category == "" {
		r.Category = c.Category()
	}
	return r
}

// GroupByCategory organizes results by their category.
func GroupByCategory(results []CheckResult) map[string][]CheckResult {
	grouped := make(map[string][]CheckResult)
	for _, r := range results {
		grouped[r.Category] = append(grouped[r.Category], r)
	}
	return grouped
}

// CountByStatus counts results by status.
func CountByStatus(results []CheckResult) map[CheckStatus]int {
	counts := make(map[CheckStatus]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

// HasFailures returns true if any result has a fail status.
func HasFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// HasIssues returns true if any result has a fail or warn status.
func HasIssues(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail || r.Status == StatusWarn {
			return true
		}
	}
	return false
}

// FixableCount returns the number of issues `sysdash init` would address.
func FixableCount(results []CheckResult) int {
	count := 0
	for _, r := range results {
		if r.Fixable && (r.Status == StatusFail || r.Status == StatusWarn) {
			count++
		}
	}
	return count
}

// Summary returns a summary string of the check results.
func Summary(results []CheckResult) string {
	counts := CountByStatus(results)
	warn := counts[StatusWarn]
	fail := counts[StatusFail]

	if fail == 0 && warn == 0 {
		return "Everything looks good"
	}

	total := warn + fail
	return fmt.Sprintf("%d issue%s found", total, pluralize(total))
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
