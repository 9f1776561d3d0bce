package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/sysdash/internal/telemetry"
)

// DefaultProviderTimeout bounds a single diagnostic sample.
const DefaultProviderTimeout = 5 * time.Second

// ProviderCheck takes one sample from the metrics provider and reports
// what it could see.
type ProviderCheck struct {
	Provider telemetry.Provider
	Timeout  time.Duration
}

func (c *ProviderCheck) Name() string     { return "provider" }
func (c *ProviderCheck) Category() string { return CategoryProvider }

func (c *ProviderCheck) Run() CheckResult {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	snap, err := c.Provider.Sample(ctx)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Can't read host metrics: %s", firstLine(err)),
			Suggestion: "Run with SYSDASH_DEBUG=1 for details",
		}
	}
	if snap == nil {
		return CheckResult{
			Status:  StatusFail,
			Message: "Metrics provider returned no data",
		}
	}

	msg := fmt.Sprintf("%d cores, %d disks, %d interfaces, %d processes",
		snap.Cores, len(snap.Disks), len(snap.Interfaces), len(snap.Processes))

	var missing []string
	if snap.MemTotal == 0 {
		missing = append(missing, "memory")
	}
	if len(snap.Disks) == 0 {
		missing = append(missing, "disks")
	}
	if len(snap.Processes) == 0 {
		missing = append(missing, "processes")
	}
	if len(missing) > 0 {
		return CheckResult{
			Status:     StatusWarn,
			Message:    msg,
			Suggestion: "Nothing reported for " + strings.Join(missing, ", ") + "; those views will be empty",
		}
	}

	return CheckResult{Status: StatusPass, Message: msg}
}

// firstLine returns the first non-empty line of err's message, which for
// structured errors is the message without cause or suggestion.
func firstLine(err error) string {
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "✗"))
		if line != "" {
			return line
		}
	}
	return ""
}
