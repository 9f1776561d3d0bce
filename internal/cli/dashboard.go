package cli

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rileyhilliard/sysdash/internal/collector"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/history"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/monitor"
	"github.com/rileyhilliard/sysdash/internal/sampler"
	"github.com/rileyhilliard/sysdash/internal/state"
)

// LogFileEnv overrides where debug logs go while the dashboard is open.
const LogFileEnv = "SYSDASH_LOG_FILE"

// dashboardCommand runs the interactive dashboard until the user quits.
func dashboardCommand(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTerminal,
			"sysdash needs an interactive terminal",
			"Run it directly in a terminal, or use 'sysdash snapshot' for piped output.")
	}

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := state.New(history.DefaultCapacity, sampler.Interval)
	provider := collector.New(ctx, logger.New("collector"))
	smp := sampler.New(provider, st, logger.New("sampler"))
	go smp.Run(ctx)

	dashLog := logger.New("dashboard")
	model := monitor.NewModel(st, dashboardOptions(cfg, dashLog))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()

	// The sampler exits on its own once the context is done; nothing waits
	// for an in-flight sample.
	cancel()

	samples, skipped := smp.Stats()
	dashLog.Debug("closed after %d samples (%d skipped)", samples, skipped)

	if err != nil && !stoppedBySignal(err) {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"The dashboard stopped unexpectedly",
			"Check that your terminal supports full-screen programs.")
	}
	return nil
}

// stoppedBySignal reports whether the program ended because the user or the
// OS asked it to. Our context cancellation surfaces as ErrProgramKilled, and
// a SIGINT bubbletea saw first as ErrInterrupted.
func stoppedBySignal(err error) bool {
	return errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)
}

// setupLogging keeps log output off the screen the dashboard owns. With
// SYSDASH_DEBUG set it goes to a file; otherwise it is discarded.
func setupLogging() (func(), error) {
	if !logger.DebugEnabled() {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	path := debugLogPath()
	f, err := tea.LogToFile(path, "sysdash")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open debug log "+path,
			"Set "+LogFileEnv+" to a writable path, or unset "+logger.DebugEnv+".")
	}
	return func() { _ = f.Close() }, nil
}

func debugLogPath() string {
	if p := os.Getenv(LogFileEnv); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "sysdash-debug.log")
}
