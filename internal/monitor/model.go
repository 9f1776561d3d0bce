package monitor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/state"
	"github.com/rileyhilliard/sysdash/internal/telemetry"
)

// PollInterval is how often the dashboard reads the shared state and redraws.
const PollInterval = 100 * time.Millisecond

// Default process table settings.
const (
	DefaultProcessLimit = 50
	DefaultProcessSort  = telemetry.SortByCPU
)

// Width breakpoints for layout decisions.
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
)

// defaultWidth is assumed until the first WindowSizeMsg arrives.
const defaultWidth = 100

// Reader is the read side of the shared telemetry state.
type Reader interface {
	Read() (state.Reading, error)
}

// Options tunes what the dashboard shows. Zero values fall back to defaults.
type Options struct {
	Thresholds   Thresholds
	ProcessLimit int
	ProcessSort  telemetry.SortKey
	Logger       logger.Logger
}

// Model is the Bubble Tea model for the dashboard. It owns navigation and
// the most recent read of the shared state; rendering uses only that read.
type Model struct {
	reader Reader
	opts   Options
	log    logger.Logger

	nav     Nav
	reading state.Reading
	readErr error
	frames  uint64

	width  int
	height int
}

// frameMsg drives the render cadence.
type frameMsg time.Time

// NewModel creates a dashboard reading from r, starting on the Overview.
func NewModel(r Reader, opts Options) Model {
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds()
	}
	if opts.ProcessLimit <= 0 {
		opts.ProcessLimit = DefaultProcessLimit
	}
	if opts.ProcessSort == "" {
		opts.ProcessSort = DefaultProcessSort
	}
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	return Model{
		reader: r,
		opts:   opts,
		log:    log,
		nav:    Nav{View: ViewOverview},
	}
}

// Init reads once and starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return frameMsg(time.Now()) }
}

// Update handles key presses, resizes and frame ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		in := DecodeKey(msg)
		if in == InputNone {
			return m, nil
		}
		m.nav = Transition(m.nav, in)
		if m.nav.Quit {
			m.log.Debug("quit requested")
			return m, tea.Quit
		}
		// Show the new view with current data rather than waiting a frame.
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case frameMsg:
		m.refresh()
		m.frames++
		return m, frameCmd()
	}

	return m, nil
}

// View renders the dashboard from the last read.
func (m Model) View() string {
	if m.nav.Quit {
		return ""
	}
	return m.renderDashboard()
}

func frameCmd() tea.Cmd {
	return tea.Tick(PollInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// refresh reads the shared state. A failed read replaces the previous data
// with the error so every view reports it the same way.
func (m *Model) refresh() {
	r, err := m.reader.Read()
	if err != nil {
		if m.readErr == nil {
			m.log.Error("reading telemetry state: %v", err)
		}
		m.readErr = err
		m.reading = state.Reading{}
		return
	}
	if m.readErr != nil {
		m.log.Info("telemetry state readable again")
	}
	m.readErr = nil
	m.reading = r
}

// Nav returns the navigation state.
func (m Model) Nav() Nav {
	return m.nav
}

// CurrentView returns the view being shown.
func (m Model) CurrentView() View {
	return m.nav.View
}

// Err returns the error from the last read, if any.
func (m Model) Err() error {
	return m.readErr
}

// Reading returns the data from the last successful read.
func (m Model) Reading() state.Reading {
	return m.reading
}

// Frames returns how many frame ticks have been handled.
func (m Model) Frames() uint64 {
	return m.frames
}

// contentWidth is the usable width for panels.
func (m Model) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	if w < 20 {
		w = 20
	}
	return w - 2
}

// compact reports whether the terminal is too narrow for side-by-side panels.
func (m Model) compact() bool {
	return m.width > 0 && m.width < BreakpointCompact
}
