package monitor

// View is one of the dashboard's pages.
type View int

const (
	ViewOverview View = iota
	ViewCPU
	ViewMemory
	ViewDisk
	ViewNetwork
	ViewProcesses
)

// viewCount is the number of views; the order above is the tab order.
const viewCount = 6

// AllViews returns every view in tab order.
func AllViews() []View {
	return []View{ViewOverview, ViewCPU, ViewMemory, ViewDisk, ViewNetwork, ViewProcesses}
}

// String returns the tab title.
func (v View) String() string {
	switch v {
	case ViewOverview:
		return "Overview"
	case ViewCPU:
		return "CPU"
	case ViewMemory:
		return "Memory"
	case ViewDisk:
		return "Disk"
	case ViewNetwork:
		return "Network"
	case ViewProcesses:
		return "Processes"
	default:
		return "Unknown"
	}
}

// Next returns the following view, wrapping from Processes to Overview.
func (v View) Next() View {
	return View((int(v) + 1) % viewCount)
}

// Prev returns the preceding view, wrapping from Overview to Processes.
func (v View) Prev() View {
	return View((int(v) + viewCount - 1) % viewCount)
}

// Input is a decoded user action.
type Input int

const (
	InputNone Input = iota
	InputAdvance
	InputRetreat
	InputQuit
)

// String returns a label for logging.
func (i Input) String() string {
	switch i {
	case InputAdvance:
		return "advance"
	case InputRetreat:
		return "retreat"
	case InputQuit:
		return "quit"
	default:
		return "none"
	}
}

// Nav is the navigation state: which view is showing and whether the user
// asked to quit.
type Nav struct {
	View View
	Quit bool
}

// Transition applies one input to the navigation state. Once Quit is set
// the state no longer changes.
func Transition(n Nav, in Input) Nav {
	if n.Quit {
		return n
	}
	switch in {
	case InputAdvance:
		n.View = n.View.Next()
	case InputRetreat:
		n.View = n.View.Prev()
	case InputQuit:
		n.Quit = true
	}
	return n
}
