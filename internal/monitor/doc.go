// Package monitor implements the interactive terminal dashboard.
//
// The dashboard is a Bubble Tea program with six views (Overview, CPU,
// Memory, Disk, Network, Processes) shown as tabs. It never samples the host
// itself: a frame tick every PollInterval reads the shared telemetry state
// through the Reader interface and View renders only from that read.
//
// # Message Flow
//
//  1. frameMsg fires every PollInterval (100ms)
//  2. Update calls Reader.Read and stores the Reading, or the read error
//  3. View renders the tab bar, the current view's body and the status line
//
// Key presses are decoded by DecodeKey into an Input and applied with the
// pure Transition function. Only three keys do anything:
//
//	q   - Quit
//	←   - Previous view (Overview wraps to Processes)
//	→   - Next view (Processes wraps to Overview)
//
// A failed read (for example a poisoned state) replaces the body of every
// view with the same error panel; the tab bar and status line still render
// and the frame ticker keeps running.
package monitor
