// Package ui holds the styling shared by sysdash's non-interactive output:
// the color palette, status symbols, static tables built on the Bubbles table
// component, and threshold-colored usage bars.
//
// Colors are ANSI codes so they follow the terminal theme. ApplyColorMode
// and DisableColors switch the global lipgloss profile for --no-color and the
// output.color setting.
package ui
