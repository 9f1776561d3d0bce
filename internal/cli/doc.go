// Package cli implements the sysdash command-line interface.
//
// The root command runs the interactive dashboard. Everything else is a
// one-shot subcommand:
//
//	sysdash            - Full-screen system monitor
//	sysdash snapshot   - Print one sample as text, YAML or JSON
//	sysdash doctor     - Diagnose terminal, config and metrics access
//	sysdash init       - Create a .sysdash.yaml config
//	sysdash version    - Print build information
//
// # Dashboard Lifecycle
//
// The dashboard command wires the pieces together:
//
//  1. Load config and apply the color mode
//  2. Route the standard logger to a file (SYSDASH_DEBUG) or discard it
//  3. Start the sampler goroutine, which feeds the shared state once a second
//  4. Run the Bubble Tea program until the user presses q
//  5. Cancel the sampler's context
//
// # Flag Handling
//
// Global flags (--config, --no-color) are defined on the root command and
// available to all subcommands. Command-specific flags like --format and
// --json are defined on individual commands.
package cli
