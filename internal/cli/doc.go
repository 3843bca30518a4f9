// Package cli implements the ServerSensei command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a small run function for the actual work:
//
//	sensei report     - Collect, compare against the baseline, and report
//	sensei status     - Show the current state without comparing
//	sensei security   - Run a local security scan
//	sensei kill <pid> - Terminate a process on a target
//	sensei init       - Create a .sensei.yaml config
//	sensei version    - Print version information
//
// # Sessions
//
// Commands that collect metrics go through openSession, which resolves
// the target (config default, --target, or an ad-hoc --host) and opens
// an SSH connection when the target is remote. The returned session
// exposes a metrics.Source so the rest of the command is identical for
// local and remote collection. Sessions must be closed to release the
// connection.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --quiet, --no-color) are defined on
// the root command. The ConnFlags type and AddConnFlags function provide
// the standard target-selection flags (--target, --host, --user, --port,
// --key, --ask-pass) for commands that need them.
package cli
