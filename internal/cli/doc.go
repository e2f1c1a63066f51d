// Package cli implements the hostdash command-line interface.
//
// Each Cobra command delegates to a plain function (dashboardCommand,
// Init, runCheck) that takes its dependencies explicitly, so the commands
// stay thin and the work is testable without a terminal.
//
// # Command Structure
//
//	hostdash             - Run the dashboard
//	hostdash init        - Create .hostdash.yaml for this host
//	hostdash check       - Validate config against this host
//	hostdash version     - Print version information
//	hostdash completion  - Generate shell completions
//
// # Config
//
// --config selects a config file explicitly. Otherwise the search order is
// .hostdash.yaml in the current directory or a parent, then
// ~/.config/hostdash/config.yaml. The dashboard needs a config; init and
// check work without one.
//
// # Errors
//
// Errors returned by commands are *errors.Error values and are printed by
// Execute as message, cause and suggestion. Unknown commands get a
// "did you mean" hint.
package cli
