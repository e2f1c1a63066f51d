package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/hostdash/internal/config"
	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/logger"
	"github.com/rileyhilliard/hostdash/internal/metrics"
	"github.com/rileyhilliard/hostdash/internal/monitor"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// debugLogFile receives log output while the dashboard owns the terminal.
const debugLogFile = "hostdash-debug.log"

// configFlag is the --config path shared by every command.
var configFlag string

var rootCmd = &cobra.Command{
	Use:   "hostdash",
	Short: "Live CPU, network, disk and system dashboard for this machine",
	Long: `hostdash shows a live dashboard of this machine in the terminal:
CPU usage and trend, network throughput on one interface, usage of one disk
volume, and a summary of the host.

The interface and volume come from .hostdash.yaml (current directory or a
parent) or ~/.config/hostdash/config.yaml. Create one with 'hostdash init'.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  ?           Toggle help
  Esc         Close help

Set HOSTDASH_DEBUG=1 to write logs to ` + debugLogFile + `.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), configFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: .hostdash.yaml, then ~/.config/hostdash/config.yaml)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			err = unknownCommandError(err)
		}
		fmt.Fprint(os.Stderr, err.Error())
		if !strings.HasSuffix(err.Error(), "\n") {
			fmt.Fprintln(os.Stderr)
		}
		os.Exit(1)
	}
}

// dashboardCommand loads config and runs the dashboard until the user quits
// or the process is signalled.
func dashboardCommand(ctx context.Context, configPath string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrExec,
			"hostdash needs an interactive terminal",
			"Run it directly in a terminal rather than through a pipe or redirect")
	}

	cfg, _, err := loadDashboardConfig(configPath)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	closeLog, err := redirectLog()
	if err != nil {
		return err
	}
	defer closeLog()

	return monitor.Run(ctx, cfg, metrics.NewSystem(), logger.NewEnvLogger("[hostdash]"))
}

// loadDashboardConfig finds, loads and validates config. Unlike init and
// check, the dashboard refuses to start without a config file.
func loadDashboardConfig(explicit string) (*config.Config, string, error) {
	path, err := config.Find(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'hostdash init' to pick a network interface and disk volume")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// redirectLog keeps log output off the dashboard: to a file when
// HOSTDASH_DEBUG is set, discarded otherwise.
func redirectLog() (func(), error) {
	if !logger.DebugEnabled() {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := tea.LogToFile(debugLogFile, "")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't open "+debugLogFile,
			"Check the current directory is writable, or unset "+logger.DebugEnv)
	}
	return func() {
		_ = f.Close()
		log.SetOutput(os.Stderr)
	}, nil
}

// isUnknownCommandError reports whether err is cobra's unknown command or flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "hostdash"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// unknownCommandError turns cobra's message into a structured error with a
// "did you mean" hint.
func unknownCommandError(err error) error {
	name := extractUnknownCommand(err)
	if name == "" {
		return errors.WrapWithCode(err, errors.ErrExec, "Unknown command or flag", "Run 'hostdash --help' for usage")
	}

	var names []string
	for _, c := range rootCmd.Commands() {
		if !c.Hidden {
			names = append(names, c.Name())
		}
	}

	suggestion := "Run 'hostdash --help' to see available commands"
	if match := config.Closest(name, names); match != "" {
		suggestion = fmt.Sprintf("Did you mean 'hostdash %s'?", match)
	}
	return errors.New(errors.ErrExec, fmt.Sprintf("Unknown command '%s'", name), suggestion)
}
