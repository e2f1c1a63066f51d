package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/hostdash/internal/config"
	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/metrics"
	"github.com/rileyhilliard/hostdash/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Interface      string // Pre-specified network interface
	Volume         string // Pre-specified disk volume
	Overwrite      bool   // Overwrite existing config without asking
	Global         bool   // Write the global config instead of ./.hostdash.yaml
	NonInteractive bool   // Skip prompts, use flags and defaults
}

// initDefaults holds values read from the environment.
type initDefaults struct {
	Interface      string
	Volume         string
	NonInteractive bool
}

// getInitDefaults reads HOSTDASH_INTERFACE, HOSTDASH_VOLUME and
// HOSTDASH_NON_INTERACTIVE. A set CI variable also disables prompts.
func getInitDefaults() initDefaults {
	return initDefaults{
		Interface:      os.Getenv("HOSTDASH_INTERFACE"),
		Volume:         os.Getenv("HOSTDASH_VOLUME"),
		NonInteractive: isTruthy(os.Getenv("HOSTDASH_NON_INTERACTIVE")) || os.Getenv("CI") != "",
	}
}

// mergeInitOptions fills empty flags from the environment. Flags win.
func mergeInitOptions(opts InitOptions) InitOptions {
	defaults := getInitDefaults()
	if opts.Interface == "" {
		opts.Interface = defaults.Interface
	}
	if opts.Volume == "" {
		opts.Volume = defaults.Volume
	}
	if defaults.NonInteractive {
		opts.NonInteractive = true
	}
	return opts
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// initCommand is the implementation called by the cobra command.
func initCommand(cmd *cobra.Command, opts InitOptions) error {
	opts = mergeInitOptions(opts)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		opts.NonInteractive = true
	}

	path, err := initPath(opts.Global)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return Init(ctx, cmd.OutOrStdout(), path, opts, metrics.NewSystem())
}

func initPath(global bool) (string, error) {
	if !global {
		return filepath.Join(".", config.ConfigFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine home directory",
			"Set HOME, or run 'hostdash init' without --global")
	}
	return config.GlobalPath(home), nil
}

// Init writes a config to path, choosing the interface and volume from
// what inv reports. Both choices are checked against inv before writing.
func Init(ctx context.Context, out io.Writer, path string, opts InitOptions, inv config.Inventory) error {
	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrExec,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		opts.Overwrite = true
	}

	ifaces, err := inv.Interfaces(ctx)
	if err != nil {
		return err
	}
	volumes, err := inv.Volumes(ctx)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Network.Interface = opts.Interface
	if opts.Volume != "" {
		cfg.Disk.Volume = opts.Volume
	}

	if opts.NonInteractive {
		if cfg.Network.Interface == "" {
			cfg.Network.Interface = defaultInterface(ifaces)
		}
		if cfg.Network.Interface == "" {
			return errors.New(errors.ErrConfig,
				"No network interface given",
				"Pass --interface or set HOSTDASH_INTERFACE")
		}
	} else if err := promptConfig(cfg, ifaces, volumes); err != nil {
		return err
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.ValidateHost(ctx, cfg, inv); err != nil {
		return err
	}

	if err := config.Write(path, cfg, opts.Overwrite); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SymbolSuccess, path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  hostdash check  - Verify the config against this host")
	fmt.Fprintln(out, "  hostdash        - Start the dashboard")
	return nil
}

// promptConfig asks for the interface and volume, preselecting whatever
// cfg already holds.
func promptConfig(cfg *config.Config, ifaces, volumes []string) error {
	if len(ifaces) == 0 {
		return errors.New(errors.ErrConfig,
			"This host reports no network interfaces",
			"Pass --interface to name one explicitly")
	}
	if cfg.Network.Interface == "" {
		cfg.Network.Interface = defaultInterface(ifaces)
	}

	var volumeField huh.Field
	if len(volumes) > 0 {
		volumeField = huh.NewSelect[string]().
			Title("Disk volume").
			Description("Mount point shown in the disk panel").
			Options(huh.NewOptions(volumes...)...).
			Value(&cfg.Disk.Volume)
	} else {
		volumeField = huh.NewInput().
			Title("Disk volume").
			Description("Mount point shown in the disk panel").
			Value(&cfg.Disk.Volume)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Network interface").
				Description("Throughput on this interface is sampled every 10 seconds").
				Options(huh.NewOptions(ifaces...)...).
				Value(&cfg.Network.Interface),
		),
		huh.NewGroup(volumeField),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Failed to get user input",
			"Check terminal compatibility or pass --interface and --volume")
	}
	return nil
}

// defaultInterface picks the first non-loopback interface.
func defaultInterface(ifaces []string) string {
	for _, name := range ifaces {
		if !isLoopback(name) {
			return name
		}
	}
	return ""
}

func isLoopback(name string) bool {
	return name == "lo" || strings.HasPrefix(name, "lo0") || strings.HasPrefix(strings.ToLower(name), "loopback")
}
