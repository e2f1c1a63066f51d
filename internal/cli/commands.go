package cli

import (
	"os"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	initInterfaceFlag      string
	initVolumeFlag         string
	initForce              bool
	initGlobal             bool
	initNonInteractiveFlag bool
	checkJSONFlag          bool
)

// initCmd creates a config file for this host
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .hostdash.yaml config for this host",
	Long: `Pick the network interface and disk volume the dashboard shows and
save them to .hostdash.yaml in the current directory.

Choices are offered from the interfaces and volumes this host reports.
With --interface and --volume (or HOSTDASH_INTERFACE / HOSTDASH_VOLUME)
no prompts are shown.

Examples:
  hostdash init
  hostdash init --interface eth0 --volume /
  hostdash init --global --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(cmd, InitOptions{
			Interface:      initInterfaceFlag,
			Volume:         initVolumeFlag,
			Overwrite:      initForce,
			Global:         initGlobal,
			NonInteractive: initNonInteractiveFlag,
		})
	},
}

// checkCmd validates the config against this host
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate config against this host",
	Long: `Load the config, check that its network interface and disk volume exist
on this host, and list what the host reports.

Exits non-zero when a check fails.

Examples:
  hostdash check
  hostdash check --config ~/dash.yaml
  hostdash check --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkCommand(cmd, configFlag, checkJSONFlag)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for hostdash.

Examples:
  # Bash
  hostdash completion bash > /etc/bash_completion.d/hostdash

  # Zsh
  hostdash completion zsh > "${fpath[1]}/_hostdash"

  # Fish
  hostdash completion fish > ~/.config/fish/completions/hostdash.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	initCmd.Flags().StringVar(&initInterfaceFlag, "interface", "", "network interface to sample (e.g. eth0, en0)")
	initCmd.Flags().StringVar(&initVolumeFlag, "volume", "", "disk volume to show (default /)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "write ~/.config/hostdash/config.yaml instead")
	initCmd.Flags().BoolVar(&initNonInteractiveFlag, "non-interactive", false, "never prompt")

	checkCmd.Flags().BoolVar(&checkJSONFlag, "json", false, "output results as JSON")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(completionCmd)
}
