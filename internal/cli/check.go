package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/hostdash/internal/config"
	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/metrics"
	"github.com/rileyhilliard/hostdash/internal/ui"
	"github.com/spf13/cobra"
)

// Check categories, in display order.
const (
	checkCategoryConfig  = "Config"
	checkCategoryHost    = "Host"
	checkCategoryMetrics = "Metrics"
)

// CheckReport is the result of 'hostdash check'.
type CheckReport struct {
	ConfigPath string        `json:"config_path,omitempty"`
	Interface  string        `json:"interface,omitempty"`
	Volume     string        `json:"volume,omitempty"`
	Checks     []ui.CheckRow `json:"checks"`
	Interfaces []string      `json:"interfaces"`
	Volumes    []string      `json:"volumes"`
}

// checkCommand is the implementation called by the cobra command.
func checkCommand(cmd *cobra.Command, configPath string, asJSON bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return runCheck(ctx, cmd.OutOrStdout(), configPath, asJSON, metrics.NewSystem())
}

// runCheck builds the report, prints it, and returns an error if any check failed.
func runCheck(ctx context.Context, out io.Writer, configPath string, asJSON bool, provider metrics.Provider) error {
	report := buildCheckReport(ctx, configPath, provider)

	var failure error
	if ui.Failed(report.Checks) {
		failure = errors.New(errors.ErrConfig,
			"Config check failed",
			"Fix the items marked "+ui.SymbolFail+", or run 'hostdash init --force'")
	}

	if asJSON {
		if failure != nil {
			if err := WriteJSONFailure(out, report, failure); err != nil {
				return err
			}
			return failure
		}
		return WriteJSONSuccess(out, report)
	}

	fmt.Fprint(out, ui.RenderChecks(report.Checks))
	fmt.Fprintln(out, renderInventory(report.Interfaces, report.Volumes))
	return failure
}

// buildCheckReport runs every check it can. A config that can't be loaded
// still gets the inventory listed so the user can fix it.
func buildCheckReport(ctx context.Context, configPath string, provider metrics.Provider) CheckReport {
	var report CheckReport
	add := func(status, category, message, suggestion string) {
		report.Checks = append(report.Checks, ui.CheckRow{
			Status: status, Category: category, Message: message, Suggestion: suggestion,
		})
	}
	addErr := func(category string, err error) {
		var hdErr *errors.Error
		if stderrors.As(err, &hdErr) {
			add(ui.CheckFail, category, hdErr.Message, hdErr.Suggestion)
			return
		}
		add(ui.CheckFail, category, errors.Summary(err), "")
	}

	ifaces, ifaceErr := provider.Interfaces(ctx)
	volumes, volErr := provider.Volumes(ctx)
	report.Interfaces = nonNil(ifaces)
	report.Volumes = nonNil(volumes)

	cfg, path, err := config.LoadOrDefault(configPath)
	report.ConfigPath = path
	switch {
	case err != nil:
		addErr(checkCategoryConfig, err)
	case path == "":
		add(ui.CheckFail, checkCategoryConfig, "No config file found",
			"Run 'hostdash init' to create "+config.ConfigFileName)
	default:
		add(ui.CheckPass, checkCategoryConfig, "Loaded "+path, "")
		if err := config.Validate(cfg); err != nil {
			addErr(checkCategoryConfig, err)
		}
	}

	if cfg != nil {
		report.Interface = cfg.Network.Interface
		report.Volume = cfg.Disk.Volume

		if cfg.Network.Interface != "" {
			if ifaceErr == nil {
				ifaceErr = config.CheckInterface(cfg.Network.Interface, ifaces)
			}
			if ifaceErr != nil {
				addErr(checkCategoryHost, ifaceErr)
			} else {
				add(ui.CheckPass, checkCategoryHost,
					fmt.Sprintf("Network interface '%s' found", cfg.Network.Interface), "")
			}
		}

		if volErr == nil {
			volErr = config.CheckVolume(cfg.Disk.Volume, volumes)
		}
		if volErr != nil {
			addErr(checkCategoryHost, volErr)
		} else {
			add(ui.CheckPass, checkCategoryHost,
				fmt.Sprintf("Disk volume '%s' found", cfg.Disk.Volume), "")
		}
	}

	if b, err := provider.Battery(ctx); err != nil {
		add(ui.CheckWarn, checkCategoryMetrics, "No battery reported", "The battery row will show N/A")
	} else {
		add(ui.CheckPass, checkCategoryMetrics, fmt.Sprintf("Battery at %.0f%%", b.Percent), "")
	}

	if l, err := provider.LoadAverage(ctx); err != nil {
		add(ui.CheckWarn, checkCategoryMetrics, "No load average reported", "The load average row will show N/A")
	} else {
		add(ui.CheckPass, checkCategoryMetrics,
			fmt.Sprintf("Load average %.2f / %.2f / %.2f", l.Load1, l.Load5, l.Load15), "")
	}

	return report
}

// renderInventory lists what the host reports, one row per entry.
func renderInventory(ifaces, volumes []string) string {
	var rows [][]string
	for _, name := range ifaces {
		rows = append(rows, []string{"interface", name})
	}
	for _, v := range volumes {
		rows = append(rows, []string{"volume", v})
	}
	if len(rows) == 0 {
		return "This host reports no interfaces or volumes"
	}

	width := len("Name")
	for _, row := range rows {
		width = max(width, len(row[1]))
	}

	table := ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "Kind", Width: len("interface")},
		{Title: "Name", Width: width},
	}, rows)
	return strings.TrimRight(table, "\n")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
