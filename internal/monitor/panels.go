package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/metrics"
)

const (
	notAvailable = "N/A"
	labelWidth   = 18
	// plotLabelWidth is the room asciigraph takes for y-axis labels.
	plotLabelWidth = 12
)

// PanelData is everything the panels are drawn from on one tick.
type PanelData struct {
	Snapshot  Snapshot
	Facts     Metric[metrics.HostFacts]
	Sent      []float64 // kB/s, oldest first
	Recv      []float64
	CPUTrend  []float64
	Rate      Rate
	NetErr    error // set while the interface is missing
	Interface string
	Volume    string
}

// FormatPanels renders every region's panel for the given layout.
func FormatPanels(d PanelData, layout Layout) map[Region]Panel {
	return map[Region]Panel{
		RegionUpperLeft:        cpuUsagePanel(d, layout[RegionUpperLeft]),
		RegionUpperRight:       cpuInfoPanel(d.Snapshot.CPUInfo),
		RegionMiddleLeft:       networkPanel(d, layout[RegionMiddleLeft]),
		RegionTopInner:         diskPanel(d.Snapshot.Disk, d.Volume, layout[RegionTopInner]),
		RegionBottomInnerLeft:  systemPanel(d.Facts),
		RegionBottomInnerRight: otherPanel(d.Snapshot),
	}
}

func newPanel(title, body string, degraded bool) Panel {
	style := PanelStyle
	if degraded {
		style = PanelDegradedStyle
	}
	return Panel{Title: title, Body: body, Style: style, Degraded: degraded}
}

// degraded reports whether a metric isn't showing a live value.
func degraded[T any](m Metric[T]) bool {
	return m.Status == StatusStale || m.Status == StatusMisconfigured
}

func staleMark[T any](m Metric[T]) string {
	if m.Status == StatusStale {
		return MutedStyle.Render(" (stale)")
	}
	return ""
}

func cpuUsagePanel(d PanelData, box Box) Panel {
	cpu := d.Snapshot.CPUPercent
	if !cpu.HasValue() {
		return newPanel("CPU Usage", unavailableLine(cpu.Err), false)
	}

	label := fmt.Sprintf("  CPU Usage: %.1f%%", cpu.Value)
	barWidth := box.ContentWidth() - len(label) - 4
	bar := CPUStyle.Render("| "+PercentageBar(barWidth, cpu.Value)+" |") +
		MetricStyle(cpu.Value).Render(label) + staleMark(cpu)

	trendWidth := box.ContentWidth() - len("Trend ")
	trend := LabelStyle.Render("Trend ") + CPUStyle.Render(MiniSparkline(d.CPUTrend, trendWidth))

	return newPanel("CPU Usage", bar+"\n"+trend, degraded(cpu))
}

func cpuInfoPanel(info Metric[metrics.CPUInfo]) Panel {
	if !info.HasValue() {
		return newPanel("CPU Info", unavailableLine(info.Err), false)
	}
	v := info.Value

	freq := notAvailable
	if v.CurrentMHz > 0 {
		freq = fmt.Sprintf("%.2f GHz", v.CurrentMHz/1000)
	}
	body := fmt.Sprintf("CPU Count: %d | Frequency: %s\n%s\nCPU Cores: %d | CPU Time: %.3f hrs",
		v.Logical, freq,
		MutedStyle.Render(strings.Repeat("-", 24)),
		v.Physical, v.UserSeconds/3600)

	return newPanel("CPU Info", body+staleMark(info), degraded(info))
}

func networkPanel(d PanelData, box Box) Panel {
	title := "Network Speed"
	if d.Interface != "" {
		title += " (" + d.Interface + ")"
	}

	if d.NetErr != nil {
		return newPanel(title, configProblem(d.NetErr), true)
	}

	// Two labeled plots: label + (height+1) rows each, one blank line between.
	height := max((box.ContentHeight()-5)/2, 1)
	points := max(box.ContentWidth()-plotLabelWidth, 2)

	var b strings.Builder
	b.WriteString(UploadStyle.Render("Upload (kB/s): " + FormatRate(d.Rate.Up)))
	b.WriteString("\n")
	b.WriteString(Sparkline(tail(d.Sent, points), height))
	b.WriteString("\n\n")
	b.WriteString(DownloadStyle.Render("Download (kB/s): " + FormatRate(d.Rate.Down)))
	b.WriteString("\n")
	b.WriteString(Sparkline(tail(d.Recv, points), height))

	return newPanel(title, b.String(), false)
}

func diskPanel(disk Metric[metrics.DiskUsage], volume string, box Box) Panel {
	title := "Disk Space"
	if volume != "" {
		title += " (" + volume + ")"
	}

	if disk.Status == StatusMisconfigured {
		return newPanel(title, configProblem(disk.Err), true)
	}
	if !disk.HasValue() {
		return newPanel(title, unavailableLine(disk.Err), false)
	}

	u := disk.Value
	barWidth := box.ContentWidth() - 2
	body := fmt.Sprintf("%s %s / %s%s\n\n%s\n\n%s %s / %s\n\n%s",
		LabelStyle.Render("-- Used:"), humanize.IBytes(u.UsedBytes), humanize.IBytes(u.TotalBytes), staleMark(disk),
		DiskStyle.Render(UsageBar(barWidth, u.UsedBytes, u.TotalBytes)),
		LabelStyle.Render("-- Free:"), humanize.IBytes(u.FreeBytes), humanize.IBytes(u.TotalBytes),
		DiskStyle.Render(UsageBar(barWidth, u.FreeBytes, u.TotalBytes)),
	)

	return newPanel(title, body, degraded(disk))
}

func systemPanel(facts Metric[metrics.HostFacts]) Panel {
	f := facts.Value
	version := strings.TrimSpace(f.Platform + " " + f.PlatformVersion)

	rows := [][2]string{
		{"OS", f.OS},
		{"Node", f.Hostname},
		{"Version", version},
		{"Architecture", f.KernelArch},
		{"Go Version", f.GoVersion},
	}
	return newPanel("System Specifications", formatRows(rows), false)
}

func otherPanel(s Snapshot) Panel {
	battery := notAvailable
	if s.Battery.HasValue() {
		state := "Not Charging"
		if s.Battery.Value.Charging {
			state = "Charging"
		}
		battery = fmt.Sprintf("%.0f%% (%s)", s.Battery.Value.Percent, state) + staleMark(s.Battery)
	}

	boot := notAvailable
	if s.BootTime.HasValue() {
		boot = s.BootTime.Value.Format(time.DateTime) +
			MutedStyle.Render(" ("+humanize.Time(s.BootTime.Value)+")")
	}

	memory := notAvailable
	if s.Memory.HasValue() {
		memory = MetricStyle(s.Memory.Value).Render(fmt.Sprintf("%.1f%%", s.Memory.Value)) + staleMark(s.Memory)
	}

	load := [3]string{notAvailable, notAvailable, notAvailable}
	if s.Load.HasValue() {
		l := s.Load.Value
		load = [3]string{
			fmt.Sprintf("%.2f", l.Load1),
			fmt.Sprintf("%.2f", l.Load5),
			fmt.Sprintf("%.2f", l.Load15),
		}
	}

	rows := [][2]string{
		{"Battery", battery},
		{"Last Boot Time", boot},
		{"Memory Usage", memory},
		{"Load Average(1m)", load[0]},
		{"Load Average(5m)", load[1]},
		{"Load Average(15m)", load[2]},
	}

	isDegraded := degraded(s.Battery) || degraded(s.BootTime) || degraded(s.Memory) || degraded(s.Load)
	return newPanel("Other Specifications", formatRows(rows), isDegraded)
}

func formatRows(rows [][2]string) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		value := r[1]
		if value == "" {
			value = notAvailable
		}
		lines[i] = LabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, r[0])) + ": " + value
	}
	return strings.Join(lines, "\n")
}

// configProblem shows a configuration error and its suggestion in place
// of the panel's data.
func configProblem(err error) string {
	return WarningStyle.Render("✗ " + errors.Summary(err))
}

func unavailableLine(err error) string {
	if err == nil {
		return MutedStyle.Render(notAvailable)
	}
	return MutedStyle.Render(notAvailable + ": " + errors.Summary(err))
}

// tail returns at most n trailing values.
func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
