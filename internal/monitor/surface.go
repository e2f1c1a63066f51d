package monitor

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Region names an area of the dashboard layout.
type Region string

const (
	RegionUpperLeft        Region = "upper_left"
	RegionUpperRight       Region = "upper_right"
	RegionMiddleLeft       Region = "middle_left"
	RegionTopInner         Region = "top_inner"
	RegionBottomInnerLeft  Region = "bottom_inner_left"
	RegionBottomInnerRight Region = "bottom_inner_right"
)

// Regions lists every region in layout order.
var Regions = []Region{
	RegionUpperLeft,
	RegionUpperRight,
	RegionMiddleLeft,
	RegionTopInner,
	RegionBottomInnerLeft,
	RegionBottomInnerRight,
}

// Panel is the whole content of one region. Body may contain ANSI styling.
type Panel struct {
	Title string
	Body  string
	// Style is the box the body is drawn in.
	Style lipgloss.Style
	// Degraded is set when any metric in the panel isn't live.
	Degraded bool
}

// Surface receives panel replacements. The render loop never reads back.
type Surface interface {
	Publish(region Region, panel Panel)
}

// panelMsg delivers a panel to the Bubble Tea model.
type panelMsg struct {
	region Region
	panel  Panel
}

// ProgramSurface forwards panels to a running Bubble Tea program.
type ProgramSurface struct {
	program *tea.Program
}

// NewProgramSurface wraps p.
func NewProgramSurface(p *tea.Program) *ProgramSurface {
	return &ProgramSurface{program: p}
}

// Publish sends the panel to the program. It blocks until the program
// accepts it or has exited.
func (s *ProgramSurface) Publish(region Region, panel Panel) {
	s.program.Send(panelMsg{region: region, panel: panel})
}

// MemorySurface keeps the latest panel per region. Used by tests and by
// anything that wants the rendered text without a terminal.
type MemorySurface struct {
	mu     sync.Mutex
	panels map[Region]Panel
	counts map[Region]int
}

// NewMemorySurface creates an empty MemorySurface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{
		panels: make(map[Region]Panel),
		counts: make(map[Region]int),
	}
}

// Publish stores the panel.
func (s *MemorySurface) Publish(region Region, panel Panel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panels[region] = panel
	s.counts[region]++
}

// Panel returns the latest panel for region.
func (s *MemorySurface) Panel(region Region) (Panel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.panels[region]
	return p, ok
}

// Count returns how many times region was published to.
func (s *MemorySurface) Count(region Region) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[region]
}
