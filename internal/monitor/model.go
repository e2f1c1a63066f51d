package monitor

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// regionTitles are shown until a region receives its first panel.
var regionTitles = map[Region]string{
	RegionUpperLeft:        "CPU Usage",
	RegionUpperRight:       "CPU Info",
	RegionMiddleLeft:       "Network Speed",
	RegionTopInner:         "Disk Space",
	RegionBottomInnerLeft:  "System Specifications",
	RegionBottomInnerRight: "Other Specifications",
}

// Model is the Bubble Tea model for the dashboard. It holds the latest
// panel per region and lays them out; all data comes in as panelMsg.
type Model struct {
	panels   map[Region]Panel
	size     *TermSize
	width    int
	height   int
	keys     keyMap
	help     help.Model
	showHelp bool
	quitting bool
}

// NewModel creates a model. size, if non-nil, is updated on every resize so
// the render loop can size its output; nil gets a private TermSize.
func NewModel(size *TermSize) Model {
	if size == nil {
		size = NewTermSize()
	}
	w, h := size.Get()
	return Model{
		panels: make(map[Region]Panel, len(Regions)),
		size:   size,
		width:  w,
		height: h,
		keys:   dashboardKeys,
		help:   help.New(),
	}
}

// Init has nothing to start; panels are pushed in by the render loop.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.size.Set(msg.Width, msg.Height)

	case panelMsg:
		m.panels[msg.region] = msg.panel
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// Panel returns the latest panel received for region.
func (m Model) Panel(region Region) (Panel, bool) {
	p, ok := m.panels[region]
	return p, ok
}
