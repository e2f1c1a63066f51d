package monitor

import "sync/atomic"

// Layout dimensions in terminal cells.
const (
	upperRowHeight = 5 // fixed, borders included
	footerHeight   = 1

	// Used until the first WindowSizeMsg arrives.
	defaultTermWidth  = 120
	defaultTermHeight = 40

	minBoxWidth  = 8
	minBoxHeight = 3
)

// Box is the outer size of one region's panel, borders included.
type Box struct {
	Width  int
	Height int
}

// ContentWidth is the usable text width inside borders and padding.
func (b Box) ContentWidth() int {
	return max(b.Width-4, 1)
}

// ContentHeight is the usable line count inside borders.
func (b Box) ContentHeight() int {
	return max(b.Height-2, 1)
}

// Layout maps every region to its box.
type Layout map[Region]Box

// ComputeLayout splits a width x height terminal into the six regions:
//
//	+---------------------------+---------+
//	| upper_left (3)            | u_r (1) |  5 lines
//	+-----------------+---------+---------+
//	|                 | top_inner         |
//	| middle_left     +---------+---------+
//	|                 | b_i_l   | b_i_r   |
//	+-----------------+---------+---------+
//	footer
func ComputeLayout(width, height int) Layout {
	width = max(width, 2*minBoxWidth)
	height = max(height, upperRowHeight+footerHeight+2*minBoxHeight)

	upperLeft := width * 3 / 4
	lowerHeight := height - upperRowHeight - footerHeight
	middleLeft := width / 2
	rightCol := width - middleLeft
	topInner := lowerHeight / 2
	bottomInner := lowerHeight - topInner
	bottomLeft := rightCol / 2

	return Layout{
		RegionUpperLeft:        {Width: upperLeft, Height: upperRowHeight},
		RegionUpperRight:       {Width: width - upperLeft, Height: upperRowHeight},
		RegionMiddleLeft:       {Width: middleLeft, Height: lowerHeight},
		RegionTopInner:         {Width: rightCol, Height: topInner},
		RegionBottomInnerLeft:  {Width: bottomLeft, Height: bottomInner},
		RegionBottomInnerRight: {Width: rightCol - bottomLeft, Height: bottomInner},
	}
}

// TermSize is the current terminal size. The model writes it on resize and
// the render loop reads it to size bars and plots.
type TermSize struct {
	width  atomic.Int32
	height atomic.Int32
}

// NewTermSize starts at the default size.
func NewTermSize() *TermSize {
	s := &TermSize{}
	s.Set(defaultTermWidth, defaultTermHeight)
	return s
}

// Set records a new size. Non-positive values are ignored.
func (s *TermSize) Set(width, height int) {
	if width > 0 {
		s.width.Store(int32(width))
	}
	if height > 0 {
		s.height.Store(int32(height))
	}
}

// Get returns width and height.
func (s *TermSize) Get() (int, int) {
	return int(s.width.Load()), int(s.height.Load())
}

// Layout computes the layout for the current size.
func (s *TermSize) Layout() Layout {
	w, h := s.Get()
	return ComputeLayout(w, h)
}
