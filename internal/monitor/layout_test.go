package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(120, 40)
	require.Len(t, l, len(Regions))

	// Upper row: fixed height, split 3:1.
	assert.Equal(t, Box{Width: 90, Height: 5}, l[RegionUpperLeft])
	assert.Equal(t, Box{Width: 30, Height: 5}, l[RegionUpperRight])

	// Lower area: middle_left beside a right column.
	assert.Equal(t, Box{Width: 60, Height: 34}, l[RegionMiddleLeft])
	assert.Equal(t, Box{Width: 60, Height: 17}, l[RegionTopInner])
	assert.Equal(t, Box{Width: 30, Height: 17}, l[RegionBottomInnerLeft])
	assert.Equal(t, Box{Width: 30, Height: 17}, l[RegionBottomInnerRight])
}

func TestComputeLayout_RowsFillWidth(t *testing.T) {
	for _, width := range []int{80, 101, 157} {
		l := ComputeLayout(width, 30)
		assert.Equal(t, width, l[RegionUpperLeft].Width+l[RegionUpperRight].Width)
		assert.Equal(t, width, l[RegionMiddleLeft].Width+l[RegionTopInner].Width)
		assert.Equal(t, l[RegionTopInner].Width, l[RegionBottomInnerLeft].Width+l[RegionBottomInnerRight].Width)
		assert.Equal(t, l[RegionMiddleLeft].Height, l[RegionTopInner].Height+l[RegionBottomInnerLeft].Height)
	}
}

func TestComputeLayout_TinyTerminal(t *testing.T) {
	l := ComputeLayout(1, 1)
	for _, r := range Regions {
		assert.Positive(t, l[r].ContentWidth(), r)
		assert.Positive(t, l[r].ContentHeight(), r)
	}
}

func TestTermSize(t *testing.T) {
	s := NewTermSize()
	w, h := s.Get()
	assert.Equal(t, defaultTermWidth, w)
	assert.Equal(t, defaultTermHeight, h)

	s.Set(200, 0)
	w, h = s.Get()
	assert.Equal(t, 200, w)
	assert.Equal(t, defaultTermHeight, h, "non-positive height is ignored")

	assert.Equal(t, ComputeLayout(200, defaultTermHeight), s.Layout())
}
