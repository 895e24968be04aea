package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/handiism/vinyl-shuffle/internal/gesture"
)

// region is a rectangle of terminal cells.
type region struct {
	target        gesture.Target
	x, y          int
	width, height int
}

func (r region) contains(x, y int) bool {
	if y < r.y || y >= r.y+r.height || x < r.x {
		return false
	}
	return r.width <= 0 || x < r.x+r.width
}

// hitMap is rebuilt on every render and answers which element is under the
// pointer. The area is the swipeable card; regions mark interactive
// elements inside it.
type hitMap struct {
	area    region
	regions []region
	ready   bool
}

func (h *hitMap) reset() {
	h.area = region{}
	h.regions = h.regions[:0]
	h.ready = false
}

func (h *hitMap) setArea(x, y, width, height int) {
	h.area = region{target: gesture.TargetSurface, x: x, y: y, width: width, height: height}
	h.ready = true
}

func (h *hitMap) add(target gesture.Target, x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	h.regions = append(h.regions, region{target: target, x: x, y: y, width: width, height: height})
}

// shift moves the area and every region dy rows down.
func (h *hitMap) shift(dy int) {
	h.area.y += dy
	for i := range h.regions {
		h.regions[i].y += dy
	}
}

// test returns the element under (x, y) and whether the point is inside the
// card area.
func (h *hitMap) test(x, y int) (gesture.Target, bool) {
	if !h.ready || !h.area.contains(x, y) {
		return gesture.TargetOutside, false
	}
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].contains(x, y) {
			return h.regions[i].target, true
		}
	}
	return gesture.TargetSurface, true
}

// find returns the first region registered for target.
func (h *hitMap) find(target gesture.Target) (region, bool) {
	for _, r := range h.regions {
		if r.target == target {
			return r, true
		}
	}
	return region{}, false
}

// canvas accumulates rendered rows so callers know where each block landed.
type canvas struct {
	rows []string
}

// add appends a possibly multi-line block and returns its first row.
func (c *canvas) add(block string) int {
	top := len(c.rows)
	c.rows = append(c.rows, strings.Split(block, "\n")...)
	return top
}

func (c *canvas) String() string {
	return strings.Join(c.rows, "\n")
}

// shiftLine moves a rendered line cols cells to the right, or cuts cells
// from its left edge when cols is negative.
func shiftLine(line string, cols int) string {
	if cols >= 0 {
		return strings.Repeat(" ", cols) + line
	}
	return ansi.TruncateLeft(line, -cols, "")
}
