package gesture

import (
	"fmt"
	"math"
	"time"
)

// Sample is a pointer position in pixels at a point in time.
type Sample struct {
	X, Y float64
	At   time.Time
}

// Valid reports whether both coordinates are finite numbers.
func (s Sample) Valid() bool {
	return !math.IsNaN(s.X) && !math.IsInf(s.X, 0) &&
		!math.IsNaN(s.Y) && !math.IsInf(s.Y, 0)
}

// Kind is the class of input device producing samples.
type Kind int

const (
	KindTouch Kind = iota
	KindMouse
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindTouch:
		return "touch"
	case KindMouse:
		return "mouse"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Target is the element a gesture started on.
type Target int

const (
	// TargetSurface is the album card itself, where gestures may start.
	TargetSurface Target = iota
	// TargetControl is a button.
	TargetControl
	// TargetLink is an external link.
	TargetLink
	// TargetVinyl is the spinning record, which has its own click behavior.
	TargetVinyl
	// TargetOutside is anything outside the album card.
	TargetOutside
)

// Interactive reports whether gestures starting on t must be ignored so the
// element keeps its own click behavior.
func (t Target) Interactive() bool {
	switch t {
	case TargetControl, TargetLink, TargetVinyl:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (t Target) String() string {
	switch t {
	case TargetSurface:
		return "surface"
	case TargetControl:
		return "control"
	case TargetLink:
		return "link"
	case TargetVinyl:
		return "vinyl"
	case TargetOutside:
		return "outside"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// Axis is the locked direction of a gesture.
type Axis int

const (
	AxisUndetermined Axis = iota
	AxisHorizontal
)

// Direction of a committed gesture.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == DirectionForward {
		return "forward"
	}
	return "none"
}

// Outcome is the decision taken when a gesture ends.
type Outcome struct {
	Committed bool
	Direction Direction
	// Offset is the final damped offset the decision was based on.
	Offset float64
}
