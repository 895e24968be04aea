package gesture

import (
	"log/slog"
	"math"

	"github.com/handiism/vinyl-shuffle/internal/navigate"
)

const (
	// DefaultThreshold is the damped offset a gesture must exceed to commit.
	DefaultThreshold = 100.0
	// DefaultDamping scales physical travel down to drag offset.
	DefaultDamping = 0.3
	// DefaultMouseLockDistance is the horizontal travel a mouse drag needs
	// before it locks.
	DefaultMouseLockDistance = 10.0
)

// Config holds the tunable constants of a Tracker.
type Config struct {
	Threshold         float64
	Damping           float64
	MouseLockDistance float64
}

// DefaultConfig returns the standard gesture constants.
func DefaultConfig() Config {
	return Config{
		Threshold:         DefaultThreshold,
		Damping:           DefaultDamping,
		MouseLockDistance: DefaultMouseLockDistance,
	}
}

// Feedback receives presentation updates while a gesture is tracked.
type Feedback interface {
	// BeginGesture is called when a gesture is accepted.
	BeginGesture()
	// SetDragOffset is called on every horizontal-locked move.
	SetDragOffset(px float64)
	// EnterSwiping is called on the first horizontal-locked move.
	EnterSwiping()
	// ExitSwiping and PlayRelease are called when the gesture ends.
	ExitSwiping()
	PlayRelease()
}

// Navigator receives the request for a committed gesture.
type Navigator interface {
	Request(trigger navigate.Trigger) bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithConfig overrides the default gesture constants.
func WithConfig(cfg Config) Option {
	return func(t *Tracker) { t.cfg = cfg }
}

// WithLogger sets the logger for gesture diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// state is the per-gesture state. The zero value is Idle.
type state struct {
	active  bool
	start   Sample
	last    Sample
	axis    Axis
	offset  float64
	swiping bool
}

// Tracker is the gesture state machine. It is not safe for concurrent use;
// all calls are expected from the UI goroutine.
type Tracker struct {
	kind     Kind
	cfg      Config
	feedback Feedback
	nav      Navigator
	logger   *slog.Logger

	state state
}

// NewTracker creates a Tracker for one input kind. feedback and nav may be
// nil.
func NewTracker(kind Kind, feedback Feedback, nav Navigator, opts ...Option) *Tracker {
	t := &Tracker{
		kind:     kind,
		cfg:      DefaultConfig(),
		feedback: feedback,
		nav:      nav,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.feedback == nil {
		t.feedback = nopFeedback{}
	}
	return t
}

// Kind returns the input kind the tracker was built for.
func (t *Tracker) Kind() Kind { return t.kind }

// Active reports whether a gesture is being tracked.
func (t *Tracker) Active() bool { return t.state.active }

// Axis returns the axis of the current gesture.
func (t *Tracker) Axis() Axis { return t.state.axis }

// Offset returns the current damped offset in pixels.
func (t *Tracker) Offset() float64 { return t.state.offset }

// Start begins a gesture at s. It returns false when the gesture is ignored
// because it started on an interactive element or s is malformed.
//
// Starting while another gesture is tracked discards the old gesture.
func (t *Tracker) Start(s Sample, target Target) bool {
	if target.Interactive() {
		t.logger.Debug("gesture start filtered", "target", target, "kind", t.kind)
		return false
	}
	if !s.Valid() {
		if t.state.active {
			t.state.offset = 0
			t.End()
		}
		return false
	}

	if t.state.active {
		t.logger.Debug("gesture restarted", "kind", t.kind, "offset", t.state.offset)
		if t.state.swiping {
			t.feedback.ExitSwiping()
			t.feedback.SetDragOffset(0)
		}
	}

	t.state = state{active: true, start: s, last: s}
	t.feedback.BeginGesture()
	return true
}

// Move feeds a pointer position. It returns true when the event belongs to
// a horizontal touch drag and its default handling must be suppressed.
func (t *Tracker) Move(s Sample) bool {
	if !t.state.active {
		return false
	}
	if !s.Valid() {
		t.state.offset = 0
		t.End()
		return false
	}

	t.state.last = s
	dx := s.X - t.state.start.X
	dy := s.Y - t.state.start.Y

	if t.state.axis == AxisUndetermined {
		if !t.locksHorizontal(dx, dy) {
			return false
		}
		t.state.axis = AxisHorizontal
	}

	t.state.offset = dx * t.cfg.Damping
	t.feedback.SetDragOffset(t.state.offset)
	if !t.state.swiping {
		t.state.swiping = true
		t.feedback.EnterSwiping()
	}

	return t.kind == KindTouch
}

func (t *Tracker) locksHorizontal(dx, dy float64) bool {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if ax <= ay {
		return false
	}
	if t.kind == KindMouse && ax <= t.cfg.MouseLockDistance {
		return false
	}
	return true
}

// End finishes the current gesture and applies the commit rule. Calling End
// while idle returns the zero Outcome.
func (t *Tracker) End() Outcome {
	if !t.state.active {
		return Outcome{}
	}

	out := Outcome{Offset: t.state.offset}
	if math.Abs(t.state.offset) > t.cfg.Threshold {
		out.Committed = true
		out.Direction = DirectionForward
	}

	t.state = state{}
	t.feedback.ExitSwiping()
	t.feedback.PlayRelease()

	t.logger.Debug("gesture ended",
		"kind", t.kind,
		"offset", out.Offset,
		"committed", out.Committed,
	)

	if out.Committed && t.nav != nil {
		t.nav.Request(navigate.TriggerSwipe)
	}
	return out
}

// Abandon ends a gesture interrupted by the pointer leaving the tracked
// region. The commit rule is applied exactly as in End.
func (t *Tracker) Abandon() Outcome {
	if t.state.active {
		t.logger.Debug("gesture abandoned", "kind", t.kind, "offset", t.state.offset)
	}
	return t.End()
}

type nopFeedback struct{}

func (nopFeedback) BeginGesture()         {}
func (nopFeedback) SetDragOffset(float64) {}
func (nopFeedback) EnterSwiping()         {}
func (nopFeedback) ExitSwiping()          {}
func (nopFeedback) PlayRelease()          {}
