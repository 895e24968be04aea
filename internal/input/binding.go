// Package input binds terminal pointer events to a gesture.Tracker.
//
// Exactly one source is active per Binding: a touch source on touch
// platforms, a mouse source everywhere else. Hybrid terminals therefore
// never track the same drag twice.
package input

import (
	"log/slog"
	"time"

	"github.com/handiism/vinyl-shuffle/internal/gesture"
)

// Action is what happened to the pointer.
type Action int

const (
	ActionPress Action = iota
	ActionMotion
	ActionRelease
)

// Button is the pointer button involved in an event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonOther
)

// Event is a pointer event in terminal cells, already hit-tested by the
// caller.
type Event struct {
	Action Action
	Button Button
	Col    int
	Row    int
	// Target is the element under the pointer.
	Target gesture.Target
	// Inside reports whether the pointer is within the tracked region.
	Inside bool
}

// Result tells the caller what the binding did with an event.
type Result struct {
	// Handled is true when the event belonged to a gesture. Unhandled events
	// fall through to the caller's default handling (clicks).
	Handled bool
	// Suppress is true when default handling must be skipped even for
	// otherwise unrelated behavior (horizontal touch drags).
	Suppress bool
	// Outcome is set when the event ended a gesture.
	Outcome *gesture.Outcome
}

type source interface {
	kind() gesture.Kind
	handle(ev Event, sample gesture.Sample) Result
}

// Option configures a Binding.
type Option func(*Binding)

// WithCellSize sets the pixel size of one terminal cell.
func WithCellSize(width, height float64) Option {
	return func(b *Binding) {
		b.cellWidth = width
		b.cellHeight = height
	}
}

// WithClock overrides time.Now for sample timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Binding) { b.now = now }
}

// WithLogger sets the binding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binding) { b.logger = logger }
}

// WithGestureOptions forwards options to the tracker the binding creates.
func WithGestureOptions(opts ...gesture.Option) Option {
	return func(b *Binding) { b.trackerOpts = append(b.trackerOpts, opts...) }
}

// Binding routes pointer events to a tracker through one platform source.
type Binding struct {
	platform   Platform
	tracker    *gesture.Tracker
	source     source
	cellWidth  float64
	cellHeight float64
	now        func() time.Time
	logger     *slog.Logger

	trackerOpts []gesture.Option
}

// NewBinding creates a Binding and the tracker of the matching kind.
func NewBinding(platform Platform, feedback gesture.Feedback, nav gesture.Navigator, opts ...Option) *Binding {
	b := &Binding{
		platform:   platform,
		cellWidth:  10,
		cellHeight: 20,
		now:        time.Now,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}

	kind := gesture.KindMouse
	if platform == PlatformTouch {
		kind = gesture.KindTouch
	}
	b.tracker = gesture.NewTracker(kind, feedback, nav, b.trackerOpts...)

	if platform == PlatformTouch {
		b.source = &touchSource{tracker: b.tracker}
	} else {
		b.source = &mouseSource{tracker: b.tracker}
	}

	b.logger.Debug("input source registered", "platform", platform, "kind", b.source.kind())
	return b
}

// Platform returns the platform the binding was built for.
func (b *Binding) Platform() Platform { return b.platform }

// Tracker returns the tracker fed by the binding.
func (b *Binding) Tracker() *gesture.Tracker { return b.tracker }

// Handle feeds one pointer event to the active source.
func (b *Binding) Handle(ev Event) Result {
	return b.source.handle(ev, b.sample(ev))
}

// sample converts the center of the event's cell to pixels.
func (b *Binding) sample(ev Event) gesture.Sample {
	return gesture.Sample{
		X:  (float64(ev.Col) + 0.5) * b.cellWidth,
		Y:  (float64(ev.Row) + 0.5) * b.cellHeight,
		At: b.now(),
	}
}

// touchSource maps start/move/end directly to the tracker.
type touchSource struct {
	tracker *gesture.Tracker
}

func (s *touchSource) kind() gesture.Kind { return gesture.KindTouch }

func (s *touchSource) handle(ev Event, sample gesture.Sample) Result {
	switch ev.Action {
	case ActionPress:
		if !ev.Inside {
			return Result{}
		}
		return Result{Handled: s.tracker.Start(sample, ev.Target)}
	case ActionMotion:
		return move(s.tracker, ev, sample)
	case ActionRelease:
		return end(s.tracker, false)
	}
	return Result{}
}

// mouseSource only starts gestures with the left button away from
// interactive elements.
type mouseSource struct {
	tracker *gesture.Tracker
}

func (s *mouseSource) kind() gesture.Kind { return gesture.KindMouse }

func (s *mouseSource) handle(ev Event, sample gesture.Sample) Result {
	switch ev.Action {
	case ActionPress:
		if ev.Button != ButtonLeft || ev.Target.Interactive() || !ev.Inside {
			return Result{}
		}
		return Result{Handled: s.tracker.Start(sample, ev.Target)}
	case ActionMotion:
		return move(s.tracker, ev, sample)
	case ActionRelease:
		return end(s.tracker, false)
	}
	return Result{}
}

func move(tracker *gesture.Tracker, ev Event, sample gesture.Sample) Result {
	if !tracker.Active() {
		return Result{}
	}
	if !ev.Inside {
		return end(tracker, true)
	}
	suppress := tracker.Move(sample)
	return Result{Handled: true, Suppress: suppress}
}

func end(tracker *gesture.Tracker, abandoned bool) Result {
	if !tracker.Active() {
		return Result{}
	}
	var out gesture.Outcome
	if abandoned {
		out = tracker.Abandon()
	} else {
		out = tracker.End()
	}
	return Result{Handled: true, Outcome: &out}
}
