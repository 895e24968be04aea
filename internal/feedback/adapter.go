// Package feedback drives the presentation of a gesture: the drag offset,
// the "swiping" mode while a drag is locked and the short "releasing" mode
// after it ends.
//
// The Adapter holds no decision logic. It writes to an injected Surface and
// owns the single cancellable timer that clears the releasing mode.
package feedback

import (
	"log/slog"
	"time"
)

// DefaultReleaseDuration is how long the releasing mode stays on.
const DefaultReleaseDuration = 300 * time.Millisecond

// Surface is the presentation context updated by the Adapter.
type Surface interface {
	SetDragOffset(px float64)
	SetSwiping(on bool)
	SetReleasing(on bool)
}

// CancelFunc cancels a scheduled task. Calling it after the task ran, or
// more than once, is a no-op.
type CancelFunc func()

// Scheduler runs fire once after d, on the same goroutine that drives the
// Adapter.
type Scheduler interface {
	Schedule(d time.Duration, fire func()) CancelFunc
}

// Adapter implements gesture.Feedback on top of a Surface.
type Adapter struct {
	surface   Surface
	scheduler Scheduler
	duration  time.Duration
	logger    *slog.Logger

	swiping   bool
	releasing bool
	cancel    CancelFunc
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithReleaseDuration overrides DefaultReleaseDuration.
func WithReleaseDuration(d time.Duration) Option {
	return func(a *Adapter) { a.duration = d }
}

// WithLogger sets the adapter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// NewAdapter creates an Adapter writing to surface.
func NewAdapter(surface Surface, scheduler Scheduler, opts ...Option) *Adapter {
	a := &Adapter{
		surface:   surface,
		scheduler: scheduler,
		duration:  DefaultReleaseDuration,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BeginGesture cancels a pending releasing-mode clear so a quick second
// gesture doesn't see the mode flip mid-drag.
func (a *Adapter) BeginGesture() {
	a.cancelPending()
}

// SetDragOffset updates the drag offset immediately.
func (a *Adapter) SetDragOffset(px float64) {
	a.surface.SetDragOffset(px)
}

// EnterSwiping turns the swiping mode on. A leftover releasing mode from a
// previous gesture is cleared at the same time.
func (a *Adapter) EnterSwiping() {
	if a.releasing {
		a.cancelPending()
		a.setReleasing(false)
	}
	if !a.swiping {
		a.swiping = true
		a.surface.SetSwiping(true)
	}
}

// ExitSwiping turns the swiping mode off.
func (a *Adapter) ExitSwiping() {
	if a.swiping {
		a.swiping = false
		a.surface.SetSwiping(false)
	}
}

// PlayRelease snaps the offset back to neutral in releasing mode and
// schedules the mode to clear after the release duration.
func (a *Adapter) PlayRelease() {
	a.cancelPending()
	a.setReleasing(true)
	a.surface.SetDragOffset(0)

	fired := false
	cancel := a.scheduler.Schedule(a.duration, func() {
		fired = true
		a.cancel = nil
		a.setReleasing(false)
	})
	if !fired {
		a.cancel = cancel
	}
}

// Pending reports whether a releasing-mode clear is scheduled.
func (a *Adapter) Pending() bool {
	return a.cancel != nil
}

// Releasing reports whether the releasing mode is on.
func (a *Adapter) Releasing() bool {
	return a.releasing
}

// Swiping reports whether the swiping mode is on.
func (a *Adapter) Swiping() bool {
	return a.swiping
}

func (a *Adapter) setReleasing(on bool) {
	if a.releasing == on {
		return
	}
	a.releasing = on
	a.surface.SetReleasing(on)
}

func (a *Adapter) cancelPending() {
	if a.cancel == nil {
		return
	}
	a.cancel()
	a.cancel = nil
	a.logger.Debug("release clear cancelled")
}
