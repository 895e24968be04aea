package feedback

import (
	"testing"
	"time"
)

type fakeSurface struct {
	offset    float64
	swiping   bool
	releasing bool
	updates   int
}

func (s *fakeSurface) SetDragOffset(px float64) { s.offset = px; s.updates++ }
func (s *fakeSurface) SetSwiping(on bool)       { s.swiping = on }
func (s *fakeSurface) SetReleasing(on bool)     { s.releasing = on }

// manualScheduler fires tasks when the test advances its clock.
type manualScheduler struct {
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	fire      func()
	cancelled bool
	fired     bool
}

func (m *manualScheduler) Schedule(d time.Duration, fire func()) CancelFunc {
	task := &manualTask{due: m.now + d, fire: fire}
	m.tasks = append(m.tasks, task)
	return func() { task.cancelled = true }
}

func (m *manualScheduler) advance(d time.Duration) {
	m.now += d
	for _, task := range m.tasks {
		if !task.cancelled && !task.fired && task.due <= m.now {
			task.fired = true
			task.fire()
		}
	}
}

func TestAdapter_DragOffsetIsSynchronous(t *testing.T) {
	surface := &fakeSurface{}
	adapter := NewAdapter(surface, &manualScheduler{})

	adapter.SetDragOffset(-45)
	if surface.offset != -45 {
		t.Errorf("offset = %v, want -45 without waiting", surface.offset)
	}
}

func TestAdapter_SwipingMode(t *testing.T) {
	surface := &fakeSurface{}
	adapter := NewAdapter(surface, &manualScheduler{})

	adapter.EnterSwiping()
	if !surface.swiping || !adapter.Swiping() {
		t.Error("EnterSwiping should turn swiping on")
	}
	adapter.ExitSwiping()
	if surface.swiping {
		t.Error("ExitSwiping should turn swiping off")
	}
}

func TestAdapter_ReleaseClearsAfterDuration(t *testing.T) {
	surface := &fakeSurface{}
	sched := &manualScheduler{}
	adapter := NewAdapter(surface, sched)

	adapter.SetDragOffset(-120)
	adapter.PlayRelease()

	if !surface.releasing || !adapter.Releasing() {
		t.Fatal("PlayRelease should enter releasing mode")
	}
	if surface.offset != 0 {
		t.Errorf("offset = %v, want reset to 0", surface.offset)
	}

	sched.advance(299 * time.Millisecond)
	if !surface.releasing {
		t.Error("releasing mode cleared too early")
	}

	sched.advance(time.Millisecond)
	if surface.releasing || adapter.Releasing() {
		t.Error("releasing mode should clear at 300ms")
	}
	if adapter.Pending() {
		t.Error("no task should be pending after it fired")
	}
}

func TestAdapter_NewGestureCancelsPendingClear(t *testing.T) {
	surface := &fakeSurface{}
	sched := &manualScheduler{}
	adapter := NewAdapter(surface, sched)

	adapter.PlayRelease()
	sched.advance(100 * time.Millisecond)

	adapter.BeginGesture()
	if adapter.Pending() {
		t.Fatal("BeginGesture should cancel the pending clear")
	}

	sched.advance(time.Second)
	if !surface.releasing {
		t.Error("cancelled clear must not fire")
	}

	// The mode is cleared as soon as the new gesture locks.
	adapter.EnterSwiping()
	if surface.releasing {
		t.Error("EnterSwiping should clear a leftover releasing mode")
	}
}

func TestAdapter_SecondReleaseReschedules(t *testing.T) {
	surface := &fakeSurface{}
	sched := &manualScheduler{}
	adapter := NewAdapter(surface, sched, WithReleaseDuration(50*time.Millisecond))

	adapter.PlayRelease()
	sched.advance(40 * time.Millisecond)
	adapter.PlayRelease()
	sched.advance(20 * time.Millisecond)

	if !surface.releasing {
		t.Error("first timer should have been replaced by the second")
	}
	sched.advance(30 * time.Millisecond)
	if surface.releasing {
		t.Error("second timer should clear releasing mode")
	}
}

func TestAdapter_BeginGestureWithoutPendingIsNoOp(t *testing.T) {
	surface := &fakeSurface{}
	adapter := NewAdapter(surface, &manualScheduler{})

	adapter.BeginGesture()
	if surface.updates != 0 || surface.releasing || surface.swiping {
		t.Error("BeginGesture without a pending clear should not touch the surface")
	}
}
