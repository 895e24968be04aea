package gesture

import (
	"math"
	"testing"

	"github.com/handiism/vinyl-shuffle/internal/navigate"
)

type recordingFeedback struct {
	offsets  []float64
	begins   int
	enters   int
	exits    int
	releases int
}

func (f *recordingFeedback) BeginGesture()            { f.begins++ }
func (f *recordingFeedback) SetDragOffset(px float64) { f.offsets = append(f.offsets, px) }
func (f *recordingFeedback) EnterSwiping()            { f.enters++ }
func (f *recordingFeedback) ExitSwiping()             { f.exits++ }
func (f *recordingFeedback) PlayRelease()             { f.releases++ }

func (f *recordingFeedback) lastOffset() float64 {
	if len(f.offsets) == 0 {
		return 0
	}
	return f.offsets[len(f.offsets)-1]
}

type countingNavigator struct {
	requests []navigate.Trigger
}

func (n *countingNavigator) Request(trigger navigate.Trigger) bool {
	n.requests = append(n.requests, trigger)
	return true
}

func newTestTracker(kind Kind) (*Tracker, *recordingFeedback, *countingNavigator) {
	fb := &recordingFeedback{}
	nav := &countingNavigator{}
	return NewTracker(kind, fb, nav), fb, nav
}

func at(x, y float64) Sample { return Sample{X: x, Y: y} }

func TestTracker_ShortSwipeDoesNotCommit(t *testing.T) {
	tracker, fb, nav := newTestTracker(KindTouch)

	tracker.Start(at(0, 0), TargetSurface)
	tracker.Move(at(-150, 5))

	if got := tracker.Offset(); got != -45 {
		t.Fatalf("Offset() = %v, want -45", got)
	}
	if got := fb.lastOffset(); got != -45 {
		t.Errorf("feedback offset = %v, want -45", got)
	}

	out := tracker.End()
	if out.Committed || out.Direction != DirectionNone {
		t.Errorf("End() = %+v, want no commit", out)
	}
	if len(nav.requests) != 0 {
		t.Errorf("navigation requested %d times, want 0", len(nav.requests))
	}
}

func TestTracker_LongSwipeCommits(t *testing.T) {
	tracker, _, nav := newTestTracker(KindTouch)

	tracker.Start(at(0, 0), TargetSurface)
	tracker.Move(at(-400, 0))

	if got := tracker.Offset(); got != -120 {
		t.Fatalf("Offset() = %v, want -120", got)
	}

	out := tracker.End()
	if !out.Committed || out.Direction != DirectionForward {
		t.Errorf("End() = %+v, want forward commit", out)
	}
	if len(nav.requests) != 1 || nav.requests[0] != navigate.TriggerSwipe {
		t.Errorf("requests = %v, want one swipe", nav.requests)
	}
}

func TestTracker_CommitRule(t *testing.T) {
	tests := []struct {
		name    string
		finalDX float64
		commit  bool
	}{
		{"zero movement", 0, false},
		{"just below threshold", 333, false},
		{"just above threshold", 334, true},
		{"rightward swipe", 500, true},
		{"leftward swipe", -500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _, nav := newTestTracker(KindTouch)
			tracker.Start(at(0, 0), TargetSurface)
			if tt.finalDX != 0 {
				tracker.Move(at(tt.finalDX, 0))
			}
			out := tracker.End()
			if out.Committed != tt.commit {
				t.Errorf("Committed = %v (offset %v), want %v", out.Committed, out.Offset, tt.commit)
			}
			wantRequests := 0
			if tt.commit {
				wantRequests = 1
			}
			if len(nav.requests) != wantRequests {
				t.Errorf("requests = %d, want %d", len(nav.requests), wantRequests)
			}
		})
	}
}

func TestTracker_DampingIndependentOfMoveFrequency(t *testing.T) {
	coarse, _, _ := newTestTracker(KindTouch)
	coarse.Start(at(10, 10), TargetSurface)
	coarse.Move(at(260, 12))

	fine, _, _ := newTestTracker(KindTouch)
	fine.Start(at(10, 10), TargetSurface)
	for x := 11.0; x <= 260; x++ {
		fine.Move(at(x, 12))
	}

	want := 250 * DefaultDamping
	if coarse.Offset() != want || fine.Offset() != want {
		t.Errorf("offsets = %v / %v, want %v", coarse.Offset(), fine.Offset(), want)
	}
}

func TestTracker_ReversalJudgedOnFinalOffset(t *testing.T) {
	tracker, _, nav := newTestTracker(KindTouch)

	tracker.Start(at(0, 0), TargetSurface)
	tracker.Move(at(-500, 0))
	tracker.Move(at(-100, 0))

	out := tracker.End()
	if out.Committed {
		t.Errorf("End() = %+v, want no commit after reversal", out)
	}
	if len(nav.requests) != 0 {
		t.Error("reversed swipe must not navigate")
	}
}

func TestTracker_AxisLockAsymmetry(t *testing.T) {
	touch, touchFB, _ := newTestTracker(KindTouch)
	touch.Start(at(0, 0), TargetSurface)
	suppress := touch.Move(at(5, 1))

	if touch.Axis() != AxisHorizontal {
		t.Error("touch move dx=5 dy=1 should lock horizontal")
	}
	if !suppress {
		t.Error("horizontal touch move should suppress default handling")
	}
	if touchFB.enters != 1 {
		t.Errorf("EnterSwiping called %d times, want 1", touchFB.enters)
	}

	mouse, mouseFB, _ := newTestTracker(KindMouse)
	mouse.Start(at(0, 0), TargetSurface)
	if mouse.Move(at(5, 1)) {
		t.Error("mouse moves never suppress")
	}
	if mouse.Axis() != AxisUndetermined {
		t.Error("mouse move dx=5 should not lock")
	}
	if len(mouseFB.offsets) != 0 || mouseFB.enters != 0 {
		t.Error("unlocked mouse move must not produce visual feedback")
	}

	mouse.Move(at(11, 1))
	if mouse.Axis() != AxisHorizontal {
		t.Error("mouse move dx=11 should lock")
	}
	if got := mouse.Offset(); math.Abs(got-3.3) > 1e-9 {
		t.Errorf("Offset() = %v, want 3.3", got)
	}
}

func TestTracker_VerticalIntentLeavesDefaultHandling(t *testing.T) {
	tracker, fb, _ := newTestTracker(KindTouch)

	tracker.Start(at(0, 0), TargetSurface)
	for y := 10.0; y <= 200; y += 10 {
		if tracker.Move(at(3, y)) {
			t.Fatal("vertical move must not suppress default handling")
		}
	}

	if tracker.Axis() != AxisUndetermined {
		t.Error("vertical gesture should stay undetermined")
	}
	if len(fb.offsets) != 0 {
		t.Errorf("vertical gesture produced offsets %v", fb.offsets)
	}
	if out := tracker.End(); out.Committed {
		t.Error("vertical gesture must not commit")
	}
}

func TestTracker_FilteredStart(t *testing.T) {
	for _, target := range []Target{TargetVinyl, TargetLink, TargetControl} {
		t.Run(target.String(), func(t *testing.T) {
			tracker, fb, nav := newTestTracker(KindMouse)

			if tracker.Start(at(0, 0), target) {
				t.Fatal("Start() on interactive element should be rejected")
			}
			if tracker.Active() {
				t.Fatal("tracker should stay idle")
			}
			tracker.Move(at(-600, 0))
			out := tracker.End()

			if out.Committed || len(nav.requests) != 0 {
				t.Error("filtered gesture must not navigate")
			}
			if len(fb.offsets) != 0 || fb.begins != 0 || fb.releases != 0 {
				t.Errorf("filtered gesture changed visuals: %+v", fb)
			}
		})
	}
}

func TestTracker_StartAtOriginIsAGesture(t *testing.T) {
	tracker, _, nav := newTestTracker(KindTouch)

	if !tracker.Start(at(0, 0), TargetSurface) {
		t.Fatal("start at coordinate 0 must be accepted")
	}
	tracker.Move(at(-400, 0))
	if !tracker.End().Committed {
		t.Error("gesture starting at x=0 should be evaluated normally")
	}
	if len(nav.requests) != 1 {
		t.Errorf("requests = %d, want 1", len(nav.requests))
	}
}

func TestTracker_RestartDiscardsPreviousGesture(t *testing.T) {
	tracker, fb, nav := newTestTracker(KindTouch)

	tracker.Start(at(0, 0), TargetSurface)
	tracker.Move(at(-500, 0))
	if !tracker.Start(at(300, 300), TargetSurface) {
		t.Fatal("restart should be accepted")
	}

	if tracker.Offset() != 0 || tracker.Axis() != AxisUndetermined {
		t.Error("restart should reset offset and axis")
	}
	if fb.lastOffset() != 0 {
		t.Errorf("visual offset = %v, want reset to 0", fb.lastOffset())
	}
	if len(nav.requests) != 0 {
		t.Error("discarded gesture must not navigate")
	}

	tracker.Move(at(310, 300))
	if out := tracker.End(); out.Committed {
		t.Error("new gesture is measured from the new start")
	}
}

func TestTracker_AbandonAppliesCommitRule(t *testing.T) {
	tracker, fb, nav := newTestTracker(KindMouse)

	tracker.Start(at(500, 10), TargetSurface)
	tracker.Move(at(100, 12))
	out := tracker.Abandon()

	if !out.Committed {
		t.Errorf("Abandon() = %+v, want commit at offset -120", out)
	}
	if len(nav.requests) != 1 {
		t.Errorf("requests = %d, want 1", len(nav.requests))
	}
	if fb.releases != 1 || fb.exits != 1 {
		t.Errorf("release played %d times, exits %d; want 1 and 1", fb.releases, fb.exits)
	}
	if tracker.Active() {
		t.Error("tracker should be idle after abandon")
	}
}

func TestTracker_MalformedSampleEndsWithoutCommit(t *testing.T) {
	tracker, fb, nav := newTestTracker(KindTouch)

	tracker.Start(at(0, 0), TargetSurface)
	tracker.Move(at(-500, 0))
	tracker.Move(Sample{X: math.NaN(), Y: 0})

	if tracker.Active() {
		t.Error("malformed sample should end the gesture")
	}
	if len(nav.requests) != 0 {
		t.Error("malformed sample must not navigate")
	}
	if fb.releases != 1 {
		t.Errorf("release played %d times, want 1", fb.releases)
	}
}

func TestTracker_IdleCallsAreNoOps(t *testing.T) {
	tracker, fb, _ := newTestTracker(KindTouch)

	if tracker.Move(at(100, 0)) {
		t.Error("Move() while idle should not suppress")
	}
	if out := tracker.End(); out != (Outcome{}) {
		t.Errorf("End() while idle = %+v, want zero", out)
	}
	if fb.releases != 0 || len(fb.offsets) != 0 {
		t.Error("idle calls must not touch visuals")
	}
}

func TestTracker_ReleaseAlwaysPlayed(t *testing.T) {
	tracker, fb, _ := newTestTracker(KindTouch)

	tracker.Start(at(0, 0), TargetSurface)
	tracker.End()
	tracker.Start(at(0, 0), TargetSurface)
	tracker.Move(at(50, 0))
	tracker.End()

	if fb.releases != 2 {
		t.Errorf("PlayRelease called %d times, want 2", fb.releases)
	}
	if fb.begins != 2 {
		t.Errorf("BeginGesture called %d times, want 2", fb.begins)
	}
}

func TestTracker_CustomConfig(t *testing.T) {
	fb := &recordingFeedback{}
	nav := &countingNavigator{}
	tracker := NewTracker(KindMouse, fb, nav, WithConfig(Config{
		Threshold:         20,
		Damping:           0.5,
		MouseLockDistance: 2,
	}))

	tracker.Start(at(0, 0), TargetSurface)
	tracker.Move(at(3, 0))
	if tracker.Offset() != 1.5 {
		t.Errorf("Offset() = %v, want 1.5", tracker.Offset())
	}
	tracker.Move(at(50, 0))
	if !tracker.End().Committed {
		t.Error("25px offset should commit against a 20px threshold")
	}
}

func TestTracker_OffsetEqualToThresholdDoesNotCommit(t *testing.T) {
	tracker := NewTracker(KindTouch, nil, nil, WithConfig(Config{Threshold: 100, Damping: 0.5}))

	tracker.Start(at(0, 0), TargetSurface)
	tracker.Move(at(200, 0))
	if out := tracker.End(); out.Committed || out.Offset != 100 {
		t.Errorf("End() = %+v, want offset 100 without commit", out)
	}
}
