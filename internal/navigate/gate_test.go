package navigate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// queue collects tasks so tests decide when a navigation completes.
type queue[T any] struct {
	tasks []Task[T]
}

func (q *queue[T]) Go(task Task[T]) { q.tasks = append(q.tasks, task) }

func (q *queue[T]) runNext(t *testing.T) Outcome[T] {
	t.Helper()
	if len(q.tasks) == 0 {
		t.Fatal("no pending task")
	}
	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	return task()
}

func TestGate_DropsWhileInFlight(t *testing.T) {
	calls := 0
	q := &queue[string]{}
	gate := NewGate(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		return "next", nil
	}, q)

	if !gate.Request(TriggerSwipe) {
		t.Fatal("first request should be admitted")
	}
	if gate.Request(TriggerClick) {
		t.Error("second request should be dropped while the first is unresolved")
	}
	if gate.Request(TriggerKeyboard) {
		t.Error("third request should be dropped while the first is unresolved")
	}
	if len(q.tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(q.tasks))
	}

	out := q.runNext(t)
	if calls != 1 {
		t.Errorf("navigation called %d times, want 1", calls)
	}
	if out.Value != "next" || out.Err != nil || out.Trigger != TriggerSwipe {
		t.Errorf("unexpected outcome %+v", out)
	}
	if gate.InFlight() {
		t.Error("gate should be released after completion")
	}
	if !gate.Request(TriggerClick) {
		t.Error("request after completion should be admitted")
	}
}

func TestGate_RecoversAfterFailure(t *testing.T) {
	boom := errors.New("fetch failed")
	fail := true
	q := &queue[int]{}
	gate := NewGate(context.Background(), func(ctx context.Context) (int, error) {
		if fail {
			return 0, boom
		}
		return 7, nil
	}, q)

	gate.Request(TriggerKeyboard)
	out := q.runNext(t)
	if !errors.Is(out.Err, ErrNavigationFailed) || !errors.Is(out.Err, boom) {
		t.Fatalf("Err = %v, want ErrNavigationFailed wrapping cause", out.Err)
	}
	if gate.InFlight() {
		t.Fatal("gate stuck in flight after failure")
	}

	fail = false
	if !gate.Request(TriggerKeyboard) {
		t.Fatal("request after failure should be admitted")
	}
	if out := q.runNext(t); out.Value != 7 || out.Err != nil {
		t.Errorf("unexpected outcome %+v", out)
	}
}

func TestGate_RecoversAfterPanic(t *testing.T) {
	q := &queue[int]{}
	gate := NewGate(context.Background(), func(ctx context.Context) (int, error) {
		panic("renderer exploded")
	}, q)

	gate.Request(TriggerSwipe)
	out := q.runNext(t)
	if !errors.Is(out.Err, ErrNavigationPanicked) || !errors.Is(out.Err, ErrNavigationFailed) {
		t.Fatalf("Err = %v, want panic wrapped as failure", out.Err)
	}
	if gate.InFlight() {
		t.Error("gate stuck in flight after panic")
	}
}

func TestGate_Timeout(t *testing.T) {
	q := &queue[int]{}
	gate := NewGate(context.Background(), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}, q, WithTimeout(10*time.Millisecond))

	gate.Request(TriggerClick)
	out := q.runNext(t)
	if !errors.Is(out.Err, context.DeadlineExceeded) {
		t.Errorf("Err = %v, want deadline exceeded", out.Err)
	}
}

func TestGate_ConcurrentRequestsAdmitOne(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	var wg sync.WaitGroup
	exec := ExecutorFunc[int](func(task Task[int]) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task()
		}()
	})
	gate := NewGate(context.Background(), func(ctx context.Context) (int, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return 1, nil
	}, exec)

	var admitted sync.WaitGroup
	results := make(chan bool, 16)
	for i := 0; i < 16; i++ {
		admitted.Add(1)
		go func() {
			defer admitted.Done()
			results <- gate.Request(TriggerClick)
		}()
	}
	admitted.Wait()
	close(results)
	close(release)
	wg.Wait()

	count := 0
	for ok := range results {
		if ok {
			count++
		}
	}
	if count != 1 || calls != 1 {
		t.Errorf("admitted %d requests and ran %d navigations, want 1 and 1", count, calls)
	}
}

func TestTrigger_String(t *testing.T) {
	tests := map[Trigger]string{
		TriggerSwipe:    "swipe",
		TriggerClick:    "click",
		TriggerKeyboard: "keyboard",
		TriggerStartup:  "startup",
		Trigger(9):      "trigger(9)",
	}
	for trigger, want := range tests {
		if got := trigger.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
