package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/vinyl-shuffle/internal/display"
	"github.com/handiism/vinyl-shuffle/internal/feedback"
	"github.com/handiism/vinyl-shuffle/internal/navigate"
)

// cmdQueue collects commands produced by callbacks during Update; Update
// returns them once it is done.
type cmdQueue struct {
	cmds []tea.Cmd
}

func (q *cmdQueue) push(cmd tea.Cmd) {
	q.cmds = append(q.cmds, cmd)
}

func (q *cmdQueue) drain() []tea.Cmd {
	cmds := q.cmds
	q.cmds = nil
	return cmds
}

// releaseTickMsg fires a task scheduled through tickScheduler.
type releaseTickMsg struct {
	id int
}

// tickScheduler implements feedback.Scheduler with tea.Tick. Tasks run
// inside Update, on the UI goroutine; cancelling forgets the id so the late
// tick is ignored.
type tickScheduler struct {
	queue *cmdQueue
	next  int
	tasks map[int]func()
}

func newTickScheduler(queue *cmdQueue) *tickScheduler {
	return &tickScheduler{queue: queue, tasks: make(map[int]func())}
}

// Schedule implements feedback.Scheduler.
func (s *tickScheduler) Schedule(d time.Duration, fire func()) feedback.CancelFunc {
	s.next++
	id := s.next
	s.tasks[id] = fire
	s.queue.push(tea.Tick(d, func(time.Time) tea.Msg {
		return releaseTickMsg{id: id}
	}))
	return func() { delete(s.tasks, id) }
}

// fire runs the task for id. It reports false for cancelled or unknown ids.
func (s *tickScheduler) fire(id int) bool {
	task, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	task()
	return true
}

// pending returns the ids still waiting for their tick.
func (s *tickScheduler) pending() []int {
	ids := make([]int, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	return ids
}

// navigatedMsg carries the outcome of a navigation back to Update.
type navigatedMsg struct {
	outcome navigate.Outcome[*display.Card]
}

// cmdExecutor runs gate tasks as tea commands.
type cmdExecutor struct {
	queue *cmdQueue
}

// Go implements navigate.Executor.
func (e cmdExecutor) Go(task navigate.Task[*display.Card]) {
	e.queue.push(func() tea.Msg {
		return navigatedMsg{outcome: task()}
	})
}
