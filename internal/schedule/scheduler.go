// Package schedule provides delayed execution with cancellation.
//
// Everything that waits in picgrid (search and resize debounce, the modal's
// delayed image release) goes through a Scheduler so the logic can be driven
// by a Manual clock in tests and by real timers in the program.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Cancel stops a scheduled task. It reports whether the task was still pending.
type Cancel func() bool

// Scheduler runs fn once after d has elapsed
type Scheduler interface {
	After(d time.Duration, fn func()) Cancel
}

// Timer schedules with time.AfterFunc. When Post is set the callback is
// handed to Post instead of running on the timer goroutine, which lets the
// UI loop execute it in order with other messages.
type Timer struct {
	Post func(fn func())
}

// After implements Scheduler
func (t *Timer) After(d time.Duration, fn func()) Cancel {
	var post func(func())
	if t != nil {
		post = t.Post
	}
	timer := time.AfterFunc(d, func() {
		if post != nil {
			post(fn)
			return
		}
		fn()
	})
	return timer.Stop
}

type manualTask struct {
	id       uint64
	due      time.Duration
	fn       func()
	canceled bool
}

// Manual is a deterministic Scheduler driven by Advance
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

// NewManual returns a Manual scheduler at time zero
func NewManual() *Manual {
	return &Manual{}
}

// After implements Scheduler
func (m *Manual) After(d time.Duration, fn func()) Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	task := &manualTask{id: m.seq, due: m.now + d, fn: fn}
	m.tasks = append(m.tasks, task)

	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, t := range m.tasks {
			if t == task {
				m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
				return true
			}
		}
		return false
	}
}

// Advance moves the clock forward and runs every task that became due,
// in due order. Tasks scheduled by a running task are honored if they fall
// inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		sort.SliceStable(m.tasks, func(i, j int) bool {
			if m.tasks[i].due == m.tasks[j].due {
				return m.tasks[i].id < m.tasks[j].id
			}
			return m.tasks[i].due < m.tasks[j].due
		})
		if len(m.tasks) == 0 || m.tasks[0].due > target {
			m.now = target
			m.mu.Unlock()
			return
		}
		task := m.tasks[0]
		m.tasks = m.tasks[1:]
		m.now = task.due
		m.mu.Unlock()

		task.fn()
	}
}

// Pending returns the number of tasks not yet run or canceled
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
