package schedule

import (
	"sync"
	"time"
)

// Debouncer delays work until input has been quiet for Delay.
// Each Trigger cancels the previous pending call, so only the latest runs.
type Debouncer struct {
	scheduler Scheduler
	delay     time.Duration

	mu      sync.Mutex
	gen     uint64
	pending Cancel
}

// NewDebouncer creates a debouncer on top of s
func NewDebouncer(s Scheduler, delay time.Duration) *Debouncer {
	return &Debouncer{scheduler: s, delay: delay}
}

// Trigger schedules fn, replacing any call still waiting
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending()
	}
	d.gen++
	gen := d.gen
	d.pending = d.scheduler.After(d.delay, func() {
		d.mu.Lock()
		// A newer Trigger may have replaced us after the timer fired
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()
		fn()
	})
}

// Stop drops the pending call, if any
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.pending != nil {
		d.pending()
		d.pending = nil
	}
}

// Delay returns the quiet window
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
