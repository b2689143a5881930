// Package search implements the live patient search helpers: a debouncer for
// keystroke-driven queries and the persisted recent-search list.
package search

import (
	"strings"
	"sync"
	"time"
)

// Debouncer schedules a lookup after a quiet period of no further input, and
// only once the trimmed query reaches MinLength. A newer call replaces any
// pending one, so at most one timer is outstanding.
type Debouncer struct {
	Quiet     time.Duration
	MinLength int

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(quiet time.Duration, minLength int) *Debouncer {
	return &Debouncer{Quiet: quiet, MinLength: minLength}
}

// Input records a keystroke. Any pending lookup is cancelled; if the trimmed
// query is long enough, fn is scheduled to run with it after the quiet period.
func (d *Debouncer) Input(query string, fn func(query string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	trimmed := strings.TrimSpace(query)
	if len(trimmed) < d.MinLength {
		return
	}

	d.timer = time.AfterFunc(d.Quiet, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		fn(trimmed)
	})
}

// Cancel drops any pending lookup.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a lookup is scheduled but not yet fired.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
