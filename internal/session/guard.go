package session

import (
	"fmt"
	"strconv"
	"time"

	"nfc4care/internal/storage"
)

// Guard tracks consecutive failed logins for this device and imposes a timed
// lockout once the threshold is reached. Counter and timestamp are persisted,
// so the locked state survives process restarts.
type Guard struct {
	store    *storage.Store
	max      int
	duration time.Duration
}

// LockoutError rejects a login attempt client-side, without contacting the
// server.
type LockoutError struct {
	Remaining time.Duration
}

func (e *LockoutError) Error() string {
	remaining := e.Remaining.Round(time.Second)
	return fmt.Sprintf("account temporarily locked, retry in %d:%02d",
		int(remaining.Minutes()), int(remaining.Seconds())%60)
}

func NewGuard(store *storage.Store, max int, duration time.Duration) *Guard {
	if max <= 0 {
		max = 5
	}
	if duration <= 0 {
		duration = 15 * time.Minute
	}
	return &Guard{store: store, max: max, duration: duration}
}

// Check recomputes the locked state from persisted data. An elapsed lockout
// window resets the counter as a side effect.
func (g *Guard) Check() error {
	count, last, ok := g.load()
	if !ok {
		return nil
	}

	since := time.Since(last)
	if since >= g.duration {
		g.reset()
		return nil
	}
	if count >= g.max {
		return &LockoutError{Remaining: g.duration - since}
	}
	return nil
}

// RecordFailure increments the counter and stamps the current time. Returns
// the attempts still allowed before lockout (zero when locked).
func (g *Guard) RecordFailure() int {
	count, _, _ := g.load()
	count++

	if err := g.store.Set(storage.KeyLoginAttempts, strconv.Itoa(count)); err != nil {
		return 0
	}
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := g.store.Set(storage.KeyLastLoginAttempt, now); err != nil {
		return 0
	}

	remaining := g.max - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Reset clears the counter, e.g. after a successful login.
func (g *Guard) Reset() {
	g.reset()
}

func (g *Guard) load() (count int, last time.Time, ok bool) {
	rawCount, okCount := g.store.Get(storage.KeyLoginAttempts)
	rawLast, okLast := g.store.Get(storage.KeyLastLoginAttempt)
	if !okCount || !okLast {
		return 0, time.Time{}, false
	}

	count, err := strconv.Atoi(rawCount)
	if err != nil {
		g.reset()
		return 0, time.Time{}, false
	}
	ms, err := strconv.ParseInt(rawLast, 10, 64)
	if err != nil {
		g.reset()
		return 0, time.Time{}, false
	}
	return count, time.UnixMilli(ms), true
}

func (g *Guard) reset() {
	_ = g.store.Remove(storage.KeyLoginAttempts, storage.KeyLastLoginAttempt)
}
