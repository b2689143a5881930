package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Errors stay up longer than the rest.
const (
	errorDismiss   = 8 * time.Second
	defaultDismiss = 5 * time.Second
)

type Notification struct {
	ID          string
	Severity    Severity
	Title       string
	Message     string
	AutoDismiss time.Duration
}

// Center holds the ordered list of live notifications, each with its own
// auto-dismiss timer.
type Center struct {
	mu     sync.Mutex
	items  []Notification
	timers map[string]*time.Timer
}

func NewCenter() *Center {
	return &Center{timers: map[string]*time.Timer{}}
}

// Push appends a notification and schedules its dismissal.
func (c *Center) Push(severity Severity, title, message string) Notification {
	n := Notification{
		ID:          uuid.NewString(),
		Severity:    severity,
		Title:       title,
		Message:     message,
		AutoDismiss: defaultDismiss,
	}
	if severity == SeverityError {
		n.AutoDismiss = errorDismiss
	}

	c.mu.Lock()
	c.items = append(c.items, n)
	c.timers[n.ID] = time.AfterFunc(n.AutoDismiss, func() { c.Remove(n.ID) })
	c.mu.Unlock()

	return n
}

func (c *Center) Error(title, message string) Notification {
	return c.Push(SeverityError, title, message)
}

func (c *Center) Success(title, message string) Notification {
	return c.Push(SeveritySuccess, title, message)
}

// Remove drops the notification and stops its timer. Removing an unknown or
// already-dismissed ID is a no-op.
func (c *Center) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
}

// List returns the live notifications in insertion order.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Clear dismisses everything.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.items = nil
}
