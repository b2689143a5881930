package notify

import "sync"

// ExpirationNotifier bridges auth failures detected deep in the API layer to
// the single top-level "session expired" prompt.
type ExpirationNotifier struct {
	mu      sync.Mutex
	active  bool
	handler func(status int)
}

func NewExpirationNotifier() *ExpirationNotifier {
	return &ExpirationNotifier{}
}

// Subscribe registers the single prompt handler. Later calls replace it.
func (n *ExpirationNotifier) Subscribe(handler func(status int)) {
	n.mu.Lock()
	n.handler = handler
	n.mu.Unlock()
}

// Signal reports an auth failure with the offending HTTP status. While a
// prompt is open, or when nothing is subscribed, the signal is dropped.
func (n *ExpirationNotifier) Signal(status int) {
	n.mu.Lock()
	if n.active || n.handler == nil {
		n.mu.Unlock()
		return
	}
	n.active = true
	handler := n.handler
	n.mu.Unlock()

	handler(status)
}

// Resolve marks the prompt closed so a future auth failure can signal again.
func (n *ExpirationNotifier) Resolve() {
	n.mu.Lock()
	n.active = false
	n.mu.Unlock()
}

// Active reports whether a prompt is currently open.
func (n *ExpirationNotifier) Active() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}
