package session

import "sync"

// ExpiryBus broadcasts the session-expired signal from the HTTP layer to
// any number of in-process listeners. The signal carries no payload.
//
// Deliveries coalesce: each subscriber channel is buffered to one pending
// signal and broadcasts never block, so a burst of concurrent 401s while a
// delivery is still pending collapses into a single receive. Consumers are
// expected to react idempotently regardless.
type ExpiryBus struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewExpiryBus() *ExpiryBus {
	return &ExpiryBus{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener. The caller must Unsubscribe when done.
func (b *ExpiryBus) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener registered with Subscribe.
func (b *ExpiryBus) Unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Broadcast notifies every subscriber without blocking.
func (b *ExpiryBus) Broadcast() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
