package httpapi

import (
	"sync"

	"member-portal/accountd/internal/auth"
)

// eventBus fans audit events out to SSE subscribers. Slow subscribers drop
// events rather than block the auth flow.
type eventBus struct {
	mu   sync.Mutex
	subs map[chan auth.Event]struct{}
}

func newEventBus() *eventBus {
	return &eventBus{subs: make(map[chan auth.Event]struct{})}
}

func (b *eventBus) Subscribe() chan auth.Event {
	ch := make(chan auth.Event, 32)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *eventBus) Unsubscribe(ch chan auth.Event) {
	if ch == nil {
		return
	}
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	close(ch)
}

func (b *eventBus) Publish(ev auth.Event) {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// drop if subscriber is slow
		}
	}
	b.mu.Unlock()
}
