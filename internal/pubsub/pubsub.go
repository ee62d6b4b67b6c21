package pubsub

import "sync"

// Hub is a minimal change-notification fanout. Each store owns one; pages
// (or anything else) subscribe to re-read after a mutation lands.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]func())}
}

// Subscribe registers fn to run after every successful mutation. The
// returned cancel func removes the subscription.
func (h *Hub) Subscribe(fn func()) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subs[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Publish runs every subscriber. Callers must not hold their own store
// lock while publishing if subscribers read back through the store.
func (h *Hub) Publish() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
