package usecase

import "sync"

// ChangeBus is a process-wide, payload-free broadcast fired after every cart
// mutation. Observers re-read the store when signalled; they must tolerate
// redundant signals. No ordering is guaranteed across observers.
type ChangeBus struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func NewChangeBus() *ChangeBus {
	return &ChangeBus{subs: make(map[int]func())}
}

// Subscribe registers fn and returns a detach handle. The handle is safe to
// call more than once.
func (b *ChangeBus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Broadcast invokes every current subscriber. Subscribers run outside the
// lock so they may subscribe/unsubscribe from within a callback.
func (b *ChangeBus) Broadcast() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
