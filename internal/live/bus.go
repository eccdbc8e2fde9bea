package live

import (
	"sync"

	"taskboard/internal/domain"
)

// Change describes one committed mutation. Subscribers treat it as an
// invalidation signal and re-read whatever query they care about; the payload
// exists so feeds can log or filter, it is not the new state.
type Change struct {
	TaskID int64
	Kind   domain.ChangeKind
}

// Bus fans mutation notifications out to subscribers. Sends never block: a
// full subscriber channel already holds a pending signal, and since consumers
// recompute from the store on each signal, dropping the extra one loses
// nothing.
type Bus struct {
	mu   sync.RWMutex
	subs map[int64]chan Change
	seq  int64
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int64]chan Change)}
}

// Subscribe registers a new subscriber and returns its id and channel. The
// channel is closed by Unsubscribe.
func (b *Bus) Subscribe() (int64, <-chan Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	ch := make(chan Change, 1)
	b.subs[b.seq] = ch
	return b.seq, ch
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call for
// an already-removed id.
func (b *Bus) Unsubscribe(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish notifies every subscriber of a committed mutation.
func (b *Bus) Publish(c Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// Subscribers returns the current subscriber count.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
