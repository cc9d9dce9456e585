package distribution

import (
	"sync"
	"sync/atomic"
	"time"
)

// keyedMutex serializes grant processing per (recipient, game) key. Entries
// are created on demand in a sync.Map; a background janitor reaps entries
// with no holder or waiter so the table does not grow with every recipient
// ever seen.
type keyedMutex struct {
	entries sync.Map // map[string]*lockEntry
	done    chan struct{}
}

// lockEntry's refs counts holders plus waiters. The janitor reaps an entry
// only after swinging refs from 0 to a negative sentinel, so a reaped entry
// can never be locked: Lock retries on a fresh entry instead.
type lockEntry struct {
	mu   sync.Mutex
	refs atomic.Int64
}

const reapedEntry = -1 << 32

// newKeyedMutex creates a keyed mutex with background cleanup.
// Call stop() on shutdown.
func newKeyedMutex(janitorInterval time.Duration) *keyedMutex {
	km := &keyedMutex{done: make(chan struct{})}
	go km.janitor(janitorInterval)
	return km
}

// stop terminates the janitor goroutine.
func (km *keyedMutex) stop() {
	close(km.done)
}

// Lock blocks until the key is held exclusively and returns the unlock func.
func (km *keyedMutex) Lock(key string) func() {
	for {
		v, _ := km.entries.LoadOrStore(key, &lockEntry{})
		e := v.(*lockEntry)
		if e.refs.Add(1) > 0 {
			e.mu.Lock()
			return func() {
				e.mu.Unlock()
				e.refs.Add(-1)
			}
		}
		// The janitor claimed this entry between LoadOrStore and Add;
		// undo the registration and retry on a fresh entry.
		e.refs.Add(-1)
	}
}

func (km *keyedMutex) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-km.done:
			return
		case <-ticker.C:
			km.sweep()
		}
	}
}

func (km *keyedMutex) sweep() {
	km.entries.Range(func(key, value any) bool {
		e := value.(*lockEntry)
		if e.refs.CompareAndSwap(0, reapedEntry) {
			km.entries.Delete(key)
		}
		return true
	})
}
