// Package dedupe remembers recently indexed speech IDs so that replayed
// Kafka batches do not write the same speech into the search index twice.
package dedupe

import (
	"sync"
	"time"
)

type queued struct {
	id string
	at time.Time
}

// Tracker is a bounded, TTL-scoped set of speech IDs.
type Tracker struct {
	mu    sync.Mutex
	seen  map[string]time.Time
	queue []queued
	limit int
	ttl   time.Duration
}

// NewTracker builds a tracker holding at most limit IDs for at most ttl.
func NewTracker(limit int, ttl time.Duration) *Tracker {
	if limit <= 0 {
		limit = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Tracker{
		seen:  make(map[string]time.Time, limit),
		queue: make([]queued, 0, limit),
		limit: limit,
		ttl:   ttl,
	}
}

// Seen reports whether the ID was recorded within the TTL window. It does
// not record anything itself.
func (t *Tracker) Seen(id string) bool {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	at, ok := t.seen[id]
	return ok && now.Sub(at) <= t.ttl
}

// Record marks an ID as indexed and evicts whatever fell out of the window
// or over the capacity.
func (t *Tracker) Record(id string) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.seen[id] = now
	t.queue = append(t.queue, queued{id: id, at: now})

	cutoff := now.Add(-t.ttl)
	for len(t.queue) > 0 && (len(t.seen) > t.limit || t.queue[0].at.Before(cutoff)) {
		head := t.queue[0]
		t.queue = t.queue[1:]
		// A re-recorded ID has a newer timestamp in the map; only drop the
		// map entry when this queue slot is still its latest record.
		if at, ok := t.seen[head.id]; ok && at.Equal(head.at) {
			delete(t.seen, head.id)
		}
	}
}
