// Package presence tracks who is online right now. Sessions live in memory
// with a server-enforced TTL: clients heartbeat every 30 seconds and an entry
// that misses two beats is evicted by the sweeper. Nothing here is persisted;
// a restart simply empties the room until heartbeats repopulate it.
package presence

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	lastSeen time.Time
}

type Tracker struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]session
	ttl      time.Duration

	// onChange, when set, is called with the new online count after every
	// change. Used to push live counts into the altar room.
	onChange func(online int)
}

func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{
		sessions: make(map[uuid.UUID]session),
		ttl:      ttl,
	}
}

// OnChange registers the count-changed callback. Must be called before the
// tracker is shared across goroutines.
func (t *Tracker) OnChange(fn func(online int)) {
	t.onChange = fn
}

// Heartbeat marks the user as seen now.
func (t *Tracker) Heartbeat(userID uuid.UUID) {
	t.mu.Lock()
	_, existed := t.sessions[userID]
	t.sessions[userID] = session{lastSeen: time.Now()}
	count := t.countLocked(time.Now())
	t.mu.Unlock()

	if !existed {
		t.notify(count)
	}
}

// Leave drops the user immediately, e.g. on logout or websocket close.
func (t *Tracker) Leave(userID uuid.UUID) {
	t.mu.Lock()
	_, existed := t.sessions[userID]
	delete(t.sessions, userID)
	count := t.countLocked(time.Now())
	t.mu.Unlock()

	if existed {
		t.notify(count)
	}
}

// Count returns how many sessions are within the TTL.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.countLocked(time.Now())
}

func (t *Tracker) countLocked(now time.Time) int {
	count := 0
	for _, s := range t.sessions {
		if now.Sub(s.lastSeen) <= t.ttl {
			count++
		}
	}
	return count
}

// Sweep evicts expired sessions every interval until ctx is cancelled.
func (t *Tracker) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.evictExpired()
		}
	}
}

func (t *Tracker) evictExpired() {
	now := time.Now()

	t.mu.Lock()
	evicted := 0
	for id, s := range t.sessions {
		if now.Sub(s.lastSeen) > t.ttl {
			delete(t.sessions, id)
			evicted++
		}
	}
	count := len(t.sessions)
	t.mu.Unlock()

	if evicted > 0 {
		log.Printf("presence: evicted %d expired sessions, %d online", evicted, count)
		t.notify(count)
	}
}

func (t *Tracker) notify(count int) {
	if t.onChange != nil {
		t.onChange(count)
	}
}
