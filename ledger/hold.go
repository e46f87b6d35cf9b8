package ledger

import "sync"

// Hold is an exclusive checkout lock on a ledger. Exactly one of Commit or
// Release takes effect; later calls are ignored.
type Hold struct {
	ledger *Ledger
	snap   Snapshot
	once   sync.Once
}

// BeginCheckout locks the ledger against every mutation until the returned
// hold is committed or released.
func (l *Ledger) BeginCheckout() (*Hold, error) {
	l.mu.Lock()
	if l.locked {
		l.mu.Unlock()
		return nil, ErrCheckoutPending
	}
	l.locked = true
	snap := l.nextLocked()
	l.mu.Unlock()

	l.publish(snap)
	return &Hold{ledger: l, snap: snap}, nil
}

// Snapshot is the cart as it was when the hold was taken.
func (h *Hold) Snapshot() Snapshot {
	return h.snap
}

// Commit empties the cart and unlocks it.
func (h *Hold) Commit() {
	h.once.Do(func() {
		l := h.ledger
		l.mu.Lock()
		l.locked = false
		snap := l.clearLocked()
		l.mu.Unlock()
		l.publish(snap)
	})
}

// Release unlocks the cart without touching its items.
func (h *Hold) Release() {
	h.once.Do(func() {
		l := h.ledger
		l.mu.Lock()
		l.locked = false
		snap := l.nextLocked()
		l.mu.Unlock()
		l.publish(snap)
	})
}
