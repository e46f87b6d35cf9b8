// Package ledger owns a session's cart line items and is the only code path
// allowed to change them. Totals are derived on every read.
package ledger

import (
	"errors"
	"sync"

	"techstore/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrCheckoutPending = errors.New("cart is locked while checkout is pending")
)

// Snapshot is an immutable view of the ledger handed to subscribers.
// Version increases by one with every state change.
type Snapshot struct {
	Items   []models.LineItem
	Totals  models.Totals
	Locked  bool
	Version uint64
}

type Ledger struct {
	mu      sync.RWMutex
	pricing Pricing
	items   []models.LineItem
	locked  bool
	version uint64

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int

	// deliverMu orders deliveries; delivered is the last version handed out.
	deliverMu sync.Mutex
	delivered uint64
}

func New(pricing Pricing, seed ...models.LineItem) *Ledger {
	l := &Ledger{
		pricing: pricing,
		subs:    make(map[int]func(Snapshot)),
	}
	for _, item := range seed {
		if item.Quantity < 1 {
			continue
		}
		if i := l.indexOf(item.ID); i >= 0 {
			l.items[i].Quantity += item.Quantity
			continue
		}
		l.items = append(l.items, item)
	}
	return l
}

// AddItem increments the quantity of an existing line or appends a new one.
func (l *Ledger) AddItem(p models.Product, delta int) error {
	if delta < 1 {
		return ErrInvalidQuantity
	}

	l.mu.Lock()
	if l.locked {
		l.mu.Unlock()
		return ErrCheckoutPending
	}
	if i := l.indexOf(p.ID); i >= 0 {
		l.items[i].Quantity += delta
	} else {
		l.items = append(l.items, models.LineItem{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Quantity:    delta,
			Image:       p.Image,
			Description: p.Description,
		})
	}
	snap := l.nextLocked()
	l.mu.Unlock()

	l.publish(snap)
	return nil
}

// UpdateQuantity sets the quantity of a line verbatim. Unknown ids are ignored.
func (l *Ledger) UpdateQuantity(id string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	l.mu.Lock()
	if l.locked {
		l.mu.Unlock()
		return ErrCheckoutPending
	}
	i := l.indexOf(id)
	if i < 0 {
		l.mu.Unlock()
		return nil
	}
	l.items[i].Quantity = quantity
	snap := l.nextLocked()
	l.mu.Unlock()

	l.publish(snap)
	return nil
}

// RemoveItem deletes a line if present. Removing twice is the same as once.
func (l *Ledger) RemoveItem(id string) error {
	l.mu.Lock()
	if l.locked {
		l.mu.Unlock()
		return ErrCheckoutPending
	}
	i := l.indexOf(id)
	if i < 0 {
		l.mu.Unlock()
		return nil
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	snap := l.nextLocked()
	l.mu.Unlock()

	l.publish(snap)
	return nil
}

func (l *Ledger) Clear() error {
	l.mu.Lock()
	if l.locked {
		l.mu.Unlock()
		return ErrCheckoutPending
	}
	snap := l.clearLocked()
	l.mu.Unlock()

	l.publish(snap)
	return nil
}

func (l *Ledger) Items() []models.LineItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyItems(l.items)
}

func (l *Ledger) Totals() models.Totals {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return DeriveTotals(l.items, l.pricing)
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *Ledger) Locked() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.locked
}

func (l *Ledger) Pricing() Pricing {
	return l.pricing
}

// Subscribe registers fn to receive a snapshot after every mutation.
// Snapshots arrive in version order; one overtaken by a newer snapshot before
// delivery is skipped. fn runs on the mutating goroutine and must not call
// back into the ledger's mutators.
func (l *Ledger) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	l.subMu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.subMu.Lock()
			delete(l.subs, id)
			l.subMu.Unlock()
		})
	}
}

func (l *Ledger) publish(snap Snapshot) {
	l.deliverMu.Lock()
	defer l.deliverMu.Unlock()
	if snap.Version <= l.delivered {
		return
	}
	l.delivered = snap.Version

	l.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (l *Ledger) clearLocked() Snapshot {
	l.items = nil
	return l.nextLocked()
}

// nextLocked records a state change and snapshots the result.
func (l *Ledger) nextLocked() Snapshot {
	l.version++
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() Snapshot {
	return Snapshot{
		Items:   copyItems(l.items),
		Totals:  DeriveTotals(l.items, l.pricing),
		Locked:  l.locked,
		Version: l.version,
	}
}

func (l *Ledger) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func copyItems(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	copy(out, items)
	return out
}
