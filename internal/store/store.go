// Package store holds the canonical in-memory collections for the
// signed-in user. All writes go through the mutation services; UI
// bindings only read and subscribe.
package store

import (
	"sync"

	"github.com/mroshb/watch_club/internal/models"
)

// ChangeKind identifies which collection a store change touched.
type ChangeKind int

const (
	ChangeItems ChangeKind = iota
	ChangeFriends
	ChangeIncoming
	ChangeOutgoing
	ChangePendingCount
)

// Change describes one committed store mutation.
type Change struct {
	Kind ChangeKind
}

// Store is the entity store. Every mutation is all-or-nothing and
// notifies subscribers synchronously after the commit, never before.
type Store struct {
	mu sync.RWMutex

	items    []models.TrackedItem
	friends  []models.FriendProfile
	incoming []models.FriendRequest
	outgoing []models.FriendRequest

	// pendingCount is fetched independently of the incoming list and
	// may transiently diverge from len(incoming).
	pendingCount int

	subMu  sync.Mutex
	subs   map[int]func(Change)
	nextID int
}

func New() *Store {
	return &Store{
		subs: make(map[int]func(Change)),
	}
}

// Subscribe registers a callback invoked after every committed
// mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// notify runs outside the write lock so subscribers may read the store.
func (s *Store) notify(kind ChangeKind) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(Change{Kind: kind})
	}
}

// Items returns a copy of the tracked items in insertion order.
func (s *Store) Items() []models.TrackedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TrackedItem, len(s.items))
	copy(out, s.items)
	return out
}

// Item looks up a tracked item by id.
func (s *Store) Item(id int64) (models.TrackedItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.TrackedItem{}, false
}

// UpsertItem inserts or replaces one tracked item. Replacement keeps
// the item's position; insertion appends.
func (s *Store) UpsertItem(item models.TrackedItem) {
	s.mu.Lock()
	replaced := false
	for i, it := range s.items {
		if it.ID == item.ID {
			s.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, item)
	}
	s.mu.Unlock()

	s.notify(ChangeItems)
}

// SwapItem replaces the item with oldID by a new entity, keeping its
// position. Used when the server-assigned id replaces a provisional one.
func (s *Store) SwapItem(oldID int64, item models.TrackedItem) bool {
	s.mu.Lock()
	swapped := false
	for i, it := range s.items {
		if it.ID == oldID {
			s.items[i] = item
			swapped = true
			break
		}
	}
	s.mu.Unlock()

	if swapped {
		s.notify(ChangeItems)
	}
	return swapped
}

// RemoveItem deletes a tracked item by id.
func (s *Store) RemoveItem(id int64) bool {
	s.mu.Lock()
	removed := false
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.notify(ChangeItems)
	}
	return removed
}

// ReplaceItems swaps the whole tracked-items collection.
func (s *Store) ReplaceItems(items []models.TrackedItem) {
	cp := make([]models.TrackedItem, len(items))
	copy(cp, items)

	s.mu.Lock()
	s.items = cp
	s.mu.Unlock()

	s.notify(ChangeItems)
}

// Friends returns a copy of the accepted-friends collection.
func (s *Store) Friends() []models.FriendProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FriendProfile, len(s.friends))
	copy(out, s.friends)
	return out
}

// Incoming returns a copy of the incoming pending requests.
func (s *Store) Incoming() []models.FriendRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FriendRequest, len(s.incoming))
	copy(out, s.incoming)
	return out
}

// Outgoing returns a copy of the outgoing pending requests.
func (s *Store) Outgoing() []models.FriendRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FriendRequest, len(s.outgoing))
	copy(out, s.outgoing)
	return out
}

func (s *Store) ReplaceFriends(friends []models.FriendProfile) {
	cp := make([]models.FriendProfile, len(friends))
	copy(cp, friends)

	s.mu.Lock()
	s.friends = cp
	s.mu.Unlock()

	s.notify(ChangeFriends)
}

func (s *Store) ReplaceIncoming(requests []models.FriendRequest) {
	cp := make([]models.FriendRequest, len(requests))
	copy(cp, requests)

	s.mu.Lock()
	s.incoming = cp
	s.mu.Unlock()

	s.notify(ChangeIncoming)
}

func (s *Store) ReplaceOutgoing(requests []models.FriendRequest) {
	cp := make([]models.FriendRequest, len(requests))
	copy(cp, requests)

	s.mu.Lock()
	s.outgoing = cp
	s.mu.Unlock()

	s.notify(ChangeOutgoing)
}

// PendingCount returns the independently fetched badge count.
func (s *Store) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingCount
}

// SetPendingCount stores the badge count, clamped at zero.
func (s *Store) SetPendingCount(n int) {
	if n < 0 {
		n = 0
	}

	s.mu.Lock()
	s.pendingCount = n
	s.mu.Unlock()

	s.notify(ChangePendingCount)
}
