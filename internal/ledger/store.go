// Package ledger holds the bounded, chronological record of economic events.
package ledger

import (
	"sync"

	"github.com/josh-kwaku/economy-hud/internal/domain"
)

const DefaultCapacity = 100

// Store keeps at most Cap() transactions. Storage is chronological; reads
// are newest-first. When full, appending evicts the oldest entry.
type Store struct {
	mu      sync.RWMutex
	entries []domain.Transaction
	head    int // index of the oldest entry
	size    int
}

func New(capacity int) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Store{entries: make([]domain.Transaction, capacity)}
}

// Append stores tx and reports whether the oldest entry was evicted to make room.
func (s *Store) Append(tx domain.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity := len(s.entries)
	if s.size < capacity {
		s.entries[(s.head+s.size)%capacity] = tx
		s.size++
		return false
	}

	s.entries[s.head] = tx
	s.head = (s.head + 1) % capacity
	return true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.entries)
	s.head = 0
	s.size = 0
}

// Snapshot returns an independent newest-first copy of the contents.
func (s *Store) Snapshot() []domain.Transaction {
	return s.Recent(0)
}

// Recent returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) Recent(limit int) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := s.size
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]domain.Transaction, n)
	capacity := len(s.entries)
	for i := range n {
		out[i] = s.entries[(s.head+s.size-1-i)%capacity]
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

func (s *Store) Cap() int {
	return len(s.entries)
}
