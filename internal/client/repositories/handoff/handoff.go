// Package handoff holds values passed from one interactive step to the next
// (the selected quote, a shipment draft, warehouse label data). Values live
// only in the running process and expire after a TTL.
package handoff

import (
	"sync"
	"time"
)

// DefaultTTL is used when New is given a non-positive ttl.
const DefaultTTL = 30 * time.Minute

type entry struct {
	value     any
	expiresAt time.Time
}

type Store struct {
	mu    sync.Mutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{items: map[string]entry{}, ttl: ttl, now: time.Now}
}

// Put stores value under key, replacing any previous value and restarting
// its TTL.
func (s *Store) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
}

// Get returns the live value under key without removing it.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(key, false)
}

// Take returns the live value under key and removes it.
func (s *Store) Take(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(key, true)
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = map[string]entry{}
}

// Len counts live entries and drops expired ones.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.items {
		if now.After(e.expiresAt) {
			delete(s.items, k)
		}
	}
	return len(s.items)
}

// must hold s.mu
func (s *Store) load(key string, remove bool) (any, bool) {
	e, ok := s.items[key]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.items, key)
		return nil, false
	}
	if remove {
		delete(s.items, key)
	}
	return e.value, true
}

// GetAs is Get with a type assertion; a value of another type reads as
// missing.
func GetAs[T any](s *Store, key string) (T, bool) {
	v, ok := s.Get(key)
	t, isT := v.(T)
	return t, ok && isT
}

// TakeAs is Take with a type assertion. The entry is removed even when the
// type does not match.
func TakeAs[T any](s *Store, key string) (T, bool) {
	v, ok := s.Take(key)
	t, isT := v.(T)
	return t, ok && isT
}
