// Package memstore is an in-memory KV. Nothing survives the process.
package memstore

import (
	"context"
	"sync"
)

type Store struct {
	mu   sync.Mutex
	data map[string]string
}

func New() *Store {
	return &Store{data: map[string]string{}}
}

// Seeded returns a store pre-filled with one key. Handy in tests.
func Seeded(key, value string) *Store {
	s := New()
	s.data[key] = value
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *Store) Close() error { return nil }
