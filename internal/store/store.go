// Package store holds the in-memory copy of the users collection. Once
// loaded, the cache is the source of truth for reads; deletes invalidate
// entries and updates never touch it.
package store

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/five82/roster/internal/users"
)

// Store caches the collection fetched from a users.Service.
type Store struct {
	service users.Service

	mu      sync.RWMutex
	records []*users.Record
	loaded  bool
}

// New returns an unloaded Store backed by service.
func New(service users.Service) *Store {
	return &Store{service: service}
}

// List returns the cached collection, fetching it on first use. Concurrent
// first calls each fetch; callers list once per screen mount.
func (s *Store) List(ctx context.Context) ([]*users.Record, error) {
	if records, ok := s.Cached(); ok {
		log.Printf("getting users: taking from cache")
		return records, nil
	}
	if s.service == nil {
		return nil, fmt.Errorf("store has no service")
	}

	log.Printf("getting users: fetching")
	fetched, err := s.service.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.records = cloneRecords(fetched)
	s.loaded = true
	s.mu.Unlock()

	return cloneRecords(fetched), nil
}

// Cached returns the collection without I/O. ok is false until a fetch succeeds.
func (s *Store) Cached() ([]*users.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, false
	}
	return cloneRecords(s.records), true
}

// Loaded reports whether the collection has been fetched.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Update sends the full replacement of record id. The cache is left as is:
// the caller's record is already the cached pointer.
func (s *Store) Update(ctx context.Context, id int64, rec *users.Record) (bool, error) {
	if s.service == nil {
		return false, fmt.Errorf("store has no service")
	}
	log.Printf("updating user %d", id)
	if err := s.service.UpdateUser(ctx, id, rec); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes record id remotely and, on success, from the cache.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	if s.service == nil {
		return false, fmt.Errorf("store has no service")
	}
	log.Printf("deleting user %d", id)
	if err := s.service.DeleteUser(ctx, id); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	for _, rec := range s.records {
		if recID, ok := rec.ID(); ok && recID == id {
			continue
		}
		kept = append(kept, rec)
	}
	// Drop trailing pointers so removed records are not kept alive.
	for i := len(kept); i < len(s.records); i++ {
		s.records[i] = nil
	}
	s.records = kept
	return true, nil
}

func cloneRecords(records []*users.Record) []*users.Record {
	dup := make([]*users.Record, len(records))
	copy(dup, records)
	return dup
}
