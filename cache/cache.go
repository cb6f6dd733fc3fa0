// Package cache is the query/cache layer between the dashboard routes and the
// upstream resource clients. Each key walks the lifecycle
// empty → loading → fresh|errored → stale → loading → … and at most one fetch
// is in flight per key at any time.
package cache

import (
	"context"
	"log"
	"sync"
	"time"
)

// State describes the lifecycle position of a single cache key.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateFresh
	StateErrored
	StateStale
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateFresh:
		return "fresh"
	case StateErrored:
		return "errored"
	case StateStale:
		return "stale"
	default:
		return "empty"
	}
}

// FetchFunc loads the value for a key from the backing source.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Stats tracks cache behaviour for logging and tests.
type Stats struct {
	Hits          int64
	Misses        int64
	StaleServed   int64
	Invalidations int64
}

// call is one shared in-flight fetch. Every caller waiting on the same key
// waits on the same call.
type call struct {
	done chan struct{}
	data interface{}
	err  error
}

type entry struct {
	state     State
	data      interface{}
	hasData   bool
	err       error
	fetchedAt time.Time
	inflight  *call

	// invalidated records that an invalidation raced this entry's in-flight
	// fetch: the fetched value may predate the mutation, so it lands stale.
	invalidated bool
}

// Store is a keyed cache of the last-known upstream state per collection.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	stats   Stats
}

// New creates a store whose fresh values age into stale after ttl. A ttl of
// zero keeps values fresh until they are explicitly invalidated.
func New(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
	}
}

// Get returns the value for key. Fresh values are served without touching the
// network. Stale values are served immediately while a refetch runs in the
// background. Otherwise the caller joins the single in-flight fetch for the
// key, starting one if needed. Cancelling ctx abandons the wait but never the
// shared fetch; it may still complete and populate the cache for other
// callers.
func (s *Store) Get(ctx context.Context, key string, fetch FetchFunc) (interface{}, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}

	if e.state == StateFresh && s.ttl > 0 && time.Since(e.fetchedAt) >= s.ttl {
		e.state = StateStale
	}

	switch e.state {
	case StateFresh:
		s.stats.Hits++
		data := e.data
		s.mu.Unlock()
		return data, nil

	case StateStale:
		s.stats.StaleServed++
		data := e.data
		if e.inflight == nil {
			// Refresh behind the served value; the caller does not wait.
			s.startFetch(context.Background(), key, e, fetch)
		}
		s.mu.Unlock()
		return data, nil

	case StateLoading:
		s.stats.Misses++
		c := e.inflight
		s.mu.Unlock()
		return awaitCall(ctx, c)

	default: // StateEmpty, StateErrored
		s.stats.Misses++
		c := s.startFetch(ctx, key, e, fetch)
		s.mu.Unlock()
		return awaitCall(ctx, c)
	}
}

// startFetch launches the single fetch for key. Caller holds s.mu.
func (s *Store) startFetch(ctx context.Context, key string, e *entry, fetch FetchFunc) *call {
	c := &call{done: make(chan struct{})}
	e.inflight = c
	if !e.hasData {
		e.state = StateLoading
	}

	// Detach from the caller's cancellation: one subscriber navigating away
	// must not kill a load shared with others.
	fetchCtx := context.WithoutCancel(ctx)

	go func() {
		data, err := fetch(fetchCtx)
		c.data, c.err = data, err

		s.mu.Lock()
		if e.inflight == c {
			e.inflight = nil
			s.settle(e, data, err)
		}
		s.mu.Unlock()

		close(c.done)
	}()
	return c
}

// settle applies a completed fetch to its entry. Caller holds s.mu.
func (s *Store) settle(e *entry, data interface{}, err error) {
	if err != nil {
		e.err = err
		if e.hasData {
			// Keep serving the last good value; the next read retries.
			e.state = StateStale
		} else {
			e.state = StateErrored
		}
		e.invalidated = false
		return
	}

	e.data = data
	e.hasData = true
	e.err = nil
	e.fetchedAt = time.Now()
	if e.invalidated {
		// A mutation confirmed while this fetch was in flight; the value may
		// predate it, so it must not be served as fresh.
		e.state = StateStale
		e.invalidated = false
	} else {
		e.state = StateFresh
	}
}

func awaitCall(ctx context.Context, c *call) (interface{}, error) {
	select {
	case <-c.done:
		return c.data, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate marks the given keys stale. It must be called only after a
// mutation's success acknowledgment; failed mutations leave the cache alone.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		e, ok := s.entries[key]
		if !ok {
			continue
		}
		s.stats.Invalidations++
		switch {
		case e.inflight != nil:
			e.invalidated = true
			if e.hasData {
				e.state = StateStale
			}
		case e.hasData:
			e.state = StateStale
		default:
			// Errored or empty entries reset to empty so the next read retries.
			delete(s.entries, key)
		}
		log.Printf("[CACHE] Invalidated %q", key)
	}
}

// StateOf reports the current lifecycle state of key.
func (s *Store) StateOf(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return StateEmpty
	}
	if e.state == StateFresh && s.ttl > 0 && time.Since(e.fetchedAt) >= s.ttl {
		return StateStale
	}
	return e.state
}

// Clear drops every entry. Used when the operator session ends; cached
// collections belong to the session that fetched them.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// GetStats returns a copy of the counters.
func (s *Store) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
