// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
)

// StorageLocation reports which storage path a submission took.
type StorageLocation string

const (
	// StorageRemote means the response landed in the database.
	StorageRemote StorageLocation = "remote"
	// StorageLocal means the remote write failed and the response was
	// appended to the local fallback file instead.
	StorageLocal StorageLocation = "local"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadySubmitted = errors.New("survey already submitted")
	ErrInvalidBackup    = errors.New("invalid backup: expected a JSON array of responses")
)

// Store persists drafts, sessions, and submitted responses. The database is
// the source of truth for responses; the fallback file only receives writes
// the database rejected and is never merged into reads.
type Store struct {
	db       *sql.DB
	fallback *fallbackFile

	mu      sync.Mutex
	subs    map[int]chan int
	nextSub int
}

func New(db *sql.DB, fallbackPath string) *Store {
	return &Store{
		db:       db,
		fallback: &fallbackFile{path: fallbackPath},
		subs:     map[int]chan int{},
	}
}

// Subscribe registers for response-collection change notifications. Each
// mutation pushes the new live count to the returned channel. The second
// return value unsubscribes and must be called when done.
func (s *Store) Subscribe() (<-chan int, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan int, 16)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
	return ch, cancel
}

// notifySubscribers pushes the current count to every subscriber. Sends are
// non-blocking; a subscriber that falls 16 updates behind misses some
// intermediate counts but will see the next one.
func (s *Store) notifySubscribers(ctx context.Context) {
	count, err := s.Count(ctx)
	if err != nil {
		slog.Error("failed to count responses for subscribers", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- count:
		default:
		}
	}
}
