// Package memory keeps records in process. Each Store is owned by whoever
// constructs it; there is no package-level state.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/query"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
)

// Store holds records in insertion order, which is also the order an
// unsorted query returns them in.
type Store[T model.Record[T]] struct {
	mu     sync.RWMutex
	items  []T
	nextID int64
	engine *query.Engine[T]
	now    func() time.Time
	stamp  func(T, time.Time) T
}

// Option tweaks a Store at construction.
type Option[T model.Record[T]] func(*Store[T])

// WithClock replaces time.Now and sets a stamping function that records
// creation time on Create, mirroring the DEFAULT NOW() of the SQL schema.
func WithClock[T model.Record[T]](now func() time.Time, stamp func(T, time.Time) T) Option[T] {
	return func(s *Store[T]) {
		s.now = now
		s.stamp = stamp
	}
}

func NewStore[T model.Record[T]](schema query.Schema[T], opts ...Option[T]) (*Store[T], error) {
	engine, err := query.NewEngine(schema)
	if err != nil {
		return nil, err
	}
	s := &Store[T]{engine: engine, nextID: 1, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store[T]) Create(ctx context.Context, v T) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v = v.WithRecordID(s.nextID)
	s.nextID++
	if s.stamp != nil {
		v = s.stamp(v, s.now())
	}
	s.items = append(s.items, v)
	return v, nil
}

func (s *Store[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], nil
	}
	return zero, repository.ErrNotFound
}

func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// Filter evaluates the request against a snapshot, so the lock is not held
// while the engine sorts.
func (s *Store[T]) Filter(ctx context.Context, req query.Request) (query.Page[T], error) {
	if err := ctx.Err(); err != nil {
		return query.Page[T]{}, err
	}
	s.mu.RLock()
	snapshot := slices.Clone(s.items)
	s.mu.RUnlock()
	return s.engine.Query(snapshot, req)
}

func (s *Store[T]) indexOf(id int64) int {
	return slices.IndexFunc(s.items, func(v T) bool { return v.RecordID() == id })
}

var _ repository.Repository[model.Branch] = (*Store[model.Branch])(nil)
