package client

import (
	"context"
	"errors"
	"sync"

	"github.com/maxviazov/clinic-admin-service/internal/query"
)

// ErrSuperseded is returned to a caller whose query was replaced by a newer one.
var ErrSuperseded = errors.New("query superseded")

// FetchFunc performs one list query.
type FetchFunc[T any] func(ctx context.Context, req query.Request) (query.Page[T], error)

// Latest serializes a stream of list queries where only the newest matters.
// Starting a query cancels the one in flight, and a superseded result is
// never recorded. The last successful page survives failed queries.
type Latest[T any] struct {
	fetch FetchFunc[T]

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	last    query.Page[T]
	hasLast bool
	lastErr error
}

func NewLatest[T any](fetch FetchFunc[T]) *Latest[T] {
	return &Latest[T]{fetch: fetch}
}

// Run starts req, cancelling any earlier query, and waits for it.
func (l *Latest[T]) Run(ctx context.Context, req query.Request) (query.Page[T], error) {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	cctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	page, err := l.fetch(cctx, req)

	l.mu.Lock()
	defer l.mu.Unlock()
	cancel()
	if seq != l.seq {
		return query.Page[T]{}, ErrSuperseded
	}
	l.cancel = nil
	if err != nil {
		l.lastErr = err
		return query.Page[T]{}, err
	}
	l.last, l.hasLast, l.lastErr = page, true, nil
	return page, nil
}

// Last returns the most recent successful page.
func (l *Latest[T]) Last() (query.Page[T], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last, l.hasLast
}

// Err returns the error of the most recent non-superseded query, if it failed.
func (l *Latest[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Stop cancels the query in flight, if any.
func (l *Latest[T]) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
}
