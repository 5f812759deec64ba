// Package cache stores rendered list pages keyed by the complete request, so
// a page computed for one request is never served for another.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/maxviazov/clinic-admin-service/internal/query"
)

var (
	ErrKeyNotFound = errors.New("cache: key not found")
	ErrInvalidKey  = errors.New("cache: invalid key")
)

// Cache is the page store used by list services.
// Generation is a per-module counter folded into keys; Bump orphans every
// cached page of the module after a write.
type Cache interface {
	Get(ctx context.Context, key string, value any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Generation(ctx context.Context, module string) (int64, error)
	Bump(ctx context.Context, module string) error
}

const keyPrefix = "clinic:list:"

// Key derives the cache key of a list request. Requests that must yield the
// same page map to the same key: filter keys and options are order-insensitive,
// empty filters are dropped, the search term is case-folded and the direction
// is read as the engine reads it.
func Key(module string, generation int64, req query.Request) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(req.Page))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(req.Size))
	b.WriteByte('|')
	b.WriteString(strings.ToLower(req.SearchTerm))
	b.WriteByte('|')
	for _, k := range req.ActiveFilters() {
		opts := slices.Compact(slices.Sorted(slices.Values(req.Filters[k])))
		b.WriteString(strconv.Quote(k))
		b.WriteByte('=')
		for _, o := range opts {
			b.WriteString(strconv.Quote(o))
			b.WriteByte(',')
		}
		b.WriteByte(';')
	}
	b.WriteByte('|')
	b.WriteString(req.SortBy)
	b.WriteByte('|')
	dir := query.Asc
	if req.Descending() {
		dir = query.Desc
	}
	b.WriteString(string(dir))

	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%s%s:g%d:%s", keyPrefix, module, generation, hex.EncodeToString(sum[:16]))
}

func generationKey(module string) string {
	return keyPrefix + module + ":generation"
}

// Noop never stores anything; it stands in when Redis is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string, any) error { return ErrKeyNotFound }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Generation(context.Context, string) (int64, error) { return 0, nil }
func (Noop) Bump(context.Context, string) error { return nil }

var _ Cache = Noop{}
