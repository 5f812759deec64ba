package query

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// Direction is the ordering applied to Request.SortBy.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "", "asc" and "desc" in any case. Empty means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	default:
		return "", invalid("sortDirection", "must be asc or desc, got %q", s)
	}
}

// Request describes one list query: a zero-based page window plus optional
// search, structured filters and ordering.
type Request struct {
	Page          int
	Size          int
	SearchTerm    string
	Filters       map[string][]string
	SortBy        string
	SortDirection Direction
}

// Builder assembles a Request without exposing the filter map to callers.
type Builder struct {
	req Request
}

func NewRequest(page, size int) *Builder {
	return &Builder{req: Request{Page: page, Size: size}}
}

func (b *Builder) Search(term string) *Builder {
	b.req.SearchTerm = term
	return b
}

// Filter adds options to a filter key. Repeated calls for the same key accumulate.
func (b *Builder) Filter(key string, options ...string) *Builder {
	if b.req.Filters == nil {
		b.req.Filters = make(map[string][]string)
	}
	b.req.Filters[key] = append(b.req.Filters[key], options...)
	return b
}

func (b *Builder) Sort(field string, dir Direction) *Builder {
	b.req.SortBy = field
	b.req.SortDirection = dir
	return b
}

// Build returns a copy; later builder calls do not leak into it.
func (b *Builder) Build() Request {
	out := b.req
	if b.req.Filters != nil {
		out.Filters = make(map[string][]string, len(b.req.Filters))
		for k, v := range b.req.Filters {
			out.Filters[k] = slices.Clone(v)
		}
	}
	return out
}

// ActiveFilters returns filter keys that carry at least one option, sorted.
func (r Request) ActiveFilters() []string {
	keys := make([]string, 0, len(r.Filters))
	for _, k := range slices.Sorted(maps.Keys(r.Filters)) {
		if len(r.Filters[k]) > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// Descending reports whether SortDirection asks for descending order. It reads
// the direction the same way ParseDirection does, so "DESC" sorts descending.
func (r Request) Descending() bool {
	d, err := ParseDirection(string(r.SortDirection))
	return err == nil && d == Desc
}

// Offset is the index of the first record of the requested page. It saturates
// at math.MaxInt64, so a page index too large to address reads as past the end.
func (r Request) Offset() int64 {
	if r.Size > 0 && int64(r.Page) > math.MaxInt64/int64(r.Size) {
		return math.MaxInt64
	}
	return int64(r.Page) * int64(r.Size)
}
