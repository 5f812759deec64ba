// Package query implements the list contract shared by every admin module:
// filter, search, stable sort and paginate a collection into a Page.
package query

import (
	"slices"
	"strings"
)

// Engine evaluates requests for one module. It holds no mutable state, so a
// single Engine may serve concurrent callers.
type Engine[T any] struct {
	schema Schema[T]
}

func NewEngine[T any](schema Schema[T]) (*Engine[T], error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &Engine[T]{schema: schema}, nil
}

// MustEngine is NewEngine for package-level schemas known to be valid.
func MustEngine[T any](schema Schema[T]) *Engine[T] {
	e, err := NewEngine(schema)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine[T]) Schema() Schema[T] { return e.schema }

// Query applies filters, then search, then sort, then the page window.
// The input slice is never modified.
func (e *Engine[T]) Query(items []T, req Request) (Page[T], error) {
	if err := e.schema.Check(req); err != nil {
		return Page[T]{}, err
	}

	matched := make([]T, 0, len(items))
	for _, it := range items {
		if e.matchFilters(it, req) && e.matchSearch(it, req.SearchTerm) {
			matched = append(matched, it)
		}
	}

	if req.SortBy != "" {
		cmpFn := e.schema.Fields[req.SortBy].Compare
		desc := req.Descending()
		slices.SortStableFunc(matched, func(a, b T) int {
			if desc {
				return cmpFn(b, a)
			}
			return cmpFn(a, b)
		})
	}

	total := int64(len(matched))
	start := req.Offset()
	content := []T{}
	if start < total {
		end := total
		if int64(req.Size) < total-start {
			end = start + int64(req.Size)
		}
		content = slices.Clone(matched[start:end])
	}
	return NewPage(content, total, req.Page, req.Size), nil
}

// matchFilters ANDs filter keys and ORs options within one key.
func (e *Engine[T]) matchFilters(it T, req Request) bool {
	for key, options := range req.Filters {
		if len(options) == 0 {
			continue
		}
		value := e.schema.Fields[e.schema.Filters[key]].Text(it)
		if !slices.Contains(options, value) {
			return false
		}
	}
	return true
}

func (e *Engine[T]) matchSearch(it T, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, name := range e.schema.Search {
		if strings.Contains(strings.ToLower(e.schema.Fields[name].Text(it)), term) {
			return true
		}
	}
	return false
}
