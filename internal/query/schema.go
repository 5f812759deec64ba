package query

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field projects one attribute of T. Text feeds search and filter matching,
// Compare feeds sorting, Column names the attribute in SQL-backed stores.
type Field[T any] struct {
	Column  string
	Text    func(T) string
	Compare func(a, b T) int
}

// String declares a text attribute.
func String[T any](column string, get func(T) string) Field[T] {
	return Field[T]{
		Column:  column,
		Text:    get,
		Compare: func(a, b T) int { return strings.Compare(get(a), get(b)) },
	}
}

// Int declares an integer attribute; filter options are matched against its base-10 form.
func Int[T any](column string, get func(T) int64) Field[T] {
	return Field[T]{
		Column:  column,
		Text:    func(v T) string { return strconv.FormatInt(get(v), 10) },
		Compare: func(a, b T) int { return cmp.Compare(get(a), get(b)) },
	}
}

// Float declares a numeric attribute compared numerically, not lexically.
func Float[T any](column string, get func(T) float64) Field[T] {
	return Field[T]{
		Column:  column,
		Text:    func(v T) string { return strconv.FormatFloat(get(v), 'f', -1, 64) },
		Compare: func(a, b T) int { return cmp.Compare(get(a), get(b)) },
	}
}

// Time declares a timestamp attribute rendered as RFC 3339 for matching.
func Time[T any](column string, get func(T) time.Time) Field[T] {
	return Field[T]{
		Column:  column,
		Text:    func(v T) string { return get(v).UTC().Format(time.RFC3339) },
		Compare: func(a, b T) int { return get(a).Compare(get(b)) },
	}
}

// Schema is the declarative configuration one list module hands to the engine.
type Schema[T any] struct {
	// Name identifies the module in routes, cache keys and logs.
	Name   string
	Fields map[string]Field[T]
	// Search lists fields matched by the free-text term.
	Search []string
	// Filters maps a request filter key to the field it constrains.
	Filters map[string]string
	// Sorts lists fields a request may order by.
	Sorts []string
}

// Validate reports references to undeclared fields.
func (s Schema[T]) Validate() error {
	if s.Name == "" {
		return errors.New("schema name is required")
	}
	var errs []error
	check := func(role, name string, needCompare bool) {
		f, ok := s.Fields[name]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%s: %s field %q is not declared", s.Name, role, name))
		case f.Text == nil:
			errs = append(errs, fmt.Errorf("%s: field %q has no text projection", s.Name, name))
		case needCompare && f.Compare == nil:
			errs = append(errs, fmt.Errorf("%s: sort field %q has no comparator", s.Name, name))
		}
	}
	for _, name := range s.Search {
		check("search", name, false)
	}
	for key, name := range s.Filters {
		check("filter "+key, name, false)
	}
	for _, name := range s.Sorts {
		check("sort", name, true)
	}
	return errors.Join(errs...)
}

// Sortable reports whether name may appear in Request.SortBy.
func (s Schema[T]) Sortable(name string) bool {
	for _, n := range s.Sorts {
		if n == name {
			return true
		}
	}
	return false
}

// Check validates req against the schema without touching any data.
func (s Schema[T]) Check(req Request) error {
	if req.Size <= 0 {
		return invalid("size", "must be > 0, got %d", req.Size)
	}
	if req.Page < 0 {
		return invalid("page", "must be >= 0, got %d", req.Page)
	}
	for key := range req.Filters {
		if _, ok := s.Filters[key]; !ok {
			return invalid("filters", "unknown filter key %q", key)
		}
	}
	if req.SortBy != "" && !s.Sortable(req.SortBy) {
		return invalid("sortBy", "field %q is not sortable", req.SortBy)
	}
	if _, err := ParseDirection(string(req.SortDirection)); err != nil {
		return err
	}
	return nil
}
