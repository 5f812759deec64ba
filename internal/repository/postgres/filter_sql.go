package postgres

import (
	"fmt"
	"strings"

	"github.com/maxviazov/clinic-admin-service/internal/query"
)

// filterSQL renders a list request as one SELECT with a window total, plus a
// plain COUNT used when the page lies past the end and returns no rows.
// Every identifier comes from the schema, never from the request.
type filterSQL struct {
	selectSQL string
	countSQL  string
	args      []any // shared by both statements; selectSQL appends limit/offset
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func buildFilterSQL[T any](table string, columns []string, schema query.Schema[T], req query.Request) filterSQL {
	var (
		where []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, key := range req.ActiveFilters() {
		col := schema.Fields[schema.Filters[key]].Column
		where = append(where, fmt.Sprintf("%s::text = ANY(%s::text[])", col, next(req.Filters[key])))
	}

	// Columns are COLLATE "C" for byte ordering, which would make case folding
	// ASCII-only; search folds under the database default collation instead.
	if req.SearchTerm != "" && len(schema.Search) > 0 {
		ph := next("%" + likeEscaper.Replace(req.SearchTerm) + "%")
		ors := make([]string, 0, len(schema.Search))
		for _, name := range schema.Search {
			ors = append(ors, fmt.Sprintf(`lower(%s::text COLLATE "default") LIKE lower(%s::text COLLATE "default")`, schema.Fields[name].Column, ph))
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	// id breaks ties so equal sort keys keep insertion order in both directions.
	order := " ORDER BY id ASC"
	if req.SortBy != "" {
		dir := "ASC"
		if req.Descending() {
			dir = "DESC"
		}
		order = fmt.Sprintf(" ORDER BY %s %s, id ASC", schema.Fields[req.SortBy].Column, dir)
	}

	n := len(args)
	return filterSQL{
		selectSQL: fmt.Sprintf("SELECT id, %s, COUNT(*) OVER() AS total FROM %s%s%s LIMIT $%d OFFSET $%d",
			strings.Join(columns, ", "), table, clause, order, n+1, n+2),
		countSQL: fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, clause),
		args:     args,
	}
}
