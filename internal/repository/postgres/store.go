package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/query"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
)

// ScanFunc reads id followed by Table.Columns from the current row.
type ScanFunc func(dest ...any) error

// Table maps one entity onto its SQL table.
type Table[T any] struct {
	Name string
	// Columns are selected after id, in Scan order.
	Columns []string
	// Insert lists the columns written on create; Values returns them in the same order.
	Insert []string
	Values func(T) []any
	Scan   func(scan ScanFunc) (T, error)
}

type store[T model.Record[T]] struct {
	pool   *pgxpool.Pool
	table  Table[T]
	schema query.Schema[T]
}

// NewStore builds a repository that evaluates the list contract in Postgres.
func NewStore[T model.Record[T]](pool *pgxpool.Pool, table Table[T], schema query.Schema[T]) repository.Repository[T] {
	return &store[T]{pool: pool, table: table, schema: schema}
}

func (s *store[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	if err := ensurePool(s.pool); err != nil {
		return zero, err
	}
	ph := make([]string, len(s.table.Insert))
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id, %s",
		s.table.Name, strings.Join(s.table.Insert, ", "), strings.Join(ph, ", "), strings.Join(s.table.Columns, ", "))

	row := getQ(ctx, s.pool).QueryRow(ctx, sql, s.table.Values(v)...)
	out, err := s.table.Scan(row.Scan)
	if err != nil {
		return zero, repository.MapPgError(err)
	}
	return out, nil
}

func (s *store[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := ensurePool(s.pool); err != nil {
		return zero, err
	}
	sql := fmt.Sprintf("SELECT id, %s FROM %s WHERE id = $1", strings.Join(s.table.Columns, ", "), s.table.Name)
	out, err := s.table.Scan(getQ(ctx, s.pool).QueryRow(ctx, sql, id).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, repository.ErrNotFound
		}
		return zero, repository.MapPgError(err)
	}
	return out, nil
}

func (s *store[T]) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(s.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, s.pool).Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.table.Name), id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *store[T]) Filter(ctx context.Context, req query.Request) (query.Page[T], error) {
	if err := s.schema.Check(req); err != nil {
		return query.Page[T]{}, err
	}
	if err := ensurePool(s.pool); err != nil {
		return query.Page[T]{}, err
	}

	stmt := buildFilterSQL(s.table.Name, s.table.Columns, s.schema, req)
	exec := getQ(ctx, s.pool)
	rows, err := exec.Query(ctx, stmt.selectSQL, append(stmt.args, req.Size, req.Offset())...)
	if err != nil {
		return query.Page[T]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	content := make([]T, 0, prealloc(req.Size))
	var total int64
	scan := func(dest ...any) error { return rows.Scan(append(dest, &total)...) }
	for rows.Next() {
		v, err := s.table.Scan(scan)
		if err != nil {
			return query.Page[T]{}, repository.MapPgError(err)
		}
		content = append(content, v)
	}
	if err := rows.Err(); err != nil {
		return query.Page[T]{}, repository.MapPgError(err)
	}

	if len(content) == 0 && req.Page > 0 {
		if err := exec.QueryRow(ctx, stmt.countSQL, stmt.args...).Scan(&total); err != nil {
			return query.Page[T]{}, repository.MapPgError(err)
		}
	}
	return query.NewPage(content, total, req.Page, req.Size), nil
}

// maxPrealloc bounds the slice capacity reserved for a page up front; larger
// pages grow as rows arrive.
const maxPrealloc = 1000

func prealloc(size int) int {
	return max(0, min(size, maxPrealloc))
}
