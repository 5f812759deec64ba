package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/clinic-admin-service/internal/cache"
	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/query"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
	"github.com/rs/zerolog"
)

// catalogService serves one list module: validation, read-through page cache
// and invalidation on writes. Storage is whatever Repository it is given.
type catalogService[T model.Record[T]] struct {
	module string
	repo   repository.Repository[T]
	cache  cache.Cache
	ttl    time.Duration
	limits Limits
	log    zerolog.Logger
}

// Options tune a catalog service. Zero values fall back to sane defaults.
type Options struct {
	Limits   Limits
	CacheTTL time.Duration
}

func NewCatalogService[T model.Record[T]](module string, repo repository.Repository[T], c cache.Cache, opts Options, logger zerolog.Logger) CatalogService[T] {
	if c == nil {
		c = cache.Noop{}
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}
	l := logger.With().Str("module", "service").Str("component", module).Logger()
	return &catalogService[T]{
		module: module,
		repo:   repo,
		cache:  c,
		ttl:    opts.CacheTTL,
		limits: opts.Limits.withDefaults(),
		log:    l,
	}
}

func (s *catalogService[T]) List(ctx context.Context, req query.Request) (query.Page[T], error) {
	start := time.Now()
	if err := validateRequest(req, s.limits); err != nil {
		s.log.Debug().Int("page", req.Page).Int("size", req.Size).Interface("field_errors", FieldErrors(err)).Msg("list request rejected")
		return query.Page[T]{}, err
	}

	// A failing cache degrades to uncached reads, never to a failed query.
	key, cacheable := s.cacheKey(ctx, req)
	if cacheable {
		var cached query.Page[T]
		err := s.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			s.log.Debug().Str("key", key).Msg("page served from cache")
			return cached, nil
		case !errors.Is(err, cache.ErrKeyNotFound):
			s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
	}

	page, err := s.repo.Filter(ctx, req)
	if err != nil {
		if errors.Is(err, query.ErrInvalidArgument) {
			return query.Page[T]{}, fromArgument(err)
		}
		s.log.Error().Err(err).Int("page", req.Page).Int("size", req.Size).Msg("list failed")
		return query.Page[T]{}, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, page, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	s.log.Debug().
		Dur("took", time.Since(start)).
		Int64("total", page.TotalElements).
		Int("returned", len(page.Content)).
		Msg("list served")
	return page, nil
}

func (s *catalogService[T]) Get(ctx context.Context, id int64) (T, error) {
	if id <= 0 {
		var zero T
		return zero, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *catalogService[T]) Create(ctx context.Context, v T) (T, error) {
	start := time.Now()
	v = v.WithRecordID(0)
	if err := validateRecord(v); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("record validation failed")
		var zero T
		return zero, err
	}

	out, err := s.repo.Create(ctx, v)
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Msg("create failed")
		var zero T
		return zero, err
	}
	s.invalidate(ctx)
	s.log.Info().Dur("took", time.Since(start)).Int64("id", out.RecordID()).Msg("record created")
	return out, nil
}

func (s *catalogService[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("id", id).Msg("delete failed")
		}
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Int64("id", id).Msg("record deleted")
	return nil
}

func (s *catalogService[T]) cacheKey(ctx context.Context, req query.Request) (string, bool) {
	gen, err := s.cache.Generation(ctx, s.module)
	if err != nil {
		s.log.Warn().Err(err).Msg("cache generation unavailable, bypassing cache")
		return "", false
	}
	return cache.Key(s.module, gen, req), true
}

func (s *catalogService[T]) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx, s.module); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidation failed")
	}
}
