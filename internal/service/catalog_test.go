package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/clinic-admin-service/internal/cache"
	"github.com/maxviazov/clinic-admin-service/internal/catalog"
	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/query"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
	"github.com/maxviazov/clinic-admin-service/internal/repository/memory"
	"github.com/maxviazov/clinic-admin-service/internal/service"
)

// mapCache is an in-process Cache that round-trips values through JSON like Redis does.
type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gens    map[string]int64
	failGen bool
	failSet bool
	gets    int
	hits    int
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, gens: map[string]int64{}}
}

func (c *mapCache) Get(_ context.Context, key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrKeyNotFound
	}
	c.hits++
	return json.Unmarshal(raw, v)
}

func (c *mapCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return errors.New("redis down")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *mapCache) Generation(_ context.Context, module string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGen {
		return 0, errors.New("redis down")
	}
	return c.gens[module], nil
}

func (c *mapCache) Bump(_ context.Context, module string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[module]++
	return nil
}

var _ cache.Cache = (*mapCache)(nil)

// countingRepo records how many Filter calls reach storage.
type countingRepo struct {
	repository.Repository[model.Branch]
	filters int
}

func (r *countingRepo) Filter(ctx context.Context, req query.Request) (query.Page[model.Branch], error) {
	r.filters++
	return r.Repository.Filter(ctx, req)
}

func seededBranches(t *testing.T, n int) *countingRepo {
	t.Helper()
	store := memory.NewRepositories().Branches
	for i := 1; i <= n; i++ {
		_, err := store.Create(context.Background(), model.Branch{
			Name:   fmt.Sprintf("Branch %d", i),
			Code:   fmt.Sprintf("BR-%03d", i),
			City:   []string{"Haifa", "Tel Aviv", "Eilat"}[i%3],
			Status: "active",
		})
		require.NoError(t, err)
	}
	return &countingRepo{Repository: store}
}

func newBranchService(repo repository.Repository[model.Branch], c cache.Cache) service.CatalogService[model.Branch] {
	return service.NewCatalogService(catalog.BranchesModule, repo, c,
		service.Options{Limits: service.Limits{DefaultSize: 10, MaxSize: 50}}, zerolog.New(io.Discard))
}

func hasField(err error, field string) bool {
	for _, fe := range service.FieldErrors(err) {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestCatalogService_List_Validation(t *testing.T) {
	svc := newBranchService(seededBranches(t, 3), cache.Noop{})

	cases := []struct {
		name  string
		req   query.Request
		field string
	}{
		{"negative page", query.NewRequest(-1, 10).Build(), "page"},
		{"zero size", query.NewRequest(0, 0).Build(), "size"},
		{"size over max", query.NewRequest(0, 51).Build(), "size"},
		{"unknown filter", query.NewRequest(0, 10).Filter("planet", "mars").Build(), "filters"},
		{"unsortable field", query.NewRequest(0, 10).Sort("status", query.Asc).Build(), "sortBy"},
		{"bad direction", query.Request{Page: 0, Size: 10, SortBy: "name", SortDirection: "sideways"}, "sortDirection"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
			assert.True(t, hasField(err, tc.field), "expected field %q in %v", tc.field, service.FieldErrors(err))
		})
	}
}

func TestCatalogService_List_Page(t *testing.T) {
	svc := newBranchService(seededBranches(t, 50), cache.Noop{})

	page, err := svc.List(context.Background(), query.NewRequest(4, 10).Build())
	require.NoError(t, err)
	assert.Len(t, page.Content, 10)
	assert.EqualValues(t, 50, page.TotalElements)
	assert.Equal(t, 5, page.TotalPages)
	assert.True(t, page.Last)
	assert.Equal(t, "Branch 41", page.Content[0].Name)
}

func TestCatalogService_List_ReadThroughCache(t *testing.T) {
	repo := seededBranches(t, 20)
	c := newMapCache()
	svc := newBranchService(repo, c)
	ctx := context.Background()

	req := query.NewRequest(0, 5).Filter("city", "Haifa", "Eilat").Build()
	first, err := svc.List(ctx, req)
	require.NoError(t, err)
	second, err := svc.List(ctx, query.NewRequest(0, 5).Filter("city", "Eilat", "Haifa").Build())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.filters, "equivalent request must be served from cache")
	assert.Equal(t, 1, c.hits)
	assert.Equal(t, first.TotalElements, second.TotalElements)
	assert.Equal(t, len(first.Content), len(second.Content))

	// A different page is a different key.
	_, err = svc.List(ctx, query.NewRequest(1, 5).Filter("city", "Haifa", "Eilat").Build())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.filters)
}

func TestCatalogService_WritesInvalidateCache(t *testing.T) {
	repo := seededBranches(t, 3)
	c := newMapCache()
	svc := newBranchService(repo, c)
	ctx := context.Background()
	req := query.NewRequest(0, 10).Build()

	before, err := svc.List(ctx, req)
	require.NoError(t, err)
	require.EqualValues(t, 3, before.TotalElements)

	created, err := svc.Create(ctx, model.Branch{Name: "Branch 4", Code: "BR-004", Status: "active"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	after, err := svc.List(ctx, req)
	require.NoError(t, err)
	assert.EqualValues(t, 4, after.TotalElements)

	require.NoError(t, svc.Delete(ctx, created.ID))
	again, err := svc.List(ctx, req)
	require.NoError(t, err)
	assert.EqualValues(t, 3, again.TotalElements)
	assert.Equal(t, 3, repo.filters)
}

func TestCatalogService_CacheFailuresAreIgnored(t *testing.T) {
	repo := seededBranches(t, 3)
	c := newMapCache()
	c.failGen = true
	c.failSet = true
	svc := newBranchService(repo, c)

	page, err := svc.List(context.Background(), query.NewRequest(0, 10).Build())
	require.NoError(t, err)
	assert.Len(t, page.Content, 3)
	assert.Equal(t, 0, c.gets, "cache must be bypassed without a generation")
}

func TestCatalogService_Create_Validation(t *testing.T) {
	svc := newBranchService(seededBranches(t, 0), cache.Noop{})

	_, err := svc.Create(context.Background(), model.Branch{Name: "X", Status: "closed"})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.True(t, hasField(err, "name"))
	assert.True(t, hasField(err, "code"))
	assert.True(t, hasField(err, "status"))
}

func TestCatalogService_Create_IgnoresClientID(t *testing.T) {
	svc := newBranchService(seededBranches(t, 2), cache.Noop{})

	out, err := svc.Create(context.Background(), model.Branch{ID: 99, Name: "Branch 3", Code: "BR-003", Status: "active"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, out.ID)
}

func TestCatalogService_GetAndDelete(t *testing.T) {
	svc := newBranchService(seededBranches(t, 2), cache.Noop{})
	ctx := context.Background()

	_, err := svc.Get(ctx, 0)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	b, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Branch 2", b.Name)

	_, err = svc.Get(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, -1), service.ErrInvalidInput)
	assert.ErrorIs(t, svc.Delete(ctx, 42), repository.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, 1))
	_, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogService_InvalidDirectionNeverHitsCache(t *testing.T) {
	repo := seededBranches(t, 3)
	c := newMapCache()
	svc := newBranchService(repo, c)
	ctx := context.Background()

	_, err := svc.List(ctx, query.NewRequest(0, 10).Sort("name", query.Asc).Build())
	require.NoError(t, err)
	_, err = svc.List(ctx, query.Request{Page: 0, Size: 10, SortBy: "name", SortDirection: "sideways"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, 1, c.gets)
}

func TestCatalogService_MixedCaseDirectionSortsDescending(t *testing.T) {
	svc := newBranchService(seededBranches(t, 12), newMapCache())
	page, err := svc.List(context.Background(), query.Request{Page: 0, Size: 3, SortBy: "id", SortDirection: "DESC"})
	require.NoError(t, err)
	require.Len(t, page.Content, 3)
	assert.EqualValues(t, 12, page.Content[0].ID)
}
