package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/clinic-admin-service/internal/catalog"
	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/query"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
	"github.com/maxviazov/clinic-admin-service/internal/repository/contract"
	"github.com/maxviazov/clinic-admin-service/internal/repository/memory"
)

func TestBranchRepository_MemoryContract(t *testing.T) {
	contract.RunBranchRepositoryContract(t, func(t *testing.T) (repository.Repository[model.Branch], func()) {
		return memory.NewRepositories().Branches, func() {}
	})
}

func TestProductRepository_MemoryContract(t *testing.T) {
	contract.RunProductRepositoryContract(t, func(t *testing.T) (repository.Repository[model.Product], func()) {
		return memory.NewRepositories().Products, func() {}
	})
}

func total[T any](t *testing.T, repo repository.Repository[T]) int64 {
	t.Helper()
	p, err := repo.Filter(context.Background(), query.NewRequest(0, 1).Build())
	require.NoError(t, err)
	return p.TotalElements
}

func TestStore_StoresAreIndependent(t *testing.T) {
	a := memory.NewRepositories()
	b := memory.NewRepositories()
	_, err := a.Branches.Create(context.Background(), model.Branch{Name: "Only A", Code: "A", Status: "active"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total[model.Branch](t, a.Branches))
	assert.EqualValues(t, 0, total[model.Branch](t, b.Branches))
}

func TestStore_KeepsProvidedCreatedAt(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	repos := memory.NewRepositories()
	out, err := repos.Patients.Create(context.Background(), model.Patient{FirstName: "Ada", LastName: "L", Gender: "Female", CreatedAt: fixed})
	require.NoError(t, err)
	assert.Equal(t, fixed, out.CreatedAt)
}

func TestStore_FilterDoesNotSeeLaterWrites(t *testing.T) {
	s, err := memory.NewStore(catalog.Branches)
	require.NoError(t, err)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := s.Create(ctx, model.Branch{Name: "B", Code: "B", Status: "active"})
		require.NoError(t, err)
	}
	page, err := s.Filter(ctx, query.NewRequest(0, 10).Build())
	require.NoError(t, err)
	_, err = s.Create(ctx, model.Branch{Name: "late", Code: "L", Status: "active"})
	require.NoError(t, err)
	assert.Len(t, page.Content, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{page.Content[0].ID, page.Content[1].ID, page.Content[2].ID})
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, err := memory.NewStore(catalog.Products)
	require.NoError(t, err)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, _ = s.Create(ctx, model.Product{Name: "p", Code: "c", Category: "x"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, _ = s.Filter(ctx, query.NewRequest(0, 5).Sort("id", query.Desc).Build())
			}
		}()
	}
	wg.Wait()

	page, err := s.Filter(ctx, query.NewRequest(0, 1).Build())
	require.NoError(t, err)
	assert.EqualValues(t, 200, page.TotalElements)
}

func TestStore_CanceledContext(t *testing.T) {
	s, err := memory.NewStore(catalog.Branches)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Filter(ctx, query.NewRequest(0, 10).Build())
	assert.ErrorIs(t, err, context.Canceled)
}
