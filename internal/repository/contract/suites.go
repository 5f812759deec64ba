// Package contract holds behavior suites every repository backend must pass.
// Backends wire their own factories; the suites never know which store runs.
package contract

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/query"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
)

type BranchFactory func(t *testing.T) (repository.Repository[model.Branch], func())

type ProductFactory func(t *testing.T) (repository.Repository[model.Product], func())

type TxFactory func(t *testing.T) (tx repository.TxManager, branches repository.Repository[model.Branch], cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func seedBranches(t *testing.T, repo repository.Repository[model.Branch], n int) {
	t.Helper()
	ctx := context.Background()
	for i := 1; i <= n; i++ {
		b := model.Branch{Name: fmt.Sprintf("Branch %d", i), Code: fmt.Sprintf("BR-%03d", i), City: cityFor(i), Status: "active"}
		if _, err := repo.Create(ctx, b); err != nil {
			t.Fatalf("seed branch %d: %v", i, err)
		}
	}
}

func cityFor(i int) string {
	switch i % 3 {
	case 0:
		return "Haifa"
	case 1:
		return "Tel Aviv"
	default:
		return "Eilat"
	}
}

func branchNames(items []model.Branch) []string {
	out := make([]string, 0, len(items))
	for _, b := range items {
		out = append(out, b.Name)
	}
	return out
}

func RunBranchRepositoryContract(t *testing.T, makeRepo BranchFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Branch{Name: "Main Branch", Code: "MAIN", City: "Haifa", Status: "active"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == 0 || created.CreatedAt.IsZero() {
			t.Fatalf("expected id and created_at to be assigned: %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Name != created.Name || got.Code != "MAIN" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		b, err := repo.Create(ctx, model.Branch{Name: "Temp", Code: "TMP", Status: "inactive"})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := repo.Delete(ctx, b.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, b.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, b.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("first_page", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedBranches(t, repo, 50)
		page, err := repo.Filter(context.Background(), query.NewRequest(0, 10).Build())
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		names := branchNames(page.Content)
		if len(names) != 10 || names[0] != "Branch 1" || names[9] != "Branch 10" {
			t.Fatalf("unexpected content: %v", names)
		}
		if page.TotalElements != 50 || page.TotalPages != 5 || page.Last || page.Number != 0 || page.Size != 10 {
			t.Fatalf("unexpected metadata: %+v", page)
		}
	})

	t.Run("last_and_beyond", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedBranches(t, repo, 50)
		ctx := context.Background()
		last, err := repo.Filter(ctx, query.NewRequest(4, 10).Build())
		if err != nil {
			t.Fatalf("filter last: %v", err)
		}
		if len(last.Content) != 10 || !last.Last {
			t.Fatalf("unexpected last page: len=%d last=%v", len(last.Content), last.Last)
		}
		beyond, err := repo.Filter(ctx, query.NewRequest(5, 10).Build())
		if err != nil {
			t.Fatalf("filter beyond: %v", err)
		}
		if len(beyond.Content) != 0 || beyond.TotalElements != 50 || !beyond.Last {
			t.Fatalf("unexpected beyond page: %+v", beyond)
		}
	})

	t.Run("search_case_insensitive", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i, n := range []string{"Main Branch", "North Branch", "South Branch"} {
			if _, err := repo.Create(ctx, model.Branch{Name: n, Code: fmt.Sprintf("C%d", i), Status: "active"}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		page, err := repo.Filter(ctx, query.NewRequest(0, 10).Search("north").Build())
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if names := branchNames(page.Content); len(names) != 1 || names[0] != "North Branch" || page.TotalElements != 1 {
			t.Fatalf("unexpected search result: %v total=%d", names, page.TotalElements)
		}
	})

	t.Run("filters_and_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedBranches(t, repo, 30)
		req := query.NewRequest(1, 4).Filter("city", "Haifa", "Eilat").Build()
		page, err := repo.Filter(context.Background(), req)
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		// 10 in Haifa + 10 in Eilat
		if page.TotalElements != 20 || page.TotalPages != 5 || len(page.Content) != 4 {
			t.Fatalf("unexpected page: total=%d pages=%d len=%d", page.TotalElements, page.TotalPages, len(page.Content))
		}
		if names := branchNames(page.Content); names[0] != "Branch 8" || names[3] != "Branch 12" {
			t.Fatalf("unexpected order: %v", names)
		}
	})

	t.Run("stable_sort", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedBranches(t, repo, 6)
		page, err := repo.Filter(context.Background(), query.NewRequest(0, 10).Sort("city", query.Desc).Build())
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		want := []string{"Branch 1", "Branch 4", "Branch 3", "Branch 6", "Branch 2", "Branch 5"}
		if got := branchNames(page.Content); fmt.Sprint(got) != fmt.Sprint(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("direction_ignores_case", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedBranches(t, repo, 6)
		req := query.Request{Page: 0, Size: 10, SortBy: "city", SortDirection: "DESC"}
		page, err := repo.Filter(context.Background(), req)
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		want := []string{"Branch 1", "Branch 4", "Branch 3", "Branch 6", "Branch 2", "Branch 5"}
		if got := branchNames(page.Content); fmt.Sprint(got) != fmt.Sprint(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("huge_page_index", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedBranches(t, repo, 30)
		page, err := repo.Filter(context.Background(), query.NewRequest(1<<60, 10).Build())
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if len(page.Content) != 0 || page.TotalElements != 30 || page.TotalPages != 3 || !page.Last {
			t.Fatalf("expected empty last page of 30, got %d items total=%d pages=%d last=%v",
				len(page.Content), page.TotalElements, page.TotalPages, page.Last)
		}
	})

	t.Run("huge_size", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedBranches(t, repo, 12)
		page, err := repo.Filter(context.Background(), query.NewRequest(0, math.MaxInt32).Build())
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		if len(page.Content) != 12 || page.TotalPages != 1 || !page.Last {
			t.Fatalf("expected all 12 on one page, got %d items pages=%d last=%v",
				len(page.Content), page.TotalPages, page.Last)
		}
	})

	t.Run("invalid_size", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Filter(context.Background(), query.Request{Page: 0, Size: 0})
		if !errors.Is(err, query.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func RunProductRepositoryContract(t *testing.T, makeRepo ProductFactory) {
	t.Helper()

	t.Run("sort_numeric", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i, price := range []float64{5, 3, 8, 1, 9, 2, 7, 4, 6, 0} {
			p := model.Product{Name: fmt.Sprintf("Item %d", i), Code: fmt.Sprintf("SKU-%d", i), Category: "drugs", Price: price}
			if _, err := repo.Create(ctx, p); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		page, err := repo.Filter(ctx, query.NewRequest(0, 10).Sort("price", query.Asc).Build())
		if err != nil {
			t.Fatalf("filter: %v", err)
		}
		for i, p := range page.Content {
			if p.Price != float64(i) {
				t.Fatalf("position %d: expected price %d, got %v", i, i, p.Price)
			}
		}
	})

	t.Run("duplicate_code", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		p := model.Product{Name: "Gauze", Code: "DUP", Category: "supplies"}
		if _, err := repo.Create(ctx, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.Create(ctx, p)
		// Only SQL stores enforce uniqueness; memory stores accept the copy.
		if err != nil && !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected nil or ErrAlreadyExists, got %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, branches, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := branches.Create(ctx, model.Branch{Name: "TxCommit", Code: "TXC", Status: "active"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := branches.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, branches, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := branches.Create(ctx, model.Branch{Name: "TxRollback", Code: "TXR", Status: "active"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := branches.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
