package seed_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/clinic-admin-service/internal/model"
	"github.com/maxviazov/clinic-admin-service/internal/query"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
	"github.com/maxviazov/clinic-admin-service/internal/repository/memory"
	"github.com/maxviazov/clinic-admin-service/internal/seed"
)

func seeded(t *testing.T) memory.Repositories {
	t.Helper()
	repos := memory.NewRepositories()
	require.NoError(t, seed.New(repos.Set(), nil, seed.DefaultCounts, zerolog.New(io.Discard)).Run(context.Background()))
	return repos
}

func total[T any](t *testing.T, repo repository.Repository[T]) int64 {
	t.Helper()
	p, err := repo.Filter(context.Background(), query.NewRequest(0, 1).Build())
	require.NoError(t, err)
	return p.TotalElements
}

func TestRun_Counts(t *testing.T) {
	repos := seeded(t)
	assert.EqualValues(t, 50, total[model.Branch](t, repos.Branches))
	assert.EqualValues(t, 40, total[model.Doctor](t, repos.Doctors))
	assert.EqualValues(t, 200, total[model.Patient](t, repos.Patients))
	assert.EqualValues(t, 60, total[model.Product](t, repos.Products))
	assert.EqualValues(t, 150, total[model.Transaction](t, repos.Transactions))
	assert.EqualValues(t, 120, total[model.Appointment](t, repos.Appointments))
}

func TestRun_BranchPages(t *testing.T) {
	repos := seeded(t)
	p, err := repos.Branches.Filter(context.Background(), query.NewRequest(4, 10).Build())
	require.NoError(t, err)
	require.Len(t, p.Content, 10)
	assert.Equal(t, "Branch 41", p.Content[0].Name)
	assert.Equal(t, "Branch 50", p.Content[9].Name)
	assert.True(t, p.Last)
}

func TestRun_Deterministic(t *testing.T) {
	a, b := seeded(t), seeded(t)
	req := query.NewRequest(0, 200).Build()
	pa, err := a.Patients.Filter(context.Background(), req)
	require.NoError(t, err)
	pb, err := b.Patients.Filter(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, pa.Content, pb.Content)
}

func TestRun_AppointmentQueues(t *testing.T) {
	repos := seeded(t)
	p, err := repos.Appointments.Filter(context.Background(), query.NewRequest(0, 200).Build())
	require.NoError(t, err)

	type slot struct {
		doctor int64
		day    string
	}
	seen := map[slot][]int64{}
	for _, a := range p.Content {
		require.NoError(t, refExists(repos.Patients, a.PatientID))
		require.NoError(t, refExists(repos.Doctors, a.DoctorID))
		k := slot{a.DoctorID, a.ScheduledAt.Format("2006-01-02")}
		seen[k] = append(seen[k], a.QueueNumber)
	}
	for k, nums := range seen {
		for i, n := range nums {
			assert.EqualValues(t, i+1, n, "queue of %v must be consecutive in creation order", k)
		}
	}
}

func refExists[T any](repo repository.Repository[T], id int64) error {
	_, err := repo.GetByID(context.Background(), id)
	return err
}

type recordingTx struct{ calls int }

func (r *recordingTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	r.calls++
	return fn(ctx)
}

func TestRun_UsesTransaction(t *testing.T) {
	repos := memory.NewRepositories()
	tx := &recordingTx{}
	require.NoError(t, seed.New(repos.Set(), tx, seed.Counts{Branches: 3}, zerolog.New(io.Discard)).Run(context.Background()))
	assert.Equal(t, 1, tx.calls)
	assert.EqualValues(t, 3, total[model.Branch](t, repos.Branches))
}

type failingBranches struct{ repository.Repository[model.Branch] }

func (failingBranches) Create(context.Context, model.Branch) (model.Branch, error) {
	return model.Branch{}, repository.ErrAlreadyExists
}

func TestRun_PropagatesErrors(t *testing.T) {
	set := memory.NewRepositories().Set()
	set.Branches = failingBranches{set.Branches}
	err := seed.New(set, nil, seed.DefaultCounts, zerolog.New(io.Discard)).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrAlreadyExists))
}
