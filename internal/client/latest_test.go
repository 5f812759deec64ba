package client_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/clinic-admin-service/internal/client"
	"github.com/maxviazov/clinic-admin-service/internal/query"
)

func TestLatest_SupersededQueryIsCancelledAndDropped(t *testing.T) {
	started := make(chan struct{})
	var firstCtxErr error
	fetch := func(ctx context.Context, req query.Request) (query.Page[string], error) {
		if req.SearchTerm == "slow" {
			close(started)
			<-ctx.Done()
			firstCtxErr = ctx.Err()
			return query.NewPage([]string{"stale"}, 1, 0, 10), nil
		}
		return query.NewPage([]string{"fresh"}, 1, 0, 10), nil
	}
	l := client.NewLatest(fetch)

	done := make(chan error, 1)
	go func() {
		_, err := l.Run(context.Background(), query.NewRequest(0, 10).Search("slow").Build())
		done <- err
	}()
	<-started

	page, err := l.Run(context.Background(), query.NewRequest(0, 10).Search("fast").Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, page.Content)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, client.ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded query was not cancelled")
	}
	assert.ErrorIs(t, firstCtxErr, context.Canceled)

	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, []string{"fresh"}, last.Content)
}

func TestLatest_FailureKeepsLastGoodPage(t *testing.T) {
	boom := errors.New("boom")
	fail := false
	l := client.NewLatest(func(context.Context, query.Request) (query.Page[int], error) {
		if fail {
			return query.Page[int]{}, boom
		}
		return query.NewPage([]int{1, 2}, 2, 0, 10), nil
	})

	_, err := l.Run(context.Background(), query.NewRequest(0, 10).Build())
	require.NoError(t, err)

	fail = true
	_, err = l.Run(context.Background(), query.NewRequest(1, 10).Build())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, l.Err(), boom)

	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, last.Content)
}

func TestLatest_Stop(t *testing.T) {
	started := make(chan struct{})
	l := client.NewLatest(func(ctx context.Context, _ query.Request) (query.Page[int], error) {
		close(started)
		<-ctx.Done()
		return query.Page[int]{}, ctx.Err()
	})
	done := make(chan error, 1)
	go func() {
		_, err := l.Run(context.Background(), query.NewRequest(0, 10).Build())
		done <- err
	}()
	<-started
	l.Stop()
	assert.ErrorIs(t, <-done, client.ErrSuperseded)
	_, ok := l.Last()
	assert.False(t, ok)
}
