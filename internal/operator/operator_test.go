package operator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/operator/actions"
	"github.com/carson-networks/budget-agent/internal/storage"
)

type funcAction func(ctx context.Context, writer *storage.Writer) error

func (f funcAction) Perform(ctx context.Context, writer *storage.Writer) error {
	return f(ctx, writer)
}

func newTestDelegator(t *testing.T) (*OperatorDelegator, *storage.Storage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	d := NewOperatorDelegator(store, 1)
	d.Start()
	t.Cleanup(d.Stop)
	return d, store
}

func TestProcess_PerformsAction(t *testing.T) {
	d, store := newTestDelegator(t)

	action := &actions.LogTransaction{UserID: "u1", CategoryName: category.Travel, Date: time.Now()}
	require.NoError(t, d.Process(context.Background(), action))
	require.NotNil(t, action.Transaction)

	cat, err := store.Categories.FindByName(context.Background(), category.Travel)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, action.Transaction.CategoryID)
}

func TestProcess_ReturnsActionError(t *testing.T) {
	d, _ := newTestDelegator(t)

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return errors.New("boom")
	}))
	assert.EqualError(t, err, "boom")
}

func TestProcess_CancelledBeforeEnqueue(t *testing.T) {
	d, _ := newTestDelegator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := d.Process(ctx, funcAction(func(context.Context, *storage.Writer) error {
		ran = true
		return nil
	}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestProcess_RunsToCompletionAfterCancel(t *testing.T) {
	d, _ := newTestDelegator(t)
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	var actionCtxErr error

	done := make(chan error, 1)
	go func() {
		done <- d.Process(ctx, funcAction(func(actionCtx context.Context, _ *storage.Writer) error {
			close(started)
			<-release
			actionCtxErr = actionCtx.Err()
			return nil
		}))
	}()

	<-started
	cancel()
	close(release)

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.NoError(t, actionCtxErr)
	case <-time.After(5 * time.Second):
		t.Fatal("Process did not return")
	}
}

func TestProcess_AfterStop(t *testing.T) {
	d := NewOperatorDelegator(storage.NewMemoryStorage(), 2)
	d.Start()
	d.Stop()
	d.Stop()

	err := d.Process(context.Background(), &actions.SeedCategories{})
	assert.ErrorIs(t, err, ErrStopped)
}
