package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	job := JobFunc(func(context.Context) error {
		if runs.Add(1) == 3 {
			cancel()
		}
		return errors.New("drift detected")
	})

	err := NewScheduler(job, 10*time.Millisecond, testLogger()).Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}

func TestScheduler_RunsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	job := JobFunc(func(context.Context) error {
		close(done)
		cancel()
		return nil
	})

	go func() {
		_ = NewScheduler(job, time.Hour, testLogger()).Start(ctx)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not run before the first tick")
	}
}

func TestScheduler_BoundsEachRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var deadline time.Time

	job := JobFunc(func(runCtx context.Context) error {
		var ok bool
		deadline, ok = runCtx.Deadline()
		require.True(t, ok)
		cancel()
		return nil
	})

	start := time.Now()
	_ = NewScheduler(job, time.Hour, testLogger()).WithRunTimeout(time.Minute).Start(ctx)

	assert.WithinDuration(t, start.Add(time.Minute), deadline, 5*time.Second)
}
