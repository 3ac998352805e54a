package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/gc-photos/backend/internal/infrastructure/worker"
)

func TestManager_Start_RunsJobImmediately(t *testing.T) {
	m := worker.NewManager()

	var runs atomic.Int32
	m.Register(worker.Job{
		Name:     "test_job",
		Interval: 1 * time.Hour,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	m.Start()
	defer m.Shutdown(1 * time.Second)

	assert.Eventually(t, func() bool {
		return runs.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestManager_JobTimeout_CancelsRunContext(t *testing.T) {
	m := worker.NewManager()

	timedOut := make(chan struct{})
	m.Register(worker.Job{
		Name:     "slow_job",
		Interval: 1 * time.Hour,
		Timeout:  50 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			<-ctx.Done()
			close(timedOut)
			return ctx.Err()
		},
	})

	m.Start()
	defer m.Shutdown(1 * time.Second)

	select {
	case <-timedOut:
	case <-time.After(2 * time.Second):
		require.Fail(t, "job context was not cancelled by timeout")
	}
}

func TestManager_Shutdown_StopsWorkers(t *testing.T) {
	m := worker.NewManager()

	var runs atomic.Int32
	m.Register(worker.Job{
		Name:     "counting_job",
		Interval: 10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	m.Start()
	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	m.Shutdown(1 * time.Second)
	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}
