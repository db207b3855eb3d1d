// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecutesAllJobs(t *testing.T) {
	pool := NewWorkerPool(3)

	var count atomic.Int32
	jobs := make([]func() error, 10)
	for i := range jobs {
		jobs[i] = func() error {
			count.Add(1)
			return nil
		}
	}

	err := pool.Run(context.Background(), jobs...)

	require.NoError(t, err)
	assert.Equal(t, int32(10), count.Load())
}

func TestRunReturnsFirstError(t *testing.T) {
	pool := NewWorkerPool(1)
	boom := errors.New("boom")

	err := pool.Run(context.Background(),
		func() error { return nil },
		func() error { return boom },
		func() error { return nil },
	)

	assert.ErrorIs(t, err, boom)
}

func TestRunWithNoJobs(t *testing.T) {
	pool := NewWorkerPool(2)

	assert.NoError(t, pool.Run(context.Background()))
	assert.Nil(t, pool.RunAll(context.Background()))
}

func TestRunAllCollectsEveryError(t *testing.T) {
	pool := NewWorkerPool(2)

	var count atomic.Int32
	errs := pool.RunAll(context.Background(),
		func() error { count.Add(1); return errors.New("first") },
		func() error { count.Add(1); return nil },
		func() error { count.Add(1); return errors.New("second") },
	)

	assert.Equal(t, int32(3), count.Load())
	assert.Len(t, errs, 2)
}

func TestNewWorkerPoolClampsWorkerCount(t *testing.T) {
	pool := NewWorkerPool(0)

	assert.Equal(t, 1, pool.workerCount)
}
