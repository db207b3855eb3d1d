// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package concurrent provides a bounded worker pool for fanning out
// independent jobs, such as per-transcript analysis calls.
package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs jobs with a fixed concurrency limit.
type WorkerPool struct {
	workerCount int
}

// NewWorkerPool creates a pool limited to workerCount concurrent jobs.
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &WorkerPool{workerCount: workerCount}
}

// Run executes the jobs and stops scheduling new ones after the first
// failure. It returns the first error encountered.
func (wp *WorkerPool) Run(ctx context.Context, jobs ...func() error) error {
	if len(jobs) == 0 {
		return nil
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.workerCount)

	for _, job := range jobs {
		g.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}
			return job()
		})
	}

	return g.Wait()
}

// RunAll executes every job regardless of individual failures and returns
// the errors that occurred. A cancelled context is reported once per job
// that had not started yet.
func (wp *WorkerPool) RunAll(ctx context.Context, jobs ...func() error) []error {
	if len(jobs) == 0 {
		return nil
	}

	errChan := make(chan error, len(jobs))

	g := new(errgroup.Group)
	g.SetLimit(wp.workerCount)

	for _, job := range jobs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return nil
			default:
			}
			if err := job(); err != nil {
				errChan <- err
			}
			return nil
		})
	}

	_ = g.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	return errs
}
