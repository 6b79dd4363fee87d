// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fone-scan/internal/detector"
	"fone-scan/internal/observability"
	"fone-scan/internal/results"

	"github.com/google/uuid"
)

// Shard is what one document contributes to a run before it is merged
type Shard struct {
	Document   *results.DocumentResult
	Discards   []detector.DiscardEntry
	Pages      int
	Candidates int
	PageErrors []error // Pages whose text could not be read
}

// ProcessFunc extracts and scans a single document
type ProcessFunc func(ctx context.Context, filePath string) (*Shard, error)

// Job represents a document processing task
type Job struct {
	Index    int // Position in the input list; results are merged in this order
	FilePath string
	JobID    string
}

// Result represents processing results
type Result struct {
	JobID    string
	Index    int
	FilePath string
	Shard    *Shard
	Error    error
	Duration time.Duration
}

// WorkerPool runs ProcessFunc over documents on a fixed number of goroutines
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	process  ProcessFunc
	observer *observability.StandardObserver
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(ctx context.Context, workers int, process ProcessFunc, observer *observability.StandardObserver) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		process:  process,
		observer: observer,
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Close signals that no more jobs will be submitted
func (wp *WorkerPool) Close() {
	close(wp.jobs)
}

// Stop waits for the workers to drain and closes the results channel
func (wp *WorkerPool) Stop() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit adds a job to the queue. It returns false once the pool's
// context is done.
func (wp *WorkerPool) Submit(job *Job) bool {
	if job.JobID == "" {
		job.JobID = uuid.NewString()
	}
	select {
	case wp.jobs <- job:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job, id)

		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob executes a single job, turning a panic into a document error
func (wp *WorkerPool) processJob(job *Job, workerID int) (result *Result) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if wp.observer != nil {
		finishTiming = wp.observer.StartTiming("worker_pool", "process_job", job.FilePath)
	}

	result = &Result{JobID: job.JobID, Index: job.Index, FilePath: job.FilePath}

	defer func() {
		if r := recover(); r != nil {
			result.Shard = nil
			result.Error = fmt.Errorf("document processing panic: %v", r)
		}
		result.Duration = time.Since(start)

		if finishTiming != nil {
			phones := 0
			if result.Shard != nil && result.Shard.Document != nil {
				phones = result.Shard.Document.Len()
			}
			finishTiming(result.Error == nil, map[string]interface{}{
				"worker_id":   workerID,
				"phone_count": phones,
				"duration_ms": result.Duration.Milliseconds(),
				"had_error":   result.Error != nil,
			})
		}
	}()

	result.Shard, result.Error = wp.process(wp.ctx, job.FilePath)
	return result
}

// RunOrdered processes every path on the pool and returns the results in
// input order, whatever order the workers finished in
func RunOrdered(ctx context.Context, workers int, paths []string, process ProcessFunc, observer *observability.StandardObserver) []*Result {
	wp := NewWorkerPool(ctx, workers, process, observer)
	wp.Start()

	go func() {
		defer wp.Close()
		for i, path := range paths {
			if !wp.Submit(&Job{Index: i, FilePath: path}) {
				return
			}
		}
	}()

	ordered := make([]*Result, len(paths))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range wp.Results() {
			ordered[r.Index] = r
		}
	}()

	wp.Stop()
	<-done

	// Jobs never submitted because ctx ended
	for i, r := range ordered {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			ordered[i] = &Result{Index: i, FilePath: paths[i], Error: err}
		}
	}
	return ordered
}
