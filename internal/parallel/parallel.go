// Copyright 2023 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package parallel fans a sequence of inner sequences out across a
// bounded worker pool and merges their items into one sequence. Order
// is preserved within a single source but not across sources. It
// knows nothing about manifests or scan tasks; callers supply any
// Source implementation.
package parallel

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// A Source produces a lazy sequence of T. Next returns ok == false
// (with a nil error) once the sequence is exhausted.
type Source[T any] interface {
	Next(ctx context.Context) (value T, ok bool, err error)
}

// A Fan drains up to parallelism Sources concurrently into one merged
// Result sequence through a bounded queue.
type Fan[T any] struct {
	parallelism int
	queueSize   int
}

// New constructs a Fan. Both parameters are clamped to at least 1.
func New[T any](parallelism, queueSize int) *Fan[T] {
	if parallelism < 1 {
		parallelism = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Fan[T]{parallelism: parallelism, queueSize: queueSize}
}

type item[T any] struct {
	value T
	err   error
}

// A Result is the merged, closeable sequence produced by Fan.Run.
type Result[T any] struct {
	queue     chan item[T]
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Run starts draining sources. The returned Result must be closed by
// the caller once it is no longer being read, even if it was not
// fully drained.
func (f *Fan[T]) Run(parent context.Context, sources []Source[T]) *Result[T] {
	ctx, cancel := context.WithCancel(parent)
	grp, gctx := errgroup.WithContext(ctx)
	queue := make(chan item[T], f.queueSize)
	sem := semaphore.NewWeighted(int64(f.parallelism))

	for _, src := range sources {
		src := src
		grp.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)
			return drain(gctx, src, queue)
		})
	}

	go func() {
		_ = grp.Wait()
		close(queue)
	}()

	return &Result[T]{queue: queue, cancel: cancel}
}

// drain pulls every item out of src and pushes it onto queue, stopping
// early if ctx is canceled or src reports an error. A produced error
// is pushed onto the queue so that it surfaces from the next Result.Next
// call, then returned so errgroup cancels every sibling worker.
func drain[T any](ctx context.Context, src Source[T], queue chan<- item[T]) error {
	for {
		v, ok, err := src.Next(ctx)
		if err != nil {
			select {
			case queue <- item[T]{err: err}:
			case <-ctx.Done():
			}
			return err
		}
		if !ok {
			return nil
		}
		select {
		case queue <- item[T]{value: v}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Next returns the next merged item. It blocks until an item is
// available, the sequence is exhausted, or ctx is done.
func (r *Result[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case it, ok := <-r.queue:
		if !ok {
			return zero, false, nil
		}
		if it.err != nil {
			return zero, false, it.err
		}
		return it.value, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

// Close cancels any pending drain tasks and blocks until every worker
// has returned, draining the queue so none of them stay blocked on a
// send. It is safe to call more than once.
func (r *Result[T]) Close() error {
	r.closeOnce.Do(func() {
		r.cancel()
	})
	for range r.queue {
	}
	return nil
}
