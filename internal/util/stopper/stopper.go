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

// Package stopper provides a small goroutine-group lifecycle built
// around a context.Context: a "Context with a Go method" that tracks
// background work and signals it to wind down cooperatively.
package stopper

import (
	"context"
	"sync"
	"time"
)

// A Context tracks a group of goroutines launched with Go. Stop
// requests cooperative shutdown through the Stopping channel and waits
// for the goroutines; it never cancels the embedded context.Context,
// which is the parent passed to WithContext.
type Context struct {
	context.Context

	stopping chan struct{}
	once     sync.Once

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// WithContext returns a new Context deriving from parent.
func WithContext(parent context.Context) *Context {
	return &Context{Context: parent, stopping: make(chan struct{})}
}

// Stopping returns a channel that is closed when Stop is first called.
// Goroutines launched with Go should select on this channel to begin
// winding down.
func (c *Context) Stopping() <-chan struct{} {
	return c.stopping
}

// Go launches fn in a new goroutine tracked by this Context. If fn
// returns a non-nil error, it is recorded and can be retrieved with
// Err.
func (c *Context) Go(fn func() error) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := fn(); err != nil {
			c.mu.Lock()
			c.errs = append(c.errs, err)
			c.mu.Unlock()
		}
	}()
}

// Stop requests cooperative shutdown by closing the channel returned
// by Stopping, then waits up to grace for all tracked goroutines to
// return. It is safe to call Stop more than once or concurrently; only
// the first call has effect beyond waiting.
func (c *Context) Stop(grace time.Duration) {
	c.once.Do(func() { close(c.stopping) })

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	if grace <= 0 {
		<-done
		return
	}

	select {
	case <-done:
	case <-time.After(grace):
	}
}

// Err returns the first error recorded by a tracked goroutine, if any.
// It is meaningful only after Stop has returned.
func (c *Context) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs[0]
}
