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

package table

import (
	"io"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/cockroachdb/tablescan/internal/metrics"
)

// closeList is the planner's only piece of mutable shared state: every
// manifest reader opened during planning is registered here, whether
// planning runs sequentially or across a worker pool, and CloseAll
// closes them exactly once each. add tolerates concurrent callers;
// CloseAll is meant to be called once, by the consumer, after the last
// pull.
type closeList struct {
	mu      sync.Mutex
	closers []io.Closer
	closed  bool
}

func (c *closeList) add(closer io.Closer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, closer)
}

// CloseAll closes every registered closer exactly once, in
// registration order. Individual errors are logged; the first is
// returned. Calling CloseAll more than once is a no-op after the
// first call.
func (c *closeList) CloseAll() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()

	var first error
	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			metrics.ReaderCloseErrors.Inc()
			log.WithError(err).Warn("error closing manifest reader")
			if first == nil {
				first = err
			}
		}
	}
	return first
}
