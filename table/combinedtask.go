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
	"context"

	tablescan "github.com/cockroachdb/tablescan"
	"github.com/cockroachdb/tablescan/internal/binpack"
	"github.com/cockroachdb/tablescan/internal/metrics"
)

// A CombinedTaskIterable is the closeable, lazy sequence of
// CombinedScanTasks returned by PlanTasks. Closing it closes the
// underlying FileTaskIterable it was built from.
type CombinedTaskIterable struct {
	files      *FileTaskIterable
	targetSize int64
	packer     *binpack.Packer[tablescan.Split]
	pending    [][]tablescan.Split
	filesDone  bool
}

// Next returns the next CombinedScanTask, or ok == false once both the
// underlying file tasks and the bin packer are exhausted.
func (c *CombinedTaskIterable) Next(ctx context.Context) (tablescan.CombinedScanTask, bool, error) {
	for {
		if len(c.pending) > 0 {
			splits := c.pending[0]
			c.pending = c.pending[1:]
			metrics.CombinedTasksEmitted.Inc()
			return tablescan.CombinedScanTask{Splits: splits}, true, nil
		}
		if c.filesDone {
			return tablescan.CombinedScanTask{}, false, nil
		}

		task, ok, err := c.files.Next(ctx)
		if err != nil {
			return tablescan.CombinedScanTask{}, false, err
		}
		if !ok {
			c.filesDone = true
			c.pending = c.packer.Flush()
			continue
		}

		t := task
		for _, split := range t.Split(c.targetSize) {
			split.Task = &t
			if closedItems, closed := c.packer.Add(split); closed {
				c.pending = append(c.pending, closedItems)
			}
		}
	}
}

// Close closes the underlying file task iterable.
func (c *CombinedTaskIterable) Close() error {
	return c.files.Close()
}
