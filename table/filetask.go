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
	"github.com/cockroachdb/tablescan/internal/metrics"
)

// A FileTaskIterable is the closeable, lazy sequence of FileScanTasks
// returned by PlanFiles. Closing it closes every manifest reader
// opened for this call, whether or not the sequence was fully drained.
type FileTaskIterable struct {
	closeList *closeList
	next      func(ctx context.Context) (tablescan.FileScanTask, bool, error)
	closeFn   func() error
}

func emptyFileTaskIterable() *FileTaskIterable {
	return &FileTaskIterable{
		closeList: &closeList{},
		next: func(context.Context) (tablescan.FileScanTask, bool, error) {
			return tablescan.FileScanTask{}, false, nil
		},
	}
}

// Next returns the next FileScanTask, or ok == false once the
// sequence is exhausted.
func (f *FileTaskIterable) Next(ctx context.Context) (tablescan.FileScanTask, bool, error) {
	t, ok, err := f.next(ctx)
	if err == nil && ok {
		metrics.DataFilesEmitted.Inc()
	}
	return t, ok, err
}

// Close releases every manifest reader opened for this call. It is
// safe to call more than once.
func (f *FileTaskIterable) Close() error {
	var first error
	if f.closeFn != nil {
		first = f.closeFn()
	}
	if err := f.closeList.CloseAll(); err != nil && first == nil {
		first = err
	}
	return first
}
