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
)

// manifestSource adapts one open manifest's entry iterator into a
// sequence of FileScanTasks, applying row-group stats pruning and
// attaching the residual predicate each survivor still owes a reader.
// It implements parallel.Source[tablescan.FileScanTask] as well as the
// plain sequential shape used when the worker pool is disabled.
type manifestSource struct {
	iter   tablescan.ManifestEntryIterator
	spec   *tablescan.PartitionSpec
	schema *tablescan.Schema
	filter *tablescan.Expr
}

// Next implements parallel.Source.
func (s *manifestSource) Next(ctx context.Context) (tablescan.FileScanTask, bool, error) {
	for {
		entry, ok, err := s.iter.Next(ctx)
		if err != nil {
			return tablescan.FileScanTask{}, false, err
		}
		if !ok {
			return tablescan.FileScanTask{}, false, nil
		}
		if !entryMightMatch(s.filter, entry.Stats) {
			continue
		}
		residual := tablescan.Residual(s.filter, s.spec, entry.Partition)
		if residual.Op == tablescan.OpFalse {
			continue
		}
		return tablescan.FileScanTask{
			File:     entry,
			Spec:     s.spec,
			Schema:   s.schema,
			Residual: residual,
		}, true, nil
	}
}
