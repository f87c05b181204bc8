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
	"sync"

	tablescan "github.com/cockroachdb/tablescan"
)

// evaluatorCache memoizes one ManifestEvaluator per partition-spec id
// for the lifetime of one TableScan value; every refinement of the
// scan starts with a fresh cache (see TableScan.clone). Construction is
// idempotent: concurrent callers racing to build the same spec id's
// evaluator will agree on an equivalent value, so duplicate
// construction is tolerated and only one is published.
type evaluatorCache struct {
	mu   sync.Mutex
	byID map[int]*tablescan.ManifestEvaluator
}

func newEvaluatorCache() *evaluatorCache {
	return &evaluatorCache{byID: make(map[int]*tablescan.ManifestEvaluator)}
}

// getOrCreate returns the memoized evaluator for specID, building one
// from boundFilter if this is the first request for that spec id.
func (c *evaluatorCache) getOrCreate(spec *tablescan.PartitionSpec, boundFilter *tablescan.Expr) *tablescan.ManifestEvaluator {
	c.mu.Lock()
	defer c.mu.Unlock()
	if me, ok := c.byID[spec.SpecID]; ok {
		return me
	}
	me := tablescan.NewManifestEvaluator(spec, boundFilter)
	c.byID[spec.SpecID] = me
	return me
}
