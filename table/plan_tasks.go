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
)

// PlanTasks plans this scan's file tasks (see PlanFiles) and packs
// their splits into combined scan tasks, reading split size, lookback,
// and open-file cost from the table's properties.
func (s *TableScan) PlanTasks(ctx context.Context) (*CombinedTaskIterable, error) {
	files, err := s.PlanFiles(ctx)
	if err != nil {
		return nil, err
	}

	targetSize := s.meta.PropertyLong(tablescan.PropertySplitSize, tablescan.DefaultSplitSize)
	lookback := s.meta.PropertyInt(tablescan.PropertySplitLookback, tablescan.DefaultSplitLookback)
	openFileCost := s.meta.PropertyLong(tablescan.PropertyOpenFileCost, tablescan.DefaultOpenFileCost)

	weight := func(split tablescan.Split) int64 { return split.Weight(openFileCost) }
	packer := binpack.New(targetSize, lookback, weight)

	return &CombinedTaskIterable{files: files, targetSize: targetSize, packer: packer}, nil
}
