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

import tablescan "github.com/cockroachdb/tablescan"

// entryMightMatch applies the same inclusive, tri-state pruning rule
// as the manifest evaluator, but against one data file's per-column
// statistics instead of a manifest's partition summary: unlike
// partitioning, every column the filter references may carry stats
// here, not just partition columns.
func entryMightMatch(e *tablescan.Expr, stats map[int]tablescan.ColumnStats) bool {
	switch e.Op {
	case tablescan.OpTrue:
		return true
	case tablescan.OpFalse:
		return false
	case tablescan.OpAnd:
		return entryMightMatch(e.Children[0], stats) && entryMightMatch(e.Children[1], stats)
	case tablescan.OpOr:
		return entryMightMatch(e.Children[0], stats) || entryMightMatch(e.Children[1], stats)
	default:
		s, ok := stats[e.FieldID]
		if !ok {
			return true
		}
		return entryLeafMightMatch(e, s)
	}
}

func entryLeafMightMatch(e *tablescan.Expr, s tablescan.ColumnStats) bool {
	switch e.Op {
	case tablescan.OpIsNull:
		return s.NullCount > 0
	case tablescan.OpNotNull:
		return s.ValueCount > s.NullCount
	case tablescan.OpEq:
		if !s.HasLowerBound || !s.HasUpperBound {
			return true
		}
		return s.LowerBound.Compare(e.Value) <= 0 && s.UpperBound.Compare(e.Value) >= 0
	case tablescan.OpNotEq:
		if !s.HasLowerBound || !s.HasUpperBound {
			return true
		}
		return !(s.LowerBound.Compare(e.Value) == 0 && s.UpperBound.Compare(e.Value) == 0)
	case tablescan.OpLt:
		if !s.HasLowerBound {
			return true
		}
		return s.LowerBound.Compare(e.Value) < 0
	case tablescan.OpLtEq:
		if !s.HasLowerBound {
			return true
		}
		return s.LowerBound.Compare(e.Value) <= 0
	case tablescan.OpGt:
		if !s.HasUpperBound {
			return true
		}
		return s.UpperBound.Compare(e.Value) > 0
	case tablescan.OpGtEq:
		if !s.HasUpperBound {
			return true
		}
		return s.UpperBound.Compare(e.Value) >= 0
	case tablescan.OpIn:
		if !s.HasLowerBound || !s.HasUpperBound {
			return true
		}
		for _, v := range e.Values {
			if s.LowerBound.Compare(v) <= 0 && s.UpperBound.Compare(v) >= 0 {
				return true
			}
		}
		return false
	case tablescan.OpNotIn:
		return true
	default:
		return true
	}
}
