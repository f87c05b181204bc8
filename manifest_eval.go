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

package tablescan

// A PartitionFieldSummary is the per-partition-column summary carried
// by a ManifestFile: the inclusive bounds observed across every data
// file the manifest lists, plus whether any of them contain a null
// for that column. A missing bound (HasLowerBound or HasUpperBound
// false) is treated conservatively as "might match" by every
// bound-based comparison; IsNull is decided by ContainsNull alone.
type PartitionFieldSummary struct {
	ContainsNull  bool
	HasLowerBound bool
	LowerBound    Literal
	HasUpperBound bool
	UpperBound    Literal
}

// A ManifestEvaluator decides, for one partition spec, whether a
// manifest file's partition summary could possibly contain a row
// matching the bound row filter. One evaluator is built per
// (spec id, filter, case-sensitivity) and is pure and safe to reuse
// concurrently, which is what lets the planner memoize it in its
// per-scan cache.
type ManifestEvaluator struct {
	spec   *PartitionSpec
	filter *Expr
}

// NewManifestEvaluator builds an evaluator for one partition spec and
// an already-bound row filter.
func NewManifestEvaluator(spec *PartitionSpec, boundFilter *Expr) *ManifestEvaluator {
	return &ManifestEvaluator{spec: spec, filter: boundFilter}
}

// MightMatch reports whether some partition tuple covered by summary
// could satisfy the evaluator's filter. It is sound (never returns
// false for a summary that could contain a match) and monotone
// (tightening any bound in summary can only turn a true result false,
// never the reverse).
func (me *ManifestEvaluator) MightMatch(summary []PartitionFieldSummary) bool {
	return evalMightMatch(me.filter, me.spec, summary)
}

// indexForSourceID returns the position within the partition spec's
// field list (and therefore within its partition summary) whose
// source column is fieldID, if the row filter refers to a partitioned
// column at all.
func indexForSourceID(spec *PartitionSpec, fieldID int) (int, bool) {
	for i, f := range spec.Fields {
		if f.SourceID == fieldID {
			return i, true
		}
	}
	return 0, false
}

func evalMightMatch(e *Expr, spec *PartitionSpec, summary []PartitionFieldSummary) bool {
	switch e.Op {
	case OpTrue:
		return true
	case OpFalse:
		return false
	case OpAnd:
		return evalMightMatch(e.Children[0], spec, summary) && evalMightMatch(e.Children[1], spec, summary)
	case OpOr:
		return evalMightMatch(e.Children[0], spec, summary) || evalMightMatch(e.Children[1], spec, summary)
	default:
		idx, ok := indexForSourceID(spec, e.FieldID)
		if !ok {
			// The filter references a column that is not part of this
			// partition spec: partitioning alone cannot decide the
			// predicate, so we must assume a match is possible.
			return true
		}
		return evalLeaf(e, summary[idx])
	}
}

// evalLeaf applies the inclusive tri-state evaluation rule: any
// operand we cannot bound from the summary (no recorded bound, or a
// bound of an incompatible shape) is treated as "might match".
func evalLeaf(e *Expr, s PartitionFieldSummary) bool {
	switch e.Op {
	case OpIsNull:
		return s.ContainsNull
	case OpNotNull:
		// Some value in the file range is non-null unless every value
		// in the manifest's range is the same bound equal to a null
		// marker; since we don't carry an "all null" flag, this is
		// conservatively true whenever we lack a contradicting signal.
		return true
	case OpEq:
		if !s.HasLowerBound || !s.HasUpperBound {
			return true
		}
		return s.LowerBound.Compare(e.Value) <= 0 && s.UpperBound.Compare(e.Value) >= 0
	case OpNotEq:
		if !s.HasLowerBound || !s.HasUpperBound {
			return true
		}
		// Only safe to prune if the summary is a single-valued range
		// equal to the excluded value.
		return !(s.LowerBound.Compare(e.Value) == 0 && s.UpperBound.Compare(e.Value) == 0)
	case OpLt:
		if !s.HasLowerBound {
			return true
		}
		return s.LowerBound.Compare(e.Value) < 0
	case OpLtEq:
		if !s.HasLowerBound {
			return true
		}
		return s.LowerBound.Compare(e.Value) <= 0
	case OpGt:
		if !s.HasUpperBound {
			return true
		}
		return s.UpperBound.Compare(e.Value) > 0
	case OpGtEq:
		if !s.HasUpperBound {
			return true
		}
		return s.UpperBound.Compare(e.Value) >= 0
	case OpIn:
		if !s.HasLowerBound || !s.HasUpperBound {
			return true
		}
		for _, v := range e.Values {
			if s.LowerBound.Compare(v) <= 0 && s.UpperBound.Compare(v) >= 0 {
				return true
			}
		}
		return false
	case OpNotIn:
		// Pruning NotIn reliably needs the full distinct-value set,
		// which summaries don't carry, so this is always conservative.
		return true
	default:
		return true
	}
}
