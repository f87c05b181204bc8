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

// Residual computes the portion of the bound filter e that a per-row
// reader must still evaluate, given the concrete partition tuple of
// one data file. It is a structural rewrite: any leaf whose column is
// part of the partition spec collapses to AlwaysTrue or AlwaysFalse
// once the partition value decides it outright, and And/Or short
// circuit once one side is fully resolved. Leaves that reference a
// column outside the partition spec are returned unchanged, since the
// reader still needs to check them against the actual row.
func Residual(e *Expr, spec *PartitionSpec, tuple map[int]Literal) *Expr {
	switch e.Op {
	case OpTrue, OpFalse:
		return e
	case OpAnd:
		left := Residual(e.Children[0], spec, tuple)
		right := Residual(e.Children[1], spec, tuple)
		return simplifyAnd(left, right)
	case OpOr:
		left := Residual(e.Children[0], spec, tuple)
		right := Residual(e.Children[1], spec, tuple)
		return simplifyOr(left, right)
	default:
		if _, partitioned := indexForSourceID(spec, e.FieldID); !partitioned {
			return e
		}
		v, known := tuple[e.FieldID]
		if !known {
			return e
		}
		if resolveLeaf(e, v) {
			return AlwaysTrue()
		}
		return AlwaysFalse()
	}
}

func simplifyAnd(left, right *Expr) *Expr {
	if left.Op == OpFalse || right.Op == OpFalse {
		return AlwaysFalse()
	}
	if left.Op == OpTrue {
		return right
	}
	if right.Op == OpTrue {
		return left
	}
	return &Expr{Op: OpAnd, Children: []*Expr{left, right}, FieldID: -1}
}

func simplifyOr(left, right *Expr) *Expr {
	if left.Op == OpTrue || right.Op == OpTrue {
		return AlwaysTrue()
	}
	if left.Op == OpFalse {
		return right
	}
	if right.Op == OpFalse {
		return left
	}
	return &Expr{Op: OpOr, Children: []*Expr{left, right}, FieldID: -1}
}

// resolveLeaf evaluates a single comparison leaf against a known,
// concrete value rather than a (lower, upper) summary.
func resolveLeaf(e *Expr, v Literal) bool {
	switch e.Op {
	case OpIsNull:
		return false // partition tuples never carry an explicit null marker here
	case OpNotNull:
		return true
	case OpEq:
		return v.Compare(e.Value) == 0
	case OpNotEq:
		return v.Compare(e.Value) != 0
	case OpLt:
		return v.Compare(e.Value) < 0
	case OpLtEq:
		return v.Compare(e.Value) <= 0
	case OpGt:
		return v.Compare(e.Value) > 0
	case OpGtEq:
		return v.Compare(e.Value) >= 0
	case OpIn:
		for _, cand := range e.Values {
			if v.Compare(cand) == 0 {
				return true
			}
		}
		return false
	case OpNotIn:
		for _, cand := range e.Values {
			if v.Compare(cand) == 0 {
				return false
			}
		}
		return true
	default:
		return true
	}
}
