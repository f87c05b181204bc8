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

import "github.com/cockroachdb/tablescan/internal/util/ident"

// A Field describes a single column of a table's schema. Field ids are
// stable across schema evolution; names are not.
type Field struct {
	ID       int
	Name     string
	Type     Kind
	Required bool
}

// A Schema is an ordered set of Fields, identified by field id.
type Schema struct {
	Fields []Field
}

// FieldByID returns the field with the given id.
func (s *Schema) FieldByID(id int) (Field, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// nameMap builds a case-aware lookup of name -> field id for this
// schema. A fresh map is built per call since Schema values are
// expected to be small and shared widely; callers that bind many
// expressions against the same schema should cache the result.
func (s *Schema) nameMap(caseSensitive bool) *ident.Map {
	m := ident.NewMap(caseSensitive)
	for _, f := range s.Fields {
		m.Put(ident.New(f.Name), f.ID)
	}
	return m
}

// Select returns a new Schema containing only the fields whose id is
// in ids, preserving the receiver's field order. Unknown ids are
// silently ignored, since FieldIDSet may have been built from a wider
// schema version.
func (s *Schema) Select(ids FieldIDSet) *Schema {
	out := &Schema{}
	for _, f := range s.Fields {
		if ids.Has(f.ID) {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}

// A FieldIDSet is a small set of field ids, used to describe a
// projection.
type FieldIDSet map[int]struct{}

// NewFieldIDSet builds a FieldIDSet from the given ids.
func NewFieldIDSet(ids ...int) FieldIDSet {
	s := make(FieldIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a member of the set.
func (s FieldIDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set and returns the receiver for chaining.
func (s FieldIDSet) Add(id int) FieldIDSet {
	s[id] = struct{}{}
	return s
}

// Union returns a new set containing the members of both sets.
func (s FieldIDSet) Union(other FieldIDSet) FieldIDSet {
	out := make(FieldIDSet, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// Slice returns the set's members as a slice, in unspecified order.
func (s FieldIDSet) Slice() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// A PartitionField maps one source schema field to one column of a
// partition spec's tuple.
type PartitionField struct {
	SourceID int
	Name     string
}

// A PartitionSpec is a table's partitioning strategy at a point in
// time, identified by a stable SpecID. The Fields slice order defines
// the order of values in a partition tuple and partition summary.
type PartitionSpec struct {
	SpecID int
	Fields []PartitionField
}
