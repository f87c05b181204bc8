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

// Package projection computes the effective read schema for a scan:
// the union of the columns a caller explicitly selected and the
// columns its row filter references, resolved under a given case
// sensitivity and preserving the table schema's field order.
package projection

import tablescan "github.com/cockroachdb/tablescan"

// Resolve returns the projected schema for table given the caller's
// selected column names (nil means "all columns"), the field ids
// already referenced by a bound row filter, and the active case
// sensitivity used to resolve selected names. An unknown or
// ambiguously-cased selected name fails with a ValidationError from
// the tablescan package.
func Resolve(table *tablescan.Schema, selected []string, caseSensitive bool, filterIDs tablescan.FieldIDSet) (*tablescan.Schema, error) {
	if selected == nil {
		return table, nil
	}

	ids, err := resolveNames(table, selected, caseSensitive)
	if err != nil {
		return nil, err
	}
	return table.Select(ids.Union(filterIDs)), nil
}

func resolveNames(table *tablescan.Schema, names []string, caseSensitive bool) (tablescan.FieldIDSet, error) {
	// Bind a trivial predicate referencing every name: this reuses the
	// schema's own name resolution and ambiguity/unknown-name error
	// reporting instead of duplicating it here.
	leaves := make([]*tablescan.Expr, len(names))
	for i, name := range names {
		leaves[i] = tablescan.NotNull(name)
	}
	_, ids, err := tablescan.Bind(tablescan.And(leaves...), table, caseSensitive)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
