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

package tablescan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	tablescan "github.com/cockroachdb/tablescan"
)

func partitionedSchema() *tablescan.Schema {
	return &tablescan.Schema{Fields: []tablescan.Field{
		{ID: 1, Name: "date", Type: tablescan.String},
		{ID: 2, Name: "amount", Type: tablescan.Int64},
	}}
}

func dateSpec() *tablescan.PartitionSpec {
	return &tablescan.PartitionSpec{SpecID: 1, Fields: []tablescan.PartitionField{
		{SourceID: 1, Name: "date"},
	}}
}

func TestManifestEvaluatorMightMatch(t *testing.T) {
	schema := partitionedSchema()
	spec := dateSpec()

	scenarios := []struct {
		name    string
		filter  *tablescan.Expr
		summary []tablescan.PartitionFieldSummary
		want    bool
	}{
		{
			name:   "equality within bounds matches",
			filter: tablescan.Equal("date", tablescan.StringValue("2024-01-15")),
			summary: []tablescan.PartitionFieldSummary{
				{HasLowerBound: true, LowerBound: tablescan.StringValue("2024-01-01"),
					HasUpperBound: true, UpperBound: tablescan.StringValue("2024-01-31")},
			},
			want: true,
		},
		{
			name:   "equality outside bounds is pruned",
			filter: tablescan.Equal("date", tablescan.StringValue("2024-03-01")),
			summary: []tablescan.PartitionFieldSummary{
				{HasLowerBound: true, LowerBound: tablescan.StringValue("2024-01-01"),
					HasUpperBound: true, UpperBound: tablescan.StringValue("2024-01-31")},
			},
			want: false,
		},
		{
			name:   "missing bound is conservatively a match",
			filter: tablescan.Equal("date", tablescan.StringValue("2024-03-01")),
			summary: []tablescan.PartitionFieldSummary{
				{},
			},
			want: true,
		},
		{
			name:   "unpartitioned column is conservatively a match",
			filter: tablescan.Equal("amount", tablescan.IntValue(100)),
			summary: []tablescan.PartitionFieldSummary{
				{HasLowerBound: true, LowerBound: tablescan.StringValue("2024-01-01"),
					HasUpperBound: true, UpperBound: tablescan.StringValue("2024-01-31")},
			},
			want: true,
		},
		{
			name: "and short circuits to false",
			filter: tablescan.And(
				tablescan.Equal("date", tablescan.StringValue("2024-03-01")),
				tablescan.Equal("amount", tablescan.IntValue(5)),
			),
			summary: []tablescan.PartitionFieldSummary{
				{HasLowerBound: true, LowerBound: tablescan.StringValue("2024-01-01"),
					HasUpperBound: true, UpperBound: tablescan.StringValue("2024-01-31")},
			},
			want: false,
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			bound, _, err := tablescan.Bind(s.filter, schema, true)
			require.NoError(t, err)
			eval := tablescan.NewManifestEvaluator(spec, bound)
			require.Equal(t, s.want, eval.MightMatch(s.summary))
		})
	}
}
