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
	"github.com/cockroachdb/tablescan/table"
)

func testSchema() *tablescan.Schema {
	return &tablescan.Schema{Fields: []tablescan.Field{
		{ID: 1, Name: "id", Type: tablescan.Int64},
		{ID: 2, Name: "Name", Type: tablescan.String},
		{ID: 3, Name: "date", Type: tablescan.String},
	}}
}

func TestBind(t *testing.T) {
	schema := testSchema()

	t.Run("resolves field ids", func(t *testing.T) {
		e := tablescan.Equal("id", tablescan.IntValue(5))
		bound, ids, err := tablescan.Bind(e, schema, true)
		require.NoError(t, err)
		require.Equal(t, 1, bound.FieldID)
		require.True(t, ids.Has(1))
	})

	t.Run("unknown column is a ValidationError", func(t *testing.T) {
		e := tablescan.Equal("nope", tablescan.IntValue(5))
		_, _, err := tablescan.Bind(e, schema, true)
		require.Error(t, err)
		require.True(t, tablescan.IsValidation(err))
	})

	t.Run("case sensitive mismatch is a ValidationError", func(t *testing.T) {
		e := tablescan.Equal("name", tablescan.StringValue("x"))
		_, _, err := tablescan.Bind(e, schema, true)
		require.Error(t, err)
		require.True(t, tablescan.IsValidation(err))
	})

	t.Run("case insensitive resolves", func(t *testing.T) {
		e := tablescan.Equal("name", tablescan.StringValue("x"))
		bound, ids, err := tablescan.Bind(e, schema, false)
		require.NoError(t, err)
		require.Equal(t, 2, bound.FieldID)
		require.True(t, ids.Has(2))
	})

	t.Run("not is eliminated by pushing down to leaves", func(t *testing.T) {
		e := tablescan.Not(tablescan.And(
			tablescan.GreaterThan("id", tablescan.IntValue(1)),
			tablescan.IsNull("date"),
		))
		bound, _, err := tablescan.Bind(e, schema, true)
		require.NoError(t, err)
		require.Equal(t, tablescan.OpOr, bound.Op)
		require.Equal(t, tablescan.OpLtEq, bound.Children[0].Op)
		require.Equal(t, tablescan.OpNotNull, bound.Children[1].Op)
	})

	t.Run("filter1.filter2 equals filter(and(1,2))", func(t *testing.T) {
		e1 := tablescan.GreaterThan("id", tablescan.IntValue(1))
		e2 := tablescan.LessThan("id", tablescan.IntValue(10))
		meta := tablescan.NewTableMetadata(schema, nil, nil, nil, 0, nil)
		combinedSeparately := table.New(meta, nil, nil, nil).Filter(e1).Filter(e2).RawFilter()
		combinedDirectly := table.New(meta, nil, nil, nil).Filter(tablescan.And(e1, e2)).RawFilter()

		bound1, ids1, err := tablescan.Bind(combinedSeparately, schema, true)
		require.NoError(t, err)
		bound2, ids2, err := tablescan.Bind(combinedDirectly, schema, true)
		require.NoError(t, err)

		require.Equal(t, bound1, bound2)
		require.Equal(t, ids1, ids2)
	})
}
