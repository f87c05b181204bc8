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

func TestResidual(t *testing.T) {
	schema := partitionedSchema()
	spec := dateSpec()

	t.Run("partition column fully decided collapses to true", func(t *testing.T) {
		filter := tablescan.Equal("date", tablescan.StringValue("2024-01-15"))
		bound, _, err := tablescan.Bind(filter, schema, true)
		require.NoError(t, err)

		residual := tablescan.Residual(bound, spec, map[int]tablescan.Literal{
			1: tablescan.StringValue("2024-01-15"),
		})
		require.Equal(t, tablescan.OpTrue, residual.Op)
	})

	t.Run("partition column fully decided collapses to false", func(t *testing.T) {
		filter := tablescan.Equal("date", tablescan.StringValue("2024-01-15"))
		bound, _, err := tablescan.Bind(filter, schema, true)
		require.NoError(t, err)

		residual := tablescan.Residual(bound, spec, map[int]tablescan.Literal{
			1: tablescan.StringValue("2024-02-01"),
		})
		require.Equal(t, tablescan.OpFalse, residual.Op)
	})

	t.Run("non-partition column passes through unchanged", func(t *testing.T) {
		filter := tablescan.Equal("amount", tablescan.IntValue(100))
		bound, _, err := tablescan.Bind(filter, schema, true)
		require.NoError(t, err)

		residual := tablescan.Residual(bound, spec, map[int]tablescan.Literal{
			1: tablescan.StringValue("2024-01-15"),
		})
		require.Equal(t, tablescan.OpEq, residual.Op)
		require.Equal(t, 2, residual.FieldID)
	})

	t.Run("and simplifies once one side resolves", func(t *testing.T) {
		filter := tablescan.And(
			tablescan.Equal("date", tablescan.StringValue("2024-01-15")),
			tablescan.Equal("amount", tablescan.IntValue(100)),
		)
		bound, _, err := tablescan.Bind(filter, schema, true)
		require.NoError(t, err)

		residual := tablescan.Residual(bound, spec, map[int]tablescan.Literal{
			1: tablescan.StringValue("2024-01-15"),
		})
		// The date leaf resolved to AlwaysTrue and was simplified away,
		// leaving just the amount comparison.
		require.Equal(t, tablescan.OpEq, residual.Op)
		require.Equal(t, 2, residual.FieldID)
	})

	t.Run("and with a resolved-false side collapses the whole node", func(t *testing.T) {
		filter := tablescan.And(
			tablescan.Equal("date", tablescan.StringValue("2024-01-15")),
			tablescan.Equal("amount", tablescan.IntValue(100)),
		)
		bound, _, err := tablescan.Bind(filter, schema, true)
		require.NoError(t, err)

		residual := tablescan.Residual(bound, spec, map[int]tablescan.Literal{
			1: tablescan.StringValue("2024-02-01"),
		})
		require.Equal(t, tablescan.OpFalse, residual.Op)
	})
}
