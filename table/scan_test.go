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

package table_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	tablescan "github.com/cockroachdb/tablescan"
	"github.com/cockroachdb/tablescan/table"
)

func basicSchema() *tablescan.Schema {
	return &tablescan.Schema{Fields: []tablescan.Field{
		{ID: 1, Name: "date", Type: tablescan.String},
		{ID: 2, Name: "amount", Type: tablescan.Int64},
	}}
}

func basicMeta(snapshots []*tablescan.Snapshot, current int64) *tablescan.TableMetadata {
	spec := &tablescan.PartitionSpec{SpecID: 1, Fields: []tablescan.PartitionField{{SourceID: 1, Name: "date"}}}
	return tablescan.NewTableMetadata(basicSchema(), map[int]*tablescan.PartitionSpec{1: spec}, snapshots, nil, current, nil)
}

func newScan(meta *tablescan.TableMetadata) *table.TableScan {
	tracker := &readerTracker{}
	return table.New(meta, &fakeFileIO{tracker: tracker}, &fakeManifestReader{tracker: tracker}, nil)
}

func TestUseSnapshot(t *testing.T) {
	meta := basicMeta([]*tablescan.Snapshot{{SnapshotID: 1}, {SnapshotID: 2}}, 2)
	scan := newScan(meta)

	t.Run("pins a known snapshot", func(t *testing.T) {
		pinned, err := scan.UseSnapshot(1)
		require.NoError(t, err)
		require.NotNil(t, pinned)
	})

	t.Run("unknown snapshot id is an InvalidArgumentError", func(t *testing.T) {
		_, err := scan.UseSnapshot(999)
		require.Error(t, err)
		require.True(t, tablescan.IsInvalidArgument(err))
	})

	t.Run("double pin is an InvalidArgumentError", func(t *testing.T) {
		pinned, err := scan.UseSnapshot(1)
		require.NoError(t, err)
		_, err = pinned.UseSnapshot(2)
		require.Error(t, err)
		require.True(t, tablescan.IsInvalidArgument(err))
	})
}

func TestAsOfTime(t *testing.T) {
	meta := basicMeta([]*tablescan.Snapshot{
		{SnapshotID: 1, TimestampMs: 100},
		{SnapshotID: 2, TimestampMs: 200},
	}, 2)
	meta.SnapshotLog = []tablescan.SnapshotLogEntry{
		{TimestampMs: 100, SnapshotID: 1},
		{TimestampMs: 200, SnapshotID: 2},
	}
	scan := newScan(meta)

	t.Run("resolves to the qualifying snapshot", func(t *testing.T) {
		pinned, err := scan.AsOfTime(150)
		require.NoError(t, err)
		require.NotNil(t, pinned)
	})

	t.Run("earlier than every snapshot fails", func(t *testing.T) {
		_, err := scan.AsOfTime(50)
		require.Error(t, err)
		require.True(t, tablescan.IsInvalidArgument(err))
	})
}

func TestSelectAndCaseSensitivity(t *testing.T) {
	meta := basicMeta(nil, 0)
	scan := newScan(meta)

	t.Run("case sensitive rejects a differently-cased column", func(t *testing.T) {
		_, err := scan.Select("DATE").Schema()
		require.Error(t, err)
		require.True(t, tablescan.IsValidation(err))
	})

	t.Run("case insensitive resolves it", func(t *testing.T) {
		schema, err := scan.CaseSensitive(false).Select("DATE").Schema()
		require.NoError(t, err)
		require.Len(t, schema.Fields, 1)
		require.Equal(t, "date", schema.Fields[0].Name)
	})

	t.Run("filter columns are unioned into the projection", func(t *testing.T) {
		filtered := scan.Select("date").Filter(tablescan.Equal("amount", tablescan.IntValue(5)))
		schema, err := filtered.Schema()
		require.NoError(t, err)
		require.Len(t, schema.Fields, 2)
	})

	t.Run("nil selection keeps every column", func(t *testing.T) {
		schema, err := scan.Schema()
		require.NoError(t, err)
		require.Len(t, schema.Fields, 2)
	})
}

func TestIsCaseSensitiveDefault(t *testing.T) {
	scan := newScan(basicMeta(nil, 0))
	require.True(t, scan.IsCaseSensitive())
	require.False(t, scan.CaseSensitive(false).IsCaseSensitive())
}
