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

package manifest_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	tablescan "github.com/cockroachdb/tablescan"
	"github.com/cockroachdb/tablescan/internal/manifest"
)

type nopCloserReader struct {
	*strings.Reader
	closed *bool
}

func (n nopCloserReader) Close() error {
	*n.closed = true
	return nil
}

func TestJSONLinesReaderDecodesOneEntryPerLine(t *testing.T) {
	data := `{"Path":"a.parquet","Length":10}
{"Path":"b.parquet","Length":20}
`
	closed := false
	input := nopCloserReader{Reader: strings.NewReader(data), closed: &closed}

	reader := manifest.JSONLinesReader{}
	iter, err := reader.Read(context.Background(), tablescan.ManifestFile{Path: "m.manifest"}, input)
	require.NoError(t, err)

	ctx := context.Background()
	e1, ok, err := iter.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a.parquet", e1.Path)

	e2, ok, err := iter.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "b.parquet", e2.Path)

	_, ok, err = iter.Next(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, iter.Close())
	require.True(t, closed)
	require.NoError(t, iter.Close(), "close must be idempotent")
}

func TestJSONLinesReaderSkipsBlankLines(t *testing.T) {
	data := "{\"Path\":\"a.parquet\"}\n\n{\"Path\":\"b.parquet\"}\n"
	closed := false
	input := nopCloserReader{Reader: strings.NewReader(data), closed: &closed}

	reader := manifest.JSONLinesReader{}
	iter, err := reader.Read(context.Background(), tablescan.ManifestFile{Path: "m.manifest"}, input)
	require.NoError(t, err)

	ctx := context.Background()
	var paths []string
	for {
		e, ok, err := iter.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		paths = append(paths, e.Path)
	}
	require.Equal(t, []string{"a.parquet", "b.parquet"}, paths)
}

func TestLocalFileIOOpensRelativeToBase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m.manifest"), []byte("{}\n"), 0o644))

	io := &manifest.LocalFileIO{Base: dir}
	input, err := io.NewInputFile(context.Background(), "m.manifest")
	require.NoError(t, err)
	require.NoError(t, input.Close())
}

func TestLocalFileIOMissingFileErrors(t *testing.T) {
	io := &manifest.LocalFileIO{Base: t.TempDir()}
	_, err := io.NewInputFile(context.Background(), "missing.manifest")
	require.Error(t, err)
}
