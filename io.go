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

import (
	"context"
	"io"
)

// InputFile is a readable handle returned by FileIO. Callers are
// responsible for calling Close exactly once.
type InputFile interface {
	io.ReadCloser
}

// FileIO is the storage collaborator the core depends on to turn a
// manifest path into bytes. Credential handling, retries, and the
// actual object-store protocol live on the other side of this seam.
type FileIO interface {
	NewInputFile(ctx context.Context, path string) (InputFile, error)
}

// TableOperations is the catalog collaborator that hands the planner
// an immutable TableMetadata snapshot. Catalog discovery and commit
// protocol are out of scope; only this read accessor matters here.
type TableOperations interface {
	Current(ctx context.Context) (*TableMetadata, error)
}

// ManifestEntryIterator is a closeable, lazy sequence of data-file
// entries decoded from one manifest file. Implementations decode
// incrementally: Next must not require the whole manifest to be
// materialized in memory at once.
type ManifestEntryIterator interface {
	// Next advances the iterator. It returns ok == false (with a nil
	// error) once the sequence is exhausted.
	Next(ctx context.Context) (entry ManifestEntry, ok bool, err error)
	// Close releases the underlying file handle. It is safe to call
	// more than once; only the first call has effect.
	Close() error
}

// ManifestReader decodes the data-file entries of one manifest file
// from an already-opened InputFile. Decoding stays byte-level here;
// the scan planner layers per-entry stats pruning on top of the raw
// sequence it returns. No column-selection refinement is applied:
// every field of each entry is decoded.
type ManifestReader interface {
	Read(ctx context.Context, file ManifestFile, input InputFile) (ManifestEntryIterator, error)
}
