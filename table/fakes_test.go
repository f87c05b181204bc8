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
	"context"
	"sync"

	tablescan "github.com/cockroachdb/tablescan"
)

// readerTracker records which manifest paths were opened and closed, so
// tests can assert on the planner's open/close discipline without a
// real filesystem.
type readerTracker struct {
	mu     sync.Mutex
	opened []string
	closed []string
}

func (t *readerTracker) recordOpen(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.opened = append(t.opened, path)
}

func (t *readerTracker) recordClose(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = append(t.closed, path)
}

func (t *readerTracker) openedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.opened)
}

func (t *readerTracker) closedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.closed)
}

// fakeFileIO hands out inert input files; the fixture's manifest
// reader never actually reads their bytes.
type fakeFileIO struct {
	tracker *readerTracker
}

func (f *fakeFileIO) NewInputFile(ctx context.Context, path string) (tablescan.InputFile, error) {
	f.tracker.recordOpen(path)
	return &fakeInputFile{path: path, tracker: f.tracker}, nil
}

type fakeInputFile struct {
	path    string
	tracker *readerTracker
}

func (f *fakeInputFile) Read(p []byte) (int, error) { return 0, nil }
func (f *fakeInputFile) Close() error                { return nil }

// fakeManifestReader serves a fixed set of ManifestEntry slices keyed
// by manifest path, and reports every iterator close through tracker.
type fakeManifestReader struct {
	entries map[string][]tablescan.ManifestEntry
	tracker *readerTracker
}

func (r *fakeManifestReader) Read(ctx context.Context, file tablescan.ManifestFile, input tablescan.InputFile) (tablescan.ManifestEntryIterator, error) {
	return &fakeIterator{path: file.Path, entries: r.entries[file.Path], tracker: r.tracker}, nil
}

type fakeIterator struct {
	path    string
	entries []tablescan.ManifestEntry
	idx     int
	tracker *readerTracker
	closed  bool
}

func (it *fakeIterator) Next(ctx context.Context) (tablescan.ManifestEntry, bool, error) {
	if it.idx >= len(it.entries) {
		return tablescan.ManifestEntry{}, false, nil
	}
	e := it.entries[it.idx]
	it.idx++
	return e, true, nil
}

func (it *fakeIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	it.tracker.recordClose(it.path)
	return nil
}
