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

// Package manifest provides a reference ManifestReader that decodes
// one manifest entry per line of newline-delimited JSON, plus a
// local-filesystem FileIO to open manifest paths from disk. Real
// deployments will swap in a reader for whatever columnar manifest
// format and FileIO for whatever object store they use; this package
// exists so the scan planner has something concrete to open, decode,
// and close.
package manifest

import (
	"bufio"
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	tablescan "github.com/cockroachdb/tablescan"
)

// LocalFileIO implements tablescan.FileIO by opening paths directly
// from the local filesystem, rooted at an optional base directory.
type LocalFileIO struct {
	Base string
}

// NewInputFile implements tablescan.FileIO.
func (io *LocalFileIO) NewInputFile(_ context.Context, path string) (tablescan.InputFile, error) {
	full := path
	if io.Base != "" {
		full = io.Base + string(os.PathSeparator) + path
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, errors.Wrapf(err, "opening manifest file %s", full)
	}
	return f, nil
}

// JSONLinesReader implements tablescan.ManifestReader by decoding one
// tablescan.ManifestEntry per line of newline-delimited JSON.
type JSONLinesReader struct{}

// Read implements tablescan.ManifestReader.
func (JSONLinesReader) Read(_ context.Context, file tablescan.ManifestFile, input tablescan.InputFile) (tablescan.ManifestEntryIterator, error) {
	return &jsonLinesIterator{path: file.Path, input: input, scanner: bufio.NewScanner(input)}, nil
}

type jsonLinesIterator struct {
	path      string
	input     tablescan.InputFile
	scanner   *bufio.Scanner
	closeOnce bool
}

// Next implements tablescan.ManifestEntryIterator.
func (it *jsonLinesIterator) Next(ctx context.Context) (tablescan.ManifestEntry, bool, error) {
	if err := ctx.Err(); err != nil {
		return tablescan.ManifestEntry{}, false, err
	}
	for it.scanner.Scan() {
		line := it.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry tablescan.ManifestEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return tablescan.ManifestEntry{}, false, errors.Wrapf(err, "decoding manifest entry in %s", it.path)
		}
		return entry, true, nil
	}
	if err := it.scanner.Err(); err != nil {
		return tablescan.ManifestEntry{}, false, errors.Wrapf(err, "scanning manifest %s", it.path)
	}
	return tablescan.ManifestEntry{}, false, nil
}

// Close implements tablescan.ManifestEntryIterator.
func (it *jsonLinesIterator) Close() error {
	if it.closeOnce {
		return nil
	}
	it.closeOnce = true
	if err := it.input.Close(); err != nil {
		log.WithField("path", it.path).WithError(err).Warn("error closing manifest file")
		return err
	}
	return nil
}
