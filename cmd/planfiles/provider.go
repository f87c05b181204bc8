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

package main

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/google/wire"

	tablescan "github.com/cockroachdb/tablescan"
	"github.com/cockroachdb/tablescan/internal/manifest"
	"github.com/cockroachdb/tablescan/table"
)

// Set is used by Wire.
var Set = wire.NewSet(
	ProvideMetadata,
	ProvideFileIO,
	ProvideManifestReader,
	ProvideListeners,
	ProvideScan,
)

// ProvideMetadata loads the table-metadata fixture named by the
// command's configuration.
func ProvideMetadata(cfg *Config) (*tablescan.TableMetadata, error) {
	return loadMetadata(cfg.MetadataPath)
}

// ProvideFileIO returns the local-filesystem FileIO rooted next to the
// metadata fixture, so manifest paths in the fixture may be relative.
func ProvideFileIO(cfg *Config) tablescan.FileIO {
	return &manifest.LocalFileIO{Base: filepath.Dir(cfg.MetadataPath)}
}

// ProvideManifestReader returns the reference newline-delimited-JSON
// manifest reader.
func ProvideManifestReader() tablescan.ManifestReader {
	return manifest.JSONLinesReader{}
}

// ProvideListeners returns the listener registry the scan publishes
// ScanEvents to. The demo command logs each event at Debug.
func ProvideListeners() *tablescan.Listeners {
	return tablescan.NewListeners(tablescan.ListenerFunc(func(event tablescan.ScanEvent) {
		log.WithFields(log.Fields{
			"scanID":     event.ScanID,
			"snapshotID": event.SnapshotID,
		}).Debug("planning scan")
	}))
}

// ProvideScan builds the base TableScan and applies the command-line
// refinements.
func ProvideScan(
	cfg *Config,
	meta *tablescan.TableMetadata,
	fileIO tablescan.FileIO,
	reader tablescan.ManifestReader,
	listeners *tablescan.Listeners,
) (*table.TableScan, error) {
	if !cfg.WorkerPool {
		meta.Properties[tablescan.PropertyWorkerPoolFlag] = "false"
	}

	scan := table.New(meta, fileIO, reader, listeners).
		CaseSensitive(cfg.CaseSensitive).
		Select(cfg.Columns()...)

	var err error
	switch {
	case cfg.SnapshotID != 0:
		scan, err = scan.UseSnapshot(cfg.SnapshotID)
	case cfg.AsOfTimeMs != 0:
		scan, err = scan.AsOfTime(cfg.AsOfTimeMs)
	}
	if err != nil {
		return nil, err
	}
	return scan, nil
}
