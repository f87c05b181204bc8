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
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	tablescan "github.com/cockroachdb/tablescan"
)

// fixture is the on-disk JSON shape of a table-metadata fixture. It
// mirrors tablescan.TableMetadata field-for-field, since TableMetadata
// itself keeps its snapshot index unexported and built through
// NewTableMetadata.
type fixture struct {
	Schema          *tablescan.Schema                   `json:"schema"`
	Specs           map[string]*tablescan.PartitionSpec `json:"specs"`
	Snapshots       []*tablescan.Snapshot               `json:"snapshots"`
	SnapshotLog     []tablescan.SnapshotLogEntry         `json:"snapshotLog"`
	CurrentSnapshot int64                                `json:"currentSnapshot"`
	Properties      map[string]string                    `json:"properties"`
}

// loadMetadata reads and decodes a table-metadata fixture from path.
func loadMetadata(path string) (*tablescan.TableMetadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading metadata fixture %s", path)
	}

	var f fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrapf(err, "decoding metadata fixture %s", path)
	}

	specs := make(map[int]*tablescan.PartitionSpec, len(f.Specs))
	for _, spec := range f.Specs {
		specs[spec.SpecID] = spec
	}

	return tablescan.NewTableMetadata(
		f.Schema,
		specs,
		f.Snapshots,
		f.SnapshotLog,
		f.CurrentSnapshot,
		f.Properties,
	), nil
}
