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
	"sort"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// A ManifestFile references one manifest and the authoritative
// partition-level summary used to prune it without opening the file.
type ManifestFile struct {
	Path            string
	Length          int64
	PartitionSpecID int
	Summary         []PartitionFieldSummary
}

// A Snapshot is an immutable, point-in-time view of a table.
type Snapshot struct {
	SnapshotID  int64
	TimestampMs int64
	Manifests   []ManifestFile
}

// A SnapshotLogEntry records when a snapshot became current.
type SnapshotLogEntry struct {
	TimestampMs int64
	SnapshotID  int64
}

// TableMetadata is the immutable document a scan is planned against:
// the current schema, every partition spec ever used, the snapshot
// log, the current snapshot id, and string properties.
type TableMetadata struct {
	Schema          *Schema
	Specs           map[int]*PartitionSpec
	SnapshotLog     []SnapshotLogEntry
	CurrentSnapshot int64 // 0 means "no current snapshot"
	snapshotsByID   map[int64]*Snapshot
	Properties      map[string]string
}

// NewTableMetadata builds a TableMetadata from its constituent parts.
// snapshots need not be sorted; SnapshotLog should already be in
// ascending timestamp order, but AsOf defensively sorts a local copy
// otherwise.
func NewTableMetadata(
	schema *Schema,
	specs map[int]*PartitionSpec,
	snapshots []*Snapshot,
	snapshotLog []SnapshotLogEntry,
	currentSnapshot int64,
	properties map[string]string,
) *TableMetadata {
	byID := make(map[int64]*Snapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.SnapshotID] = s
	}
	if properties == nil {
		properties = map[string]string{}
	}
	return &TableMetadata{
		Schema:          schema,
		Specs:           specs,
		SnapshotLog:     snapshotLog,
		CurrentSnapshot: currentSnapshot,
		snapshotsByID:   byID,
		Properties:      properties,
	}
}

// Snapshot returns the snapshot with the given id.
func (m *TableMetadata) Snapshot(id int64) (*Snapshot, bool) {
	s, ok := m.snapshotsByID[id]
	return s, ok
}

// CurrentSnapshotOrNil returns the table's current snapshot, or nil if
// the table has none (e.g. a table that was just created).
func (m *TableMetadata) CurrentSnapshotOrNil() *Snapshot {
	if m.CurrentSnapshot == 0 {
		return nil
	}
	s, ok := m.snapshotsByID[m.CurrentSnapshot]
	if !ok {
		return nil
	}
	return s
}

// Spec returns the partition spec with the given id.
func (m *TableMetadata) Spec(id int) (*PartitionSpec, bool) {
	s, ok := m.Specs[id]
	return s, ok
}

// sortedSnapshotLog returns the snapshot log sorted ascending by
// timestamp. If the log is already sorted, the original slice is
// returned unchanged; otherwise a sorted copy is made and a warning is
// logged, since an out-of-order log means some catalog wrote it
// incorrectly.
func (m *TableMetadata) sortedSnapshotLog() []SnapshotLogEntry {
	for i := 1; i < len(m.SnapshotLog); i++ {
		if m.SnapshotLog[i].TimestampMs < m.SnapshotLog[i-1].TimestampMs {
			log.Warn("snapshot log is not sorted ascending by timestamp; sorting defensively")
			cp := make([]SnapshotLogEntry, len(m.SnapshotLog))
			copy(cp, m.SnapshotLog)
			sort.SliceStable(cp, func(a, b int) bool {
				return cp[a].TimestampMs < cp[b].TimestampMs
			})
			return cp
		}
	}
	return m.SnapshotLog
}

// AsOf returns the snapshot id of the latest snapshot log entry whose
// timestamp is <= ts. Ties (equal timestamps) resolve to the last
// matching entry in log order.
func (m *TableMetadata) AsOf(ts int64) (int64, error) {
	entries := m.sortedSnapshotLog()
	var found int64
	var ok bool
	for _, entry := range entries {
		if entry.TimestampMs <= ts {
			found = entry.SnapshotID
			ok = true
		}
	}
	if !ok {
		return 0, invalidArgument("no snapshot as of time %d", ts)
	}
	return found, nil
}

// PropertyString returns a string property, or def if unset.
func (m *TableMetadata) PropertyString(key, def string) string {
	if v, ok := m.Properties[key]; ok {
		return v
	}
	return def
}

// PropertyLong returns an integer property, or def if unset or
// unparseable.
func (m *TableMetadata) PropertyLong(key string, def int64) int64 {
	v, ok := m.Properties[key]
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// PropertyInt returns an integer property, or def if unset or
// unparseable.
func (m *TableMetadata) PropertyInt(key string, def int) int {
	return int(m.PropertyLong(key, int64(def)))
}

// PropertyBool returns a boolean property, or def if unset or
// unparseable.
func (m *TableMetadata) PropertyBool(key string, def bool) bool {
	v, ok := m.Properties[key]
	if !ok {
		return def
	}
	switch v {
	case "true", "TRUE", "True":
		return true
	case "false", "FALSE", "False":
		return false
	default:
		return def
	}
}

// Well-known table property keys.
const (
	PropertySplitSize      = "read.split.target-size"
	PropertySplitLookback  = "read.split.planning-lookback"
	PropertyOpenFileCost   = "read.split.open-file-cost"
	PropertyWorkerPoolFlag = "iceberg.scan-planning.worker-pool-enabled"

	DefaultSplitSize      int64 = 128 * 1024 * 1024
	DefaultSplitLookback        = 10
	DefaultOpenFileCost   int64 = 4 * 1024 * 1024
	DefaultWorkerPoolFlag       = true
)
