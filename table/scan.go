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

// Package table implements the scan planner: snapshot resolution,
// manifest pruning, parallel manifest expansion, and split generation
// packaged behind an immutable TableScan builder.
package table

import (
	"github.com/pkg/errors"

	tablescan "github.com/cockroachdb/tablescan"
	"github.com/cockroachdb/tablescan/internal/projection"
)

const (
	defaultParallelism = 4
	defaultQueueSize   = 64
)

// A TableScan is an immutable, chainable description of one planned
// read over a table. Every refinement method returns a new value; the
// receiver is never mutated. Call PlanFiles or PlanTasks to execute
// the scan the builder describes.
type TableScan struct {
	meta           *tablescan.TableMetadata
	fileIO         tablescan.FileIO
	manifestReader tablescan.ManifestReader
	listeners      *tablescan.Listeners

	snapshotID     int64
	snapshotPinned bool

	caseSensitive     bool
	selectedColumns   []string
	explicitProjected *tablescan.Schema
	filter            *tablescan.Expr

	parallelism int
	queueSize   int

	evaluators *evaluatorCache
}

// New builds the scan over table's current state, using fileIO to
// open manifest paths and manifestReader to decode them. listeners may
// be nil.
func New(meta *tablescan.TableMetadata, fileIO tablescan.FileIO, manifestReader tablescan.ManifestReader, listeners *tablescan.Listeners) *TableScan {
	if listeners == nil {
		listeners = tablescan.NewListeners()
	}
	return &TableScan{
		meta:           meta,
		fileIO:         fileIO,
		manifestReader: manifestReader,
		listeners:      listeners,
		caseSensitive:  true,
		parallelism:    defaultParallelism,
		queueSize:      defaultQueueSize,
		evaluators:     newEvaluatorCache(),
	}
}

// clone copies every field except the evaluator cache, which starts
// fresh: a new scan's filter, case sensitivity, or snapshot may differ
// from its parent, and a stale evaluator would silently misprune.
func (s *TableScan) clone() *TableScan {
	cp := *s
	cp.evaluators = newEvaluatorCache()
	return &cp
}

// WithParallelism overrides the worker-pool width used for parallel
// manifest expansion. It is not part of the immutable refinement
// chain: it configures execution, not what is planned.
func (s *TableScan) WithParallelism(workers, queueSize int) *TableScan {
	cp := s.clone()
	if workers > 0 {
		cp.parallelism = workers
	}
	if queueSize > 0 {
		cp.queueSize = queueSize
	}
	return cp
}

// UseSnapshot pins the scan to an explicit snapshot id. It fails with
// an InvalidArgumentError if id is unknown or a snapshot is already
// pinned.
func (s *TableScan) UseSnapshot(id int64) (*TableScan, error) {
	if s.snapshotPinned {
		return nil, errors.WithStack(&tablescan.InvalidArgumentError{Msg: "a snapshot is already pinned for this scan"})
	}
	if _, ok := s.meta.Snapshot(id); !ok {
		return nil, errors.WithStack(&tablescan.InvalidArgumentError{Msg: "unknown snapshot id"})
	}
	cp := s.clone()
	cp.snapshotID = id
	cp.snapshotPinned = true
	return cp, nil
}

// AsOfTime pins the scan to the latest snapshot whose timestamp is <=
// tsMs. It fails with an InvalidArgumentError if a snapshot is already
// pinned, or no snapshot log entry qualifies.
func (s *TableScan) AsOfTime(tsMs int64) (*TableScan, error) {
	if s.snapshotPinned {
		return nil, errors.WithStack(&tablescan.InvalidArgumentError{Msg: "a snapshot is already pinned for this scan"})
	}
	id, err := s.meta.AsOf(tsMs)
	if err != nil {
		return nil, err
	}
	cp := s.clone()
	cp.snapshotID = id
	cp.snapshotPinned = true
	return cp, nil
}

// Project overrides the projected schema directly, bypassing Select
// resolution.
func (s *TableScan) Project(schema *tablescan.Schema) *TableScan {
	cp := s.clone()
	cp.explicitProjected = schema
	cp.selectedColumns = nil
	return cp
}

// CaseSensitive sets the case-sensitivity rule used to resolve both
// Select column names and filter column references. The default is
// case-sensitive.
func (s *TableScan) CaseSensitive(v bool) *TableScan {
	cp := s.clone()
	cp.caseSensitive = v
	return cp
}

// Select restricts the projected schema to the named columns, plus
// whatever columns the row filter references. Resolution is deferred
// until PlanFiles, Schema, or PlanTasks, since CaseSensitive may still
// be applied afterward.
func (s *TableScan) Select(columns ...string) *TableScan {
	cp := s.clone()
	cp.selectedColumns = columns
	cp.explicitProjected = nil
	return cp
}

// Filter conjoins expr onto the scan's existing row filter.
func (s *TableScan) Filter(expr *tablescan.Expr) *TableScan {
	cp := s.clone()
	if cp.filter == nil {
		cp.filter = expr
	} else {
		cp.filter = tablescan.And(cp.filter, expr)
	}
	return cp
}

// RawFilter returns the scan's unbound row filter, or AlwaysTrue if
// none was set.
func (s *TableScan) RawFilter() *tablescan.Expr {
	if s.filter == nil {
		return tablescan.AlwaysTrue()
	}
	return s.filter
}

// IsCaseSensitive reports the scan's active case-sensitivity rule.
func (s *TableScan) IsCaseSensitive() bool { return s.caseSensitive }

// Table returns the table metadata this scan was built against.
func (s *TableScan) Table() *tablescan.TableMetadata { return s.meta }

// Schema resolves and returns the scan's projected schema: the union
// of explicitly selected columns and columns referenced by the bound
// row filter, preserving table schema field order.
func (s *TableScan) Schema() (*tablescan.Schema, error) {
	_, fieldIDs, err := tablescan.Bind(s.RawFilter(), s.meta.Schema, s.caseSensitive)
	if err != nil {
		return nil, err
	}
	return s.resolveSchema(fieldIDs)
}

// resolveSchema applies explicitProjected as an override, otherwise
// delegating to the projection resolver with the filter's referenced
// field ids already in hand (the caller has usually just bound the
// filter for some other reason and shouldn't have to do it twice).
func (s *TableScan) resolveSchema(filterFieldIDs tablescan.FieldIDSet) (*tablescan.Schema, error) {
	if s.explicitProjected != nil {
		return s.explicitProjected, nil
	}
	return projection.Resolve(s.meta.Schema, s.selectedColumns, s.caseSensitive, filterFieldIDs)
}

// resolveSnapshot returns the scan's pinned snapshot, the table's
// current snapshot if none was pinned, or nil if the table has no
// current snapshot.
func (s *TableScan) resolveSnapshot() (*tablescan.Snapshot, error) {
	if !s.snapshotPinned {
		return s.meta.CurrentSnapshotOrNil(), nil
	}
	snap, ok := s.meta.Snapshot(s.snapshotID)
	if !ok {
		return nil, errors.WithStack(&tablescan.InternalError{Msg: "pinned snapshot id no longer resolves"})
	}
	return snap, nil
}
