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

package table

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"

	tablescan "github.com/cockroachdb/tablescan"
	"github.com/cockroachdb/tablescan/internal/metrics"
	"github.com/cockroachdb/tablescan/internal/parallel"
	"github.com/cockroachdb/tablescan/internal/util/stopper"
)

// PlanFiles resolves this scan's snapshot, prunes its manifest list,
// and returns a closeable lazy sequence of the surviving data files as
// FileScanTasks. If the table has no current snapshot (and none was
// pinned), it returns an already-empty iterable and opens nothing.
func (s *TableScan) PlanFiles(ctx context.Context) (*FileTaskIterable, error) {
	timer := prometheus.NewTimer(metrics.PlanDurations.WithLabelValues("plan_files"))
	defer timer.ObserveDuration()

	snap, err := s.resolveSnapshot()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return emptyFileTaskIterable(), nil
	}

	boundFilter, fieldIDs, err := tablescan.Bind(s.RawFilter(), s.meta.Schema, s.caseSensitive)
	if err != nil {
		return nil, err
	}
	schema, err := s.resolveSchema(fieldIDs)
	if err != nil {
		return nil, err
	}

	s.listeners.NotifyAll(tablescan.ScanEvent{
		ScanID:     uuid.New(),
		SnapshotID: snap.SnapshotID,
		Filter:     boundFilter,
		Schema:     schema,
	})

	survivors, err := s.pruneManifests(snap, boundFilter)
	if err != nil {
		return nil, err
	}

	cl := &closeList{}
	workerPoolEnabled := s.meta.PropertyBool(tablescan.PropertyWorkerPoolFlag, tablescan.DefaultWorkerPoolFlag)

	if workerPoolEnabled && len(survivors) > 1 {
		return s.planFilesParallel(ctx, survivors, boundFilter, schema, cl)
	}
	return s.planFilesSequential(ctx, survivors, boundFilter, schema, cl)
}

// pruneManifests filters snap's manifest list through the per-spec
// manifest evaluator, memoized on s.evaluators for this scan.
func (s *TableScan) pruneManifests(snap *tablescan.Snapshot, boundFilter *tablescan.Expr) ([]tablescan.ManifestFile, error) {
	survivors := make([]tablescan.ManifestFile, 0, len(snap.Manifests))
	for _, mf := range snap.Manifests {
		metrics.ManifestsConsidered.Inc()
		spec, ok := s.meta.Spec(mf.PartitionSpecID)
		if !ok {
			return nil, errors.WithStack(&tablescan.InternalError{Msg: "manifest references an unknown partition spec id"})
		}
		evaluator := s.evaluators.getOrCreate(spec, boundFilter)
		if !evaluator.MightMatch(mf.Summary) {
			metrics.ManifestsPruned.Inc()
			continue
		}
		survivors = append(survivors, mf)
	}
	return survivors, nil
}

// openManifest opens mf's input file, hands it to the manifest
// reader, and registers the resulting iterator on cl.
func (s *TableScan) openManifest(ctx context.Context, mf tablescan.ManifestFile, boundFilter *tablescan.Expr, schema *tablescan.Schema, cl *closeList) (*manifestSource, error) {
	input, err := s.fileIO.NewInputFile(ctx, mf.Path)
	if err != nil {
		return nil, err
	}
	iter, err := s.manifestReader.Read(ctx, mf, input)
	if err != nil {
		_ = input.Close()
		return nil, err
	}
	cl.add(iter)

	spec, _ := s.meta.Spec(mf.PartitionSpecID)
	return &manifestSource{iter: iter, spec: spec, schema: schema, filter: boundFilter}, nil
}

func (s *TableScan) planFilesSequential(ctx context.Context, survivors []tablescan.ManifestFile, boundFilter *tablescan.Expr, schema *tablescan.Schema, cl *closeList) (*FileTaskIterable, error) {
	sources := make([]*manifestSource, 0, len(survivors))
	for _, mf := range survivors {
		src, err := s.openManifest(ctx, mf, boundFilter, schema, cl)
		if err != nil {
			_ = cl.CloseAll()
			return nil, err
		}
		sources = append(sources, src)
	}

	idx := 0
	next := func(ctx context.Context) (tablescan.FileScanTask, bool, error) {
		for idx < len(sources) {
			t, ok, err := sources[idx].Next(ctx)
			if err != nil {
				return tablescan.FileScanTask{}, false, err
			}
			if ok {
				return t, true, nil
			}
			idx++
		}
		return tablescan.FileScanTask{}, false, nil
	}
	return &FileTaskIterable{closeList: cl, next: next}, nil
}

// planFilesParallel opens every surviving manifest concurrently,
// bounded by the scan's parallelism, then fans out draining them
// through a parallel.Fan. Opening is itself fallible I/O, so it uses
// the same cooperative-shutdown idiom as the draining phase: stop
// requesting new opens on the first error, wait for in-flight opens to
// finish, and surface the first error.
func (s *TableScan) planFilesParallel(ctx context.Context, survivors []tablescan.ManifestFile, boundFilter *tablescan.Expr, schema *tablescan.Schema, cl *closeList) (*FileTaskIterable, error) {
	sc := stopper.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(s.parallelism))
	opened := make([]*manifestSource, len(survivors))

	for i, mf := range survivors {
		if sc.Err() != nil {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		i, mf := i, mf
		sc.Go(func() error {
			defer sem.Release(1)
			src, err := s.openManifest(ctx, mf, boundFilter, schema, cl)
			if err != nil {
				return err
			}
			opened[i] = src
			return nil
		})
	}
	sc.Stop(0)
	if err := sc.Err(); err != nil {
		_ = cl.CloseAll()
		return nil, err
	}

	parallelSources := make([]parallel.Source[tablescan.FileScanTask], 0, len(opened))
	for _, src := range opened {
		if src != nil {
			parallelSources = append(parallelSources, src)
		}
	}

	fan := parallel.New[tablescan.FileScanTask](s.parallelism, s.queueSize)
	result := fan.Run(ctx, parallelSources)
	return &FileTaskIterable{closeList: cl, next: result.Next, closeFn: result.Close}, nil
}
