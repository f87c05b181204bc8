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

// Package metrics declares the Prometheus instrumentation shared by
// the scan-planning packages.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LatencyBuckets are the histogram buckets used for all duration
// metrics in this module.
var LatencyBuckets = []float64{
	.001, .002, .005, .01, .02, .05, .1, .2, .5, 1, 2, 5, 10, 20, 50,
}

var (
	// PlanDurations tracks how long PlanFiles took to return its lazy
	// task sequence, labeled by planning stage ("plan_files").
	PlanDurations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tablescan_plan_duration_seconds",
		Help:    "the length of time it took to plan a scan",
		Buckets: LatencyBuckets,
	}, []string{"stage"})

	// ManifestsConsidered counts manifests seen by the planner before
	// pruning.
	ManifestsConsidered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tablescan_manifests_considered_total",
		Help: "the number of manifests examined by the manifest evaluator",
	})

	// ManifestsPruned counts manifests skipped because the manifest
	// evaluator returned false.
	ManifestsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tablescan_manifests_pruned_total",
		Help: "the number of manifests skipped by partition-summary pruning",
	})

	// DataFilesEmitted counts FileScanTasks produced by plan_files.
	DataFilesEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tablescan_data_files_emitted_total",
		Help: "the number of data files that survived manifest and row-group pruning",
	})

	// CombinedTasksEmitted counts CombinedScanTasks produced by
	// plan_tasks.
	CombinedTasksEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tablescan_combined_tasks_emitted_total",
		Help: "the number of combined scan tasks produced by bin-packing",
	})

	// ReaderCloseErrors counts errors observed while closing manifest
	// readers.
	ReaderCloseErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tablescan_reader_close_errors_total",
		Help: "the number of errors encountered while closing manifest readers",
	})
)
