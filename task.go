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

// ColumnStats carries the per-column statistics recorded for one data
// file: how many values, how many nulls, and the inclusive bounds
// observed. The scan planner uses them to prune individual data-file
// entries after a manifest has been decoded.
type ColumnStats struct {
	FieldID       int
	ValueCount    int64
	NullCount     int64
	HasLowerBound bool
	LowerBound    Literal
	HasUpperBound bool
	UpperBound    Literal
}

// A ManifestEntry describes one data file listed by a manifest.
type ManifestEntry struct {
	Path        string
	Format      string
	Length      int64
	RecordCount int64
	// Partition is keyed by the *source* schema field id of each
	// partition column, which is how Residual looks values up.
	Partition map[int]Literal
	Stats     map[int]ColumnStats
}

// A FileScanTask binds one data file entry to the serialized spec and
// schema it was written under, plus the residual predicate a reader
// must still apply per row. It is self-contained: nothing about the
// originating planner is required to interpret it.
type FileScanTask struct {
	File     ManifestEntry
	Spec     *PartitionSpec
	Schema   *Schema
	Residual *Expr
}

// Split describes a byte sub-range of the task's file.
type Split struct {
	Task   *FileScanTask `json:"-"`
	Offset int64
	Length int64
}

// Weight is the unit bin-packing works with: a file's actual byte
// length floored by openFileCost, so that many tiny files don't each
// get their own combined task.
func (s Split) Weight(openFileCost int64) int64 {
	if s.Length > openFileCost {
		return s.Length
	}
	return openFileCost
}

// Split breaks t's file into one or more byte-range Splits whose union
// covers the whole file. A file of length <= 0 (including exactly 0)
// still produces exactly one, zero-length split: size alone must never
// cause a file to vanish from the plan.
func (t *FileScanTask) Split(targetSize int64) []Split {
	if targetSize <= 0 {
		targetSize = DefaultSplitSize
	}
	length := t.File.Length
	if length <= 0 {
		return []Split{{Task: t, Offset: 0, Length: 0}}
	}

	splits := make([]Split, 0, length/targetSize+1)
	for offset := int64(0); offset < length; offset += targetSize {
		remaining := length - offset
		l := targetSize
		if remaining < l {
			l = remaining
		}
		splits = append(splits, Split{Task: t, Offset: offset, Length: l})
	}
	return splits
}

// A CombinedScanTask is an ordered group of splits packed to
// approximate a target weight.
type CombinedScanTask struct {
	Splits []Split
}

// Weight sums the packed weight of every split in the task.
func (c CombinedScanTask) Weight(openFileCost int64) int64 {
	var total int64
	for _, s := range c.Splits {
		total += s.Weight(openFileCost)
	}
	return total
}
