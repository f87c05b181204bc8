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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Config contains the user-visible configuration for the planfiles
// demo command.
type Config struct {
	MetadataPath  string
	SnapshotID    int64
	AsOfTimeMs    int64
	SelectColumns string
	CaseSensitive bool
	WorkerPool    bool
}

// Bind registers flags.
func (c *Config) Bind(flags *pflag.FlagSet) {
	flags.StringVar(
		&c.MetadataPath,
		"metadata",
		"",
		"path to a JSON table-metadata fixture")
	flags.Int64Var(
		&c.SnapshotID,
		"snapshotID",
		0,
		"pin the scan to this snapshot id; 0 uses the table's current snapshot")
	flags.Int64Var(
		&c.AsOfTimeMs,
		"asOf",
		0,
		"pin the scan to the latest snapshot at or before this unix-millis timestamp")
	flags.StringVar(
		&c.SelectColumns,
		"select",
		"",
		"comma-separated column names to project; empty selects every column")
	flags.BoolVar(
		&c.CaseSensitive,
		"caseSensitive",
		true,
		"resolve column names case-sensitively")
	flags.BoolVar(
		&c.WorkerPool,
		"workerPool",
		true,
		"plan manifests in parallel across a bounded worker pool")
}

// Preflight validates the configuration.
func (c *Config) Preflight() error {
	if c.MetadataPath == "" {
		return errors.New("metadata path must be set")
	}
	if c.SnapshotID != 0 && c.AsOfTimeMs != 0 {
		return errors.New("snapshotID and asOf are mutually exclusive")
	}
	return nil
}

// Columns parses SelectColumns into a slice, or nil if unset.
func (c *Config) Columns() []string {
	if strings.TrimSpace(c.SelectColumns) == "" {
		return nil
	}
	parts := strings.Split(c.SelectColumns, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
