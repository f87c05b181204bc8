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

// Command planfiles loads a table-metadata fixture, plans a scan
// against it, and prints the resulting combined scan tasks. It exists
// to exercise the planner end-to-end outside of a test binary.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	tablescan "github.com/cockroachdb/tablescan"
)

func main() {
	cfg := &Config{}
	cfg.Bind(pflag.CommandLine)
	pflag.Parse()

	if err := cfg.Preflight(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if err := run(cfg); err != nil {
		log.WithError(err).Fatal("planning failed")
	}
}

func run(cfg *Config) error {
	scan, err := newScan(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tasks, err := scan.PlanTasks(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := tasks.Close(); err != nil {
			log.WithError(err).Warn("error closing plan")
		}
	}()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	count := 0
	for {
		task, ok, err := tasks.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := enc.Encode(summarize(task)); err != nil {
			return err
		}
		count++
	}
	fmt.Fprintf(os.Stderr, "planned %d combined scan tasks\n", count)
	return nil
}

// splitSummary is the printable shape of one Split: the file path and
// byte range it covers, since Split.Task itself is excluded from JSON
// (it is only meant to travel alongside a task's own serialized form).
type splitSummary struct {
	Path   string `json:"path"`
	Offset int64  `json:"offset"`
	Length int64  `json:"length"`
}

func summarize(task tablescan.CombinedScanTask) []splitSummary {
	out := make([]splitSummary, len(task.Splits))
	for i, split := range task.Splits {
		out[i] = splitSummary{Path: split.Task.File.Path, Offset: split.Offset, Length: split.Length}
	}
	return out
}
