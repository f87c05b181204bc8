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

package binpack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cockroachdb/tablescan/internal/binpack"
)

func identity(i int64) int64 { return i }

func TestPackerFirstFit(t *testing.T) {
	p := binpack.New[int64](10, 2, identity)

	closed, ok := p.Add(4)
	require.False(t, ok)
	require.Nil(t, closed)

	closed, ok = p.Add(5)
	require.False(t, ok)
	require.Nil(t, closed)

	// 4 + 5 + 3 exceeds the target of 10, so this opens a second bin
	// rather than overfilling the first.
	closed, ok = p.Add(3)
	require.False(t, ok)
	require.Nil(t, closed)

	flushed := p.Flush()
	require.Len(t, flushed, 2)
	require.Equal(t, []int64{4, 5}, flushed[0])
	require.Equal(t, []int64{3}, flushed[1])
}

func TestPackerClosesOldestWhenLookbackExhausted(t *testing.T) {
	p := binpack.New[int64](10, 1, identity)

	closed, ok := p.Add(9)
	require.False(t, ok)
	require.Nil(t, closed)

	// The only open bin can't take another 9 without exceeding target,
	// and the lookback window (1) is already full, so it closes.
	closed, ok = p.Add(9)
	require.True(t, ok)
	require.Equal(t, []int64{9}, closed)

	flushed := p.Flush()
	require.Len(t, flushed, 1)
	require.Equal(t, []int64{9}, flushed[0])
}

func TestPackerLookbackClampedToOne(t *testing.T) {
	p := binpack.New[int64](10, -5, identity)

	_, ok := p.Add(9)
	require.False(t, ok)
	closed, ok := p.Add(9)
	require.True(t, ok)
	require.Equal(t, []int64{9}, closed)
}

func TestPackerFlushResetsState(t *testing.T) {
	p := binpack.New[int64](10, 2, identity)
	p.Add(4)
	require.Len(t, p.Flush(), 1)
	require.Empty(t, p.Flush())
}
