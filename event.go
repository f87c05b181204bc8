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

import "github.com/google/uuid"

// A ScanEvent is published once per plan_files call, right after the
// scan's snapshot has been resolved.
type ScanEvent struct {
	ScanID     uuid.UUID
	SnapshotID int64
	Filter     *Expr
	Schema     *Schema
}

// A Listener observes ScanEvents. Implementations must not block for
// long and must never panic: the planner treats listener notification
// as fire-and-forget and recovers any panic so a misbehaving listener
// cannot abort planning.
type Listener interface {
	OnScan(ScanEvent)
}

// Listeners is a registry of Listener values notified by the planner.
type Listeners struct {
	listeners []Listener
}

// NewListeners builds a Listeners registry from zero or more Listener
// values.
func NewListeners(ls ...Listener) *Listeners {
	return &Listeners{listeners: ls}
}

// Add registers an additional listener.
func (l *Listeners) Add(listener Listener) {
	l.listeners = append(l.listeners, listener)
}

// NotifyAll fire-and-forget notifies every registered listener. A
// panicking listener is recovered and does not affect its siblings or
// the caller.
func (l *Listeners) NotifyAll(event ScanEvent) {
	for _, listener := range l.listeners {
		notifyOne(listener, event)
	}
}

func notifyOne(listener Listener, event ScanEvent) {
	defer func() { _ = recover() }()
	listener.OnScan(event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(ScanEvent)

// OnScan implements Listener.
func (f ListenerFunc) OnScan(event ScanEvent) { f(event) }
