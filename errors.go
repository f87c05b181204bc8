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

import "github.com/pkg/errors"

// InvalidArgumentError is returned by TableScan builder methods for
// caller mistakes that can be detected immediately: an unknown
// snapshot id, a pin applied twice, or an as-of time with no
// qualifying snapshot. Unknown or ambiguous column names are reported
// as ValidationError instead.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string { return e.Msg }

func invalidArgument(format string, args ...any) error {
	return errors.WithStack(&InvalidArgumentError{Msg: errors.Errorf(format, args...).Error()})
}

// IsInvalidArgument reports whether err (or its cause) is an
// InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}

// ValidationError is returned when the row filter is bound against the
// table schema and references a name that does not exist, or that is
// ambiguous under the active case-sensitivity rule.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationError(format string, args ...any) error {
	return errors.WithStack(&ValidationError{Msg: errors.Errorf(format, args...).Error()})
}

// IsValidation reports whether err (or its cause) is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// InternalError marks an invariant violation: something the planner
// itself should never produce, such as a manifest that references an
// unknown partition spec id, or a pinned snapshot id that no longer
// resolves. These are not meant to be recovered from.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal: " + e.Msg }

func internalError(format string, args ...any) error {
	return errors.WithStack(&InternalError{Msg: errors.Errorf(format, args...).Error()})
}
