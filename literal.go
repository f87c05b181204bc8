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
	"encoding/json"
	"fmt"
)

// A Kind identifies the runtime representation of a Literal.
type Kind int

// The supported literal kinds. Unset is the zero value and marks a
// missing bound (e.g. a manifest partition summary field that never
// observed a lower bound because every value was null).
const (
	Unset Kind = iota
	Bool
	Int64
	Float64
	String
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return "unset"
	}
}

// A Literal is a typed constant value used as the operand of a
// comparison predicate, or as a partition summary bound. Literals
// compare by Kind; comparing literals of different kinds panics, since
// that indicates a schema/type mismatch the binder should have caught.
type Literal struct {
	Kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// BoolValue constructs a boolean Literal.
func BoolValue(v bool) Literal { return Literal{Kind: Bool, b: v} }

// IntValue constructs an integer Literal.
func IntValue(v int64) Literal { return Literal{Kind: Int64, i: v} }

// FloatValue constructs a floating point Literal.
func FloatValue(v float64) Literal { return Literal{Kind: Float64, f: v} }

// StringValue constructs a string Literal.
func StringValue(v string) Literal { return Literal{Kind: String, s: v} }

// Bool returns the boolean value of a Bool literal.
func (l Literal) Bool() bool { return l.b }

// Int returns the integer value of an Int64 literal.
func (l Literal) Int() int64 { return l.i }

// Float returns the floating point value of a Float64 literal.
func (l Literal) Float() float64 { return l.f }

// String returns the string value of a String literal, and also
// implements fmt.Stringer for diagnostics.
func (l Literal) String() string {
	switch l.Kind {
	case Bool:
		return fmt.Sprintf("%v", l.b)
	case Int64:
		return fmt.Sprintf("%d", l.i)
	case Float64:
		return fmt.Sprintf("%g", l.f)
	case String:
		return l.s
	default:
		return "<unset>"
	}
}

// Compare returns -1, 0, or 1 depending on whether l is less than,
// equal to, or greater than other. Both literals must share a Kind.
func (l Literal) Compare(other Literal) int {
	if l.Kind != other.Kind {
		panic(fmt.Sprintf("cannot compare literal of kind %s with kind %s", l.Kind, other.Kind))
	}
	switch l.Kind {
	case Bool:
		if l.b == other.b {
			return 0
		}
		if !l.b {
			return -1
		}
		return 1
	case Int64:
		switch {
		case l.i < other.i:
			return -1
		case l.i > other.i:
			return 1
		default:
			return 0
		}
	case Float64:
		switch {
		case l.f < other.f:
			return -1
		case l.f > other.f:
			return 1
		default:
			return 0
		}
	case String:
		switch {
		case l.s < other.s:
			return -1
		case l.s > other.s:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// wireLiteral is the canonical JSON representation of a Literal: one
// self-describing kind tag plus a single value field, so that a
// serialized FileScanTask round-trips to a structurally equal value
// regardless of which process decodes it.
type wireLiteral struct {
	Kind  string `json:"kind"`
	Bool  bool   `json:"bool,omitempty"`
	Int   int64  `json:"int,omitempty"`
	Float float64 `json:"float,omitempty"`
	Str   string `json:"str,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (l Literal) MarshalJSON() ([]byte, error) {
	w := wireLiteral{Kind: l.Kind.String()}
	switch l.Kind {
	case Bool:
		w.Bool = l.b
	case Int64:
		w.Int = l.i
	case Float64:
		w.Float = l.f
	case String:
		w.Str = l.s
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Literal) UnmarshalJSON(data []byte) error {
	var w wireLiteral
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "bool":
		*l = BoolValue(w.Bool)
	case "int64":
		*l = IntValue(w.Int)
	case "float64":
		*l = FloatValue(w.Float)
	case "string":
		*l = StringValue(w.Str)
	default:
		*l = Literal{}
	}
	return nil
}
