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

// Package wyckoffdb is the external collaborator that owns, per Hall
// number, the ordered table of Wyckoff positions: a reference (rotation,
// translation, multiplicity) record per letter, from the top of the
// conventional table ('a') downwards.
//
// As with halldb, the full 530-entry table is explicitly out of scope; this
// package defines the lookup contract pkg/wyckoff consumes and ships
// representative entries for Hall numbers 1, 2, 525 and 529 only; the other
// Hall numbers halldb carries have no Wyckoff table here.
//
// Grounded on original_source/src/site_symmetry.c's ssmdb_get_wyckoff_indices
// / ssmdb_get_coordinate access pattern.
package wyckoffdb

import "github.com/latticeforge/gospg/pkg/latmath"

// Position is a single Wyckoff-letter record: its reference operation and
// the orbit multiplicity it stands for.
type Position struct {
	Letter       byte // 'a', 'b', 'c', ...
	Rot          latmath.IntMat3
	Trans        latmath.Vec3
	Multiplicity int
}

// DB is the read-only lookup contract pkg/wyckoff consumes.
type DB interface {
	// Positions returns the Wyckoff table for hallNumber, ordered from
	// the highest site symmetry ('a') downwards, or nil if hallNumber is
	// not covered.
	Positions(hallNumber int) []Position
}

type staticDB struct {
	tables map[int][]Position
}

func (d *staticDB) Positions(hallNumber int) []Position {
	return append([]Position(nil), d.tables[hallNumber]...)
}

func identity() latmath.IntMat3 { return latmath.IdentityInt3 }

// Default is the process-wide representative Wyckoff table, covering Hall
// numbers 1, 2, 525 and 529.
var Default DB = &staticDB{tables: map[int][]Position{
	1: { // P1: a single general position.
		{Letter: 'a', Rot: identity(), Trans: latmath.Vec3{}, Multiplicity: 1},
	},
	2: { // P-1: one special position (inversion center) plus the general one.
		{Letter: 'a', Rot: identity(), Trans: latmath.Vec3{}, Multiplicity: 1},
		{Letter: 'b', Rot: identity(), Trans: latmath.Vec3{}, Multiplicity: 2},
	},
	529: { // Im-3m: the 2a body-centering-related site plus the general 96h.
		{Letter: 'a', Rot: identity(), Trans: latmath.Vec3{}, Multiplicity: 2},
		{Letter: 'b', Rot: identity(), Trans: latmath.Vec3{0.5, 0.5, 0.5}, Multiplicity: 2},
		{Letter: 'h', Rot: identity(), Trans: latmath.Vec3{}, Multiplicity: 96},
	},
	525: {
		{Letter: 'a', Rot: identity(), Trans: latmath.Vec3{}, Multiplicity: 4},
		{Letter: 'b', Rot: identity(), Trans: latmath.Vec3{0.5, 0.5, 0.5}, Multiplicity: 4},
		{Letter: 'i', Rot: identity(), Trans: latmath.Vec3{}, Multiplicity: 192},
	},
}}

// Positions is a convenience wrapper over Default.
func Positions(hallNumber int) []Position { return Default.Positions(hallNumber) }
