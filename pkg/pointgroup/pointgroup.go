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

// Package pointgroup classifies a set of rotations into one of the 32
// crystallographic point groups by counting, for each rotation, which of
// the ten (det, trace) rotation types it is, then matching the resulting
// census against a fixed table.
//
// Grounded on original_source/src/pointgroup.c.
package pointgroup

import (
	"fmt"

	"github.com/latticeforge/gospg/pkg/latmath"
)

// Holohedry is one of the seven crystal systems' maximal point-symmetry
// classes.
type Holohedry int

// Holohedry values, matching original_source/src/pointgroup.h ordering.
const (
	HolohedryNone Holohedry = iota
	Triclinic
	Monoclinic
	Orthorhombic
	Tetragonal
	Trigonal
	Hexagonal
	Cubic
)

// Laue is one of the eleven Laue classes.
type Laue int

// Laue class values.
const (
	LaueNone Laue = iota
	Laue1
	Laue2M
	LaueMMM
	Laue4M
	Laue4MMM
	Laue3
	Laue3M
	Laue6M
	Laue6MMM
	LaueM3
	LaueM3M
)

// Type describes one of the 32 point groups: its Hermann-Mauguin symbol,
// Schoenflies symbol, holohedry and Laue class.
type Type struct {
	Number       int
	Symbol       string
	Schoenflies  string
	Holohedry    Holohedry
	Laue         Laue
	rotationCensus
}

// rotationCensus counts, in order, the number of -6, -4, -3, -2, -1, 1, 2,
// 3, 4, 6 axes (spec.md's ten (det, trace) rotation types).
type rotationCensus [10]int

// table enumerates the 33 entries of original_source/src/pointgroup.c's
// pointgroup_data: index 0 is the "no point group" sentinel.
var table = []Type{
	{0, "", "", HolohedryNone, LaueNone, rotationCensus{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	{1, "1", "C1", Triclinic, Laue1, rotationCensus{0, 0, 0, 0, 0, 1, 0, 0, 0, 0}},
	{2, "-1", "Ci", Triclinic, Laue1, rotationCensus{0, 0, 0, 0, 1, 1, 0, 0, 0, 0}},
	{3, "2", "C2", Monoclinic, Laue2M, rotationCensus{0, 0, 0, 0, 0, 1, 1, 0, 0, 0}},
	{4, "m", "Cs", Monoclinic, Laue2M, rotationCensus{0, 0, 0, 1, 0, 1, 0, 0, 0, 0}},
	{5, "2/m", "C2h", Monoclinic, Laue2M, rotationCensus{0, 0, 0, 1, 1, 1, 1, 0, 0, 0}},
	{6, "222", "D2", Orthorhombic, LaueMMM, rotationCensus{0, 0, 0, 0, 0, 1, 3, 0, 0, 0}},
	{7, "mm2", "C2v", Orthorhombic, LaueMMM, rotationCensus{0, 0, 0, 2, 0, 1, 1, 0, 0, 0}},
	{8, "mmm", "D2h", Orthorhombic, LaueMMM, rotationCensus{0, 0, 0, 3, 1, 1, 3, 0, 0, 0}},
	{9, "4", "C4", Tetragonal, Laue4M, rotationCensus{0, 0, 0, 0, 0, 1, 1, 0, 2, 0}},
	{10, "-4", "S4", Tetragonal, Laue4M, rotationCensus{0, 2, 0, 0, 0, 1, 1, 0, 0, 0}},
	{11, "4/m", "C4h", Tetragonal, Laue4M, rotationCensus{0, 2, 0, 1, 1, 1, 1, 0, 2, 0}},
	{12, "422", "D4", Tetragonal, Laue4MMM, rotationCensus{0, 0, 0, 0, 0, 1, 5, 0, 2, 0}},
	{13, "4mm", "C4v", Tetragonal, Laue4MMM, rotationCensus{0, 0, 0, 4, 0, 1, 1, 0, 2, 0}},
	{14, "-42m", "D2d", Tetragonal, Laue4MMM, rotationCensus{0, 2, 0, 2, 0, 1, 3, 0, 0, 0}},
	{15, "4/mmm", "D4h", Tetragonal, Laue4MMM, rotationCensus{0, 2, 0, 5, 1, 1, 5, 0, 2, 0}},
	{16, "3", "C3", Trigonal, Laue3, rotationCensus{0, 0, 0, 0, 0, 1, 0, 2, 0, 0}},
	{17, "-3", "C3i", Trigonal, Laue3, rotationCensus{0, 0, 2, 0, 1, 1, 0, 2, 0, 0}},
	{18, "32", "D3", Trigonal, Laue3M, rotationCensus{0, 0, 0, 0, 0, 1, 3, 2, 0, 0}},
	{19, "3m", "C3v", Trigonal, Laue3M, rotationCensus{0, 0, 0, 3, 0, 1, 0, 2, 0, 0}},
	{20, "-3m", "D3d", Trigonal, Laue3M, rotationCensus{0, 0, 2, 3, 1, 1, 3, 2, 0, 0}},
	{21, "6", "C6", Hexagonal, Laue6M, rotationCensus{0, 0, 0, 0, 0, 1, 1, 2, 0, 2}},
	{22, "-6", "C3h", Hexagonal, Laue6M, rotationCensus{2, 0, 0, 1, 0, 1, 0, 2, 0, 0}},
	{23, "6/m", "C6h", Hexagonal, Laue6M, rotationCensus{2, 0, 2, 1, 1, 1, 1, 2, 0, 2}},
	{24, "622", "D6", Hexagonal, Laue6MMM, rotationCensus{0, 0, 0, 0, 0, 1, 7, 2, 0, 2}},
	{25, "6mm", "C6v", Hexagonal, Laue6MMM, rotationCensus{0, 0, 0, 6, 0, 1, 1, 2, 0, 2}},
	{26, "-6m2", "D3h", Hexagonal, Laue6MMM, rotationCensus{2, 0, 0, 4, 0, 1, 3, 2, 0, 0}},
	{27, "6/mmm", "D6h", Hexagonal, Laue6MMM, rotationCensus{2, 0, 2, 7, 1, 1, 7, 2, 0, 2}},
	{28, "23", "T", Cubic, LaueM3, rotationCensus{0, 0, 0, 0, 0, 1, 3, 8, 0, 0}},
	{29, "m-3", "Th", Cubic, LaueM3, rotationCensus{0, 0, 8, 3, 1, 1, 3, 8, 0, 0}},
	{30, "432", "O", Cubic, LaueM3M, rotationCensus{0, 0, 0, 0, 0, 1, 9, 8, 6, 0}},
	{31, "-43m", "Td", Cubic, LaueM3M, rotationCensus{0, 6, 0, 6, 0, 1, 3, 8, 0, 0}},
	{32, "m-3m", "Oh", Cubic, LaueM3M, rotationCensus{0, 6, 8, 9, 1, 1, 9, 8, 6, 0}},
}

// rotationType classifies a single rotation by its (determinant, trace)
// pair into one of the ten census slots, or -1 if the rotation is not a
// valid crystallographic rotation (determinant ±1, trace in the
// admissible range for that determinant).
func rotationType(r latmath.IntMat3) int {
	det := r.Det()
	trace := r[0][0] + r[1][1] + r[2][2]

	if det == -1 {
		switch trace {
		case -2:
			return 0 // -6
		case -1:
			return 1 // -4
		case 0:
			return 2 // -3
		case 1:
			return 3 // -2
		case -3:
			return 4 // -1
		}

		return -1
	}

	if det == 1 {
		switch trace {
		case 3:
			return 5 // 1
		case -1:
			return 6 // 2
		case 0:
			return 7 // 3
		case 1:
			return 8 // 4
		case 2:
			return 9 // 6
		}

		return -1
	}

	return -1
}

// Classify builds the rotation census for rotations and matches it against
// the fixed 32-point-group table, returning the corresponding Type.
func Classify(rotations []latmath.IntMat3) (Type, error) {
	var census rotationCensus

	for _, r := range rotations {
		t := rotationType(r)
		if t == -1 {
			return Type{}, fmt.Errorf("pointgroup: rotation is not a crystallographic point-symmetry operation")
		}

		census[t]++
	}

	for _, pg := range table[1:] {
		if pg.rotationCensus == census {
			return pg, nil
		}
	}

	return Type{}, fmt.Errorf("pointgroup: no point group matches the given rotation census %v", census)
}

// ByNumber returns the point-group Type at the given 1..32 table index.
func ByNumber(number int) (Type, error) {
	if number < 1 || number >= len(table) {
		return Type{}, fmt.Errorf("pointgroup: number %d out of range", number)
	}

	return table[number], nil
}
