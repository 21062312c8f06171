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

// Package spacegroup matches a primitive symmetry operation set against the
// Hall-symbol generator database, determining the Hall number and the
// origin shift that brings the input set into coincidence with the
// database entry's conventional setting.
//
// Grounded on original_source/src/spacegroup.c's iterate-candidates /
// get_origin_shift structure.
package spacegroup

import (
	"fmt"

	"github.com/latticeforge/gospg/pkg/halldb"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/pointgroup"
	"github.com/latticeforge/gospg/pkg/spgerr"
	"github.com/latticeforge/gospg/pkg/symmop"
)

// Result is the matched space-group identification (spec.md §6's output
// contract, restricted to the fields this package determines).
type Result struct {
	Entry       halldb.Entry
	OriginShift latmath.Vec3
}

// originShiftCandidates is the fixed grid of simple fractional shifts tried
// when solving for the origin shift between a found operation set and a
// database entry's conventional setting. Standard space-group origins sit
// at these fractions of a lattice vector (see International Tables Vol. A,
// origin descriptions); trying the grid exhaustively avoids needing to
// solve the (I-R)p = Δt system symbolically for every rotation type.
var originShiftCandidates = []float64{
	0, 1.0 / 8, 1.0 / 6, 1.0 / 4, 1.0 / 3, 3.0 / 8,
	1.0 / 2, 5.0 / 8, 2.0 / 3, 3.0 / 4, 5.0 / 6, 7.0 / 8,
}

// Match searches db for the Hall entry whose expanded operation set
// coincides with ops under some origin shift, restricted to entries whose
// point-group number matches pg and whose centering multiplicity (the
// number of lattice points per conventional cell) matches multiplicity —
// the centering "implied by |det T|" upstream of this package.
//
// If hallNumber is nonzero, only that entry is tried (the caller forced a
// specific setting); 0 means search every matching entry in db, in
// db.All() order, accepting the first that matches.
func Match(db halldb.DB, ops *symmop.Set, pg pointgroup.Type, multiplicity int, tol float64, hallNumber int) (Result, error) {
	var candidates []halldb.Entry

	if hallNumber != 0 {
		e, ok := db.ByHallNumber(hallNumber)
		if !ok {
			return Result{}, fmt.Errorf("spacegroup: %w: Hall number %d not found", spgerr.ErrSpacegroupSearchFailed, hallNumber)
		}

		candidates = []halldb.Entry{e}
	} else {
		candidates = db.All()
	}

	for _, e := range candidates {
		if e.PointGroupNumber != pg.Number {
			continue
		}

		if len(e.Centering.Translations())+1 != multiplicity {
			continue
		}

		candidateSet := e.Expand(tol)
		if candidateSet.Len() != ops.Len() {
			continue
		}

		if shift, ok := findOriginShift(ops, candidateSet, tol); ok {
			return Result{Entry: e, OriginShift: shift}, nil
		}
	}

	return Result{}, spgerr.ErrSpacegroupSearchFailed
}

// findOriginShift searches originShiftCandidates for a translation p such
// that re-origining every operation in ops by p (conjugating by (I, p))
// reproduces candidate exactly.
func findOriginShift(ops, candidate *symmop.Set, tol float64) (latmath.Vec3, bool) {
	if ops.Len() != candidate.Len() {
		return latmath.Vec3{}, false
	}

	for _, x := range originShiftCandidates {
		for _, y := range originShiftCandidates {
			for _, z := range originShiftCandidates {
				p := latmath.Vec3{x, y, z}
				if matchesUnderShift(ops, candidate, p, tol) {
					return p, true
				}
			}
		}
	}

	return latmath.Vec3{}, false
}

// matchesUnderShift reports whether re-origining every operation in ops by
// p lands it in candidate. Re-origining (R, t) by a shift of the origin to
// p gives (R, t + R·p - p): an operation acting on coordinates measured
// from the new origin.
func matchesUnderShift(ops, candidate *symmop.Set, p latmath.Vec3, tol float64) bool {
	for _, op := range ops.Ops {
		shiftedT := latmath.ReduceFrac(op.T.Add(op.R.MulVec(p)).Sub(p), -1)
		shifted := symmop.Operation{R: op.R, T: shiftedT}

		if !candidate.Contains(shifted, tol) {
			return false
		}
	}

	return true
}

// Multiplicity returns the centering multiplicity implied by a basis-change
// determinant: the number of lattice points per conventional cell.
func Multiplicity(detT float64) int {
	r := detT
	if r < 0 {
		r = -r
	}

	return int(r + 0.5)
}
