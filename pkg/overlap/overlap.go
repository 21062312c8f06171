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

// Package overlap answers the one question the rest of the pipeline asks
// over and over: does applying (R, t) to a cell map every atom onto an atom
// of equal species within tolerance? (spec.md §4.3)
package overlap

import (
	"sort"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/latticeforge/gospg/pkg/cell"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/symmop"
)

// probeCount is the number of sorted atoms the cheap filter inspects before
// giving up on a candidate operation, matching original_source/src/symmetry.c.
const probeCount = 4

// Checker builds, once per Cell, an ordering of atoms by (species,
// distance-to-nearest-lattice-point) that makes every subsequent overlap
// test O(N) after the one-time O(N log N) sort when sort keys are distinct;
// tied keys add a forward search within the walk.
type Checker struct {
	c     *cell.Cell
	order []int // indices into c.Positions/c.Types, sorted
	keys  []float64
}

// New builds a Checker over c.
func New(c *cell.Cell) *Checker {
	n := c.Size()
	chk := &Checker{c: c, order: make([]int, n), keys: make([]float64, n)}

	for i := 0; i < n; i++ {
		chk.order[i] = i
		chk.keys[i] = sortKey(c.Positions[i])
	}

	sort.SliceStable(chk.order, func(i, j int) bool {
		a, b := chk.order[i], chk.order[j]
		if c.Types[a] != c.Types[b] {
			return c.Types[a] < c.Types[b]
		}

		return chk.keys[a] < chk.keys[b]
	})

	return chk
}

// sortKey is the squared Cartesian norm of the fractional coordinate after
// subtracting its nearest-integer vector.
func sortKey(frac latmath.Vec3) float64 {
	return latmath.NearestLatticePoint(frac).SqNorm()
}

// CheckPossibleOverlap is the cheap filter: for the first few sorted atoms,
// apply (R, t), brute-force search for a same-species match within
// tolerance, and return false on the first miss.
func (chk *Checker) CheckPossibleOverlap(op symmop.Operation, tol float64) bool {
	n := len(chk.order)
	probes := probeCount

	if probes > n {
		probes = n
	}

	for i := 0; i < probes; i++ {
		idx := chk.order[i]
		rotated := op.Apply(chk.c.Positions[idx])

		if !chk.hasMatch(rotated, chk.c.Types[idx], tol, cell.AperiodicNone) {
			return false
		}
	}

	return true
}

// CheckTotalOverlap rotates and translates all atoms, sorts the rotated
// positions by the same key, then walks original and rotated arrays in
// lockstep, returning true iff every original atom finds a same-species
// rotated counterpart within tolerance.  Where the paired rotated entry does
// not match (as happens when sort keys tie), the walk searches the remaining
// unpaired rotated entries and swaps the match into place.  Under isIdentity, R=I is taken for
// granted and the rotation step is skipped.
func (chk *Checker) CheckTotalOverlap(op symmop.Operation, tol float64, isIdentity bool) bool {
	return chk.checkTotalOverlap(op, tol, isIdentity, chk.c.AperiodicAxis)
}

// CheckLayerTotalOverlap is CheckTotalOverlap but reduces mod 1 only on the
// two periodic axes, leaving the aperiodic axis unreduced.
func (chk *Checker) CheckLayerTotalOverlap(op symmop.Operation, tol float64, isIdentity bool) bool {
	return chk.checkTotalOverlap(op, tol, isIdentity, chk.c.AperiodicAxis)
}

func (chk *Checker) checkTotalOverlap(op symmop.Operation, tol float64, isIdentity bool, aperiodicAxis int) bool {
	n := len(chk.c.Positions)
	rotated := make([]latmath.Vec3, n)

	for i, p := range chk.c.Positions {
		if isIdentity {
			rotated[i] = p.Add(op.T)
		} else {
			rotated[i] = op.Apply(p)
		}
	}

	rotOrder := make([]int, n)
	rotKeys := make([]float64, n)

	for i := range rotated {
		rotOrder[i] = i
		rotKeys[i] = sortKey(rotated[i])
	}

	sort.SliceStable(rotOrder, func(i, j int) bool {
		a, b := rotOrder[i], rotOrder[j]
		if chk.c.Types[a] != chk.c.Types[b] {
			return chk.c.Types[a] < chk.c.Types[b]
		}

		return rotKeys[a] < rotKeys[b]
	})

	for i, origIdx := range chk.order {
		matched := false

		for j := i; j < n && !matched; j++ {
			rotIdx := rotOrder[j]
			if chk.c.Types[origIdx] != chk.c.Types[rotIdx] {
				continue
			}

			diff := chk.cartesianDiff(chk.c.Positions[origIdx], rotated[rotIdx], aperiodicAxis)
			if scalar.EqualWithinAbs(diff.Norm(), 0, tol) {
				rotOrder[i], rotOrder[j] = rotOrder[j], rotOrder[i]
				matched = true
			}
		}

		if !matched {
			return false
		}
	}

	return true
}

// hasMatch brute-force-searches every atom for a same-species Cartesian
// match to the candidate within tol.
func (chk *Checker) hasMatch(candidate latmath.Vec3, species int, tol float64, aperiodicAxis int) bool {
	for i, p := range chk.c.Positions {
		if chk.c.Types[i] != species {
			continue
		}

		diff := chk.cartesianDiff(p, candidate, aperiodicAxis)
		if scalar.EqualWithinAbs(diff.Norm(), 0, tol) {
			return true
		}
	}

	return false
}

// cartesianDiff subtracts the nearest integer from (a-b) on periodic axes,
// then maps the fractional difference into Cartesian coordinates via the
// lattice.
func (chk *Checker) cartesianDiff(a, b latmath.Vec3, aperiodicAxis int) latmath.Vec3 {
	d := a.Sub(b)
	for i := 0; i < 3; i++ {
		if i != aperiodicAxis {
			d[i] -= latmath.NearestInt(d[i])
		}
	}

	return chk.c.Lattice.MulVec(d)
}
