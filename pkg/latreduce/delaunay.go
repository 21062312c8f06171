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

// Package latreduce implements the two lattice-canonicalization algorithms
// the symmetry search is built on: Delaunay reduction (on the extended
// 4-vector basis, 3-D and 2-D) and Niggli reduction (spec.md §4.2).
// Grounded on original_source/src/delaunay.c and niggli.c.
package latreduce

import (
	"fmt"

	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/spgerr"
)

// DelaunayResult is the outcome of a successful Delaunay reduction.
type DelaunayResult struct {
	// Reduced is the reduced lattice (columns a, b, c), determinant > 0.
	Reduced latmath.Mat3
	// ToReduced is the integer change-of-basis matrix T such that
	// Reduced = Input * T, with |det T| == 1.
	ToReduced latmath.IntMat3
}

// Delaunay performs 3-D Delaunay reduction of lattice, whose columns are the
// basis vectors a, b, c.  attempts bounds the pair-negation loop.
func Delaunay(lattice latmath.Mat3, tol float64, attempts int) (DelaunayResult, error) {
	// Extended basis b[0..2] = a,b,c ; b[3] = -(a+b+c).
	b := [4]latmath.Vec3{
		lattice.Col(0),
		lattice.Col(1),
		lattice.Col(2),
	}
	b[3] = b[0].Add(b[1]).Add(b[2]).Scale(-1)

	ok := false

	for n := 0; n < attempts; n++ {
		fired := false

		for i := 0; i < 4 && !fired; i++ {
			for j := i + 1; j < 4 && !fired; j++ {
				if b[i].Dot(b[j]) > tol {
					fired = true
					oldBi := b[i]
					b[i] = oldBi.Scale(-1)

					for k := 0; k < 4; k++ {
						if k != i && k != j {
							b[k] = b[k].Add(oldBi)
						}
					}
				}
			}
		}

		if !fired {
			ok = true
			break
		}
	}

	if !ok {
		return DelaunayResult{}, fmt.Errorf("latreduce: %w", spgerr.ErrDelaunayFailed)
	}

	reduced, err := shortestNonDegenerateTriple([]latmath.Vec3{
		b[0], b[1], b[0].Add(b[1]),
		b[2], b[1].Add(b[2]), b[0].Add(b[2]),
	})
	if err != nil {
		return DelaunayResult{}, fmt.Errorf("latreduce: %w", spgerr.ErrDelaunayFailed)
	}

	if reduced.Det() < 0 {
		// Flip handedness by swapping two basis vectors (columns).
		for r := 0; r < 3; r++ {
			reduced[r][0], reduced[r][1] = reduced[r][1], reduced[r][0]
		}
	}

	linv, err := lattice.Inverse()
	if err != nil {
		return DelaunayResult{}, fmt.Errorf("latreduce: %w", spgerr.ErrDelaunayFailed)
	}

	t := linv.Mul(reduced)
	if !latmath.IsIntegerMatrix(t, tol) {
		return DelaunayResult{}, fmt.Errorf("latreduce: %w: change of basis is not integral", spgerr.ErrDelaunayFailed)
	}

	tInt := latmath.RoundToInt(t)
	if d := tInt.Det(); d != 1 && d != -1 {
		return DelaunayResult{}, fmt.Errorf("latreduce: %w: |det T| = %d, want 1", spgerr.ErrDelaunayFailed, d)
	}

	return DelaunayResult{Reduced: reduced, ToReduced: tInt}, nil
}

// shortestNonDegenerateTriple sorts the six Delaunay candidate vectors by
// squared norm and returns the first triple (in that order) whose
// determinant is nonzero.
func shortestNonDegenerateTriple(candidates []latmath.Vec3) (latmath.Mat3, error) {
	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}

	for i := 0; i < len(idx); i++ {
		for j := i + 1; j < len(idx); j++ {
			if candidates[idx[j]].SqNorm() < candidates[idx[i]].SqNorm() {
				idx[i], idx[j] = idx[j], idx[i]
			}
		}
	}

	for a := 0; a < len(idx); a++ {
		for b := a + 1; b < len(idx); b++ {
			for c := b + 1; c < len(idx); c++ {
				m := latmath.Columns(candidates[idx[a]], candidates[idx[b]], candidates[idx[c]])
				if m.Det() != 0 {
					return m, nil
				}
			}
		}
	}

	return latmath.Mat3{}, fmt.Errorf("no non-degenerate triple found")
}

// Delaunay2D reduces only the in-plane pair of a unique-axis-plus-plane
// basis: used for monoclinic cells and layer groups, where a designated
// axis (the unique monoclinic axis, or the layer's aperiodic axis) must
// never be mixed into the reduction.
//
// inPlaneA, inPlaneB are the two vectors spanning the plane; unique is left
// untouched. Returns the reduced in-plane pair.
func Delaunay2D(inPlaneA, inPlaneB latmath.Vec3, tol float64, attempts int) (latmath.Vec3, latmath.Vec3, error) {
	// Extended 2-D basis: b[0],b[1] = inPlaneA,inPlaneB ; b[2] = -(b0+b1).
	b := [3]latmath.Vec3{inPlaneA, inPlaneB}
	b[2] = b[0].Add(b[1]).Scale(-1)

	ok := false

	for n := 0; n < attempts; n++ {
		fired := false

		for i := 0; i < 3 && !fired; i++ {
			for j := i + 1; j < 3 && !fired; j++ {
				if b[i].Dot(b[j]) > tol {
					fired = true
					oldBi := b[i]
					b[i] = oldBi.Scale(-1)

					for k := 0; k < 3; k++ {
						if k != i && k != j {
							b[k] = b[k].Add(oldBi)
						}
					}
				}
			}
		}

		if !fired {
			ok = true
			break
		}
	}

	if !ok {
		return latmath.Vec3{}, latmath.Vec3{}, fmt.Errorf("latreduce: 2d %w", spgerr.ErrDelaunayFailed)
	}

	// Shortest two of {b0, b1, b0+b1} forming a non-degenerate pair.
	candidates := []latmath.Vec3{b[0], b[1], b[0].Add(b[1])}
	best := -1
	bestNorm := 0.0

	for i, v := range candidates {
		n := v.SqNorm()
		if best == -1 || n < bestNorm {
			best, bestNorm = i, n
		}
	}

	first := candidates[best]

	secondBest := -1
	secondNorm := 0.0

	for i, v := range candidates {
		if i == best {
			continue
		}

		if first.Cross(v).SqNorm() == 0 {
			continue
		}

		n := v.SqNorm()
		if secondBest == -1 || n < secondNorm {
			secondBest, secondNorm = i, n
		}
	}

	if secondBest == -1 {
		return latmath.Vec3{}, latmath.Vec3{}, fmt.Errorf("latreduce: 2d %w: degenerate plane", spgerr.ErrDelaunayFailed)
	}

	return first, candidates[secondBest], nil
}
