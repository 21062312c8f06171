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
package latmath

import "math"

// OrthonormalBasis builds the right-handed orthonormal frame a lattice's own
// first basis vector anchors: e0 along a, e2 along a x b, e1 completing the
// frame. Grounded on original_source/src/refinement.c's get_orthonormal_basis,
// which derives the same frame from a candidate lattice to measure how far it
// sits from an orthonormal embedding.
func OrthonormalBasis(lattice Mat3) Mat3 {
	a := lattice.Col(0)
	b := lattice.Col(1)

	e0 := a.Normalize()
	e2 := a.Cross(b).Normalize()
	e1 := e2.Cross(e0)

	return Columns(e0, e1, e2)
}

// RigidRotation returns the rotation R carrying the Cartesian embedding of
// bravais to the Cartesian embedding of std, i.e. R such that
// std = R . bravais for the same fractional coordinates. Both lattices are
// reduced to their own orthonormal frame first, so R is exactly the change of
// orthonormal frame between them - orthogonal, det +1. Grounded on
// original_source/src/refinement.c's ref_measure_rigid_rotation.
func RigidRotation(bravais, std Mat3) Mat3 {
	fromFrame := OrthonormalBasis(bravais)
	toFrame := OrthonormalBasis(std)

	return toFrame.Mul(fromFrame.Transpose())
}

// CanonicalOrientation rebuilds lattice's own (a, b, c, metric) lengths and
// angles into the standard crystallographic Cartesian frame: a along x, b in
// the xy-plane, c completing a right-handed frame. This is the textbook
// cell-parameters-to-Cartesian convention used throughout crystallography
// (not literally original_source code - it has no direct analogue there
// because the C implementation never re-derives a lattice from parameters at
// this stage - but it is the standard construction every standard-setting
// routine in original_source/src/spacegroup.c ultimately relies on having
// available).
func CanonicalOrientation(lattice Mat3) Mat3 {
	metric := lattice.Metric()

	lenA := math.Sqrt(metric[0][0])
	lenB := math.Sqrt(metric[1][1])
	lenC := math.Sqrt(metric[2][2])

	cosGamma := metric[0][1] / (lenA * lenB)
	cosBeta := metric[0][2] / (lenA * lenC)
	cosAlpha := metric[1][2] / (lenB * lenC)

	ax := lenA
	bx := lenB * cosGamma
	by := math.Sqrt(max0(lenB*lenB - bx*bx))

	cx := lenC * cosBeta

	var cy float64
	if by != 0 {
		cy = lenC * (cosAlpha - cosGamma*cosBeta) / by
	}

	cz := math.Sqrt(max0(lenC*lenC - cx*cx - cy*cy))

	return Columns(
		Vec3{ax, 0, 0},
		Vec3{bx, by, 0},
		Vec3{cx, cy, cz},
	)
}

func max0(x float64) float64 {
	if x < 0 {
		return 0
	}

	return x
}
