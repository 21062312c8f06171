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

package pointgroup

import (
	"fmt"
	"math"
	"sort"

	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/latreduce"
)

// candidateDirections are the short lattice directions tried when searching
// for conventional in-plane/orthogonal axes (spec.md §4.6). A subset of the
// same 26-vector family pkg/symmetry draws rotation axes from, grounded on
// original_source/src/spacegroup.c's get_lattice_points.
var candidateDirections = []latmath.Vec3{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
	{1, 1, 0}, {1, -1, 0}, {1, 0, 1}, {1, 0, -1}, {0, 1, 1}, {0, 1, -1},
	{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
}

// ConventionalBasis builds the integer basis-change matrix T such that,
// expressed in the new basis, pg's symmetry axes align with the standard
// conventional directions for its Laue class (spec.md §4.6's table). |det
// T| is the centering multiplicity implied by the lattice-symmetry ratio,
// not necessarily 1.
func ConventionalBasis(lattice latmath.Mat3, rotations []latmath.IntMat3, pg Type, tol float64, attempts int) (latmath.IntMat3, error) {
	switch pg.Laue {
	case LaueNone:
		return latmath.IntMat3{}, fmt.Errorf("pointgroup: no point group, cannot build basis change")
	case Laue1:
		return latmath.IdentityInt3, nil
	case Laue2M:
		return monoclinicBasis(lattice, rotations, tol, attempts)
	case LaueMMM:
		return orthorhombicBasis(lattice, rotations)
	case Laue4M, Laue4MMM:
		return singleAxisBasis(lattice, rotations, 4, 4)
	case Laue3, Laue3M:
		return singleAxisBasis(lattice, rotations, 3, 0)
	case Laue6M, Laue6MMM:
		return singleAxisBasis(lattice, rotations, 6, 0)
	case LaueM3:
		return cubicBasis(lattice, rotations, 2)
	case LaueM3M:
		return cubicBasis(lattice, rotations, 4)
	default:
		return latmath.IntMat3{}, fmt.Errorf("pointgroup: unsupported Laue class")
	}
}

// properRotation returns r's proper part: r itself if det(r)==+1, or its
// negation if det(r)==-1. A rotoinversion's invariant axis is the axis of
// its proper companion R'=-R (original_source/src/pointgroup.c's
// get_proper_rotation).
func properRotation(r latmath.IntMat3) latmath.IntMat3 {
	if r.Det() == 1 {
		return r
	}

	var out latmath.IntMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = -r[i][j]
		}
	}

	return out
}

// axisOrderOf maps r's (det, trace) rotation type to the order of its
// symmetry axis, or 0 if r has no unique axis (identity or inversion).
func axisOrderOf(r latmath.IntMat3) int {
	switch rotationType(r) {
	case 0, 9:
		return 6 // -6, 6
	case 1, 8:
		return 4 // -4, 4
	case 2, 7:
		return 3 // -3, 3
	case 3, 6:
		return 2 // -2, 2
	default:
		return 0 // -1, 1
	}
}

// rotationAxis returns the primitive integer invariant direction of r, or
// false if r has no unique axis. The axis is the null space of
// properRotation(r)-I, computed as the cross product of two independent
// rows of that (rank <= 2) matrix.
func rotationAxis(r latmath.IntMat3) (latmath.Vec3, bool) {
	p := properRotation(r).ToMat3()
	for i := 0; i < 3; i++ {
		p[i][i] -= 1
	}

	rows := [3]latmath.Vec3{p.Row(0), p.Row(1), p.Row(2)}

	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			axis := rows[i].Cross(rows[j])
			if axis.SqNorm() > 1e-6 {
				return primitiveDirection(axis), true
			}
		}
	}

	return latmath.Vec3{}, false
}

// primitiveDirection reduces v (assumed near-integer) to its primitive
// integer form by dividing out the gcd of its components.
func primitiveDirection(v latmath.Vec3) latmath.Vec3 {
	a := int(math.Round(v[0]))
	b := int(math.Round(v[1]))
	c := int(math.Round(v[2]))

	g := gcd3(iabs(a), iabs(b), iabs(c))
	if g == 0 {
		return v
	}

	return latmath.Vec3{float64(a / g), float64(b / g), float64(c / g)}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func gcd3(a, b, c int) int { return gcd(gcd(a, b), c) }

func iabs(a int) int {
	if a < 0 {
		return -a
	}

	return a
}

// axesOfOrder returns the distinct primitive axis directions carried by
// rotations of the given order, deduplicated up to sign.
func axesOfOrder(rotations []latmath.IntMat3, order int) []latmath.Vec3 {
	var out []latmath.Vec3

	for _, r := range rotations {
		if axisOrderOf(r) != order {
			continue
		}

		axis, ok := rotationAxis(r)
		if !ok {
			continue
		}

		dup := false

		for _, a := range out {
			if parallel(a, axis) {
				dup = true
				break
			}
		}

		if !dup {
			out = append(out, axis)
		}
	}

	return out
}

func parallel(v, axis latmath.Vec3) bool {
	return v.Cross(axis).SqNorm() < 1e-9
}

// dotMetric returns u^T · metric · v, the lattice inner product of the two
// integer directions u, v under the metric tensor.
func dotMetric(metric latmath.Mat3, u, v latmath.Vec3) float64 {
	return u.Dot(metric.MulVec(v))
}

// finishBasis builds the transform matrix [a|b|c], flipping a's sign if
// needed to make det(T) > 0, and fails if the triple is degenerate.
func finishBasis(a, b, c latmath.Vec3) (latmath.IntMat3, error) {
	m := latmath.Columns(a, b, c)

	d := m.Det()
	if math.Abs(d) < 0.5 {
		return latmath.IntMat3{}, fmt.Errorf("pointgroup: degenerate axis triple")
	}

	if d < 0 {
		m = latmath.Columns(a.Scale(-1), b, c)
	}

	return latmath.RoundToInt(m), nil
}

// monoclinicBasis fixes the unique axis b at the (sole) 2-fold rotation
// axis, then reduces the plane perpendicular to b with 2-D Delaunay
// reduction (original_source/src/spacegroup.c's change_basis_monocli, which
// calls del_delaunay_reduce_2D on exactly this in-plane pair) to pick a, c.
// If the reduced pair does not come back an integral combination of the
// lattice's own basis (can happen when the shortest in-plane candidates
// Delaunay2D starts from aren't themselves a full-rank pair of
// candidateDirections), this falls back to the brute-force shortest-pair
// scan over every candidate direction.
func monoclinicBasis(lattice latmath.Mat3, rotations []latmath.IntMat3, tol float64, attempts int) (latmath.IntMat3, error) {
	axes := axesOfOrder(rotations, 2)
	if len(axes) == 0 {
		return latmath.IntMat3{}, fmt.Errorf("pointgroup: no 2-fold axis found for monoclinic basis")
	}

	b := axes[0]

	metric := lattice.Metric()
	perp := perpendicularCandidates(metric, b)

	if len(perp) < 2 {
		return latmath.IntMat3{}, fmt.Errorf("pointgroup: could not find two axes orthogonal to the unique monoclinic axis")
	}

	if t, ok := reduceMonoclinicPlane(lattice, perp[0], perp[1], b, tol, attempts); ok {
		return t, nil
	}

	for i := 0; i < len(perp); i++ {
		for j := 0; j < len(perp); j++ {
			if i == j {
				continue
			}

			if t, err := finishBasis(perp[i], b, perp[j]); err == nil {
				return t, nil
			}
		}
	}

	return latmath.IntMat3{}, fmt.Errorf("pointgroup: no valid monoclinic a/c pair found")
}

// reduceMonoclinicPlane runs 2-D Delaunay reduction on the Cartesian images
// of fracA, fracB (the two shortest candidates perpendicular to the unique
// axis b) and, if the reduced pair converts back to an integral combination
// of lattice's own basis, returns the finished a/b/c transform built from
// it.
func reduceMonoclinicPlane(lattice latmath.Mat3, fracA, fracB, b latmath.Vec3, tol float64, attempts int) (latmath.IntMat3, bool) {
	cartA := lattice.MulVec(fracA)
	cartB := lattice.MulVec(fracB)

	redA, redB, err := latreduce.Delaunay2D(cartA, cartB, tol, attempts)
	if err != nil {
		return latmath.IntMat3{}, false
	}

	inv, err := lattice.Inverse()
	if err != nil {
		return latmath.IntMat3{}, false
	}

	newA := inv.MulVec(redA)
	newB := inv.MulVec(redB)

	if !latmath.IsIntegerVec3(newA, tol) || !latmath.IsIntegerVec3(newB, tol) {
		return latmath.IntMat3{}, false
	}

	t, err := finishBasis(latmath.RoundVec3(newA), b, latmath.RoundVec3(newB))
	if err != nil {
		return latmath.IntMat3{}, false
	}

	return t, true
}

// perpendicularCandidates returns candidateDirections orthogonal to axis
// under metric (excluding directions parallel to axis), sorted by length
// ascending.
func perpendicularCandidates(metric latmath.Mat3, axis latmath.Vec3) []latmath.Vec3 {
	type cand struct {
		v      latmath.Vec3
		length float64
	}

	var cands []cand

	for _, v := range candidateDirections {
		if parallel(v, axis) {
			continue
		}

		cross := dotMetric(metric, v, axis)
		scale := math.Sqrt(dotMetric(metric, v, v)*dotMetric(metric, axis, axis)) + 1e-12

		if math.Abs(cross)/scale > 1e-6 {
			continue
		}

		cands = append(cands, cand{v, dotMetric(metric, v, v)})
	}

	sort.Slice(cands, func(i, j int) bool { return cands[i].length < cands[j].length })

	out := make([]latmath.Vec3, 0, len(cands))

	for _, c := range cands {
		dup := false

		for _, o := range out {
			if parallel(o, c.v) {
				dup = true
				break
			}
		}

		if !dup {
			out = append(out, c.v)
		}
	}

	return out
}

// orthorhombicBasis requires exactly the three mutually perpendicular
// 2-fold axes mmm carries, sorted by length ascending.
func orthorhombicBasis(lattice latmath.Mat3, rotations []latmath.IntMat3) (latmath.IntMat3, error) {
	axes := axesOfOrder(rotations, 2)
	if len(axes) < 3 {
		return latmath.IntMat3{}, fmt.Errorf("pointgroup: need three 2-fold axes for orthorhombic basis, found %d", len(axes))
	}

	metric := lattice.Metric()
	sort.Slice(axes, func(i, j int) bool {
		return dotMetric(metric, axes[i], axes[i]) < dotMetric(metric, axes[j], axes[j])
	})

	return finishBasis(axes[0], axes[1], axes[2])
}

// singleAxisBasis fixes c at the order-fold axis, then picks the two
// shortest non-parallel candidate directions for a, b with det(T) > 0 and,
// if detLimit > 0, |det T| < detLimit (the tetragonal "avoid F-choices"
// rule of spec.md §4.6).
func singleAxisBasis(lattice latmath.Mat3, rotations []latmath.IntMat3, order, detLimit int) (latmath.IntMat3, error) {
	axes := axesOfOrder(rotations, order)
	if len(axes) == 0 {
		return latmath.IntMat3{}, fmt.Errorf("pointgroup: no %d-fold axis found", order)
	}

	c := axes[0]
	metric := lattice.Metric()

	var cands []latmath.Vec3

	for _, v := range candidateDirections {
		if !parallel(v, c) {
			cands = append(cands, v)
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		return dotMetric(metric, cands[i], cands[i]) < dotMetric(metric, cands[j], cands[j])
	})

	for i := 0; i < len(cands); i++ {
		for j := 0; j < len(cands); j++ {
			if i == j {
				continue
			}

			m := latmath.Columns(cands[i], cands[j], c)

			d := m.Det()
			if math.Abs(d) < 0.5 || d < 0 {
				continue
			}

			if detLimit > 0 && int(math.Round(d)) >= detLimit {
				continue
			}

			return latmath.RoundToInt(m), nil
		}
	}

	return latmath.IntMat3{}, fmt.Errorf("pointgroup: could not find in-plane axes for single-axis basis")
}

// cubicBasis requires three mutual axes of the given order (2 for m-3's
// T/Th, 4 for m-3m's O/Oh), sorted by length ascending.
func cubicBasis(lattice latmath.Mat3, rotations []latmath.IntMat3, order int) (latmath.IntMat3, error) {
	axes := axesOfOrder(rotations, order)
	if len(axes) < 3 {
		return latmath.IntMat3{}, fmt.Errorf("pointgroup: need three %d-fold axes for cubic basis, found %d", order, len(axes))
	}

	metric := lattice.Metric()
	sort.Slice(axes, func(i, j int) bool {
		return dotMetric(metric, axes[i], axes[i]) < dotMetric(metric, axes[j], axes[j])
	})

	return finishBasis(axes[0], axes[1], axes[2])
}
