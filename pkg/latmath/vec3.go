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

// Package latmath provides the fixed 3x3 integer/real matrix and 3-vector
// primitives the rest of this module is built on: determinant, inverse,
// multiply, transpose, metric tensor, cross product, squared norm,
// nearest-integer rounding and mod-1 reduction. Grounded on
// original_source/src/mathfunc.c.
package latmath

import "math"

// Vec3 is a Cartesian or fractional 3-vector.
type Vec3 [3]float64

// Add returns p+q.
func (p Vec3) Add(q Vec3) Vec3 {
	return Vec3{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

// Sub returns p-q.
func (p Vec3) Sub(q Vec3) Vec3 {
	return Vec3{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// Scale returns p scaled by f.
func (p Vec3) Scale(f float64) Vec3 {
	return Vec3{p[0] * f, p[1] * f, p[2] * f}
}

// Dot returns the dot product p.q.
func (p Vec3) Dot(q Vec3) float64 {
	return p[0]*q[0] + p[1]*q[1] + p[2]*q[2]
}

// Cross returns the cross product p x q.
func (p Vec3) Cross(q Vec3) Vec3 {
	return Vec3{
		p[1]*q[2] - p[2]*q[1],
		p[2]*q[0] - p[0]*q[2],
		p[0]*q[1] - p[1]*q[0],
	}
}

// SqNorm returns the squared Euclidean norm of p.
func (p Vec3) SqNorm() float64 {
	return p.Dot(p)
}

// Norm returns the Euclidean norm of p.
func (p Vec3) Norm() float64 {
	return math.Sqrt(p.SqNorm())
}

// Normalize returns p scaled to unit length.
func (p Vec3) Normalize() Vec3 {
	return p.Scale(1 / p.Norm())
}

// NearestInt rounds x to the nearest integer, ties away from zero.
func NearestInt(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}

	return math.Ceil(x - 0.5)
}

// Mod1 reduces x into [0, 1) by subtracting its nearest integer and wrapping
// the result into the unit interval.
func Mod1(x float64) float64 {
	y := x - NearestInt(x)
	if y < 0 {
		y += 1
	}

	if y >= 1 {
		y -= 1
	}

	return y
}

// ReduceFrac reduces each periodic component of v into [0,1); axis -1 means
// "reduce all three axes" (the bulk/3-periodic case), otherwise the named
// axis (0, 1 or 2) is left untouched (the layer-group aperiodic axis).
func ReduceFrac(v Vec3, aperiodicAxis int) Vec3 {
	out := v
	for i := 0; i < 3; i++ {
		if i == aperiodicAxis {
			continue
		}

		out[i] = Mod1(out[i])
	}

	return out
}

// NearestLatticePoint returns v's fractional coordinate after subtracting
// its nearest-integer vector, i.e. the representative of v closest to the
// origin modulo the lattice.
func NearestLatticePoint(v Vec3) Vec3 {
	return Vec3{
		v[0] - NearestInt(v[0]),
		v[1] - NearestInt(v[1]),
		v[2] - NearestInt(v[2]),
	}
}

// AlmostEqual reports whether p and q agree component-wise within tol.
func AlmostEqual(p, q Vec3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(p[i]-q[i]) > tol {
			return false
		}
	}

	return true
}

// IsIntegerVec3 reports whether every component of v is within tol of its
// nearest integer.
func IsIntegerVec3(v Vec3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(v[i]-NearestInt(v[i])) > tol {
			return false
		}
	}

	return true
}

// RoundVec3 rounds every component of v to its nearest integer.
func RoundVec3(v Vec3) Vec3 {
	return Vec3{NearestInt(v[0]), NearestInt(v[1]), NearestInt(v[2])}
}
