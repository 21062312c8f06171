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

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Mat3 is a 3x3 real matrix. Columns are basis vectors when Mat3 represents
// a lattice; rows/columns are otherwise whatever the caller documents.  The
// zero value is the zero matrix.
type Mat3 [3][3]float64

// Identity3 is the 3x3 identity matrix.
var Identity3 = Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Columns builds a Mat3 whose columns are a, b, c.
func Columns(a, b, c Vec3) Mat3 {
	var m Mat3
	for i := 0; i < 3; i++ {
		m[i][0] = a[i]
		m[i][1] = b[i]
		m[i][2] = c[i]
	}

	return m
}

// Col returns column j (j in 0,1,2) as a Vec3.
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[0][j], m[1][j], m[2][j]}
}

// Row returns row i as a Vec3.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i][0], m[i][1], m[i][2]}
}

// dense converts m to a gonum mat.Dense for the operations (determinant,
// inverse, multiply) where leaning on a vetted linear-algebra library beats
// hand-rolled cofactor expansion.
func (m Mat3) dense() *mat.Dense {
	data := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			data[i*3+j] = m[i][j]
		}
	}

	return mat.NewDense(3, 3, data)
}

func fromDense(d mat.Matrix) Mat3 {
	var m Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = d.At(i, j)
		}
	}

	return m
}

// Mul returns m*n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out mat.Dense

	out.Mul(m.dense(), n.dense())

	return fromDense(&out)
}

// MulVec returns m*v (v treated as a column vector).
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[j][i] = m[i][j]
		}
	}

	return t
}

// Det returns the determinant of m.
func (m Mat3) Det() float64 {
	return mat.Det(m.dense())
}

// Inverse returns m's inverse, or an error if m is singular.
func (m Mat3) Inverse() (Mat3, error) {
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Mat3{}, fmt.Errorf("latmath: singular matrix: %w", err)
	}

	return fromDense(&inv), nil
}

// Metric returns the metric tensor M = LᵀL for a lattice whose columns are
// basis vectors (so M[i][j] is the dot product of basis vectors i and j).
func (m Mat3) Metric() Mat3 {
	return m.Transpose().Mul(m)
}

// AlmostEqual reports whether m and n agree element-wise within tol.
func (m Mat3) AlmostEqual(n Mat3, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j]-n[i][j]) > tol {
				return false
			}
		}
	}

	return true
}

// IntMat3 is a 3x3 integer matrix, used for rotations and change-of-basis
// matrices: every symmetry rotation has integer entries in the lattice
// basis (spec invariant: no fractional elements).
type IntMat3 [3][3]int

// IdentityInt3 is the 3x3 integer identity matrix.
var IdentityInt3 = IntMat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// ToMat3 widens an IntMat3 to a Mat3.
func (m IntMat3) ToMat3() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = float64(m[i][j])
		}
	}

	return out
}

// Det returns the exact integer determinant of m (cofactor expansion - exact
// for integers, unlike the float path used by Mat3.Det).
func (m IntMat3) Det() int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Mul returns m*n (integer exact).
func (m IntMat3) Mul(n IntMat3) IntMat3 {
	var out IntMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0
			for k := 0; k < 3; k++ {
				s += m[i][k] * n[k][j]
			}

			out[i][j] = s
		}
	}

	return out
}

// MulVec returns m*v.
func (m IntMat3) MulVec(v Vec3) Vec3 {
	return m.ToMat3().MulVec(v)
}

// Transpose returns the transpose of m.
func (m IntMat3) Transpose() IntMat3 {
	var t IntMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[j][i] = m[i][j]
		}
	}

	return t
}

// IsIntegerMatrix returns true iff every entry of m is within tol of its
// nearest integer.
func IsIntegerMatrix(m Mat3, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j]-NearestInt(m[i][j])) > tol {
				return false
			}
		}
	}

	return true
}

// RoundToInt converts a Mat3 believed to hold (near-)integer entries to an
// IntMat3 by rounding every element.
func RoundToInt(m Mat3) IntMat3 {
	var out IntMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = int(NearestInt(m[i][j]))
		}
	}

	return out
}

// IdentityWithinTol reports whether m is within tol of the identity matrix,
// element-wise.
func IdentityWithinTol(m Mat3, tol float64) bool {
	return m.AlmostEqual(Identity3, tol)
}
