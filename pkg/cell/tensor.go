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
package cell

import "github.com/latticeforge/gospg/pkg/latmath"

// TensorRank distinguishes the three shapes a per-atom magnetic moment can
// take.  The original carries an integer tensor_rank field plus conditional
// branching on it throughout; here it is a closed sum type, so code which
// doesn't care about magnetism never has to inspect it.
type TensorRank uint8

const (
	// NoTensor means the cell carries no magnetic decoration.
	NoTensor TensorRank = iota
	// ScalarTensor means each atom carries a single scalar moment
	// (collinear spin).
	ScalarTensor
	// VectorTensor means each atom carries a Cartesian 3-vector moment.
	VectorTensor
)

// String renders the tensor rank for diagnostics.
func (r TensorRank) String() string {
	switch r {
	case NoTensor:
		return "none"
	case ScalarTensor:
		return "scalar"
	case VectorTensor:
		return "vector"
	default:
		return "unknown"
	}
}

// SiteTensor is the per-atom magnetic decoration: either absent, a scalar
// moment, or a Cartesian vector moment.  Exactly one of Scalar/Vector is
// meaningful, selected by Rank.
type SiteTensor struct {
	Rank   TensorRank
	Scalar float64
	Vector latmath.Vec3
}

// None constructs the "no magnetic decoration" tensor.
func None() SiteTensor {
	return SiteTensor{Rank: NoTensor}
}

// Scalar constructs a scalar (collinear-spin) tensor.
func Scalar(v float64) SiteTensor {
	return SiteTensor{Rank: ScalarTensor, Scalar: v}
}

// Vector constructs a Cartesian-vector tensor.
func Vector(v latmath.Vec3) SiteTensor {
	return SiteTensor{Rank: VectorTensor, Vector: v}
}

// Negate returns -t, preserving its rank.  Used when testing whether a
// candidate rotation is admitted as a time-reversing magnetic operation
// (spec.md §4.9): such an operation must negate every site tensor.
func (t SiteTensor) Negate() SiteTensor {
	switch t.Rank {
	case ScalarTensor:
		return Scalar(-t.Scalar)
	case VectorTensor:
		return Vector(t.Vector.Scale(-1))
	default:
		return t
	}
}
