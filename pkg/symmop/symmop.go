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

// Package symmop defines symmetry operations and the point-symmetry /
// pure-translation sets built from them (spec.md §3).
package symmop

import (
	"fmt"

	"github.com/latticeforge/gospg/pkg/latmath"
)

// Operation is a symmetry operation (R, t): an integer rotation R of
// determinant ±1 paired with a fractional translation t.  Invariant: R must
// lie within the point-symmetry group of the lattice (spec.md §3).
type Operation struct {
	R latmath.IntMat3
	T latmath.Vec3
}

// Identity is the identity operation (I, 0).
var Identity = Operation{R: latmath.IdentityInt3}

// Apply maps a fractional position through this operation: R·x + t.
func (op Operation) Apply(x latmath.Vec3) latmath.Vec3 {
	return op.R.MulVec(x).Add(op.T)
}

// IsIdentityRotation reports whether op's rotation part is the identity.
func (op Operation) IsIdentityRotation() bool {
	return op.R == latmath.IdentityInt3
}

// Compose returns the operation equivalent to first applying rhs, then lhs:
// (Rl, tl) ∘ (Rr, tr) = (Rl·Rr, Rl·tr + tl).
func (lhs Operation) Compose(rhs Operation) Operation {
	return Operation{
		R: lhs.R.Mul(rhs.R),
		T: lhs.R.MulVec(rhs.T).Add(lhs.T),
	}
}

// Inverse returns op's inverse, assuming R is unimodular over the integers
// (true for every rotation admitted by the point-symmetry search).
func (op Operation) Inverse() (Operation, error) {
	rInv, err := op.R.ToMat3().Inverse()
	if err != nil {
		return Operation{}, fmt.Errorf("symmop: non-invertible rotation: %w", err)
	}

	rInvInt := latmath.RoundToInt(rInv)
	if !latmath.IsIntegerMatrix(rInv, 1e-6) {
		return Operation{}, fmt.Errorf("symmop: rotation inverse is not integral")
	}

	return Operation{R: rInvInt, T: rInvInt.MulVec(op.T).Scale(-1)}, nil
}

// MagneticOperation augments an Operation with a time-reversal bit
// (spec.md §3: "Magnetic symmetry operation").
type MagneticOperation struct {
	Operation
	TimeReversal bool
}

// Set is an ordered collection of symmetry operations (spec.md §3: "stored
// as two parallel arrays with a size counter" in the original; here, a
// single owned slice is the idiomatic Go equivalent of that composite).
type Set struct {
	Ops []Operation
}

// Len returns the number of operations in s.
func (s *Set) Len() int {
	return len(s.Ops)
}

// Contains reports whether an operation equal to op (within tol on the
// translation) is already present.
func (s *Set) Contains(op Operation, tol float64) bool {
	for _, existing := range s.Ops {
		if existing.R == op.R && latmath.AlmostEqual(existing.T, op.T, tol) {
			return true
		}
	}

	return false
}

// Add appends op to s unless an equal operation (within tol) is already
// present.
func (s *Set) Add(op Operation, tol float64) {
	if !s.Contains(op, tol) {
		s.Ops = append(s.Ops, op)
	}
}

// MagneticSet is the magnetic analogue of Set.
type MagneticSet struct {
	Ops []MagneticOperation
}

// Len returns the number of operations in s.
func (s *MagneticSet) Len() int {
	return len(s.Ops)
}

// NonReversing returns the subset of s whose TimeReversal bit is unset —
// the maximal subspace group XSG of spec.md §4.9.
func (s *MagneticSet) NonReversing() []Operation {
	var out []Operation

	for _, op := range s.Ops {
		if !op.TimeReversal {
			out = append(out, op.Operation)
		}
	}

	return out
}

// FamilySpaceGroup drops the time-reversal decoration from every operation,
// returning the family space group FSG of spec.md §4.9.  Duplicate
// rotation/translation pairs (which arise because +T and -T operations
// collapse to the same undecorated operation) are removed.
func (s *MagneticSet) FamilySpaceGroup(tol float64) []Operation {
	var fsg Set

	for _, op := range s.Ops {
		fsg.Add(op.Operation, tol)
	}

	return fsg.Ops
}

// PureTranslations extracts the translations t for which (I, t) is a
// symmetry — the pure-translation set of spec.md §3, used to size the
// primitive cell.
func PureTranslations(s *Set, tol float64) []latmath.Vec3 {
	var out []latmath.Vec3

	for _, op := range s.Ops {
		if !op.IsIdentityRotation() {
			continue
		}

		dup := false

		for _, t := range out {
			if latmath.AlmostEqual(t, op.T, tol) {
				dup = true
				break
			}
		}

		if !dup {
			out = append(out, op.T)
		}
	}

	return out
}
