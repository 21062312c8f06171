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

// Package magnetic decorates a non-spin symmetry-operation set with a
// time-reversal bit per spec.md §4.9, then classifies the resulting
// magnetic space group.
//
// Grounded on original_source/src/spin.h's
// spn_get_operations_with_site_tensors (the admission test: an operation is
// kept undecorated if it maps every site tensor to itself, decorated with
// time reversal if it maps every site tensor to its negation, and rejected
// otherwise) and original_source/src/magnetic_spacegroup.c's
// msg_identify_magnetic_space_group_type (the I/II/III/IV classification by
// FSG/XSG size ratio).
package magnetic

import (
	"fmt"

	"github.com/latticeforge/gospg/pkg/cell"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/magneticdb"
	"github.com/latticeforge/gospg/pkg/spgerr"
	"github.com/latticeforge/gospg/pkg/symmop"
)

// Augment tests every non-spin operation in ops against c's per-atom site
// tensors and keeps it, either undecorated (the tensor field is invariant)
// or time-reversed (the tensor field is uniformly negated). An operation
// that does neither for some atom is dropped: spec.md §4.9 requires the
// admitted set to act consistently across the whole cell.
//
// c must carry tensors (HasTensors()); Augment returns
// spgerr.ErrSymmetryOperationSearchFailed if no operation survives.
func Augment(c *cell.Cell, ops *symmop.Set, tol float64) (*symmop.MagneticSet, error) {
	if !c.HasTensors() {
		return nil, fmt.Errorf("magnetic: cell carries no site tensors")
	}

	mapped := make([]int, c.Size())

	out := &symmop.MagneticSet{}

	for _, op := range ops.Ops {
		for i := range mapped {
			mapped[i] = -1
		}

		if !mapPositions(c, op, mapped, tol) {
			continue
		}

		straight, reversed := true, true

		for i, j := range mapped {
			want := c.Tensors[j]
			got := c.Tensors[i]

			if !tensorsClose(got, want, tol) {
				straight = false
			}

			if !tensorsClose(got, want.Negate(), tol) {
				reversed = false
			}
		}

		switch {
		case straight:
			out.Ops = append(out.Ops, symmop.MagneticOperation{Operation: op, TimeReversal: false})
		case reversed:
			out.Ops = append(out.Ops, symmop.MagneticOperation{Operation: op, TimeReversal: true})
		}
	}

	if out.Len() == 0 {
		return nil, fmt.Errorf("%w: no operation admitted a consistent time-reversal assignment", spgerr.ErrSymmetryOperationSearchFailed)
	}

	return out, nil
}

// mapPositions fills mapped[i] with the index j such that op maps atom j
// onto atom i (modulo a lattice translation), for every atom of c. It
// reports false if op does not induce a bijection on c's atoms (meaning op
// is not in fact a symmetry of the undecorated structure).
func mapPositions(c *cell.Cell, op symmop.Operation, mapped []int, tol float64) bool {
	for i, pos := range c.Positions {
		found := -1

		for j, other := range c.Positions {
			if c.Types[j] != c.Types[i] {
				continue
			}

			image := op.Apply(other)
			diff := latmath.NearestLatticePoint(image.Sub(pos))

			if diff.Norm() <= tol {
				found = j
				break
			}
		}

		if found < 0 {
			return false
		}

		mapped[i] = found
	}

	return true
}

// tensorsClose reports whether a and b (of the same rank) agree within
// tol.
func tensorsClose(a, b cell.SiteTensor, tol float64) bool {
	if a.Rank != b.Rank {
		return false
	}

	switch a.Rank {
	case cell.ScalarTensor:
		d := a.Scalar - b.Scalar
		return d*d < tol*tol
	case cell.VectorTensor:
		return a.Vector.Sub(b.Vector).Norm() <= tol
	default:
		return true
	}
}

// Classify assigns mset's magnetic type (spec.md §4.9): I if every
// operation is non-reversing; II (grey) if every time-reversing operation
// merely re-decorates a spatial operation already present in the
// non-reversing subgroup XSG - so the family space group FSG (spatial parts,
// decoration forgotten) has the same size as XSG, i.e. |MSG| = 2|XSG| via a
// pure 1' coset with zero translation; otherwise FSG doubles XSG
// (|FSG| = 2|XSG|) and the type is IV when some reversing operation's
// rotation is the identity and its translation is not a lattice vector (a
// genuine anti-translation coset representative), or III otherwise.
func Classify(mset *symmop.MagneticSet, tol float64) magneticdb.Type {
	reversing := 0

	for _, op := range mset.Ops {
		if op.TimeReversal {
			reversing++
		}
	}

	if reversing == 0 {
		return magneticdb.TypeI
	}

	nonReversing := mset.NonReversing()
	fsg := mset.FamilySpaceGroup(tol)

	if len(fsg) == len(nonReversing) {
		return magneticdb.TypeII
	}

	for _, op := range mset.Ops {
		if !op.TimeReversal || op.R != latmath.IdentityInt3 {
			continue
		}

		if latmath.NearestLatticePoint(op.T).Norm() > tol {
			return magneticdb.TypeIV
		}
	}

	return magneticdb.TypeIII
}

// IdentifyUNI looks up the UNI magnetic-space-group entry matching mset's
// parent Hall number and computed type. It reports
// spgerr.ErrSpacegroupSearchFailed if no catalogued entry agrees.
func IdentifyUNI(db magneticdb.DB, mset *symmop.MagneticSet, hallNumber int, tol float64) (magneticdb.Entry, error) {
	kind := Classify(mset, tol)

	for _, e := range db.ByHallNumber(hallNumber) {
		if e.Type == kind {
			return e, nil
		}
	}

	return magneticdb.Entry{}, fmt.Errorf("%w: no UNI entry for Hall number %d and type %s", spgerr.ErrSpacegroupSearchFailed, hallNumber, kind)
}
