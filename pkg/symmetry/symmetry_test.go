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

package symmetry

import (
	"testing"

	"github.com/latticeforge/gospg/pkg/cell"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/util/assert"
)

func TestLatticeSymmetrySimpleCubic(t *testing.T) {
	lattice := latmath.Mat3{
		{4, 0, 0},
		{0, 4, 0},
		{0, 0, 4},
	}

	c, err := cell.New(lattice, []latmath.Vec3{{0, 0, 0}}, []int{0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "cell should construct")

	rots, err := LatticeSymmetry(c, 1e-3, -1, 100)
	assert.Equal(t, nil, err, "lattice symmetry search should succeed for a simple cubic lattice")
	assert.Equal(t, 48, len(rots), "simple cubic point symmetry has order 48")
}

func TestFindOperationsSimpleCubicSingleAtom(t *testing.T) {
	lattice := latmath.Mat3{
		{4, 0, 0},
		{0, 4, 0},
		{0, 0, 4},
	}

	c, err := cell.New(lattice, []latmath.Vec3{{0, 0, 0}}, []int{0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "cell should construct")

	ops, err := FindOperations(c, 1e-3, -1, 100)
	assert.Equal(t, nil, err, "operation search should succeed")
	assert.Equal(t, 48, ops.Len(), "single-atom simple cubic cell should have 48 space group operations")
}

func TestFindOperationsTwoAtomBasis(t *testing.T) {
	lattice := latmath.Mat3{
		{4, 0, 0},
		{0, 4, 0},
		{0, 0, 4},
	}

	c, err := cell.New(lattice, []latmath.Vec3{
		{0, 0, 0},
		{0.5, 0, 0},
	}, []int{0, 0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "cell should construct")

	ops, err := FindOperations(c, 1e-3, -1, 100)
	assert.Equal(t, nil, err, "operation search should succeed")
	assert.True(t, ops.Len() > 1, "a two-atom basis along one axis should still admit nontrivial symmetry")
}
