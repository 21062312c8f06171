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
	"testing"

	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/util/assert"
)

func TestConventionalBasisTriclinicIsIdentity(t *testing.T) {
	pg, err := ByNumber(1)
	assert.Equal(t, nil, err, "point group 1 should exist")

	basis, err := ConventionalBasis(latmath.Identity3, []latmath.IntMat3{latmath.IdentityInt3}, pg, 1e-5, 20)
	assert.Equal(t, nil, err, "triclinic basis should always succeed")
	assert.Equal(t, latmath.IdentityInt3, basis, "expected identity basis change")
}

func TestConventionalBasisOrthorhombicSortsByLength(t *testing.T) {
	pg, err := ByNumber(6) // 222, D2
	assert.Equal(t, nil, err, "point group 6 should exist")

	// A cuboid with a < b < c carries three mutually perpendicular 2-folds
	// along the coordinate axes.
	lattice := latmath.Mat3{{2, 0, 0}, {0, 3, 0}, {0, 0, 5}}

	c2x := latmath.IntMat3{{1, 0, 0}, {0, -1, 0}, {0, 0, -1}}
	c2y := latmath.IntMat3{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}}
	c2z := latmath.IntMat3{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}}

	basis, err := ConventionalBasis(lattice, []latmath.IntMat3{latmath.IdentityInt3, c2x, c2y, c2z}, pg, 1e-5, 20)
	assert.Equal(t, nil, err, "orthorhombic basis should be found")

	// The shortest axis (x, length 2) should become column 0.
	assert.Equal(t, 1, iabs(basis[0][0]), "shortest axis x should become column 0")
	assert.Equal(t, 1, basis.Det(), "basis change should be unimodular for a primitive orthorhombic cell")
}

func TestConventionalBasisTetragonalAvoidsFChoice(t *testing.T) {
	pg, err := ByNumber(9) // 4, C4
	assert.Equal(t, nil, err, "point group 9 should exist")

	lattice := latmath.Mat3{{3, 0, 0}, {0, 3, 0}, {0, 0, 4}}
	c4z := latmath.IntMat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}

	basis, err := ConventionalBasis(lattice, []latmath.IntMat3{latmath.IdentityInt3, c4z}, pg, 1e-5, 20)
	assert.Equal(t, nil, err, "tetragonal basis should be found")
	assert.True(t, basis.Det() > 0 && basis.Det() < 4, "det(T) should satisfy 0 < det < 4")
}
