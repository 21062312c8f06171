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

package wyckoff

import (
	"testing"

	"github.com/latticeforge/gospg/pkg/halldb"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/util/assert"
	"github.com/latticeforge/gospg/pkg/wyckoffdb"
)

func TestAssignBodyCenteredCubicSharesOrbit(t *testing.T) {
	e, ok := halldb.ByHallNumber(529)
	assert.True(t, ok, "Hall 529 should be present")

	ops := e.Expand(1e-5)

	positions := []latmath.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}

	assignments, err := Assign(positions, ops, wyckoffdb.Default, 529, 1e-5)
	assert.Equal(t, nil, err, "assignment should succeed")
	assert.Equal(t, 2, len(assignments), "two atoms in, two assignments out")
	assert.Equal(t, 0, assignments[0].EquivalentAtom, "atom 0 represents its own orbit")
	assert.Equal(t, 0, assignments[1].EquivalentAtom, "atom 1 shares atom 0's orbit under body centering")
	assert.Equal(t, assignments[0].OrbitIndex, assignments[1].OrbitIndex, "both atoms belong to the same orbit")
	assert.Equal(t, byte('a'), assignments[0].WyckoffLetter, "BCC site sits at the 2a position")
	assert.Equal(t, byte('a'), assignments[1].WyckoffLetter, "BCC site sits at the 2a position")
}

func TestAssignTriclinicSinglePosition(t *testing.T) {
	e, ok := halldb.ByHallNumber(1)
	assert.True(t, ok, "Hall 1 should be present")

	ops := e.Expand(1e-5)

	positions := []latmath.Vec3{{0.1, 0.2, 0.3}}

	assignments, err := Assign(positions, ops, wyckoffdb.Default, 1, 1e-5)
	assert.Equal(t, nil, err, "assignment should succeed")
	assert.Equal(t, 1, len(assignments), "one atom in, one assignment out")
	assert.Equal(t, byte('a'), assignments[0].WyckoffLetter, "P1 general position is 1a")
}
