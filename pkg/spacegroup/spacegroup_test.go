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

package spacegroup

import (
	"testing"

	"github.com/latticeforge/gospg/pkg/halldb"
	"github.com/latticeforge/gospg/pkg/pointgroup"
	"github.com/latticeforge/gospg/pkg/util/assert"
)

func TestMatchTriclinicP1(t *testing.T) {
	e, ok := halldb.ByHallNumber(1)
	assert.True(t, ok, "Hall 1 should be present")

	ops := e.Expand(1e-5)

	pg, err := pointgroup.ByNumber(1)
	assert.Equal(t, nil, err, "point group 1 should exist")

	res, err := Match(halldb.Default, ops, pg, 1, 1e-5, 0)
	assert.Equal(t, nil, err, "P1 should match itself")
	assert.Equal(t, 1, res.Entry.HallNumber, "expected Hall number 1")
}

func TestMatchBodyCenteredCubic(t *testing.T) {
	e, ok := halldb.ByHallNumber(529)
	assert.True(t, ok, "Hall 529 should be present")

	ops := e.Expand(1e-5)

	pg, err := pointgroup.ByNumber(32)
	assert.Equal(t, nil, err, "point group 32 should exist")

	res, err := Match(halldb.Default, ops, pg, 2, 1e-5, 0)
	assert.Equal(t, nil, err, "Im-3m should match itself")
	assert.Equal(t, 529, res.Entry.HallNumber, "expected Hall number 529")
	assert.Equal(t, 229, res.Entry.SpaceGroupNumber, "expected space group 229")
}

func TestMatchForcedHallNumber(t *testing.T) {
	e, ok := halldb.ByHallNumber(2)
	assert.True(t, ok, "Hall 2 should be present")

	ops := e.Expand(1e-5)

	pg, err := pointgroup.ByNumber(2)
	assert.Equal(t, nil, err, "point group 2 should exist")

	res, err := Match(halldb.Default, ops, pg, 1, 1e-5, 2)
	assert.Equal(t, nil, err, "forced Hall 2 should match")
	assert.Equal(t, 2, res.Entry.HallNumber, "expected Hall number 2")
}

func TestMatchFailsOnWrongMultiplicity(t *testing.T) {
	e, ok := halldb.ByHallNumber(529)
	assert.True(t, ok, "Hall 529 should be present")

	ops := e.Expand(1e-5)

	pg, err := pointgroup.ByNumber(32)
	assert.Equal(t, nil, err, "point group 32 should exist")

	_, err = Match(halldb.Default, ops, pg, 1, 1e-5, 0)
	if err == nil {
		t.Fatalf("expected body-centered operation set to fail a primitive-only search")
	}
}

func TestMultiplicityRounds(t *testing.T) {
	assert.Equal(t, 2, Multiplicity(-1.9999999))
	assert.Equal(t, 4, Multiplicity(4.0))
}
