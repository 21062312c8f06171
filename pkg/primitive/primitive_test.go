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

package primitive

import (
	"testing"

	"github.com/latticeforge/gospg/pkg/cell"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/util/assert"
)

func TestTrimBodyCenteredCubic(t *testing.T) {
	conventional := latmath.Mat3{
		{4, 0, 0},
		{0, 4, 0},
		{0, 0, 4},
	}

	c, err := cell.New(conventional, []latmath.Vec3{
		{0, 0, 0},
		{0.5, 0.5, 0.5},
	}, []int{0, 0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "conventional BCC cell should construct")

	primitiveLattice := latmath.Mat3{
		{-2, 2, 2},
		{2, -2, 2},
		{2, 2, -2},
	}

	res, err := Trim(c, primitiveLattice, 1e-3, nil)
	assert.Equal(t, nil, err, "Trim should succeed on a BCC conventional cell")
	assert.Equal(t, 1, res.Cell.Size(), "primitive BCC cell should have one atom")
	assert.Equal(t, 2, len(res.Mapping), "mapping should cover every original atom")
}

func TestTrimRejectsNonIntegralBasisChange(t *testing.T) {
	conventional := latmath.Mat3{
		{4, 0, 0},
		{0, 4, 0},
		{0, 0, 4},
	}

	c, err := cell.New(conventional, []latmath.Vec3{{0, 0, 0}}, []int{0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "cell should construct")

	badLattice := latmath.Mat3{
		{3, 0, 0},
		{0, 4, 0},
		{0, 0, 4},
	}

	_, err = Trim(c, badLattice, 1e-3, nil)
	if err == nil {
		t.Fatalf("expected Trim to reject a non-integral change of basis")
	}
}
