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

func TestByNumberCubicM3m(t *testing.T) {
	// m-3m (Oh, #32) is looked up by number; its symbol and holohedry are
	// checked against the table.
	pg, err := ByNumber(32)
	assert.Equal(t, nil, err, "point group 32 should exist")
	assert.Equal(t, "m-3m", pg.Symbol, "expected m-3m symbol")
	assert.Equal(t, Cubic, pg.Holohedry, "expected cubic holohedry")
}

func TestClassifyIdentityOnly(t *testing.T) {
	pg, err := Classify([]latmath.IntMat3{latmath.IdentityInt3})
	assert.Equal(t, nil, err, "identity-only rotation set should classify")
	assert.Equal(t, "1", pg.Symbol, "expected point group 1 (C1)")
}

func TestClassifyIdentityAndInversion(t *testing.T) {
	inversion := latmath.IntMat3{
		{-1, 0, 0},
		{0, -1, 0},
		{0, 0, -1},
	}

	pg, err := Classify([]latmath.IntMat3{latmath.IdentityInt3, inversion})
	assert.Equal(t, nil, err, "should classify")
	assert.Equal(t, "-1", pg.Symbol, "expected point group -1 (Ci)")
}

func TestRotationTypeRejectsNonUnimodular(t *testing.T) {
	bad := latmath.IntMat3{
		{2, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}

	if rotationType(bad) != -1 {
		t.Fatalf("expected non-unimodular matrix to be rejected")
	}
}
