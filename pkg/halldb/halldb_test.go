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

package halldb

import (
	"testing"

	"github.com/latticeforge/gospg/pkg/util/assert"
)

func TestByHallNumberFound(t *testing.T) {
	e, ok := ByHallNumber(529)
	assert.True(t, ok, "Hall 529 should be present")
	assert.Equal(t, 229, e.SpaceGroupNumber, "Hall 529 is space group 229")
}

func TestByHallNumberMissing(t *testing.T) {
	_, ok := ByHallNumber(999999)
	if ok {
		t.Fatalf("expected Hall 999999 to be absent from the representative table")
	}
}

func TestBySpaceGroupNumberReturnsSettings(t *testing.T) {
	entries := BySpaceGroupNumber(1)
	assert.True(t, len(entries) >= 1, "space group 1 should have at least one Hall entry")
}

func TestExpandP1IsTrivial(t *testing.T) {
	e, ok := ByHallNumber(1)
	assert.True(t, ok, "Hall 1 should be present")

	set := e.Expand(1e-5)
	assert.Equal(t, 1, set.Len(), "P1 has a single operation")
}

func TestExpandPMinus1HasTwoOperations(t *testing.T) {
	e, ok := ByHallNumber(2)
	assert.True(t, ok, "Hall 2 should be present")

	set := e.Expand(1e-5)
	assert.Equal(t, 2, set.Len(), "P-1 has the identity and inversion")
}

func TestExpandBodyCenteredCubicHas96Operations(t *testing.T) {
	e, ok := ByHallNumber(529)
	assert.True(t, ok, "Hall 529 should be present")

	set := e.Expand(1e-5)
	assert.Equal(t, 96, set.Len(), "Im-3m has 48 point operations doubled by body centering")
}

func TestExpandFaceCenteredCubicHas192Operations(t *testing.T) {
	e, ok := ByHallNumber(525)
	assert.True(t, ok, "Hall 525 should be present")

	set := e.Expand(1e-5)
	assert.Equal(t, 192, set.Len(), "Fm-3m has 48 point operations times 4 centering translations")
}

func TestCenteringTranslationsCounts(t *testing.T) {
	assert.Equal(t, 1, len(Body.Translations()), "body centering adds one translation")
	assert.Equal(t, 3, len(Face.Translations()), "face centering adds three translations")
	assert.Equal(t, 0, len(Primitive.Translations()), "primitive centering adds no translation")
}
