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
package latmath

import (
	"testing"

	"github.com/latticeforge/gospg/pkg/util/assert"
)

func TestMat3DetInverse(t *testing.T) {
	m := Mat3{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}

	assert.InDelta(t, 24, m.Det(), 1e-9)

	inv, err := m.Inverse()
	if err != nil {
		t.Fatal(err)
	}

	assert.InDelta(t, 0.5, inv[0][0], 1e-9)
	assert.InDelta(t, 1.0/3, inv[1][1], 1e-9)
	assert.InDelta(t, 0.25, inv[2][2], 1e-9)
}

func TestMat3Metric(t *testing.T) {
	// Cubic lattice, a = 2.
	m := Mat3{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}
	metric := m.Metric()

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				assert.InDelta(t, 4, metric[i][j], 1e-9)
			} else {
				assert.InDelta(t, 0, metric[i][j], 1e-9)
			}
		}
	}
}

func TestNearestIntTiesAwayFromZero(t *testing.T) {
	assert.InDelta(t, 1, NearestInt(0.5), 1e-9)
	assert.InDelta(t, -1, NearestInt(-0.5), 1e-9)
	assert.InDelta(t, 2, NearestInt(1.5), 1e-9)
	assert.InDelta(t, 0, NearestInt(0.49), 1e-9)
}

func TestMod1(t *testing.T) {
	assert.InDelta(t, 0.3, Mod1(0.3), 1e-9)
	assert.InDelta(t, 0, Mod1(1.0), 1e-9)
	assert.InDelta(t, 0.1, Mod1(-0.9), 1e-9)
	// Mod1's result lies in [0, 1), so zero itself stays zero rather than
	// wrapping to 1.
	assert.InDelta(t, 0, Mod1(0.0), 1e-9)
}

func TestIsIntegerMatrix(t *testing.T) {
	m := Mat3{{1, 0, 0}, {0, 1.0000001, 0}, {0, 0, 1}}
	assert.True(t, IsIntegerMatrix(m, 1e-4))
	assert.False(t, IsIntegerMatrix(m, 1e-9))
}

func TestIntMat3DetMul(t *testing.T) {
	r := IntMat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	assert.Equal(t, 1, r.Det())

	sq := r.Mul(r)
	assert.Equal(t, IntMat3{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}}, sq)
}
