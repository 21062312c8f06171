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

package latreduce

import (
	"testing"

	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/util/assert"
)

func TestDelaunayAlreadyReduced(t *testing.T) {
	lattice := latmath.Mat3{
		{4, 0, 0},
		{0, 5, 0},
		{0, 0, 6},
	}

	res, err := Delaunay(lattice, 1e-5, 1000)
	assert.Equal(t, nil, err, "Delaunay errored on an orthogonal cell")
	assert.True(t, res.Reduced.Det() > 0, "reduced lattice should be right-handed")
}

func TestDelaunayObliqueCell(t *testing.T) {
	// A centered-looking oblique cell whose Delaunay reduction should
	// recover near-orthogonal vectors.
	lattice := latmath.Mat3{
		{5, 5, 0},
		{0, 5, 5},
		{0, 0, 5},
	}

	res, err := Delaunay(lattice, 1e-5, 1000)
	assert.Equal(t, nil, err, "Delaunay should converge")

	d := latmath.RoundToInt(res.ToReduced).Det()
	if d != 1 && d != -1 {
		t.Fatalf("expected |det T| = 1, got %d", d)
	}
}

func TestDelaunay2DInPlane(t *testing.T) {
	a := latmath.Vec3{6, 1, 0}
	b := latmath.Vec3{1, 6, 0}

	ra, rb, err := Delaunay2D(a, b, 1e-5, 1000)
	assert.Equal(t, nil, err, "Delaunay2D should converge")

	if ra.Cross(rb).SqNorm() == 0 {
		t.Fatalf("reduced in-plane pair must remain non-collinear")
	}
}

func TestNiggliReduceCubic(t *testing.T) {
	lattice := latmath.Mat3{
		{5, 0, 0},
		{0, 5, 0},
		{0, 0, 5},
	}

	reduced, err := NiggliReduce(lattice, 1e-5, 1000, -1, nil)
	assert.Equal(t, nil, err, "NiggliReduce should converge on a cubic cell")
	assert.InDelta(t, 25, reduced.Metric()[0][0], 1e-6, "A parameter should be unchanged for an already-reduced cubic cell")
	assert.InDelta(t, 25, reduced.Metric()[1][1], 1e-6, "B parameter should be unchanged for an already-reduced cubic cell")
	assert.InDelta(t, 25, reduced.Metric()[2][2], 1e-6, "C parameter should be unchanged for an already-reduced cubic cell")
}

func TestNiggliReduceOrdersLengths(t *testing.T) {
	// a > b > c on input; Niggli reduction must re-sort so A <= B <= C.
	lattice := latmath.Mat3{
		{9, 0, 0},
		{0, 5, 0},
		{0, 0, 3},
	}

	reduced, err := NiggliReduce(lattice, 1e-5, 1000, -1, nil)
	assert.Equal(t, nil, err, "NiggliReduce should converge")

	g := reduced.Metric()
	if !(g[0][0] <= g[1][1]+1e-6 && g[1][1] <= g[2][2]+1e-6) {
		t.Fatalf("expected A <= B <= C after reduction, got A=%v B=%v C=%v", g[0][0], g[1][1], g[2][2])
	}
}

func TestNiggliReduceLayerKeepsAperiodicAxis(t *testing.T) {
	// Aperiodic axis is b (index 1); reduction must not swap it out of
	// the basis even though its length would otherwise sort elsewhere.
	lattice := latmath.Mat3{
		{4, 0, 0},
		{0, 20, 0},
		{0, 0, 4},
	}

	reduced, err := NiggliReduce(lattice, 1e-5, 1000, 1, nil)
	assert.Equal(t, nil, err, "NiggliReduce should converge for a layer cell")
	assert.True(t, reduced.Det() != 0, "reduced layer lattice must remain non-degenerate")
}
