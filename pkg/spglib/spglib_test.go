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

package spglib

import (
	"testing"

	"github.com/latticeforge/gospg/pkg/cell"
	"github.com/latticeforge/gospg/pkg/halldb"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/magneticdb"
	"github.com/latticeforge/gospg/pkg/util/assert"
)

// orbitOf applies every operation of hallNumber's expanded generator set to
// seed and returns the deduplicated image positions: the standard way to
// build a structure that realizes a given space group exactly, rather than
// hand-guessing atom coordinates and hoping FindOperations recovers them.
func orbitOf(t *testing.T, hallNumber int, seed latmath.Vec3, tol float64) []latmath.Vec3 {
	t.Helper()

	e, ok := halldb.ByHallNumber(hallNumber)
	assert.True(t, ok, "Hall number should be present")

	ops := e.Expand(tol)

	var out []latmath.Vec3

	for _, op := range ops.Ops {
		image := latmath.ReduceFrac(op.Apply(seed), cell.AperiodicNone)

		dup := false

		for _, p := range out {
			if latmath.AlmostEqual(p, image, tol) {
				dup = true
				break
			}
		}

		if !dup {
			out = append(out, image)
		}
	}

	return out
}

func tetragonalLattice() latmath.Mat3 {
	return latmath.Mat3{
		{4, 0, 0},
		{0, 4, 0},
		{0, 0, 6},
	}
}

func triclinicLattice() latmath.Mat3 {
	return latmath.Mat3{
		{4, 0, 0},
		{0.3, 5, 0},
		{0.2, 0.4, 6},
	}
}

func cubicLattice() latmath.Mat3 {
	return latmath.Mat3{
		{4, 0, 0},
		{0, 4, 0},
		{0, 0, 4},
	}
}

func TestGetDatasetTriclinicP1(t *testing.T) {
	// Two atoms of different species: a single atom would sit on an
	// inversion centre and make the cell P-1.
	c, err := cell.New(triclinicLattice(), []latmath.Vec3{{0.1, 0.2, 0.3}, {0.45, 0.6, 0.8}}, []int{0, 1}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "cell should construct")

	d, err := GetDataset(c, 1e-3)
	assert.Equal(t, nil, err, "triclinic two-species cell should resolve to P1")
	assert.Equal(t, 1, d.HallNumber, "expected Hall number 1")
	assert.Equal(t, 1, d.SpacegroupNumber, "expected space group 1")
	assert.Equal(t, 1, d.Multiplicity, "P1 has one lattice point per cell")
}

func TestGetDatasetTriclinicPBar1(t *testing.T) {
	c, err := cell.New(triclinicLattice(), []latmath.Vec3{
		{0.3, 0.1, 0.2},
		{0.7, 0.9, 0.8},
	}, []int{0, 0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "inversion-related two-atom cell should construct")

	d, err := GetDataset(c, 1e-3)
	assert.Equal(t, nil, err, "inversion-symmetric cell should resolve to P-1")
	assert.Equal(t, 2, d.HallNumber, "expected Hall number 2")
	assert.Equal(t, 2, d.SpacegroupNumber, "expected space group 2")
}

func TestFindSpacegroupBodyCenteredCubic(t *testing.T) {
	c, err := cell.New(cubicLattice(), []latmath.Vec3{
		{0, 0, 0},
		{0.5, 0.5, 0.5},
	}, []int{0, 0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "body-centered cubic cell should construct")

	e, _, err := FindSpacegroup(c, 1e-3)
	assert.Equal(t, nil, err, "body-centered single-type cubic cell should match Im-3m")
	assert.Equal(t, 529, e.HallNumber, "expected Hall number 529")
	assert.Equal(t, 229, e.SpaceGroupNumber, "expected space group 229")
}

func TestFindSymmetrySimpleCubic(t *testing.T) {
	c, err := cell.New(cubicLattice(), []latmath.Vec3{{0, 0, 0}}, []int{0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "cell should construct")

	ops, err := FindSymmetry(c, 1e-3)
	assert.Equal(t, nil, err, "operation search should succeed")
	assert.Equal(t, 48, ops.Len(), "simple cubic single-atom cell has 48 operations")
}

func TestStandardizeBodyCenteredCubicToPrimitive(t *testing.T) {
	c, err := cell.New(cubicLattice(), []latmath.Vec3{
		{0, 0, 0},
		{0.5, 0.5, 0.5},
	}, []int{0, 0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "body-centered cubic cell should construct")

	prim, err := Standardize(c, 1e-3, WithToPrimitive())
	assert.Equal(t, nil, err, "standardizing to the primitive cell should succeed")
	assert.Equal(t, 1, prim.Size(), "a body-centered cell's primitive cell holds one atom")
}

func TestStandardizeTriclinicP1IsIdentity(t *testing.T) {
	c, err := cell.New(triclinicLattice(), []latmath.Vec3{{0.1, 0.2, 0.3}}, []int{0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "cell should construct")

	out, err := Standardize(c, 1e-3)
	assert.Equal(t, nil, err, "standardizing a P1 cell needs no centering change")
	assert.Equal(t, 1, out.Size(), "P1 standardization keeps one atom")
}

func TestFindMagneticSpacegroupTypeI(t *testing.T) {
	positions := orbitOf(t, 419, latmath.Vec3{0.12, 0.34, 0.07}, 1e-5)
	assert.True(t, len(positions) > 1, "a generic orbit under Hall 419 should have more than one image")

	types := make([]int, len(positions))
	tensors := make([]cell.SiteTensor, len(positions))

	for i := range positions {
		tensors[i] = cell.Scalar(1)
	}

	c, err := cell.NewMagnetic(tetragonalLattice(), positions, types, tensors, cell.AperiodicNone)
	assert.Equal(t, nil, err, "uniformly ferromagnetic rutile-like cell should construct")

	entry, err := FindMagneticSpacegroup(c, 1e-3)
	assert.Equal(t, nil, err, "a uniform scalar moment should admit every operation as non-reversing")
	assert.Equal(t, magneticdb.TypeI, entry.Type, "expected type I")
	assert.Equal(t, 1155, entry.UNINumber, "expected UNI 1155")
}

func TestFindSpacegroupWithCollinearSpinMatchesFindMagneticSpacegroup(t *testing.T) {
	positions := orbitOf(t, 419, latmath.Vec3{0.12, 0.34, 0.07}, 1e-5)

	types := make([]int, len(positions))
	tensors := make([]cell.SiteTensor, len(positions))

	for i := range positions {
		tensors[i] = cell.Scalar(1)
	}

	c, err := cell.NewMagnetic(tetragonalLattice(), positions, types, tensors, cell.AperiodicNone)
	assert.Equal(t, nil, err, "cell should construct")

	want, err := FindMagneticSpacegroup(c, 1e-3)
	assert.Equal(t, nil, err, "FindMagneticSpacegroup should succeed")

	got, err := FindSpacegroupWithCollinearSpin(c, 1e-3)
	assert.Equal(t, nil, err, "FindSpacegroupWithCollinearSpin should succeed")
	assert.Equal(t, want.UNINumber, got.UNINumber, "the collinear-spin wrapper should agree with the general path")
}

func TestFindMagneticSpacegroupRequiresTensors(t *testing.T) {
	c, err := cell.New(cubicLattice(), []latmath.Vec3{{0, 0, 0}}, []int{0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "cell should construct")

	_, err = FindMagneticSpacegroup(c, 1e-3)
	if err == nil {
		t.Fatalf("expected FindMagneticSpacegroup to fail on a cell without site tensors")
	}
}

func TestFindMagneticSpacegroupUncatalogued(t *testing.T) {
	positions := []latmath.Vec3{
		{0.3, 0.1, 0.2},
		{0.7, 0.9, 0.8},
	}

	tensors := []cell.SiteTensor{cell.Scalar(1), cell.Scalar(1)}

	c, err := cell.NewMagnetic(triclinicLattice(), positions, []int{0, 0}, tensors, cell.AperiodicNone)
	assert.Equal(t, nil, err, "inversion-symmetric cell should construct")

	_, err = FindMagneticSpacegroup(c, 1e-3)
	if err == nil {
		t.Fatalf("expected FindMagneticSpacegroup to fail: magneticdb carries no Hall 2 entry")
	}
}
