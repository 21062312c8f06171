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

package magnetic

import (
	"testing"

	"github.com/latticeforge/gospg/pkg/cell"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/magneticdb"
	"github.com/latticeforge/gospg/pkg/symmop"
	"github.com/latticeforge/gospg/pkg/util/assert"
)

var inversion = symmop.Operation{R: latmath.IntMat3{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}}}

func TestAugmentAndClassifyTypeI(t *testing.T) {
	c, err := cell.NewMagnetic(
		latmath.Identity3,
		[]latmath.Vec3{{0, 0, 0}},
		[]int{0},
		[]cell.SiteTensor{cell.Scalar(1)},
		cell.AperiodicNone,
	)
	assert.Equal(t, nil, err, "single-atom magnetic cell should build")

	ops := &symmop.Set{Ops: []symmop.Operation{symmop.Identity, inversion}}

	mset, err := Augment(c, ops, 1e-5)
	assert.Equal(t, nil, err, "every operation fixes the lone atom's scalar tensor")
	assert.Equal(t, 2, mset.Len(), "both identity and inversion should be admitted")

	for _, op := range mset.Ops {
		assert.False(t, op.TimeReversal, "a self-mapped atom's unchanged tensor admits operations as non-reversing")
	}

	assert.Equal(t, magneticdb.TypeI, Classify(mset, 1e-5), "no reversing operation means type I")
}

func TestAugmentAndClassifyTypeIII(t *testing.T) {
	c, err := cell.NewMagnetic(
		latmath.Identity3,
		[]latmath.Vec3{{0.25, 0, 0}, {0.75, 0, 0}},
		[]int{0, 0},
		[]cell.SiteTensor{cell.Scalar(1), cell.Scalar(-1)},
		cell.AperiodicNone,
	)
	assert.Equal(t, nil, err, "two-atom antiferromagnetic cell should build")

	ops := &symmop.Set{Ops: []symmop.Operation{symmop.Identity, inversion}}

	mset, err := Augment(c, ops, 1e-5)
	assert.Equal(t, nil, err, "inversion should be admitted as time-reversing")
	assert.Equal(t, 2, mset.Len(), "both operations should be admitted")

	reversingCount := 0

	for _, op := range mset.Ops {
		if op.TimeReversal {
			reversingCount++
			assert.Equal(t, inversion.R, op.R, "the reversing operation should be the inversion")
		}
	}

	assert.Equal(t, 1, reversingCount, "exactly the inversion should carry the time-reversal bit")
	assert.Equal(t, magneticdb.TypeIII, Classify(mset, 1e-5), "an antitranslation-free reversing inversion is type III")
}

func TestClassifyTypeII(t *testing.T) {
	// A pure 1' coset: every reversing operation re-decorates a spatial
	// operation already present in the non-reversing subgroup, so FSG and
	// XSG have the same size.
	mset := &symmop.MagneticSet{Ops: []symmop.MagneticOperation{
		{Operation: symmop.Identity, TimeReversal: false},
		{Operation: symmop.Identity, TimeReversal: true},
	}}

	assert.Equal(t, magneticdb.TypeII, Classify(mset, 1e-5), "a pure time-reversal coset with zero translation is type II")
}

func TestClassifyTypeIV(t *testing.T) {
	// An identity-rotation reversing operation whose translation is a
	// genuine anti-translation (not a lattice vector) doubles FSG over XSG
	// instead of merely re-decorating the identity.
	antitranslation := symmop.Operation{R: latmath.IdentityInt3, T: latmath.Vec3{0.5, 0, 0}}

	mset := &symmop.MagneticSet{Ops: []symmop.MagneticOperation{
		{Operation: symmop.Identity, TimeReversal: false},
		{Operation: antitranslation, TimeReversal: true},
	}}

	assert.Equal(t, magneticdb.TypeIV, Classify(mset, 1e-5), "an identity-rotation anti-translation coset is type IV")
}

func TestIdentifyUNI(t *testing.T) {
	typeI := &symmop.MagneticSet{Ops: []symmop.MagneticOperation{
		{Operation: symmop.Identity, TimeReversal: false},
		{Operation: inversion, TimeReversal: false},
	}}

	e, err := IdentifyUNI(magneticdb.Default, typeI, 419, 1e-5)
	assert.Equal(t, nil, err, "type I entry for Hall 419 should be catalogued")
	assert.Equal(t, 1155, e.UNINumber, "expected UNI 1155")

	typeIII := &symmop.MagneticSet{Ops: []symmop.MagneticOperation{
		{Operation: symmop.Identity, TimeReversal: false},
		{Operation: inversion, TimeReversal: true},
	}}

	e, err = IdentifyUNI(magneticdb.Default, typeIII, 419, 1e-5)
	assert.Equal(t, nil, err, "type III entry for Hall 419 should be catalogued")
	assert.Equal(t, 1158, e.UNINumber, "expected UNI 1158")
}

func TestAugmentRequiresTensors(t *testing.T) {
	c, err := cell.New(latmath.Identity3, []latmath.Vec3{{0, 0, 0}}, []int{0}, cell.AperiodicNone)
	assert.Equal(t, nil, err, "plain cell should build")

	_, err = Augment(c, &symmop.Set{Ops: []symmop.Operation{symmop.Identity}}, 1e-5)
	if err == nil {
		t.Fatalf("expected Augment to fail on a cell without site tensors")
	}
}
