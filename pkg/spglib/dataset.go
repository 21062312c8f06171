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
	"github.com/latticeforge/gospg/pkg/cell"
	"github.com/latticeforge/gospg/pkg/halldb"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/pointgroup"
	"github.com/latticeforge/gospg/pkg/symmop"
)

// Dataset is the full symmetry description of a cell, the Go analogue of
// original_source/src/spglib.h's SpglibDataset: every field that struct
// exposes as a flat C array here is an owned Go slice, and the transform
// pair (Transformation, OriginShift) together with Operations/PrimitiveCell
// cover the original's transformation_matrix/origin_shift/rotations+
// translations/primitive_lattice quadruplet.
type Dataset struct {
	SpacegroupNumber   int
	HallNumber         int
	International      string
	InternationalLong  string
	Schoenflies        string
	Choice             string
	PointGroupNumber   int
	PointGroupSymbol   string
	Multiplicity       int
	// Transformation is the axis relabeling pointgroup.ConventionalBasis
	// computes from the input cell's own lattice and rotations: the
	// conventional lattice is Lattice.Mul(Transformation). OriginShift is
	// the translation spacegroup.Match found between the input operation
	// set and the matched Hall entry's conventional origin.
	Transformation latmath.IntMat3
	OriginShift    latmath.Vec3
	// Operations is the full symmetry-operation set, expressed in the
	// input cell's own basis.
	Operations *symmop.Set
	// Wyckoffs holds one letter per input atom.
	Wyckoffs []byte
	// IdealPositions holds each input atom's position snapped onto its
	// exact symmetry-consistent site, in the input cell's own fractional
	// coordinates.
	IdealPositions []latmath.Vec3
	// EquivalentAtoms maps each input atom index to the index of its
	// orbit's representative atom.
	EquivalentAtoms []int
	// CrystallographicOrbits maps each input atom index to a dense orbit
	// number (0, 1, 2, ...), distinct from EquivalentAtoms' representative
	// indexing.
	CrystallographicOrbits []int
	// PrimitiveCell is the cell trimmed down to one lattice point per
	// centering (equal to the input cell when Multiplicity == 1).
	PrimitiveCell *cell.Cell
	// MappingToPrimitive maps each input atom index to its index in
	// PrimitiveCell.
	MappingToPrimitive []int
	// StdLattice is the standardized cell's basis (columns a, b, c),
	// rebuilt into the canonical crystallographic Cartesian frame: a along
	// x, b in the xy-plane, c completing a right-handed frame.
	StdLattice latmath.Mat3
	// StdPositions holds each input atom's ideal position re-expressed in
	// the standardized cell's own fractional coordinates (same atom count
	// and ordering as the input cell: this implementation's standardization
	// never introduces or removes centering, see Standardize).
	StdPositions []latmath.Vec3
	// StdTypes mirrors the input cell's own atom types, in StdPositions'
	// ordering.
	StdTypes []int
	// StdRotationMatrix is the rigid rotation R such that
	// StdLattice = R . (Lattice . Transformation), the matrix aligning the
	// input cell's conventional-basis Cartesian embedding to the
	// standardized cell's canonical Cartesian embedding.
	StdRotationMatrix latmath.Mat3
	// StdMappingToPrimitive maps each standardized-cell atom index to its
	// index in PrimitiveCell.
	StdMappingToPrimitive []int
	// PrimitiveToStd is StdMappingToPrimitive's reverse: for each
	// PrimitiveCell atom index, the list of standardized-cell atom indices
	// that map to it.
	PrimitiveToStd [][]int
	// SiteSymmetrySymbols holds one Hermann-Mauguin site-symmetry symbol
	// (up to 6 characters) per input atom, parallel to Wyckoffs.
	SiteSymmetrySymbols []string
}

// fillEntry copies the identifying strings and numbers out of a halldb
// Entry into a Dataset, together with the point group, origin shift,
// transformation and multiplicity.
func (d *Dataset) fillEntry(e halldb.Entry, pg pointgroup.Type, shift latmath.Vec3, transform latmath.IntMat3, multiplicity int) {
	d.SpacegroupNumber = e.SpaceGroupNumber
	d.HallNumber = e.HallNumber
	d.International = e.International
	d.InternationalLong = e.InternationalLong
	d.Schoenflies = e.Schoenflies
	d.Choice = e.Choice
	d.PointGroupNumber = pg.Number
	d.PointGroupSymbol = pg.Symbol
	d.Multiplicity = multiplicity
	d.Transformation = transform
	d.OriginShift = shift
}
