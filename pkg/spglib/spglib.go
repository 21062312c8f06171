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

// Package spglib is the top-level assembly: it strings together every
// other package in this module into the handful of entry points a caller
// actually wants (spec.md §4.10) - find the space group of a cell, build
// its full dataset, standardize it to the conventional setting, and
// identify a collinear-spin cell's magnetic space group.
//
// Grounded on original_source/src/spglib.c's spg_get_dataset /
// spg_standardize_cell / spg_get_symmetry driver functions, which call
// down into exactly the sequence of collaborators this package calls:
// symmetry search, point-group classification, Hall-database matching,
// Wyckoff assignment and primitive-cell trimming.
package spglib

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/latticeforge/gospg/pkg/cell"
	"github.com/latticeforge/gospg/pkg/halldb"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/magnetic"
	"github.com/latticeforge/gospg/pkg/magneticdb"
	"github.com/latticeforge/gospg/pkg/pointgroup"
	"github.com/latticeforge/gospg/pkg/primitive"
	"github.com/latticeforge/gospg/pkg/spacegroup"
	"github.com/latticeforge/gospg/pkg/spgerr"
	"github.com/latticeforge/gospg/pkg/symmetry"
	"github.com/latticeforge/gospg/pkg/symmop"
	"github.com/latticeforge/gospg/pkg/wyckoff"
	"github.com/latticeforge/gospg/pkg/wyckoffdb"
)

// GetDataset runs the full symmetry-search pipeline over c and returns its
// Dataset. symprec is the Cartesian distance tolerance; angle tolerance and
// every other tunable are threaded through opts.
func GetDataset(c *cell.Cell, symprec float64, opts ...Option) (*Dataset, error) {
	return getDataset(c, symprec, nil, opts...)
}

// GetDatasetWithLogger is GetDataset, routing the primitive-trimming step's
// diagnostic logging to log instead of logrus.StandardLogger().
func GetDatasetWithLogger(c *cell.Cell, symprec float64, log logrus.FieldLogger, opts ...Option) (*Dataset, error) {
	return getDataset(c, symprec, log, opts...)
}

func getDataset(c *cell.Cell, symprec float64, log logrus.FieldLogger, opts ...Option) (*Dataset, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	cfg := resolve(opts...)

	ops, err := symmetry.FindOperations(c, symprec, cfg.AngleTolerance, cfg.LoopAttempts)
	if err != nil {
		return nil, fmt.Errorf("spglib: %w", err)
	}

	rotations := dedupRotations(ops)

	pg, err := pointgroup.Classify(rotations)
	if err != nil {
		return nil, fmt.Errorf("spglib: %w", err)
	}

	translations := symmop.PureTranslations(ops, symprec)
	multiplicity := len(translations)

	res, err := spacegroup.Match(halldb.Default, ops, pg, multiplicity, symprec, cfg.HallNumber)
	if err != nil {
		return nil, fmt.Errorf("spglib: %w", err)
	}

	basisT, err := pointgroup.ConventionalBasis(c.Lattice, rotations, pg, symprec, cfg.LoopAttempts)
	if err != nil {
		return nil, fmt.Errorf("spglib: %w", err)
	}

	assignments, err := wyckoff.Assign(c.Positions, ops, wyckoffdb.Default, res.Entry.HallNumber, symprec)
	if err != nil {
		return nil, fmt.Errorf("spglib: %w", err)
	}

	wyckoffs := make([]byte, len(assignments))
	equivalent := make([]int, len(assignments))
	orbits := make([]int, len(assignments))
	ideal := make([]latmath.Vec3, len(assignments))
	siteSymmetrySymbols := make([]string, len(assignments))

	for i, a := range assignments {
		wyckoffs[i] = a.WyckoffLetter
		equivalent[i] = a.EquivalentAtom
		orbits[i] = a.OrbitIndex
		ideal[i] = a.Position
		siteSymmetrySymbols[i] = a.SiteSymmetrySymbol
	}

	primCell, mapping, err := primitiveCellOf(c, translations, symprec, log)
	if err != nil {
		return nil, fmt.Errorf("spglib: %w", err)
	}

	stdLattice, stdRotation, stdPositions, err := standardizedCell(c, basisT, ideal)
	if err != nil {
		return nil, fmt.Errorf("spglib: %w", err)
	}

	stdTypes := make([]int, len(c.Types))
	copy(stdTypes, c.Types)

	stdMapping := make([]int, len(mapping))
	copy(stdMapping, mapping)

	d := &Dataset{
		Operations:             ops,
		Wyckoffs:               wyckoffs,
		IdealPositions:         ideal,
		EquivalentAtoms:        equivalent,
		CrystallographicOrbits: orbits,
		PrimitiveCell:          primCell,
		MappingToPrimitive:     mapping,
		StdLattice:             stdLattice,
		StdPositions:           stdPositions,
		StdTypes:               stdTypes,
		StdRotationMatrix:      stdRotation,
		StdMappingToPrimitive:  stdMapping,
		PrimitiveToStd:         reverseMapping(stdMapping, primCell.Size()),
		SiteSymmetrySymbols:    siteSymmetrySymbols,
	}
	d.fillEntry(res.Entry, pg, res.OriginShift, basisT, multiplicity)

	return d, nil
}

// standardizedCell rebuilds the standardized lattice, its rigid rotation
// from the conventional-basis Cartesian frame, and every ideal position
// re-expressed in the standardized cell's own fractional coordinates.
// Grounded on original_source/src/refinement.c's standardization pass,
// which performs the same axis relabeling (here basisT, computed by
// pointgroup.ConventionalBasis) followed by a rigid reorientation into the
// canonical Cartesian frame.
func standardizedCell(c *cell.Cell, basisT latmath.IntMat3, ideal []latmath.Vec3) (latmath.Mat3, latmath.Mat3, []latmath.Vec3, error) {
	newLattice := c.Lattice.Mul(basisT.ToMat3())
	stdLattice := latmath.CanonicalOrientation(newLattice)
	stdRotation := latmath.RigidRotation(newLattice, stdLattice)

	tInv, err := basisT.ToMat3().Inverse()
	if err != nil {
		return latmath.Mat3{}, latmath.Mat3{}, nil, fmt.Errorf("conventional basis transform is singular: %w", err)
	}

	positions := make([]latmath.Vec3, len(ideal))
	for i, p := range ideal {
		positions[i] = latmath.ReduceFrac(tInv.MulVec(p), c.AperiodicAxis)
	}

	return stdLattice, stdRotation, positions, nil
}

// reverseMapping inverts mapping (each input index's primitive-cell index)
// into, for each of the n primitive atoms, the list of input indices that
// map to it.
func reverseMapping(mapping []int, n int) [][]int {
	out := make([][]int, n)
	for i, p := range mapping {
		out[p] = append(out[p], i)
	}

	return out
}

// FindSpacegroup is the narrow entry point: just the matched Hall entry and
// the origin shift that brings c's operations into coincidence with it.
func FindSpacegroup(c *cell.Cell, symprec float64, opts ...Option) (halldb.Entry, latmath.Vec3, error) {
	d, err := GetDataset(c, symprec, opts...)
	if err != nil {
		return halldb.Entry{}, latmath.Vec3{}, err
	}

	e, ok := halldb.ByHallNumber(d.HallNumber)
	if !ok {
		return halldb.Entry{}, latmath.Vec3{}, fmt.Errorf("spglib: %w: Hall number %d missing from database", spgerr.ErrSpacegroupSearchFailed, d.HallNumber)
	}

	return e, d.OriginShift, nil
}

// FindSymmetry is the narrow entry point over just the operation search:
// every symmetry operation of c, without the space-group/Wyckoff matching
// GetDataset also does.
func FindSymmetry(c *cell.Cell, symprec float64, opts ...Option) (*symmop.Set, error) {
	cfg := resolve(opts...)

	ops, err := symmetry.FindOperations(c, symprec, cfg.AngleTolerance, cfg.LoopAttempts)
	if err != nil {
		return nil, fmt.Errorf("spglib: %w", err)
	}

	return ops, nil
}

// FindMagneticSpacegroup identifies the magnetic space group of a cell
// whose site tensors are collinear (scalar) or vector magnetic moments: it
// runs the ordinary (non-spin) symmetry search to get the candidate
// operation set and its matched Hall number, then asks pkg/magnetic to
// decorate that set with time reversal and classify it.
func FindMagneticSpacegroup(c *cell.Cell, symprec float64, opts ...Option) (magneticdb.Entry, error) {
	if !c.HasTensors() {
		return magneticdb.Entry{}, fmt.Errorf("spglib: %w: cell carries no site tensors", spgerr.ErrSymmetryOperationSearchFailed)
	}

	cfg := resolve(opts...)

	ops, err := symmetry.FindOperations(c, symprec, cfg.AngleTolerance, cfg.LoopAttempts)
	if err != nil {
		return magneticdb.Entry{}, fmt.Errorf("spglib: %w", err)
	}

	rotations := dedupRotations(ops)

	pg, err := pointgroup.Classify(rotations)
	if err != nil {
		return magneticdb.Entry{}, fmt.Errorf("spglib: %w", err)
	}

	translations := symmop.PureTranslations(ops, symprec)

	res, err := spacegroup.Match(halldb.Default, ops, pg, len(translations), symprec, cfg.HallNumber)
	if err != nil {
		return magneticdb.Entry{}, fmt.Errorf("spglib: %w", err)
	}

	mset, err := magnetic.Augment(c, ops, cfg.MagSymprec)
	if err != nil {
		return magneticdb.Entry{}, fmt.Errorf("spglib: %w", err)
	}

	entry, err := magnetic.IdentifyUNI(magneticdb.Default, mset, res.Entry.HallNumber, symprec)
	if err != nil {
		return magneticdb.Entry{}, fmt.Errorf("spglib: %w", err)
	}

	return entry, nil
}

// FindSpacegroupWithCollinearSpin is a thin convenience wrapper over
// FindMagneticSpacegroup, kept under the original's own name
// (original_source/src/spglib.h's spg_get_symmetry_with_collinear_spin) for
// callers whose site tensors are specifically collinear (scalar) spins
// rather than general vector moments. It does not duplicate any logic: a
// collinear-spin cell is exactly the Scalar tensor-rank case
// FindMagneticSpacegroup already handles.
func FindSpacegroupWithCollinearSpin(c *cell.Cell, symprec float64, opts ...Option) (magneticdb.Entry, error) {
	return FindMagneticSpacegroup(c, symprec, opts...)
}

// Standardize rebuilds c in its conventional setting. By default this
// snaps every atom onto its exact Wyckoff position (disable with
// WithNoIdealize) in the axis-relabeled conventional cell
// ConventionalBasis computes; WithToPrimitive instead returns the trimmed
// primitive cell.
//
// Outside WithToPrimitive, only the |det T| == 1 case (a pure axis
// relabeling, no centering gained or lost) is supported; a transformation
// that would introduce or remove centering returns
// spgerr.ErrCellStandardizationFailed, since building the extra centering
// copies is out of scope here (see DESIGN.md).
func Standardize(c *cell.Cell, symprec float64, opts ...Option) (*cell.Cell, error) {
	cfg := resolve(opts...)

	d, err := GetDataset(c, symprec, opts...)
	if err != nil {
		return nil, err
	}

	if cfg.ToPrimitive {
		return d.PrimitiveCell.Clone(), nil
	}

	det := d.Transformation.Det()
	if det != 1 && det != -1 {
		return nil, fmt.Errorf("spglib: %w: standardization needs a centering change (|det T| = %d)", spgerr.ErrCellStandardizationFailed, det)
	}

	tInv, err := d.Transformation.ToMat3().Inverse()
	if err != nil {
		return nil, fmt.Errorf("spglib: %w: transformation is singular", spgerr.ErrCellStandardizationFailed)
	}

	source := c.Positions
	if !cfg.NoIdealize {
		source = d.IdealPositions
	}

	newLattice := c.Lattice.Mul(d.Transformation.ToMat3())

	positions := make([]latmath.Vec3, c.Size())
	for i, p := range source {
		positions[i] = latmath.ReduceFrac(tInv.MulVec(p), c.AperiodicAxis)
	}

	if c.HasTensors() {
		return cell.NewMagnetic(newLattice, positions, c.Types, c.Tensors, c.AperiodicAxis)
	}

	return cell.New(newLattice, positions, c.Types, c.AperiodicAxis)
}

// dedupRotations collects the distinct rotation parts of ops, in first-seen
// order, the input pointgroup.Classify and pointgroup.ConventionalBasis
// both want.
func dedupRotations(ops *symmop.Set) []latmath.IntMat3 {
	var out []latmath.IntMat3

	for _, op := range ops.Ops {
		dup := false

		for _, r := range out {
			if r == op.R {
				dup = true
				break
			}
		}

		if !dup {
			out = append(out, op.R)
		}
	}

	return out
}

// primitiveCellOf trims c down to one lattice point per centering, or
// returns c itself (cloned) when translations carries nothing beyond the
// zero vector.
func primitiveCellOf(c *cell.Cell, translations []latmath.Vec3, tol float64, log logrus.FieldLogger) (*cell.Cell, []int, error) {
	if len(translations) <= 1 {
		mapping := make([]int, c.Size())
		for i := range mapping {
			mapping[i] = i
		}

		return c.Clone(), mapping, nil
	}

	centering := identifyCentering(translations, tol)
	conversion := primitiveConversionMatrix(centering)
	primLattice := c.Lattice.Mul(conversion)

	res, err := primitive.Trim(c, primLattice, tol, log)
	if err != nil {
		return nil, nil, err
	}

	return res.Cell, res.Mapping, nil
}

// identifyCentering matches translations (spec.md §3's pure-translation
// set, including the zero vector) against halldb's centering translation
// tables, returning the first exact match or halldb.Primitive if none fit.
func identifyCentering(translations []latmath.Vec3, tol float64) halldb.Centering {
	candidates := []halldb.Centering{
		halldb.Body, halldb.Face, halldb.AFace, halldb.BFace, halldb.CFace, halldb.RCenter,
	}

	for _, cand := range candidates {
		want := cand.Translations()
		if len(want)+1 != len(translations) {
			continue
		}

		if allPresent(translations, want, tol) {
			return cand
		}
	}

	return halldb.Primitive
}

func allPresent(have, want []latmath.Vec3, tol float64) bool {
	for _, w := range want {
		found := false

		for _, h := range have {
			if latmath.AlmostEqual(h, w, tol) {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// primitiveConversionMatrix returns the standard International-Tables
// conventional-to-primitive transformation for centering (its columns are
// the primitive basis vectors' fractional coordinates in the conventional
// basis). This replaces the original's get_centering/change-of-basis search
// (original_source/src/spacegroup.c) with the fixed table every
// crystallography reference carries, valid whenever the input cell is
// already expressed in the matching standard centering.
func primitiveConversionMatrix(centering halldb.Centering) latmath.Mat3 {
	switch centering {
	case halldb.Body:
		return latmath.Columns(
			latmath.Vec3{-0.5, 0.5, 0.5},
			latmath.Vec3{0.5, -0.5, 0.5},
			latmath.Vec3{0.5, 0.5, -0.5},
		)
	case halldb.Face:
		return latmath.Columns(
			latmath.Vec3{0, 0.5, 0.5},
			latmath.Vec3{0.5, 0, 0.5},
			latmath.Vec3{0.5, 0.5, 0},
		)
	case halldb.AFace:
		return latmath.Columns(
			latmath.Vec3{1, 0, 0},
			latmath.Vec3{0, 0.5, 0.5},
			latmath.Vec3{0, -0.5, 0.5},
		)
	case halldb.BFace:
		return latmath.Columns(
			latmath.Vec3{0.5, 0, -0.5},
			latmath.Vec3{0, 1, 0},
			latmath.Vec3{0.5, 0, 0.5},
		)
	case halldb.CFace:
		return latmath.Columns(
			latmath.Vec3{0.5, -0.5, 0},
			latmath.Vec3{0.5, 0.5, 0},
			latmath.Vec3{0, 0, 1},
		)
	case halldb.RCenter:
		return latmath.Columns(
			latmath.Vec3{2.0 / 3, 1.0 / 3, 1.0 / 3},
			latmath.Vec3{-1.0 / 3, 1.0 / 3, 1.0 / 3},
			latmath.Vec3{-1.0 / 3, -2.0 / 3, 1.0 / 3},
		)
	default:
		return latmath.Identity3
	}
}
