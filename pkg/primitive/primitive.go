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

// Package primitive trims a (possibly centered) cell down to the cell
// spanned by a given, smaller lattice, averaging over every set of atoms
// that overlap under the volume-ratio change of basis.
//
// Grounded on original_source/src/cell.c's trim_cell/get_overlap_table.
package primitive

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/latticeforge/gospg/pkg/cell"
	"github.com/latticeforge/gospg/pkg/latmath"
	"github.com/latticeforge/gospg/pkg/spgerr"
)

// toleranceIncreaseRate and toleranceReduceRate are the automatic symprec
// adjustment factors applied by the overlap-table retry loop when too few,
// or too many, atoms are found to overlap.
const (
	toleranceIncreaseRate = 2.0
	toleranceReduceRate   = 0.95
	maxAttempts           = 100
)

// Result is the outcome of trimming a cell down to a smaller lattice.
type Result struct {
	// Cell is the trimmed cell, with positions averaged over every
	// overlapping group and the tensor rank of each site preserved.
	Cell *cell.Cell
	// Mapping maps each original atom index to its index in Cell.
	Mapping []int
}

// Trim reduces c down to the cell spanned by trimmedLattice, which must be
// related to c.Lattice by an integer change of basis whose determinant
// equals the atom-count ratio.
func Trim(c *cell.Cell, trimmedLattice latmath.Mat3, tol float64, log logrus.FieldLogger) (Result, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	ratioF := c.Lattice.Det() / trimmedLattice.Det()
	ratio := int(math.Round(math.Abs(ratioF)))

	if ratio <= 0 {
		return Result{}, fmt.Errorf("primitive: %w: non-positive volume ratio", spgerr.ErrArraySizeShortage)
	}

	trimmedInv, err := trimmedLattice.Inverse()
	if err != nil {
		return Result{}, fmt.Errorf("primitive: %w: trimmed lattice is singular", spgerr.ErrCellStandardizationFailed)
	}

	basisChange := trimmedInv.Mul(c.Lattice)
	if !latmath.IsIntegerMatrix(basisChange, tol) {
		return Result{}, fmt.Errorf("primitive: %w: change of basis is not integral", spgerr.ErrCellStandardizationFailed)
	}

	t := latmath.RoundToInt(basisChange)
	if d := t.Det(); d != ratio && d != -ratio {
		return Result{}, fmt.Errorf("primitive: %w: |det T| = %d, want volume ratio %d", spgerr.ErrCellStandardizationFailed, d, ratio)
	}

	if c.Size()%ratio != 0 {
		return Result{}, fmt.Errorf("primitive: %w: atom count %d not divisible by ratio %d", spgerr.ErrCellStandardizationFailed, c.Size(), ratio)
	}

	positions := make([]latmath.Vec3, c.Size())
	for i, p := range c.Positions {
		positions[i] = latmath.ReduceFrac(t.MulVec(p), c.AperiodicAxis)
	}

	overlapTable, finalTol, err := buildOverlapTable(positions, c.Types, trimmedLattice, ratio, tol, c.AperiodicAxis, log)
	if err != nil {
		return Result{}, err
	}

	mapping := make([]int, c.Size())
	outSize := c.Size() / ratio
	outPositions := make([]latmath.Vec3, outSize)
	outTypes := make([]int, outSize)
	outTensors := make([]cell.SiteTensor, outSize)
	multiplicity := make([]int, outSize)

	atomIdx := 0

	for i := range positions {
		if overlapTable[i] == i {
			mapping[i] = atomIdx
			outTypes[atomIdx] = c.Types[i]
			atomIdx++
		} else {
			mapping[i] = mapping[overlapTable[i]]
		}
	}

	for i := range positions {
		j := mapping[i]
		k := overlapTable[i]
		outPositions[j] = outPositions[j].Add(boundaryAdjusted(positions[i], positions[k]))
		multiplicity[j]++

		if c.HasTensors() {
			outTensors[j] = addTensor(outTensors[j], c.Tensors[i])
		}
	}

	for j := range outPositions {
		outPositions[j] = outPositions[j].Scale(1 / float64(multiplicity[j])) //nolint:revive
		outPositions[j] = latmath.ReduceFrac(outPositions[j], c.AperiodicAxis)

		if c.HasTensors() {
			outTensors[j] = scaleTensor(outTensors[j], 1/float64(multiplicity[j]))
		}
	}

	var trimmed *cell.Cell

	if c.HasTensors() {
		trimmed, err = cell.NewMagnetic(trimmedLattice, outPositions, outTypes, outTensors, c.AperiodicAxis)
	} else {
		trimmed, err = cell.New(trimmedLattice, outPositions, outTypes, c.AperiodicAxis)
	}

	if err != nil {
		return Result{}, fmt.Errorf("primitive: %w", err)
	}

	log.WithField("tolerance", finalTol).Debug("primitive: trimmed cell")

	return Result{Cell: trimmed, Mapping: mapping}, nil
}

// buildOverlapTable groups atom indices whose positions coincide under
// trimTolerance, retrying with an automatically adjusted tolerance (the
// original's increase/reduce-rate loop) until every group has exactly
// ratio members or the attempt budget is exhausted.
func buildOverlapTable(positions []latmath.Vec3, types []int, lattice latmath.Mat3, ratio int, tol float64, aperiodicAxis int, log logrus.FieldLogger) ([]int, float64, error) {
	n := len(positions)
	trimTolerance := tol

	for attempt := 0; attempt < maxAttempts; attempt++ {
		table := make([]int, n)

		for i := range table {
			table[i] = i

			for j := 0; j < n; j++ {
				if types[i] != types[j] {
					continue
				}

				frac := positions[i].Sub(positions[j])
				for k := 0; k < 3; k++ {
					if k != aperiodicAxis {
						frac[k] -= latmath.NearestInt(frac[k])
					}
				}

				cartesian := lattice.MulVec(frac)

				if cartesian.Norm() > trimTolerance {
					continue
				}

				if table[j] == j {
					table[i] = j
					break
				}
			}
		}

		ok := true

		for i := range table {
			if table[i] != i {
				continue
			}

			count := 0

			for j := range table {
				if table[j] == i {
					count++
				}
			}

			switch {
			case count == ratio:
				continue
			case count < ratio:
				trimTolerance *= toleranceIncreaseRate
				log.WithField("tolerance", trimTolerance).Debug("primitive: increasing tolerance, too few overlaps")
				ok = false
			default:
				trimTolerance *= toleranceReduceRate
				log.WithField("tolerance", trimTolerance).Debug("primitive: reducing tolerance, too many overlaps")
				ok = false
			}

			break
		}

		if ok {
			return table, trimTolerance, nil
		}
	}

	return nil, 0, fmt.Errorf("primitive: %w: could not trim cell within %d attempts", spgerr.ErrCellStandardizationFailed, maxAttempts)
}

// boundaryAdjusted returns self shifted across the periodic-boundary branch
// cut to sit next to ref: if the naive difference exceeds half a lattice
// step on any axis, self is moved by one lattice vector on that axis before
// being folded into an average with other representatives of ref's group.
func boundaryAdjusted(self, ref latmath.Vec3) latmath.Vec3 {
	out := self

	for axis := 0; axis < 3; axis++ {
		if math.Abs(self[axis]-ref[axis]) > 0.5 {
			if self[axis] < ref[axis] {
				out[axis] = self[axis] + 1
			} else {
				out[axis] = self[axis] - 1
			}
		}
	}

	return out
}

func addTensor(acc, t cell.SiteTensor) cell.SiteTensor {
	switch t.Rank {
	case cell.ScalarTensor:
		return cell.Scalar(acc.Scalar + t.Scalar)
	case cell.VectorTensor:
		return cell.Vector(acc.Vector.Add(t.Vector))
	default:
		return cell.None()
	}
}

func scaleTensor(t cell.SiteTensor, factor float64) cell.SiteTensor {
	switch t.Rank {
	case cell.ScalarTensor:
		return cell.Scalar(t.Scalar * factor)
	case cell.VectorTensor:
		return cell.Vector(t.Vector.Scale(factor))
	default:
		return cell.None()
	}
}
