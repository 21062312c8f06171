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

// Package cell defines the fundamental input/intermediate entity of the
// symmetry-search pipeline: a periodic arrangement of atoms inside a basis.
package cell

import (
	"fmt"

	"github.com/latticeforge/gospg/pkg/latmath"
)

// AperiodicNone indicates a fully 3-periodic bulk cell (the common case).
const AperiodicNone = -1

// Cell is the fundamental input/intermediate entity: a lattice, the
// fractional positions of its atoms, their species labels, and (optionally)
// per-atom magnetic moments.
//
// Invariants (spec.md §3): len(Positions) == len(Types) >= 1; Lattice has
// nonzero determinant; periodic components of every position lie in
// [0,1). Cells are built once by New/NewMagnetic and treated as read-only
// by every downstream consumer; intermediate cells produced by the
// pipeline (trimmed primitive, conventional, standardized) are always
// freshly allocated and independent of their input.
type Cell struct {
	// Lattice has columns a, b, c in Cartesian coordinates.
	Lattice latmath.Mat3
	// Positions are fractional coordinates, one per atom.
	Positions []latmath.Vec3
	// Types are species labels; equality defines chemical equivalence.
	Types []int
	// Tensors holds one SiteTensor per atom; every entry has the same
	// Rank.  Empty when the cell carries no magnetic decoration.
	Tensors []SiteTensor
	// AperiodicAxis is AperiodicNone for a bulk cell, or 0/1/2 naming the
	// single aperiodic axis of a layer cell.
	AperiodicAxis int
}

// Size returns the number of atoms in the cell.
func (c *Cell) Size() int {
	return len(c.Positions)
}

// IsLayer reports whether c has an aperiodic axis.
func (c *Cell) IsLayer() bool {
	return c.AperiodicAxis != AperiodicNone
}

// HasTensors reports whether c carries per-atom magnetic moments.
func (c *Cell) HasTensors() bool {
	return len(c.Tensors) > 0
}

// New allocates a Cell from a lattice, fractional positions and species
// types, reducing every periodic component of every position into [0,1)
// and validating the structural invariants. aperiodicAxis is AperiodicNone
// for a bulk cell.
//
// New owns the slices it is given in the sense that it copies them; the
// caller's arrays may be reused or mutated afterwards without affecting
// the returned Cell.
func New(lattice latmath.Mat3, positions []latmath.Vec3, types []int, aperiodicAxis int) (*Cell, error) {
	if err := validateShape(positions, types, aperiodicAxis); err != nil {
		return nil, err
	}

	if lattice.Det() == 0 {
		return nil, fmt.Errorf("cell: lattice has zero determinant")
	}

	c := &Cell{
		Lattice:       lattice,
		Positions:     make([]latmath.Vec3, len(positions)),
		Types:         append([]int(nil), types...),
		AperiodicAxis: aperiodicAxis,
	}

	for i, p := range positions {
		c.Positions[i] = latmath.ReduceFrac(p, aperiodicAxis)
	}

	return c, nil
}

// NewMagnetic is New plus a per-atom SiteTensor array; every tensor must
// share the same Rank.
func NewMagnetic(lattice latmath.Mat3, positions []latmath.Vec3, types []int, tensors []SiteTensor, aperiodicAxis int) (*Cell, error) {
	c, err := New(lattice, positions, types, aperiodicAxis)
	if err != nil {
		return nil, err
	}

	if len(tensors) != len(positions) {
		return nil, fmt.Errorf("cell: %d tensors for %d atoms", len(tensors), len(positions))
	}

	rank := NoTensor
	if len(tensors) > 0 {
		rank = tensors[0].Rank
	}

	for _, t := range tensors {
		if t.Rank != rank {
			return nil, fmt.Errorf("cell: mixed tensor ranks in site-tensor array")
		}
	}

	c.Tensors = append([]SiteTensor(nil), tensors...)

	return c, nil
}

func validateShape(positions []latmath.Vec3, types []int, aperiodicAxis int) error {
	if len(positions) == 0 {
		return fmt.Errorf("cell: need at least one atom")
	}

	if len(positions) != len(types) {
		return fmt.Errorf("cell: %d positions for %d types", len(positions), len(types))
	}

	if aperiodicAxis < -1 || aperiodicAxis > 2 {
		return fmt.Errorf("cell: aperiodic axis must be -1, 0, 1 or 2, got %d", aperiodicAxis)
	}

	return nil
}

// Clone makes an independent deep copy of c.
func (c *Cell) Clone() *Cell {
	nc := &Cell{
		Lattice:       c.Lattice,
		Positions:     append([]latmath.Vec3(nil), c.Positions...),
		Types:         append([]int(nil), c.Types...),
		AperiodicAxis: c.AperiodicAxis,
	}

	if c.Tensors != nil {
		nc.Tensors = append([]SiteTensor(nil), c.Tensors...)
	}

	return nc
}
