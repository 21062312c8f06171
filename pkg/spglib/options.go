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

import "github.com/latticeforge/gospg/pkg/spgconfig"

// defaultMagSymprec is the tolerance applied when testing whether a
// symmetry operation maps every site tensor to itself or to its negation
// (spec.md §4.9), if the caller does not override it.
const defaultMagSymprec = 1e-5

// Options bundles the tunables a top-level call accepts beyond the two
// positional tolerances (symprec, angle tolerance is instead carried here
// since most callers never need it).
//
// Grounded on original_source/src/spglib.h's spg_get_dataset /
// spgat_get_dataset split: the "at" variants add an angle tolerance, which
// here is just another option rather than a parallel function family.
type Options struct {
	spgconfig.Options
	// AngleTolerance, in degrees, overrides the sin²Δθ angle-matching
	// criterion symmetry.LatticeSymmetry otherwise falls back to. Zero
	// means "use the sin²Δθ criterion".
	AngleTolerance float64
	// HallNumber forces a specific Hall-symbol setting instead of
	// searching every candidate (original_source/src/spglib.h's
	// spg_get_dataset_with_hall_number). Zero means "search".
	HallNumber int
	// MagSymprec is the tolerance used to test site-tensor invariance
	// when augmenting operations with time reversal. Zero means
	// defaultMagSymprec.
	MagSymprec float64
	// NoIdealize, when set, makes Standardize keep the input cell's raw
	// positions (merely re-axised) instead of snapping every atom to its
	// exact Wyckoff position. Mirrors
	// original_source/src/spglib.c's spg_standardize_cell no_idealize
	// flag.
	NoIdealize bool
	// ToPrimitive, when set, makes Standardize return the primitive cell
	// instead of the full conventional one. Mirrors
	// original_source/src/spglib.c's spg_standardize_cell to_primitive
	// flag.
	ToPrimitive bool
}

// Option configures Options.
type Option func(*Options)

// WithAngleTolerance overrides the angle-matching tolerance, in degrees.
func WithAngleTolerance(degrees float64) Option {
	return func(o *Options) { o.AngleTolerance = degrees }
}

// WithHallNumber forces a specific Hall-symbol setting.
func WithHallNumber(hallNumber int) Option {
	return func(o *Options) { o.HallNumber = hallNumber }
}

// WithMagSymprec overrides the magnetic site-tensor tolerance.
func WithMagSymprec(tol float64) Option {
	return func(o *Options) { o.MagSymprec = tol }
}

// WithNiggliAttempts sets Options.NiggliAttempts, which no entry point of
// this package passes to a reduction (see spgconfig.Options).
func WithNiggliAttempts(n int) Option {
	return func(o *Options) { o.NiggliAttempts = n }
}

// WithLoopAttempts overrides the attempt bound passed to lattice reduction
// (see spgconfig.Options).
func WithLoopAttempts(n int) Option {
	return func(o *Options) { o.LoopAttempts = n }
}

// WithNoIdealize disables snapping every atom to its exact Wyckoff position
// during Standardize.
func WithNoIdealize() Option {
	return func(o *Options) { o.NoIdealize = true }
}

// WithToPrimitive makes Standardize return the primitive cell.
func WithToPrimitive() Option {
	return func(o *Options) { o.ToPrimitive = true }
}

// resolve applies opts over the zero value and fills in every default.
func resolve(opts ...Option) Options {
	var o Options
	for _, apply := range opts {
		apply(&o)
	}

	o.Options = spgconfig.Resolve(
		spgconfig.WithNiggliAttempts(o.NiggliAttempts),
		spgconfig.WithLoopAttempts(o.LoopAttempts),
	)

	if o.MagSymprec == 0 {
		o.MagSymprec = defaultMagSymprec
	}

	return o
}
