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

// Package spgerr enumerates the failure kinds a symmetry search can report.
//
// The original implementation this module is modelled on records failures in
// a thread-local error slot which the caller queries after any operation
// returning a null result. Go has no natural analogue of "thread-local" (the
// unit of concurrency is the goroutine, not the OS thread, and goroutines are
// not addressable), so every fallible operation here returns its failure as
// an error value instead, wrapping one of the sentinels below. Callers that
// want the old query-style behaviour can still do so with errors.Is.
package spgerr

import "errors"

// Sentinel errors, one per failure kind. Wrap these with fmt.Errorf("%w: ...", ...)
// to attach context; never discard the sentinel when doing so.
var (
	// ErrSpacegroupSearchFailed indicates the lattice symmetry is
	// incompatible with any Hall number at the given tolerance.
	ErrSpacegroupSearchFailed = errors.New("spacegroup search failed")
	// ErrCellStandardizationFailed indicates downstream refinement could
	// not produce a valid Bravais cell.
	ErrCellStandardizationFailed = errors.New("cell standardization failed")
	// ErrSymmetryOperationSearchFailed indicates point-group enumeration
	// yielded no consistent operation set.
	ErrSymmetryOperationSearchFailed = errors.New("symmetry operation search failed")
	// ErrAtomsTooClose indicates two atoms of the same species overlap
	// within tolerance on input.
	ErrAtomsTooClose = errors.New("atoms too close")
	// ErrPointGroupNotFound indicates classification table lookup failed.
	ErrPointGroupNotFound = errors.New("point group not found")
	// ErrNiggliFailed indicates the step sequence did not converge within
	// the attempt budget.
	ErrNiggliFailed = errors.New("niggli reduction failed")
	// ErrDelaunayFailed indicates the reduction did not terminate with
	// non-positive off-diagonal dot products.
	ErrDelaunayFailed = errors.New("delaunay reduction failed")
	// ErrArraySizeShortage indicates the caller's output buffer is too
	// small. Retained for parity with the original's contract even though
	// Go callers normally receive freshly allocated slices.
	ErrArraySizeShortage = errors.New("array size shortage")
)
