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

// Package spgconfig resolves the bounded-loop attempt counters passed to
// lattice reduction.  The environment variable SPGLIB_NUM_ATTEMPTS is read
// once per call (never cached globally), matching the original's behaviour;
// a caller may instead set Options.NiggliAttempts / Options.LoopAttempts
// programmatically.
package spgconfig

import (
	"os"
	"strconv"
)

// Default attempt bounds, matching the original implementation.
const (
	DefaultNiggliAttempts = 1000
	DefaultLoopAttempts   = 100
)

// Options bundles the tunables threaded through a single top-level call.
// The zero value resolves defaults from the environment, matching the
// teacher's CompilationConfig struct-of-options pattern.
type Options struct {
	// NiggliAttempts is the Niggli reduction attempt bound. Zero means
	// "resolve from SPGLIB_NUM_ATTEMPTS, else DefaultNiggliAttempts". No
	// entry point passes it on: the layer-cell Niggli fallback in
	// pkg/symmetry runs under LoopAttempts.
	NiggliAttempts int
	// LoopAttempts is the attempt bound passed to lattice reduction:
	// Delaunay (3-D and 2-D) and the Niggli fallback in pkg/symmetry. The
	// primitive-trimming, angle-tolerance and Wyckoff relaxation loops use
	// their own fixed bounds and do not read it. Zero means "resolve from
	// SPGLIB_NUM_ATTEMPTS, else DefaultLoopAttempts".
	LoopAttempts int
}

// Option configures Options when constructing a call-scoped Resolved value.
type Option func(*Options)

// WithNiggliAttempts overrides the Niggli attempt bound.
func WithNiggliAttempts(n int) Option {
	return func(o *Options) { o.NiggliAttempts = n }
}

// WithLoopAttempts overrides every other bounded-loop attempt count.
func WithLoopAttempts(n int) Option {
	return func(o *Options) { o.LoopAttempts = n }
}

// Resolve builds an Options from zero or more Option values, falling back to
// the environment and then to the hard-coded defaults.
func Resolve(opts ...Option) Options {
	var o Options
	for _, apply := range opts {
		apply(&o)
	}

	envAttempts, envOK := envNumAttempts()

	if o.NiggliAttempts == 0 {
		if envOK {
			o.NiggliAttempts = envAttempts
		} else {
			o.NiggliAttempts = DefaultNiggliAttempts
		}
	}

	if o.LoopAttempts == 0 {
		if envOK {
			o.LoopAttempts = envAttempts
		} else {
			o.LoopAttempts = DefaultLoopAttempts
		}
	}

	return o
}

// envNumAttempts reads SPGLIB_NUM_ATTEMPTS, returning ok=false if unset or
// unparsable (in which case the caller falls back to its own default).
func envNumAttempts() (n int, ok bool) {
	raw, present := os.LookupEnv("SPGLIB_NUM_ATTEMPTS")
	if !present {
		return 0, false
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false
	}

	return v, true
}
