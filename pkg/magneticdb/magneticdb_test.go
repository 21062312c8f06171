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

package magneticdb

import (
	"testing"

	"github.com/latticeforge/gospg/pkg/util/assert"
)

func TestByUNINumberFound(t *testing.T) {
	e, ok := ByUNINumber(1155)
	assert.True(t, ok, "UNI 1155 should be present")
	assert.Equal(t, TypeI, e.Type, "UNI 1155 is the ferromagnetic type I example")
}

func TestByUNINumberMissing(t *testing.T) {
	_, ok := ByUNINumber(999999)
	if ok {
		t.Fatalf("expected UNI 999999 to be absent")
	}
}

func TestByHallNumberReturnsBothScenarios(t *testing.T) {
	entries := ByHallNumber(419)
	assert.Equal(t, 2, len(entries), "both rutile scenarios share Hall number 419")
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "I", TypeI.String())
	assert.Equal(t, "III", TypeIII.String())
}
