// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package clocks

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ExampleMock() {
	source := NewMock()
	fmt.Printf("start: %v\n", source.Now().UnixNano())
	source.Advance(time.Second)
	fmt.Printf("then: %v\n", source.Now().UnixNano())
	// Output:
	// start: 0
	// then: 1000000000
}

func Test_Since(t *testing.T) {
	assert := assert.New(t)
	source := NewMock()
	start := source.Now()
	assert.Equal(time.Duration(0), Since(source, start))
	source.Advance(3 * time.Millisecond)
	source.Advance(2 * time.Millisecond)
	assert.Equal(5*time.Millisecond, Since(source, start))
}

func Test_WallAdvances(t *testing.T) {
	start := Wall.Now()
	assert.False(t, Wall.Now().Before(start))
	assert.True(t, Since(Wall, start) >= 0)
}
