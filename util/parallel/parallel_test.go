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

package parallel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_InvokeN(t *testing.T) {
	assert := assert.New(t)
	out := make([]int, 10)
	err := InvokeN(context.Background(), len(out), func(ctx context.Context, i int) error {
		out[i] = i * i
		return nil
	})
	assert.NoError(err)
	assert.Equal([]int{0, 1, 4, 9, 16, 25, 36, 49, 64, 81}, out)
	assert.NoError(InvokeN(context.Background(), 0, nil))
}

func Test_InvokeBoundedLimit(t *testing.T) {
	assert := assert.New(t)
	var running, peak int32
	var lock sync.Mutex
	err := InvokeBounded(context.Background(), 50, 3, func(ctx context.Context, i int) error {
		now := atomic.AddInt32(&running, 1)
		lock.Lock()
		if now > peak {
			peak = now
		}
		lock.Unlock()
		atomic.AddInt32(&running, -1)
		return nil
	})
	assert.NoError(err)
	assert.True(peak <= 3, "peak concurrency %d", peak)
}

func Test_InvokeBoundedError(t *testing.T) {
	assert := assert.New(t)
	boom := errors.New("boom")
	var calls int32
	err := InvokeBounded(context.Background(), 100, 1, func(ctx context.Context, i int) error {
		atomic.AddInt32(&calls, 1)
		if i == 4 {
			return boom
		}
		return nil
	})
	assert.Equal(boom, err)
	assert.Equal(int32(5), atomic.LoadInt32(&calls))
}

func Test_Go(t *testing.T) {
	x := 0
	wait := Go(func() { x = 42 })
	wait()
	wait()
	assert.Equal(t, 42, x)
}
