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

package query

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/ebay/drql/query/semantic"
)

// modelCache is a bounded LRU cache of semantic models, keyed by query text.
// Models are immutable, so the same model may be handed to any number of
// callers. It is safe for concurrent use.
type modelCache struct {
	size int

	lock sync.Mutex
	// items maps the xxhash of a query's text to its element in lru.
	items map[uint64]*list.Element
	// lru holds *cacheEntry values, most recently used at the front.
	lru *list.List
}

type cacheEntry struct {
	hash  uint64
	text  string
	model *semantic.Query
}

// newModelCache returns a cache of at most 'size' models. A cache with a size
// of zero or less never holds anything.
func newModelCache(size int) *modelCache {
	return &modelCache{
		size:  size,
		items: make(map[uint64]*list.Element),
		lru:   list.New(),
	}
}

func hashText(text string) uint64 {
	return xxhash.Sum64([]byte(text))
}

// get returns the cached model for 'text', if any.
func (c *modelCache) get(text string) (*semantic.Query, bool) {
	if c.size <= 0 {
		return nil, false
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	elem, found := c.items[hashText(text)]
	if !found {
		return nil, false
	}
	entry := elem.Value.(*cacheEntry)
	// a different query with the same hash
	if entry.text != text {
		return nil, false
	}
	c.lru.MoveToFront(elem)
	return entry.model, true
}

// put adds the model for 'text', evicting the least recently used model if the
// cache is full. It returns the number of cached models.
func (c *modelCache) put(text string, model *semantic.Query) int {
	if c.size <= 0 {
		return 0
	}
	hash := hashText(text)
	c.lock.Lock()
	defer c.lock.Unlock()
	if elem, found := c.items[hash]; found {
		elem.Value = &cacheEntry{hash: hash, text: text, model: model}
		c.lru.MoveToFront(elem)
		return c.lru.Len()
	}
	c.items[hash] = c.lru.PushFront(&cacheEntry{hash: hash, text: text, model: model})
	for c.lru.Len() > c.size {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).hash)
	}
	return c.lru.Len()
}

// len returns the number of cached models.
func (c *modelCache) len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lru.Len()
}
