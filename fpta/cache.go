// Copyright 2026 The fpta-go Authors
// This file is part of fpta-go.
//
// fpta-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fpta-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fpta-go. If not, see <http://www.gnu.org/licenses/>.

package fpta

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fpta-go/fpta/kv"
)

// unknownDBI is the hint sentinel returned by Peek when a shove is not
// (or no longer known to be) resident in the cache — spec.md §4.2's
// "UNKNOWN" value. A caller that gets it back must fall through to the
// slow open-or-create path and then Update the cache.
const unknownDBI kv.DBI = ^kv.DBI(0)

type cacheSlot struct {
	shove Shove
	dbi   kv.DBI
	used  bool
}

// HandleCache is a process-local, fixed-size, open-addressed hash table
// mapping a table/column Shove to the kv.DBI handle a transaction resolved
// it to — spec.md §4.2. It is a pure cache: a miss or an eviction never
// causes incorrect behavior, only a slower re-open, which is why Peek is
// lock-free and safe to call speculatively before acquiring dbiMu.
//
// Grounded on erigon-lib/kv/tables.go's TableCfg being a simple map
// protected by a mutex; this module generalizes that to a fixed-capacity
// array so a hot lookup never allocates. The array is direct-mapped: a shove
// only ever lives in slot shove % size, there is no probing, and installing
// a shove whose slot holds another shove evicts that one.
type HandleCache struct {
	dbiMu sync.Mutex // guards open-or-create of a new DBI, and writes below
	slots []cacheSlot

	log logrus.FieldLogger
}

// NewHandleCache allocates a cache with the given slot count (spec.md §6,
// config.Geometry.CacheSize). size must be at least 1.
func NewHandleCache(size int, log logrus.FieldLogger) *HandleCache {
	if size < 1 {
		size = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HandleCache{slots: make([]cacheSlot, size), log: log}
}

func (c *HandleCache) index(shove Shove) int {
	return int(uint64(shove) % uint64(len(c.slots)))
}

// Peek returns the cached DBI for shove without taking dbiMu, matching
// spec.md §4.2's "hint-based O(1) peek": a racing Update/Remove may make
// this stale the instant after it returns. Resolve uses a hit as is; on a
// miss it takes dbiMu and checks the slot again before opening.
func (c *HandleCache) Peek(shove Shove) (kv.DBI, bool) {
	slot := &c.slots[c.index(shove)]
	if slot.used && slot.shove == shove {
		return slot.dbi, true
	}
	return unknownDBI, false
}

// Lookup is Peek's double-checked-locking counterpart: it takes dbiMu, so
// the result is linearizable with concurrent Update/Remove calls. Use this
// when correctness (not just a hint) is required.
func (c *HandleCache) Lookup(shove Shove) (kv.DBI, bool) {
	c.dbiMu.Lock()
	defer c.dbiMu.Unlock()
	slot := &c.slots[c.index(shove)]
	if slot.used && slot.shove == shove {
		return slot.dbi, true
	}
	return unknownDBI, false
}

// Update installs shove -> dbi, evicting whatever previously lived at that
// slot. Eviction is silent and soft (spec.md §8 "cache-overflow-is-soft"):
// the evicted entry simply becomes a future cache miss, logged at Debug
// since it is never a correctness concern.
func (c *HandleCache) Update(shove Shove, dbi kv.DBI) {
	c.dbiMu.Lock()
	defer c.dbiMu.Unlock()
	slot := &c.slots[c.index(shove)]
	if slot.used && slot.shove != shove {
		c.log.WithFields(logrus.Fields{
			"evicted": slot.shove,
			"incoming": shove,
		}).Debug("fpta: handle cache slot evicted")
	}
	slot.shove = shove
	slot.dbi = dbi
	slot.used = true
}

// Remove clears shove's slot, if it is currently occupied by shove. Used
// by DropTable so a dropped table's stale DBI handle can never be served
// from the cache again (spec.md §4.5).
func (c *HandleCache) Remove(shove Shove) {
	c.dbiMu.Lock()
	defer c.dbiMu.Unlock()
	slot := &c.slots[c.index(shove)]
	if slot.used && slot.shove == shove {
		*slot = cacheSlot{}
	}
}

// Resolve implements the cache's double-checked-locking open path
// (spec.md §4.2, §5): Peek first (lock-free); on a miss, take dbiMu, check
// again (another goroutine may have just populated it), and otherwise call
// open to resolve the handle from the transaction and Update the cache
// before releasing the lock.
func (c *HandleCache) Resolve(shove Shove, open func() (kv.DBI, error)) (kv.DBI, error) {
	if dbi, ok := c.Peek(shove); ok {
		return dbi, nil
	}
	c.dbiMu.Lock()
	defer c.dbiMu.Unlock()
	slot := &c.slots[c.index(shove)]
	if slot.used && slot.shove == shove {
		return slot.dbi, nil
	}
	dbi, err := open()
	if err != nil {
		return unknownDBI, err
	}
	if slot.used && slot.shove != shove {
		c.log.WithFields(logrus.Fields{
			"evicted": slot.shove,
			"incoming": shove,
		}).Debug("fpta: handle cache slot evicted")
	}
	slot.shove = shove
	slot.dbi = dbi
	slot.used = true
	return dbi, nil
}
