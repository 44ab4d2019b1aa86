/* Copyright (C) 2019 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package metadbg

/* -------------------------------------------------------------------------- */

import (
	"fmt"
	"sync"

	"github.com/pbenner/threadpool"
)

/* -------------------------------------------------------------------------- */

// BanMarker is the reserved sentinel value written by the
// branching-kmer ban (graph.go). It is strictly negative and can never
// be produced by normal insertion, so a unique_* probe that reads it
// back treats the neighbor as absent without a separate membership
// check.
const BanMarker int64 = -1

// entryCost approximates the per-slot footprint of one shard bucket
// (key + value + occupancy flag, rounded up for allocator overhead).
const entryCost = 24

// minShardCapacity keeps tiny shards usable even under a very small
// memory budget or core count.
const minShardCapacity = 16

// maxShardCapacity bounds how far a single shard may grow; beyond this
// Insert reports CapacityExhausted rather than growing without limit.
const maxShardCapacity = 1 << 30

const loadFactor = 0.5

/* -------------------------------------------------------------------------- */

// Entry is one (key, value) pair as produced by ShardedMap.Entries().
type Entry struct {
	Key   Kmer
	Value int64
}

/* -------------------------------------------------------------------------- */

// shard is one open-addressing sub-table with its own lock. Capacity
// is always a power of two so slot selection is a mask, not a modulo.
type shard struct {
	mu     sync.Mutex
	keys   []Kmer
	values []int64
	used   []bool
	count  int
}

func newShard(capacity int) *shard {
	if capacity < minShardCapacity {
		capacity = minShardCapacity
	}
	return &shard{
		keys:   make([]Kmer, capacity),
		values: make([]int64, capacity),
		used:   make([]bool, capacity),
	}
}

// find returns the slot index for key, probing linearly from its home
// slot. ok is true if the key is already present; otherwise idx is the
// first free slot at which it may be inserted.
func (s *shard) find(key Kmer) (idx int, ok bool) {
	mask := len(s.keys) - 1
	// A second, decorrelated hash picks the home slot: reusing the
	// shard-selection hash directly would make slot placement within
	// a shard a function of the same low bits that chose the shard.
	i := int(mix(uint64(key)^0x9e3779b97f4a7c15)) & mask
	for {
		if !s.used[i] {
			return i, false
		}
		if s.keys[i] == key {
			return i, true
		}
		i = (i + 1) & mask
	}
}

func (s *shard) grow() error {
	newCap := len(s.keys) * 2
	if newCap > maxShardCapacity {
		return newError(CapacityExhausted, "shard.grow", fmt.Errorf("shard already at maximum capacity %d", len(s.keys)))
	}
	n := newShard(newCap)
	for i, used := range s.used {
		if !used {
			continue
		}
		idx, _ := n.find(s.keys[i])
		n.keys[idx] = s.keys[i]
		n.values[idx] = s.values[i]
		n.used[idx] = true
	}
	// Replace the slot storage in place, but never the mutex: the
	// caller is holding s.mu locked across this call, and rehashing
	// preserves the entry count exactly.
	s.keys = n.keys
	s.values = n.values
	s.used = n.used
	return nil
}

/* -------------------------------------------------------------------------- */

// ShardedMap is a concurrent k-mer frequency table: an ordered
// sequence of independent shards, each guarded by its own mutex,
// selected by a bit-avalanche hash of the canonical key. Two threads
// inserting into different shards never contend.
type ShardedMap struct {
	k      int
	shards []*shard
}

// NewShardedMap sizes a table from a memory budget: it picks shard
// capacities so that starting occupancy is below the load factor and
// the total footprint stays within budget bytes (except that no shard
// starts below minShardCapacity slots). workers steers the
// shard count (S = next power of two >= workers*4), so that shards
// outnumber worker goroutines enough to keep lock contention rare.
func NewShardedMap(k int, budget int64, workers int) (*ShardedMap, error) {
	if k < 1 || k > MaxK {
		return nil, newError(InvalidInput, "NewShardedMap", fmt.Errorf("k must be in [1, %d], got %d", MaxK, k))
	}
	if workers < 1 {
		workers = 1
	}
	shardCount := nextPow2(workers * 4)
	totalSlots := int64(1)
	if budget > 0 {
		totalSlots = budget / entryCost
	}
	perShard := nextPow2(int(totalSlots/int64(shardCount)) + 1)
	// nextPow2 rounds up; halve back down while the shards would
	// overshoot the budget.
	for perShard > minShardCapacity && int64(perShard*shardCount)*entryCost > budget {
		perShard >>= 1
	}
	if perShard < minShardCapacity {
		perShard = minShardCapacity
	}
	m := &ShardedMap{
		k:      k,
		shards: make([]*shard, shardCount),
	}
	for i := range m.shards {
		m.shards[i] = newShard(perShard)
	}
	log.Debugf("ShardedMap: %d shards x %d slots (budget=%d bytes)", shardCount, perShard, budget)
	return m, nil
}

// K returns the k-mer length this table was constructed for.
func (m *ShardedMap) K() int {
	return m.k
}

func (m *ShardedMap) shardFor(key Kmer) *shard {
	h := mix(uint64(key))
	return m.shards[h&uint64(len(m.shards)-1)]
}

/* -------------------------------------------------------------------------- */

// Insert atomically adds 1 to the entry for canonical(key), inserting
// it with value 1 if absent.
func (m *ShardedMap) Insert(key Kmer) error {
	return m.InsertDelta(key, 1)
}

// InsertDelta atomically adds delta to the entry for canonical(key),
// inserting it with value delta if absent.
func (m *ShardedMap) InsertDelta(key Kmer, delta int64) error {
	key = Canonical(key, m.k)
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.find(key)
	if !ok {
		if float64(s.count+1) > loadFactor*float64(len(s.keys)) {
			if err := s.grow(); err != nil {
				return err
			}
			idx, _ = s.find(key)
		}
		s.keys[idx] = key
		s.used[idx] = true
		s.count++
		s.values[idx] = delta
		return nil
	}
	s.values[idx] += delta
	return nil
}

// Get returns the stored count for canonical(key), or 0 if absent.
func (m *ShardedMap) Get(key Kmer) int64 {
	key = Canonical(key, m.k)
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.find(key)
	if !ok {
		return 0
	}
	return s.values[idx]
}

// Set overwrites the entry for canonical(key), present or not.
func (m *ShardedMap) Set(key Kmer, value int64) error {
	key = Canonical(key, m.k)
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.find(key)
	if !ok {
		if float64(s.count+1) > loadFactor*float64(len(s.keys)) {
			if err := s.grow(); err != nil {
				return err
			}
			idx, _ = s.find(key)
		}
		s.keys[idx] = key
		s.used[idx] = true
		s.count++
	}
	s.values[idx] = value
	return nil
}

// ResetValues sets every entry's value to zero without touching keys.
// Shards are independent, so the reset is dispatched across the
// worker pool one shard per job; callers must ensure no insert is in
// flight while a reset runs.
func (m *ShardedMap) ResetValues(workers int) {
	if workers < 1 {
		workers = 1
	}
	pool := threadpool.New(workers, len(m.shards))
	pool.RangeJob(0, len(m.shards), func(i int, pool threadpool.ThreadPool, erf func() error) error {
		s := m.shards[i]
		s.mu.Lock()
		for j := range s.values {
			if s.used[j] {
				s.values[j] = 0
			}
		}
		s.mu.Unlock()
		return nil
	})
}

// Size returns the number of distinct keys currently stored.
func (m *ShardedMap) Size() uint64 {
	var n uint64
	for _, s := range m.shards {
		s.mu.Lock()
		n += uint64(s.count)
		s.mu.Unlock()
	}
	return n
}

// NumShards reports the shard count, mostly useful to size per-shard
// worker pools in C4/C5.
func (m *ShardedMap) NumShards() int {
	return len(m.shards)
}

// Entries streams every (key, value) pair across all shards on a
// channel. It is only safe to call with no concurrent mutation.
func (m *ShardedMap) Entries() <-chan Entry {
	ch := make(chan Entry, 256)
	go func() {
		defer close(ch)
		for _, s := range m.shards {
			for i, used := range s.used {
				if used {
					ch <- Entry{Key: s.keys[i], Value: s.values[i]}
				}
			}
		}
	}()
	return ch
}

/* -------------------------------------------------------------------------- */

// mix is MurmurHash3's fmix64 bit-avalanche finalizer: every output bit
// is a function of every input bit, so nearby k-mers land in unrelated
// shards and slots. The same function is used at insertion and lookup
// time, so a key always resolves to the same shard and slot.
func mix(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

func nextPow2(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

