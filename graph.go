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

import "github.com/pbenner/threadpool"

/* -------------------------------------------------------------------------- */

// noNeighbor is returned by UniqueRight/UniqueLeft when a k-mer has
// zero or more than one qualifying neighbor.
const noNeighbor Base = 255

/* -------------------------------------------------------------------------- */

// RightNeighbors returns the bases b for which shifting x right by b
// lands on a k-mer with count above tau in m. This is a direct
// transliteration of HashMapOperations.getRightNucleotide from the
// original Java implementation, generalized to return every
// qualifying base rather than stopping at the first.
func RightNeighbors(m *ShardedMap, x Kmer, tau int64) []Base {
	k := m.K()
	var r []Base
	for b := Base(0); b < 4; b++ {
		if m.Get(ShiftRight(x, k, b)) > tau {
			r = append(r, b)
		}
	}
	return r
}

// LeftNeighbors is the symmetric counterpart of RightNeighbors, using
// ShiftLeft.
func LeftNeighbors(m *ShardedMap, x Kmer, tau int64) []Base {
	k := m.K()
	var r []Base
	for b := Base(0); b < 4; b++ {
		if m.Get(ShiftLeft(x, k, b)) > tau {
			r = append(r, b)
		}
	}
	return r
}

// UniqueRight returns the single right-neighbor base of x, or
// noNeighbor if x has zero or more than one (a dead end or a branch).
func UniqueRight(m *ShardedMap, x Kmer, tau int64) Base {
	return uniqueOf(RightNeighbors(m, x, tau))
}

// UniqueLeft is the symmetric counterpart of UniqueRight.
func UniqueLeft(m *ShardedMap, x Kmer, tau int64) Base {
	return uniqueOf(LeftNeighbors(m, x, tau))
}

func uniqueOf(neighbors []Base) Base {
	if len(neighbors) != 1 {
		return noNeighbor
	}
	return neighbors[0]
}

/* -------------------------------------------------------------------------- */

// BanBranchingKmers marks every k-mer with >= 2 right-neighbors or
// >= 2 left-neighbors by overwriting its count with BanMarker, so
// later unique_* probes see "no neighbor" without a second table or a
// separate set-membership check. The pass runs in two phases, each
// dispatched one shard per worker job: first every shard collects its
// branching keys while no value has changed yet, then every shard
// rewrites its own entries, so no cross-shard locking is needed and
// the result does not depend on the order in which shards run.
// Re-running the pass is idempotent — a k-mer already holding
// BanMarker is itself at or below tau (BanMarker < 0 <= tau) and is
// skipped, and a ban only ever removes neighbors from other k-mers.
func BanBranchingKmers(m *ShardedMap, tau int64, workers int) {
	if workers < 1 {
		workers = 1
	}
	toBan := make([][]Kmer, m.NumShards())
	pool := threadpool.New(workers, m.NumShards())
	pool.RangeJob(0, m.NumShards(), func(i int, pool threadpool.ThreadPool, erf func() error) error {
		toBan[i] = branchingKeys(m, m.shards[i], tau)
		return nil
	})
	pool.RangeJob(0, m.NumShards(), func(i int, pool threadpool.ThreadPool, erf func() error) error {
		s := m.shards[i]
		s.mu.Lock()
		for _, x := range toBan[i] {
			if idx, ok := s.find(x); ok {
				s.values[idx] = BanMarker
			}
		}
		s.mu.Unlock()
		return nil
	})
}

func branchingKeys(m *ShardedMap, s *shard, tau int64) []Kmer {
	// Snapshot the shard's keys under its lock, so that the neighbor
	// probes (which call m.Get on *other* shards too) run outside it.
	s.mu.Lock()
	keys := make([]Kmer, 0, s.count)
	for i, used := range s.used {
		if used && s.values[i] > tau {
			keys = append(keys, s.keys[i])
		}
	}
	s.mu.Unlock()

	toBan := make([]Kmer, 0, len(keys))
	for _, x := range keys {
		if len(RightNeighbors(m, x, tau)) >= 2 || len(LeftNeighbors(m, x, tau)) >= 2 {
			toBan = append(toBan, x)
		}
	}
	return toBan
}
