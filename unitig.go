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
	"sync"

	"github.com/pbenner/threadpool"
)

/* -------------------------------------------------------------------------- */

// Sequence is one assembled unitig, carrying the per-k-mer weights
// collected while walking it so downstream tools can report coverage
// alongside length (FeaturesCalculatorMain and SeqBuilderMain both
// attach weight summaries to every emitted sequence).
type Sequence struct {
	Bases     string
	SumWeight int64
	MinWeight int64
	MaxWeight int64
}

// MeanWeight is SumWeight divided by the k-mer count contributing to
// it (len(Bases) - k + 1).
func (s Sequence) MeanWeight(k int) float64 {
	n := len(s.Bases) - k + 1
	if n <= 0 {
		return 0
	}
	return float64(s.SumWeight) / float64(n)
}

/* -------------------------------------------------------------------------- */

// BuildUnitigs enumerates every maximal non-branching path (unitig) in
// the k-mer graph implied by m at threshold tau, returning each one
// once although most are walked from both strands. A stored
// key only ever records one canonical orientation, but either
// orientation can be the left end of a unitig, so both x and its
// reverse complement are tried as start candidates, matching
// AddSequencesShiftingRightTask's {kmerF, kmerF.rc()} pair. Traversal
// is parallelized by handing one shard's keys to each worker job;
// which walk's copy is kept is decided by walkFrom's canonical
// start/end comparison, with a mutex-guarded set shared by all
// workers for unitigs whose two ends share one canonical k-mer.
func BuildUnitigs(m *ShardedMap, tau int64, workers int) []Sequence {
	if workers < 1 {
		workers = 1
	}
	k := m.K()
	seen := newKmerSet()
	var mu sync.Mutex
	var out []Sequence

	pool := threadpool.New(workers, m.NumShards())
	pool.RangeJob(0, m.NumShards(), func(i int, pool threadpool.ThreadPool, erf func() error) error {
		s := m.shards[i]
		s.mu.Lock()
		keys := make([]Kmer, 0, s.count)
		for idx, used := range s.used {
			if used && s.values[idx] > tau {
				keys = append(keys, s.keys[idx])
			}
		}
		s.mu.Unlock()

		var local []Sequence
		for _, x := range keys {
			if seq, ok := walkFrom(m, x, tau, k, seen); ok {
				local = append(local, seq)
			}
			if rc := ReverseComplement(x, k); rc != x {
				if seq, ok := walkFrom(m, rc, tau, k, seen); ok {
					local = append(local, seq)
				}
			}
		}
		mu.Lock()
		out = append(out, local...)
		mu.Unlock()
		return nil
	})
	return out
}

// walkFrom attempts to start a unitig at x: it only proceeds if x is a
// left end (UniqueLeft(x) == noNeighbor, i.e. x has zero or several
// predecessors), matching AddSequencesShiftingRightTask.processSequence's
// start-selection rule of walking forward from every
// non-extendable-left k-mer. Every other k-mer is reached as an
// interior node of someone else's walk. The walk extends while the
// current k-mer has a unique right neighbor that itself has a unique
// left neighbor. A walk that ends at a dead end is also walked from
// the other strand, so only the copy whose canonical start is smaller
// than its canonical end is returned; when both ends share one
// canonical k-mer, seen lets exactly one walk through.
func walkFrom(m *ShardedMap, x Kmer, tau int64, k int, seen *kmerSet) (Sequence, bool) {
	if UniqueLeft(m, x, tau) != noNeighbor {
		// x extends uniquely to the left: it is an interior node, not
		// a start.
		return Sequence{}, false
	}

	var buf []byte
	buf = append(buf, DecodeKmer(x, k)...)
	sum := m.Get(x)
	min, max := sum, sum
	cur := x
	deadEnd := true
	for {
		b := UniqueRight(m, cur, tau)
		if b == noNeighbor {
			break
		}
		next := ShiftRight(cur, k, b)
		if UniqueLeft(m, next, tau) == noNeighbor {
			deadEnd = false
			break
		}
		w := m.Get(next)
		sum += w
		if w < min {
			min = w
		}
		if w > max {
			max = w
		}
		buf = append(buf, b.byte())
		cur = next
	}
	if deadEnd {
		u, v := Canonical(x, k), Canonical(cur, k)
		if u > v || (u == v && !seen.claim(u)) {
			return Sequence{}, false
		}
	}
	return Sequence{Bases: string(buf), SumWeight: sum, MinWeight: min, MaxWeight: max}, true
}

/* -------------------------------------------------------------------------- */

// kmerSet is a mutex-guarded set of k-mers: BuildUnitigs uses it so
// that a unitig whose two ends share one canonical k-mer is returned
// once, and ConnectedComponents uses it as its visited set. It
// intentionally does not reuse ShardedMap: this
// set only needs membership, not counts, and is sized for the much
// smaller population of kept k-mers rather than the raw table.
type kmerSet struct {
	mu   sync.Mutex
	seen map[Kmer]bool
}

func newKmerSet() *kmerSet {
	return &kmerSet{seen: make(map[Kmer]bool)}
}

// claim marks x as visited and reports whether this call was the
// first to do so.
func (s *kmerSet) claim(x Kmer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[x] {
		return false
	}
	s.seen[x] = true
	return true
}
