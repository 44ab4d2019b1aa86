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

import "github.com/cznic/sortutil"

/* -------------------------------------------------------------------------- */

// UnitigStats summarizes a set of assembled sequences the way
// SeqBuilderMain's run report does: counts, length extremes, and N50.
type UnitigStats struct {
	Count      int
	TotalBases int64
	MinLength  int
	MaxLength  int
	MeanLength float64
	N50        int
}

// FilterByLength keeps only sequences whose base count is >= minLen.
func FilterByLength(seqs []Sequence, minLen int) []Sequence {
	out := make([]Sequence, 0, len(seqs))
	for _, s := range seqs {
		if len(s.Bases) >= minLen {
			out = append(out, s)
		}
	}
	return out
}

// ComputeUnitigStats reduces seqs to summary statistics, including
// N50: the length L such that the sequences at least as long as L
// cover at least half of TotalBases.
func ComputeUnitigStats(seqs []Sequence) UnitigStats {
	var st UnitigStats
	if len(seqs) == 0 {
		return st
	}
	lengths := make([]int, len(seqs))
	for i, s := range seqs {
		n := len(s.Bases)
		lengths[i] = n
		st.TotalBases += int64(n)
		if i == 0 || n < st.MinLength {
			st.MinLength = n
		}
		if n > st.MaxLength {
			st.MaxLength = n
		}
	}
	st.Count = len(seqs)
	st.MeanLength = float64(st.TotalBases) / float64(st.Count)
	st.N50 = n50(lengths, st.TotalBases)
	return st
}

// n50 sorts lengths in ascending order and walks them from the longest
// until the running sum reaches half of total, returning the length at which
// that happens, mirroring getN50() from the original assembler.
func n50(lengths []int, total int64) int {
	sorted := make(sortutil.Int64Slice, len(lengths))
	for i, l := range lengths {
		sorted[i] = int64(l)
	}
	sorted.Sort()
	var running int64
	for i := len(sorted) - 1; i >= 0; i-- {
		running += sorted[i]
		if running*2 >= total {
			return int(sorted[i])
		}
	}
	return 0
}
