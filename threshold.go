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
	"sort"
)

/* -------------------------------------------------------------------------- */

// Histogram is a dense count-of-counts array: Freq[c] is the number of
// distinct k-mers observed exactly c times, up to the cap used when it
// was built.
type Histogram struct {
	Freq []int64
}

// BuildHistogram walks every entry of m and bins its count, clamping
// anything above cap into the last bucket.
func BuildHistogram(m *ShardedMap, cap int) Histogram {
	h := Histogram{Freq: make([]int64, cap+1)}
	for e := range m.Entries() {
		c := e.Value
		if c < 0 {
			// banned entries carry no frequency information
			continue
		}
		if c > int64(cap) {
			c = int64(cap)
		}
		h.Freq[c]++
	}
	return h
}

/* -------------------------------------------------------------------------- */

// SelectThreshold resolves the count cutoff tau at or below which a
// k-mer is treated as sequencing noise, following one of three
// strategies taken directly from SeqBuilderMain's threshold handling:
//
//   - absolute:      tau is given directly (cfg.MaximalBadFrequency)
//   - bottom-percent: tau is the smallest count at or below which at
//     least cfg.BottomCutPercent percent of all observed k-mer
//     occurrences fall
//   - auto:          tau advances from 1 while h[tau]*tau exceeds
//     h[tau+1]*(tau+1), stopping early once the k-mers counted at or
//     below tau pass half of all distinct k-mers
func SelectThreshold(m *ShardedMap, cfg *Config) (int64, error) {
	switch {
	case cfg.MaximalBadFrequency != nil:
		return int64(*cfg.MaximalBadFrequency), nil
	case cfg.BottomCutPercent != nil:
		return bottomPercentThreshold(m, *cfg.BottomCutPercent)
	default:
		return autoThreshold(m)
	}
}

func bottomPercentThreshold(m *ShardedMap, percent int) (int64, error) {
	var counts []int64
	var total int64
	for e := range m.Entries() {
		if e.Value < 0 {
			continue
		}
		counts = append(counts, e.Value)
		total += e.Value
	}
	if len(counts) == 0 {
		return 0, newError(EmptyResult, "bottomPercentThreshold", fmt.Errorf("table has no countable entries"))
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })

	target := total * int64(percent) / 100
	var running int64
	for _, c := range counts {
		running += c
		if running >= target {
			return c, nil
		}
	}
	return counts[len(counts)-1], nil
}

// autoThreshold walks the count histogram the same way SeqBuilderMain
// does when no explicit cutoff is configured: starting at tau=1,
// advance tau as long as h[tau]*tau exceeds h[tau+1]*(tau+1) (the
// error pile-up at low counts falling off faster than the next
// bucket), but never advance past the point where the k-mers counted
// so far already cover half of every distinct k-mer observed.
func autoThreshold(m *ShardedMap) (int64, error) {
	const cap = 1000
	h := BuildHistogram(m, cap)

	var total int64
	for i := 1; i < len(h.Freq); i++ {
		total += h.Freq[i]
	}
	if total == 0 {
		return 0, newError(EmptyResult, "autoThreshold", fmt.Errorf("table has no countable entries"))
	}

	tau := 1
	cumulative := h.Freq[1]
	for tau+1 < len(h.Freq) &&
		2*cumulative <= total &&
		h.Freq[tau]*int64(tau) > h.Freq[tau+1]*int64(tau+1) {
		tau++
		cumulative += h.Freq[tau]
	}
	return int64(tau), nil
}
