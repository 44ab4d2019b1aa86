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

import "testing"

/* -------------------------------------------------------------------------- */

func TestBuildUnitigsCoversChain(test *testing.T) {
	// k=6 keeps assertions on total covered length simple to state;
	// BuildUnitigs itself tries both a stored key and its reverse
	// complement as start candidates regardless of k.
	seq := "ACGTGCATGCA"
	m, _ := NewShardedMap(6, 1<<16, 1)
	buildChain(m, seq, 6)

	seqs := BuildUnitigs(m, 1, 2)
	if len(seqs) == 0 {
		test.Fatal("expected at least one unitig")
	}
	var total int
	for _, s := range seqs {
		total += len(s.Bases)
		if len(s.Bases) < 6 {
			test.Errorf("unitig %q is shorter than k", s.Bases)
		}
	}
	if total > len(seq) {
		test.Errorf("unitigs cover %d bases, more than the %d-base input", total, len(seq))
	}
}

func TestBuildUnitigsStopsAtBranch(test *testing.T) {
	m, _ := NewShardedMap(6, 1<<16, 1)
	buildChain(m, "ACGTGCATGG", 6)
	buildChain(m, "ACGTGCATCC", 6)
	BanBranchingKmers(m, 1, 2)

	seqs := BuildUnitigs(m, 1, 2)
	for _, s := range seqs {
		if len(s.Bases) > 10 {
			test.Errorf("unitig %q is longer than either input read", s.Bases)
		}
	}
}

func TestComputeUnitigStatsN50(test *testing.T) {
	seqs := []Sequence{
		{Bases: "AAAAAAAAAA"}, // 10
		{Bases: "AAAAA"},      // 5
		{Bases: "AA"},         // 2
	}
	st := ComputeUnitigStats(seqs)
	if st.Count != 3 {
		test.Errorf("Count = %d, want 3", st.Count)
	}
	if st.TotalBases != 17 {
		test.Errorf("TotalBases = %d, want 17", st.TotalBases)
	}
	// half of 17 is 8.5: cumulative from the largest (10) already
	// covers 10 >= 8.5, so N50 = 10.
	if st.N50 != 10 {
		test.Errorf("N50 = %d, want 10", st.N50)
	}
}

func TestFilterByLength(test *testing.T) {
	seqs := []Sequence{{Bases: "AAAA"}, {Bases: "AAAAAAAA"}, {Bases: "AA"}}
	got := FilterByLength(seqs, 4)
	if len(got) != 2 {
		test.Errorf("FilterByLength(4) kept %d sequences, want 2", len(got))
	}
}
