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
	"os"
	"testing"
)

/* -------------------------------------------------------------------------- */

func TestComponentsFileRoundTrip(test *testing.T) {
	dir := test.TempDir()
	path := dir + "/components.bin"

	want := []Component{
		{Kmers: []Kmer{1, 2, 3}},
		{Kmers: []Kmer{}},
		{Kmers: []Kmer{42}},
	}
	if err := WriteComponentsFile(path, want); err != nil {
		test.Fatalf("WriteComponentsFile failed: %v", err)
	}
	got, err := ReadComponentsFile(path)
	if err != nil {
		test.Fatalf("ReadComponentsFile failed: %v", err)
	}
	if len(got) != len(want) {
		test.Fatalf("got %d components, want %d", len(got), len(want))
	}
	for i := range want {
		if len(got[i].Kmers) != len(want[i].Kmers) {
			test.Fatalf("component %d: got %d kmers, want %d", i, len(got[i].Kmers), len(want[i].Kmers))
		}
		for j := range want[i].Kmers {
			if got[i].Kmers[j] != want[i].Kmers[j] {
				test.Errorf("component %d kmer %d: got %v, want %v", i, j, got[i].Kmers[j], want[i].Kmers[j])
			}
		}
	}
	os.Remove(path)
}

func TestConnectedComponentsGroupsChain(test *testing.T) {
	m, _ := NewShardedMap(6, 1<<16, 1)
	buildChain(m, "ACGTGCATGCA", 6)

	comps := ConnectedComponents(m, 1)
	if len(comps) == 0 {
		test.Fatal("expected at least one component")
	}
	total := 0
	for _, c := range comps {
		total += len(c.Kmers)
	}
	if uint64(total) != m.Size() {
		test.Errorf("components cover %d kmers, table holds %d", total, m.Size())
	}
}
