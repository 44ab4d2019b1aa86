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
	"encoding/binary"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
)

/* -------------------------------------------------------------------------- */

// writeKmersFile writes the (u64 key, u16 count) record format
// loadKmersFile reads, for use as test fixtures.
func writeKmersFile(t *testing.T, path string, records map[Kmer]uint16) {
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("writeKmersFile: %v", err)
	}
	defer f.Close()
	var rec [kmerRecordSize]byte
	for key, count := range records {
		binary.LittleEndian.PutUint64(rec[0:8], uint64(key))
		binary.LittleEndian.PutUint16(rec[8:10], count)
		if _, err := f.Write(rec[:]); err != nil {
			t.Fatalf("writeKmersFile: %v", err)
		}
	}
}

func TestLoadKmersFileSumsCounts(test *testing.T) {
	dir := test.TempDir()
	path := dir + "/sample.kmers"

	a := mustEncode("ACGTGC", 6)
	b := mustEncode("GCATGC", 6)
	writeKmersFile(test, path, map[Kmer]uint16{a: 5, b: 7})

	m, total, err := loadKmersFile(path, 6, 0, 1)
	if err != nil {
		test.Fatalf("loadKmersFile failed: %v", err)
	}
	if total != 12 {
		test.Errorf("total = %d, want 12 (5+7)", total)
	}
	if got := m.Get(a); got != 5 {
		test.Errorf("Get(a) = %d, want 5", got)
	}
	if got := m.Get(b); got != 7 {
		test.Errorf("Get(b) = %d, want 7", got)
	}
}

func TestRunFeaturesKmersFile(test *testing.T) {
	dir := test.TempDir()
	kmersPath := dir + "/sample.kmers"

	a := mustEncode("ACGTGC", 6)
	b := mustEncode("GCATGC", 6)
	c := mustEncode("TTTTTT", 6)
	writeKmersFile(test, kmersPath, map[Kmer]uint16{a: 10, b: 10, c: 4})

	components := []Component{
		{Kmers: []Kmer{a, b}},
		{Kmers: []Kmer{c}},
	}
	table, err := NewFeatureTable(6, components, 1)
	if err != nil {
		test.Fatalf("NewFeatureTable failed: %v", err)
	}

	cfg := &Config{K: 6, Kmers: []string{kmersPath}, Threshold: 0, Workers: 1, WorkDir: dir}
	written, err := RunFeatures(cfg, table)
	if err != nil {
		test.Fatalf("RunFeatures failed: %v", err)
	}
	if len(written) != 1 {
		test.Fatalf("RunFeatures wrote %d files, want 1", len(written))
	}

	data, err := os.ReadFile(written[0])
	if err != nil {
		test.Fatalf("reading vector file failed: %v", err)
	}
	// totalKmers = 10+10+4 = 24; component 0 sums to 20, component 1 to 4;
	// normalized: 20/24 and 4/24.
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		test.Fatalf("vector file has %d lines, want 2: %q", len(lines), string(data))
	}
	want := []float64{20.0 / 24.0, 4.0 / 24.0}
	for i, line := range lines {
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			test.Fatalf("line %d %q did not parse as float: %v", i, line, err)
		}
		if math.Abs(v-want[i]) > 1e-9 {
			test.Errorf("line %d = %v, want %v", i, v, want[i])
		}
	}
}
