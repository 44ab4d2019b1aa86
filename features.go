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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbenner/threadpool"
	"github.com/shenwei356/xopen"
)

/* -------------------------------------------------------------------------- */

// FeatureTable fixes a component ordering so that many samples can be
// projected onto the same vector layout: build it once from the
// components file, then reuse it for every reads/k-mers file in a run.
type FeatureTable struct {
	k          int
	components []Component
}

// NewFeatureTable wraps components with the k-mer length they were
// built for, mirroring the preparing phase of FeaturesCalculatorMain,
// which loads the component list once before any sample file is read.
func NewFeatureTable(k int, components []Component, workers int) (*FeatureTable, error) {
	return &FeatureTable{k: k, components: components}, nil
}

// Len reports the number of components (equivalently, the length of
// every vector FeatureTable produces).
func (t *FeatureTable) Len() int {
	return len(t.components)
}

/* -------------------------------------------------------------------------- */

// BuildVectorFromCounts sums, per component, the counts of every
// member k-mer whose count exceeds threshold in counts, then divides
// every entry by totalKmers to normalize away library depth — the
// same two-stage reduction buildAndPrintVector performs per worker
// range before writing the vector to disk.
func BuildVectorFromCounts(t *FeatureTable, counts *ShardedMap, threshold int64, totalKmers int64, workers int) []float64 {
	if workers < 1 {
		workers = 1
	}
	raw := make([]int64, len(t.components))
	pool := threadpool.New(workers, len(t.components))
	pool.RangeJob(0, len(t.components), func(i int, pool threadpool.ThreadPool, erf func() error) error {
		var sum int64
		for _, x := range t.components[i].Kmers {
			v := counts.Get(x)
			if v > threshold {
				sum += v
			}
		}
		raw[i] = sum
		return nil
	})

	vec := make([]float64, len(raw))
	if totalKmers == 0 {
		return vec
	}
	for i, s := range raw {
		vec[i] = float64(s) / float64(totalKmers)
	}
	return vec
}

/* -------------------------------------------------------------------------- */

// RunFeatures reproduces the two FeaturesCalculatorMain code paths:
// one vector file per reads file (not normalized: totalKmers=1 keeps
// raw sums, matching the Java tool's literal "1" normalizer for reads
// input) and one per k-mers file (normalized by the total occurrence
// count recorded in that file).
func RunFeatures(cfg *Config, t *FeatureTable) ([]string, error) {
	outDir := filepath.Join(cfg.WorkDir, "vectors")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, newError(IOFailure, "RunFeatures", err)
	}
	var written []string

	for _, readsFile := range cfg.Reads {
		counts, err := NewShardedMap(cfg.K, cfg.MaxSize, cfg.Workers)
		if err != nil {
			return written, err
		}
		if err := CountKmers(counts, []string{readsFile}, cfg.Workers); err != nil {
			return written, err
		}
		vec := BuildVectorFromCounts(t, counts, int64(cfg.Threshold), 1, cfg.Workers)
		outFile := filepath.Join(outDir, baseNameNoExt(readsFile)+".vec")
		if err := writeVectorFile(outFile, vec); err != nil {
			return written, err
		}
		written = append(written, outFile)
	}

	for _, kmersFile := range cfg.Kmers {
		counts, total, err := loadKmersFile(kmersFile, cfg.K, int64(cfg.Threshold), cfg.Workers)
		if err != nil {
			return written, err
		}
		vec := BuildVectorFromCounts(t, counts, int64(cfg.Threshold), total, cfg.Workers)
		outFile := filepath.Join(outDir, strings.TrimSuffix(baseNameNoExt(kmersFile), ".kmers")+".vec")
		if err := writeVectorFile(outFile, vec); err != nil {
			return written, err
		}
		written = append(written, outFile)
	}
	return written, nil
}

func baseNameNoExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// kmerRecordSize is the on-disk width of one k-mer count file record:
// an 8-byte little-endian canonical key followed by a 2-byte
// little-endian count.
const kmerRecordSize = 10

// loadKmersFile reads a binary k-mer count file: a sequence of
// (u64 key, u16 count) little-endian records, canonical keys, as
// documented for the k-mer count file input format. It returns a
// table holding those counts and the sum of every count in the file,
// the totalKmers normalizer RunFeatures divides the k-mers-file
// vector by.
func loadKmersFile(path string, k int, threshold int64, workers int) (*ShardedMap, int64, error) {
	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, 0, newError(IOFailure, "loadKmersFile", err)
	}
	defer r.Close()

	m, err := NewShardedMap(k, 0, workers)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	var rec [kmerRecordSize]byte
	for {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, 0, newError(IOFailure, "loadKmersFile", fmt.Errorf("truncated record: %w", err))
		}
		key := Kmer(binary.LittleEndian.Uint64(rec[0:8]))
		count := int64(binary.LittleEndian.Uint16(rec[8:10]))
		if err := m.Set(key, count); err != nil {
			return nil, 0, err
		}
		total += count
	}
	return m, total, nil
}

func writeVectorFile(path string, vec []float64) error {
	w, err := xopen.Wopen(path)
	if err != nil {
		return newError(IOFailure, "writeVectorFile", err)
	}
	defer w.Close()
	for _, v := range vec {
		if _, err := fmt.Fprintf(w, "%v\n", v); err != nil {
			return newError(IOFailure, "writeVectorFile", err)
		}
	}
	return nil
}
