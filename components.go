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
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/shenwei356/xopen"
)

/* -------------------------------------------------------------------------- */

// Component is one connected set of canonical k-mers, as produced by
// a connected-components pass over the unitig graph and consumed by
// the feature-vector builder.
type Component struct {
	Kmers []Kmer
}

/* -------------------------------------------------------------------------- */

// WriteComponentsFile serializes components to path as a sequence of
// records, each a 4-byte little-endian count followed by that many
// 8-byte little-endian k-mers. A component dump is typically the
// largest binary output this toolkit produces, so a .gz path is
// compressed with pgzip's multi-core deflate rather than xopen's
// single-threaded compress/gzip.
func WriteComponentsFile(path string, components []Component) error {
	f, err := os.Create(path)
	if err != nil {
		return newError(IOFailure, "WriteComponentsFile", err)
	}
	defer f.Close()

	var w io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		gz := pgzip.NewWriter(f)
		defer gz.Close()
		w = gz
	}

	for i, c := range components {
		if err := writeComponent(w, c); err != nil {
			return newError(IOFailure, "WriteComponentsFile", fmt.Errorf("component %d: %w", i, err))
		}
	}
	return nil
}

func writeComponent(w io.Writer, c Component) error {
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(c.Kmers)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	var buf [8]byte
	for _, k := range c.Kmers {
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadComponentsFile reads back every record written by
// WriteComponentsFile until EOF.
func ReadComponentsFile(path string) ([]Component, error) {
	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, newError(IOFailure, "ReadComponentsFile", err)
	}
	defer r.Close()

	var out []Component
	for {
		c, err := readComponent(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newError(IOFailure, "ReadComponentsFile", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func readComponent(r io.Reader) (Component, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Component{}, err
	}
	n := binary.LittleEndian.Uint32(hdr[:])
	c := Component{Kmers: make([]Kmer, n)}
	var buf [8]byte
	for i := range c.Kmers {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Component{}, fmt.Errorf("truncated component record at kmer %d/%d: %w", i, n, err)
		}
		c.Kmers[i] = Kmer(binary.LittleEndian.Uint64(buf[:]))
	}
	return c, nil
}

/* -------------------------------------------------------------------------- */

// ConnectedComponents groups every canonical k-mer above tau into
// components by following every right and left neighbor above tau
// (RightNeighbors/LeftNeighbors) from each unvisited k-mer, rather
// than only unique neighbors as BuildUnitigs does, stopping only at
// true graph boundaries (no neighbor at all), so a single component
// can span several unitigs meeting at a branch k-mer that is still
// above tau.
func ConnectedComponents(m *ShardedMap, tau int64) []Component {
	k := m.K()
	visited := newKmerSet()
	var out []Component

	for e := range m.Entries() {
		if e.Value <= tau {
			continue
		}
		if !visited.claim(e.Key) {
			continue
		}
		members := []Kmer{e.Key}
		queue := []Kmer{e.Key}
		for len(queue) > 0 {
			x := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			for _, b := range RightNeighbors(m, x, tau) {
				n := Canonical(ShiftRight(x, k, b), k)
				if visited.claim(n) {
					members = append(members, n)
					queue = append(queue, n)
				}
			}
			for _, b := range LeftNeighbors(m, x, tau) {
				n := Canonical(ShiftLeft(x, k, b), k)
				if visited.claim(n) {
					members = append(members, n)
					queue = append(queue, n)
				}
			}
		}
		out = append(out, Component{Kmers: members})
	}
	return out
}
