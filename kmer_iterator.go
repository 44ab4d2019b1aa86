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

// KmerIterator slides a length-k window across a DNA sequence, skipping
// over any window that touches an N or other non-ACGT base. It is the
// sole producer of k-mers fed to ShardedMap.Insert by the C3 pipeline.
// advance() is amortized O(1) per base: a running count of consecutive
// valid bases means a stretch of Ns is skipped in one pass rather than
// re-scanned for every candidate window.
type KmerIterator struct {
	seq []byte
	k   int
	p   int // next unread position in seq
	run int // consecutive valid bases ending at p-1
	cur Kmer
	i   int // left edge of the current window
	ok  bool
}

// NewKmerIterator prepares an iterator over seq. A sequence shorter
// than k yields zero windows.
func NewKmerIterator(seq []byte, k int) *KmerIterator {
	it := &KmerIterator{seq: seq, k: k}
	it.advance()
	return it
}

// Ok reports whether Get returns a valid window.
func (it *KmerIterator) Ok() bool {
	return it.ok
}

// Get returns the canonical form of the current window.
func (it *KmerIterator) Get() Kmer {
	return Canonical(it.cur, it.k)
}

// Next moves to the next valid window, if any.
func (it *KmerIterator) Next() {
	it.advance()
}

func (it *KmerIterator) advance() {
	mask := kmerMask(it.k)
	for it.p < len(it.seq) {
		b, err := baseCode(it.seq[it.p])
		it.p++
		if err != nil {
			it.run = 0
			continue
		}
		it.cur = ((it.cur << 2) | Kmer(b)) & mask
		it.run++
		if it.run >= it.k {
			it.i = it.p - it.k
			it.ok = true
			return
		}
	}
	it.ok = false
}
