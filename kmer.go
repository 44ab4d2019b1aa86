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

import "fmt"

/* -------------------------------------------------------------------------- */

// Kmer is a canonically-encodable DNA k-mer packed two bits per base
// into the low 2*k bits of a uint64, most significant base first.
// k is carried alongside every call site rather than in the type
// itself: the sharded table stores bare uint64 keys, and a single
// table only ever holds k-mers of one fixed length.
type Kmer = uint64

// MaxK is the largest k-mer length that fits a uint64 (2 bits/base).
const MaxK = 31

/* -------------------------------------------------------------------------- */

// EncodeKmer packs a length-k ASCII DNA string into its 2-bit
// representation. Fails if s contains anything but upper- or
// lower-case A, C, G, T.
func EncodeKmer(s string, k int) (Kmer, error) {
	if len(s) != k {
		return 0, fmt.Errorf("EncodeKmer(): sequence has length %d, expected %d", len(s), k)
	}
	var x Kmer
	for i := 0; i < k; i++ {
		b, err := baseCode(s[i])
		if err != nil {
			return 0, err
		}
		x = (x << 2) | Kmer(b)
	}
	return x, nil
}

// DecodeKmer unpacks a k-mer back into its ASCII string.
func DecodeKmer(x Kmer, k int) string {
	buf := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		buf[i] = Base(x & 3).byte()
		x >>= 2
	}
	return string(buf)
}

/* -------------------------------------------------------------------------- */

// kmerMask is the bitmask covering the low 2*k bits, i.e. (1<<2k)-1.
func kmerMask(k int) Kmer {
	if k >= 32 {
		return ^Kmer(0)
	}
	return (Kmer(1) << uint(2*k)) - 1
}

// ReverseComplement computes the reverse complement of a k-mer by
// complementing every base pairwise and reversing the 2-bit groups
// within the low 2k bits. The loop form (rather than a bit-trick
// byte-swap) keeps this branch-free on the value and obviously correct
// for any k <= MaxK.
func ReverseComplement(x Kmer, k int) Kmer {
	var r Kmer
	for i := 0; i < k; i++ {
		b := Base(x & 3).complement()
		r = (r << 2) | Kmer(b)
		x >>= 2
	}
	return r
}

// Canonical returns the lexicographically (numerically) smaller of x
// and its reverse complement. Tables only ever store this form.
func Canonical(x Kmer, k int) Kmer {
	rc := ReverseComplement(x, k)
	if rc < x {
		return rc
	}
	return x
}

/* -------------------------------------------------------------------------- */

// ShiftRight drops the leftmost base and appends b on the right:
// ((x << 2) | b) & mask.
func ShiftRight(x Kmer, k int, b Base) Kmer {
	return ((x << 2) | Kmer(b)) & kmerMask(k)
}

// ShiftLeft drops the rightmost base and prepends b on the left:
// (x >> 2) | (b << 2(k-1)).
func ShiftLeft(x Kmer, k int, b Base) Kmer {
	return (x >> 2) | (Kmer(b) << uint(2*(k-1)))
}

// NucAt returns the 2-bit base at position i counted from the left
// (i=0 is the most significant base).
func NucAt(x Kmer, k, i int) Base {
	shift := uint(2 * (k - i - 1))
	return Base((x >> shift) & 3)
}
