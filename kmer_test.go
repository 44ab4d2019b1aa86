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

func TestEncodeDecodeRoundTrip(test *testing.T) {
	for _, s := range []string{"A", "ACGT", "GATTACA", "TTTTTTTTTTTTTTTTTTTTTTTTTTTTTTT"} {
		x, err := EncodeKmer(s, len(s))
		if err != nil {
			test.Fatalf("EncodeKmer(%q) failed: %v", s, err)
		}
		if got := DecodeKmer(x, len(s)); got != s {
			test.Errorf("DecodeKmer(EncodeKmer(%q)) = %q", s, got)
		}
	}
}

func TestEncodeInvalidBase(test *testing.T) {
	if _, err := EncodeKmer("ACGN", 4); err == nil {
		test.Error("expected error for non-ACGT base")
	}
}

func TestReverseComplement(test *testing.T) {
	x, _ := EncodeKmer("ACGT", 4)
	rc := ReverseComplement(x, 4)
	if got := DecodeKmer(rc, 4); got != "ACGT" {
		test.Errorf("ACGT should be its own reverse complement, got %q", got)
	}
	y, _ := EncodeKmer("GATTACA", 7)
	ry := ReverseComplement(y, 7)
	if got := DecodeKmer(ry, 7); got != "TGTAATC" {
		test.Errorf("reverse complement of GATTACA = %q, want TGTAATC", got)
	}
	if ReverseComplement(ry, 7) != y {
		test.Error("reverse complement is not its own inverse")
	}
}

func TestCanonicalIsMinimum(test *testing.T) {
	x, _ := EncodeKmer("GATTACA", 7)
	rc := ReverseComplement(x, 7)
	c := Canonical(x, 7)
	if c != x && c != rc {
		test.Error("canonical form must equal the k-mer or its reverse complement")
	}
	if c > x || c > rc {
		test.Error("canonical form must be the minimum of the two")
	}
	if Canonical(x, 7) != Canonical(rc, 7) {
		test.Error("canonical form is not invariant under reverse complementation")
	}
}

func TestShiftRightLeft(test *testing.T) {
	x, _ := EncodeKmer("ACGT", 4)
	y := ShiftRight(x, 4, BaseA)
	if got := DecodeKmer(y, 4); got != "CGTA" {
		test.Errorf("ShiftRight(ACGT, A) = %q, want CGTA", got)
	}
	z := ShiftLeft(x, 4, BaseT)
	if got := DecodeKmer(z, 4); got != "TACG" {
		test.Errorf("ShiftLeft(ACGT, T) = %q, want TACG", got)
	}
}

func TestNucAt(test *testing.T) {
	x, _ := EncodeKmer("ACGT", 4)
	want := []Base{BaseA, BaseC, BaseG, BaseT}
	for i, w := range want {
		if got := NucAt(x, 4, i); got != w {
			test.Errorf("NucAt(ACGT, %d) = %v, want %v", i, got, w)
		}
	}
}
