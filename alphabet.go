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

// Base is a 2-bit nucleotide code: A=0, C=1, G=2, T=3.
type Base byte

const (
	BaseA Base = 0
	BaseC Base = 1
	BaseG Base = 2
	BaseT Base = 3
)

// complement maps a 2-bit base to its Watson-Crick complement. A<->T
// (0<->3), C<->G (1<->2) is exactly the bitwise complement on 2 bits.
func (b Base) complement() Base {
	return Base(3 - b)
}

func (b Base) byte() byte {
	switch b {
	case BaseA:
		return 'A'
	case BaseC:
		return 'C'
	case BaseG:
		return 'G'
	case BaseT:
		return 'T'
	}
	panic("invalid base")
}

// baseCode decodes one ASCII DNA character into its 2-bit code. Returns
// an error for anything but upper- or lower-case A, C, G, T.
func baseCode(c byte) (Base, error) {
	switch c {
	case 'A', 'a':
		return BaseA, nil
	case 'C', 'c':
		return BaseC, nil
	case 'G', 'g':
		return BaseG, nil
	case 'T', 't':
		return BaseT, nil
	default:
		return 0, fmt.Errorf("invalid nucleotide `%c'", c)
	}
}
