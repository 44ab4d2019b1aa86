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
	"errors"
	"testing"
)

/* -------------------------------------------------------------------------- */

func TestIsKindMatches(test *testing.T) {
	err := newError(InvalidInput, "Foo", errors.New("bad"))
	if !IsKind(err, InvalidInput) {
		test.Error("IsKind should match the error's own kind")
	}
	if IsKind(err, IOFailure) {
		test.Error("IsKind should not match an unrelated kind")
	}
}

func TestIsKindWrapped(test *testing.T) {
	inner := newError(CapacityExhausted, "Bar", errors.New("full"))
	outer := newError(IOFailure, "Baz", inner)
	if !IsKind(outer, CapacityExhausted) {
		test.Error("IsKind should walk the unwrap chain to find a wrapped *Error")
	}
}

func TestIsKindPlainError(test *testing.T) {
	if IsKind(errors.New("plain"), InvalidInput) {
		test.Error("a plain error can never match any Kind")
	}
}
