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

	"github.com/ugorji/go/codec"
)

/* -------------------------------------------------------------------------- */

// RunSummary is the small sidecar record written alongside a build's
// output files: just enough to tell two runs apart without re-reading
// the FASTA and vector files themselves.
type RunSummary struct {
	K           int
	Threshold   int64
	KmerCount   uint64
	Stats       UnitigStats
	VectorFiles []string
}

var mh codec.MsgpackHandle

// WriteRunSummary serializes s to path using MessagePack: compact,
// self-describing, and readable back without knowing the writer's Go
// version, unlike gob.
func WriteRunSummary(path string, s RunSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return newError(IOFailure, "WriteRunSummary", err)
	}
	defer f.Close()

	enc := codec.NewEncoder(f, &mh)
	if err := enc.Encode(s); err != nil {
		return newError(IOFailure, "WriteRunSummary", err)
	}
	return nil
}

// ReadRunSummary decodes what WriteRunSummary wrote.
func ReadRunSummary(path string) (RunSummary, error) {
	var s RunSummary
	f, err := os.Open(path)
	if err != nil {
		return s, newError(IOFailure, "ReadRunSummary", err)
	}
	defer f.Close()

	dec := codec.NewDecoder(f, &mh)
	if err := dec.Decode(&s); err != nil {
		return s, newError(IOFailure, "ReadRunSummary", err)
	}
	return s, nil
}
