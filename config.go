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
	"fmt"
	"runtime"
)

/* -------------------------------------------------------------------------- */

// Config carries every recognized configuration option for a run. A
// CLI shell (cmd/metadbg, or any other caller) assigns these fields;
// the library never parses flags itself.
type Config struct {
	K int // k-mer length, mandatory, 1 <= K <= MaxK

	SequenceLen int // minimum unitig length to emit

	MaximalBadFrequency *int // absolute tau; mutually exclusive with BottomCutPercent
	BottomCutPercent     *int // percentile tau selection

	MaxSize int64 // soft memory cap for the table, in bytes

	Threshold int // tau used by C7

	Reads          []string // reads files
	Kmers          []string // k-mer count files
	ComponentsFile string   // path to the components binary

	Workers int // worker count, defaults to available processors

	WorkDir string // directory holding all intermediate and output files
}

// Validate checks that Config describes a coherent run, returning an
// InvalidInput error describing the first problem found.
func (c *Config) Validate() error {
	if c.K < 1 || c.K > MaxK {
		return newError(InvalidInput, "Config.Validate", fmt.Errorf("k must be in [1, %d], got %d", MaxK, c.K))
	}
	if c.MaximalBadFrequency != nil && c.BottomCutPercent != nil {
		return newError(InvalidInput, "Config.Validate", fmt.Errorf("maximal-bad-frequency and bottom-cut-percent are mutually exclusive"))
	}
	if c.BottomCutPercent != nil && (*c.BottomCutPercent < 0 || *c.BottomCutPercent > 100) {
		return newError(InvalidInput, "Config.Validate", fmt.Errorf("bottom-cut-percent must be in [0, 100], got %d", *c.BottomCutPercent))
	}
	if c.Workers < 0 {
		return newError(InvalidInput, "Config.Validate", fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.WorkDir == "" {
		c.WorkDir = "."
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}
