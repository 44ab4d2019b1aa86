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

func TestConfigValidateDefaults(test *testing.T) {
	cfg := &Config{K: 21}
	if err := cfg.Validate(); err != nil {
		test.Fatalf("Validate failed: %v", err)
	}
	if cfg.WorkDir != "." {
		test.Errorf("WorkDir default = %q, want \".\"", cfg.WorkDir)
	}
	if cfg.Workers <= 0 {
		test.Errorf("Workers default = %d, want > 0", cfg.Workers)
	}
}

func TestConfigValidateRejectsBadK(test *testing.T) {
	for _, k := range []int{0, -1, MaxK + 1} {
		cfg := &Config{K: k}
		if err := cfg.Validate(); err == nil {
			test.Errorf("Validate should reject k=%d", k)
		}
	}
}

func TestConfigValidateRejectsBothThresholdModes(test *testing.T) {
	abs := 5
	pct := 10
	cfg := &Config{K: 21, MaximalBadFrequency: &abs, BottomCutPercent: &pct}
	if err := cfg.Validate(); err == nil {
		test.Error("Validate should reject both threshold modes set at once")
	}
}

func TestConfigValidateRejectsBadPercent(test *testing.T) {
	pct := 150
	cfg := &Config{K: 21, BottomCutPercent: &pct}
	if err := cfg.Validate(); err == nil {
		test.Error("Validate should reject a percent outside [0, 100]")
	}
}
