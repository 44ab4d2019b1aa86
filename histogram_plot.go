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
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

/* -------------------------------------------------------------------------- */

// SaveHistogramPlot renders h as a log-log line plot and saves it as a
// PNG, giving a quick visual read on where the auto-threshold valley
// sits relative to the sequencing-error pile-up at low counts.
func SaveHistogramPlot(h Histogram, filename string) error {
	xy := make(plotter.XYs, 0, len(h.Freq))
	for c, freq := range h.Freq {
		if c == 0 || freq == 0 {
			continue
		}
		xy = append(xy, struct{ X, Y float64 }{X: float64(c), Y: float64(freq)})
	}

	p := plot.New()
	p.Title.Text = "k-mer count distribution"
	p.X.Label.Text = "count"
	p.Y.Label.Text = "distinct k-mers"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{}
	p.Y.Tick.Marker = plot.LogTicks{}

	if err := plotutil.AddLines(p, xy); err != nil {
		return newError(IOFailure, "SaveHistogramPlot", err)
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
		return newError(IOFailure, "SaveHistogramPlot", err)
	}
	return nil
}
