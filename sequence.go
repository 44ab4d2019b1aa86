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
	"io"

	"github.com/shenwei356/bpool"
	"github.com/shenwei356/xopen"
)

/* -------------------------------------------------------------------------- */

// fastaBufPool hands out the scratch buffer each FASTA record is
// assembled in before it's written out, so assembling thousands of
// unitig records doesn't churn a fresh []byte per record.
var fastaBufPool = bpool.NewBufferPool(64)

// WriteUnitigsFasta writes seqs as FASTA records with weight
// statistics in the header: `>{id} length={L} sum_weight={S}
// min_weight={m} max_weight={M}`, matching the header line
// SeqBuilderMain attaches to every assembled sequence.
func WriteUnitigsFasta(path string, seqs []Sequence, k int) error {
	w, err := xopen.Wopen(path)
	if err != nil {
		return newError(IOFailure, "WriteUnitigsFasta", err)
	}
	defer w.Close()

	for i, s := range seqs {
		if err := writeFastaRecord(w, i, s); err != nil {
			return newError(IOFailure, "WriteUnitigsFasta", err)
		}
	}
	return nil
}

func writeFastaRecord(w io.Writer, i int, s Sequence) error {
	buf := fastaBufPool.Get()
	defer fastaBufPool.Put(buf)

	fmt.Fprintf(buf, ">%d length=%d sum_weight=%d min_weight=%d max_weight=%d\n",
		i, len(s.Bases), s.SumWeight, s.MinWeight, s.MaxWeight)
	const wrap = 70
	for off := 0; off < len(s.Bases); off += wrap {
		end := off + wrap
		if end > len(s.Bases) {
			end = len(s.Bases)
		}
		fmt.Fprintf(buf, "%s\n", s.Bases[off:end])
	}
	_, err := w.Write(buf.Bytes())
	return err
}

/* -------------------------------------------------------------------------- */

// WriteDistribution dumps the count histogram as space-separated
// "count frequency" lines, one per bin from 1 up to the histogram's
// cap, for downstream plotting or inspection.
func WriteDistribution(path string, h Histogram) error {
	w, err := xopen.Wopen(path)
	if err != nil {
		return newError(IOFailure, "WriteDistribution", err)
	}
	defer w.Close()

	for i := 1; i < len(h.Freq); i++ {
		if _, err := fmt.Fprintf(w, "%d %d\n", i, h.Freq[i]); err != nil {
			return newError(IOFailure, "WriteDistribution", err)
		}
	}
	return nil
}

// WriteSeqInfo dumps one summary line per sequence, "length weight",
// where weight is the mean k-mer count (Sequence.MeanWeight), the flat table form of
// the same information WriteUnitigsFasta embeds in FASTA headers.
func WriteSeqInfo(path string, seqs []Sequence, k int) error {
	w, err := xopen.Wopen(path)
	if err != nil {
		return newError(IOFailure, "WriteSeqInfo", err)
	}
	defer w.Close()

	for _, s := range seqs {
		if _, err := fmt.Fprintf(w, "%d %v\n", len(s.Bases), s.MeanWeight(k)); err != nil {
			return newError(IOFailure, "WriteSeqInfo", err)
		}
	}
	return nil
}
