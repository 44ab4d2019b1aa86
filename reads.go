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
	"io"

	"github.com/shenwei356/bio/seqio/fastx"
	"golang.org/x/sync/errgroup"
)

/* -------------------------------------------------------------------------- */

// CountKmers streams every FASTA/FASTQ record across files (gzip
// detected transparently by the underlying reader) and inserts every
// valid window into m. Files are handed out from a shared channel to a
// fixed pool of goroutines so that one huge file can't starve the
// others; ShardedMap.Insert is already safe for concurrent callers, so
// no result needs to be merged back. A worker whose file fails stops
// taking files; the other workers are not cancelled and go on until
// the channel is drained, and the first error is returned once every
// worker has finished.
func CountKmers(m *ShardedMap, files []string, workers int) error {
	if workers < 1 {
		workers = 1
	}
	// Buffered so the feed loop below can hand out every file without
	// a worker that errored out early leaving nobody to receive.
	jobs := make(chan string, len(files))
	g := new(errgroup.Group)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for path := range jobs {
				if err := countKmersInFile(m, path); err != nil {
					return err
				}
			}
			return nil
		})
	}
	for _, f := range files {
		jobs <- f
	}
	close(jobs)

	if err := g.Wait(); err != nil {
		return newError(IOFailure, "CountKmers", err)
	}
	return nil
}

func countKmersInFile(m *ShardedMap, path string) error {
	reader, err := fastx.NewDefaultReader(path)
	if err != nil {
		return err
	}
	k := m.K()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		for it := NewKmerIterator(record.Seq.Seq, k); it.Ok(); it.Next() {
			if err := m.Insert(it.Get()); err != nil {
				return err
			}
		}
	}
}
