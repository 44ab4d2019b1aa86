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

package main

/* -------------------------------------------------------------------------- */

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pborman/getopt"

	. "github.com/pgmtk/metadbg"
)

/* -------------------------------------------------------------------------- */

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

/* -------------------------------------------------------------------------- */

func runBuild(args []string) {
	options := getopt.New()

	optK       := options.IntLong("k", 'k', 0, "k-mer length")
	optReads   := options.StringLong("reads", 'i', "", "comma-separated reads files (FASTA/FASTQ, gzip ok)")
	optAbs     := options.IntLong("maximal-bad-frequency", 'b', -1, "absolute count threshold at or below which a k-mer is noise")
	optPercent := options.IntLong("bottom-cut-percent", 'p', -1, "percentile count threshold")
	optMinLen  := options.IntLong("min-length", 'l', 0, "minimum unitig length to keep")
	optMaxSize := options.Int64Long("max-size", 0, 0, "soft memory budget for the frequency table, in bytes")
	optWorkers := options.IntLong("threads", 't', 0, "number of worker goroutines [default: available processors]")
	optWorkDir := options.StringLong("work-dir", 'o', ".", "output directory")
	optHelp    := options.BoolLong("help", 'h', "print help")

	options.Parse(append([]string{"metadbg build"}, args...))
	if *optHelp {
		options.PrintUsage(os.Stdout)
		os.Exit(0)
	}
	if *optK <= 0 || *optReads == "" {
		options.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	cfg := &Config{
		K:           *optK,
		SequenceLen: *optMinLen,
		MaxSize:     *optMaxSize,
		Reads:       splitCSV(*optReads),
		Workers:     *optWorkers,
		WorkDir:     *optWorkDir,
	}
	if *optAbs >= 0 {
		cfg.MaximalBadFrequency = optAbs
	}
	if *optPercent >= 0 {
		cfg.BottomCutPercent = optPercent
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	m, err := NewShardedMap(cfg.K, cfg.MaxSize, cfg.Workers)
	if err != nil {
		log.Fatal(err)
	}
	if err := CountKmers(m, cfg.Reads, cfg.Workers); err != nil {
		log.Fatal(err)
	}

	tau, err := SelectThreshold(m, cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("selected threshold tau=%d", tau)

	BanBranchingKmers(m, tau, cfg.Workers)

	seqs := BuildUnitigs(m, tau, cfg.Workers)
	seqs = FilterByLength(seqs, cfg.SequenceLen)
	stats := ComputeUnitigStats(seqs)
	log.Printf("assembled %d sequences, N50=%d, total=%d bases", stats.Count, stats.N50, stats.TotalBases)

	if err := os.MkdirAll(cfg.WorkDir, 0755); err != nil {
		log.Fatal(err)
	}
	fastaPath := filepath.Join(cfg.WorkDir, "unitigs.fasta")
	if err := WriteUnitigsFasta(fastaPath, seqs, cfg.K); err != nil {
		log.Fatal(err)
	}
	if err := WriteSeqInfo(filepath.Join(cfg.WorkDir, "unitigs.seqinfo"), seqs, cfg.K); err != nil {
		log.Fatal(err)
	}

	hist := BuildHistogram(m, 1000)
	if err := WriteDistribution(filepath.Join(cfg.WorkDir, "distribution.tsv"), hist); err != nil {
		log.Fatal(err)
	}
	if err := SaveHistogramPlot(hist, filepath.Join(cfg.WorkDir, "distribution.png")); err != nil {
		log.Printf("plotting histogram failed: %v", err)
	}

	components := ConnectedComponents(m, tau)
	componentsPath := filepath.Join(cfg.WorkDir, "components.bin")
	if err := WriteComponentsFile(componentsPath, components); err != nil {
		log.Fatal(err)
	}

	summary := RunSummary{
		K:         cfg.K,
		Threshold: tau,
		KmerCount: m.Size(),
		Stats:     stats,
	}
	if err := WriteRunSummary(filepath.Join(cfg.WorkDir, "run.summary"), summary); err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", fastaPath)
}

/* -------------------------------------------------------------------------- */

func runFeatures(args []string) {
	options := getopt.New()

	optK          := options.IntLong("k", 'k', 0, "k-mer length")
	optComponents := options.StringLong("components-file", 0, "", "binary connected-components file")
	optReads      := options.StringLong("reads", 'i', "", "comma-separated reads files")
	optKmers      := options.StringLong("kmers", 0, "", "comma-separated k-mer count files")
	optThreshold  := options.IntLong("threshold", 'b', 0, "maximal frequency for a k-mer to be assumed erroneous")
	optWorkers    := options.IntLong("threads", 't', 0, "number of worker goroutines")
	optWorkDir    := options.StringLong("work-dir", 'o', ".", "output directory")
	optHelp       := options.BoolLong("help", 'h', "print help")

	options.Parse(append([]string{"metadbg features"}, args...))
	if *optHelp {
		options.PrintUsage(os.Stdout)
		os.Exit(0)
	}
	if *optK <= 0 || *optComponents == "" {
		options.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	cfg := &Config{
		K:              *optK,
		ComponentsFile: *optComponents,
		Reads:          splitCSV(*optReads),
		Kmers:          splitCSV(*optKmers),
		Threshold:      *optThreshold,
		Workers:        *optWorkers,
		WorkDir:        *optWorkDir,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	components, err := ReadComponentsFile(cfg.ComponentsFile)
	if err != nil {
		log.Fatal(err)
	}
	if len(components) == 0 {
		log.Fatalf("no components were found in %s", cfg.ComponentsFile)
	}

	table, err := NewFeatureTable(cfg.K, components, cfg.Workers)
	if err != nil {
		log.Fatal(err)
	}
	written, err := RunFeatures(cfg, table)
	if err != nil {
		log.Fatal(err)
	}
	for _, f := range written {
		fmt.Fprintf(os.Stdout, "wrote %s\n", f)
	}
}

/* -------------------------------------------------------------------------- */

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: metadbg <build|features> [options]")
		os.Exit(1)
	}
	switch os.Args[1] {
	case "build":
		runBuild(os.Args[2:])
	case "features":
		runFeatures(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q, expected build or features\n", os.Args[1])
		os.Exit(1)
	}
}
