// Copyright 2021 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/bedindex/encoding/featio"
	"github.com/grailbio/bedindex/feature"
	"github.com/grailbio/bedindex/interval"
)

var (
	queryPath = flag.String("a", "", "Query file (BED/GFF/VCF; \"stdin\" reads standard input); this xor -region required")
	region    = flag.String("region", "", "Single ad-hoc query. Format as <chrom>:<1-based first pos>-<last pos>, <chrom>:<1-based pos>, or just <chrom>; this xor -a required")
	dbPath    = flag.String("b", "", "File to index and query against (BED/GFF/VCF); required")

	minFrac     = flag.Float64("f", 0.0, "Minimum overlap required as a fraction of each query record's length")
	forceStrand = flag.Bool("s", false, "Only report hits on the same strand as the query record")
	countOnly   = flag.Bool("c", false, "For each query record, report its number of hits instead of the hits themselves")
	anyOnly     = flag.Bool("u", false, "Write each query record once if it has at least one hit")

	skipMalformed = flag.Bool("skip-malformed", false, "Skip malformed input lines (with a logged warning) instead of aborting")
)

func bedOverlapUsage() {
	fmt.Printf("Usage: %s -b <path> {-a <path> | -region <region>} [OPTIONS]\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

// reportQuery runs one query record against the index and writes the
// requested form of output.
func reportQuery(w *tsv.Writer, m *interval.BinMap, q *feature.Feature) error {
	switch {
	case *anyOnly:
		var any bool
		if *forceStrand {
			any = m.AnyOverlapStranded(q, *minFrac)
		} else {
			any = m.AnyOverlap(q, *minFrac)
		}
		if !any {
			return nil
		}
		w.WriteString(featio.Render(q))
		return w.EndLine()
	case *countOnly:
		var n int
		if *forceStrand {
			n = m.CountOverlapsStranded(q, *minFrac)
		} else {
			n = m.CountOverlaps(q, *minFrac)
		}
		w.WriteString(featio.Render(q))
		w.WriteUint32(uint32(n))
		return w.EndLine()
	default:
		var hits []feature.Feature
		if *forceStrand {
			hits = m.OverlapsStranded(q, *minFrac)
		} else {
			hits = m.Overlaps(q, *minFrac)
		}
		for i := range hits {
			w.WriteString(featio.Render(q))
			w.WriteString(featio.Render(&hits[i]))
			if err := w.EndLine(); err != nil {
				return err
			}
		}
	}
	return nil
}

func main() {
	flag.Usage = bedOverlapUsage
	shutdown := grail.Init()
	defer shutdown()

	if (*queryPath == "") == (*region == "") {
		log.Fatalf("Exactly one of -a and -region is required; please check flag syntax")
	}
	if *dbPath == "" {
		log.Fatalf("-b is required")
	}
	if *countOnly && *anyOnly {
		log.Fatalf("-c and -u are mutually exclusive")
	}
	if *minFrac < 0 {
		log.Fatalf("-f must be non-negative, got %v", *minFrac)
	}

	malformed := func(line uint32, err error) error { return err }
	if *skipMalformed {
		malformed = func(line uint32, err error) error {
			log.Error.Printf("skipping malformed line: %v", err)
			return nil
		}
	}

	m, err := interval.NewBinMapFromPath(*dbPath, interval.LoadOpts{Malformed: malformed})
	if err != nil {
		log.Fatalf("%s: %v", *dbPath, err)
	}

	w := tsv.NewWriter(os.Stdout)
	if *region != "" {
		q, err := interval.ParseRegion(*region)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := reportQuery(w, m, &q); err != nil {
			log.Fatalf("write: %v", err)
		}
	} else {
		in, err := featio.Open(*queryPath)
		if err != nil {
			log.Fatalf("%s: %v", *queryPath, err)
		}
		sc := featio.NewScanner(in)
		var q feature.Feature
		for sc.Scan(&q) {
			switch q.Status {
			case feature.Valid:
				if err := reportQuery(w, m, &q); err != nil {
					log.Fatalf("write: %v", err)
				}
			case feature.Malformed:
				if err := malformed(sc.Line(), sc.LineErr()); err != nil {
					log.Fatalf("%s: %v", *queryPath, err)
				}
			}
		}
		if err := sc.Err(); err != nil {
			log.Fatalf("%s: %v", *queryPath, err)
		}
		if err := in.Close(); err != nil {
			log.Fatalf("%s: %v", *queryPath, err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("write: %v", err)
	}
}
