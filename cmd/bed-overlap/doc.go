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

/*
bed-overlap loads one BED/GFF/VCF file into an in-memory genome-binned
index and streams a second file (or a single -region query) against it,
reporting overlapping records.  File formats are sniffed from the first
data line; gzipped input and "stdin" are accepted.  This command covers the
common uses of "bedtools intersect".

By default each query record is written alongside each record it overlaps,
one pair per line.  -c reports a per-query hit count instead, and -u writes
each query record once if it overlaps anything.  -f sets the minimum
overlap required as a fraction of the query record's length, and -s
restricts hits to the query record's strand.

Sample usage:
bed-overlap \
    -a reads.bed \
    -b exons.gff \
    -f 0.5 -s
*/
package main
