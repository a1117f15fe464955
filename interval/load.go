package interval

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bedindex/encoding/featio"
	"github.com/grailbio/bedindex/feature"
	"github.com/grailbio/hts/sam"
)

// LoadOpts controls index building.
type LoadOpts struct {
	// SAMHeader, when set, restricts input to chromosomes the header
	// declares; a record naming any other chromosome fails the load.  This
	// catches "chr1" vs "1" naming drift between a BED and its BAM before
	// every query silently comes back empty.
	SAMHeader *sam.Header
	// Malformed, when non-nil, is invoked once per malformed input line
	// with the data-line number and the parse failure.  Returning a
	// non-nil error aborts the load.  A nil callback skips malformed lines.
	Malformed func(line uint32, err error) error
}

// NewBinMapFromScanner builds a BinMap in a single pass over s.  Header
// and blank lines are skipped; malformed lines are skipped or surfaced
// according to opts.Malformed.
func NewBinMapFromScanner(s *featio.Scanner, opts LoadOpts) (*BinMap, error) {
	var known map[string]bool
	if opts.SAMHeader != nil {
		known = make(map[string]bool)
		for _, ref := range opts.SAMHeader.Refs() {
			known[ref.Name()] = true
		}
	}
	m := NewBinMap()
	var f feature.Feature
	for s.Scan(&f) {
		switch f.Status {
		case feature.Valid:
			if known != nil && !known[f.Chrom] {
				return nil, fmt.Errorf("interval: line %d: chromosome %q not present in the SAM header", s.Line(), f.Chrom)
			}
			if err := m.Insert(f); err != nil {
				return nil, fmt.Errorf("interval: line %d: %v", s.Line(), err)
			}
		case feature.Malformed:
			if opts.Malformed != nil {
				if err := opts.Malformed(s.Line(), s.LineErr()); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewBinMapFromPath is a wrapper for NewBinMapFromScanner that opens path
// itself; gzipped files and the special path "stdin" are supported.
func NewBinMapFromPath(path string, opts LoadOpts) (m *BinMap, err error) {
	in, err := featio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(); cerr != nil && err == nil {
			m, err = nil, cerr
		}
	}()
	if m, err = NewBinMapFromScanner(featio.NewScanner(in), opts); err != nil {
		return nil, err
	}
	log.Printf("%s: indexed %d feature(s)", path, m.Len())
	return m, nil
}
