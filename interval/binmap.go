package interval

import (
	"github.com/grailbio/bedindex/feature"
)

// BinMap indexes BED/GFF/VCF features by chromosome, then by bin, for
// sub-linear overlap queries.  It is populated by a single writer pass and
// read-only afterward; an already-built map may be shared by concurrent
// readers, but there is no mutate-while-reading support.
type BinMap struct {
	// refs maps chromosome name -> bin number -> features, in insertion
	// (i.e. file) order within each bin.
	refs map[string]map[uint32][]feature.Feature
	n    int
}

// NewBinMap returns an empty BinMap.
func NewBinMap() *BinMap {
	return &BinMap{refs: make(map[string]map[uint32][]feature.Feature)}
}

// Insert files f under its chromosome and bin.  Features sharing a bin
// keep their relative insertion order.
func (m *BinMap) Insert(f feature.Feature) error {
	bin, err := BinFor(f.Start, f.End)
	if err != nil {
		return err
	}
	bins := m.refs[f.Chrom]
	if bins == nil {
		bins = make(map[uint32][]feature.Feature)
		m.refs[f.Chrom] = bins
	}
	bins[bin] = append(bins[bin], f)
	m.n++
	return nil
}

// Len returns the number of indexed features.
func (m *BinMap) Len() int {
	return m.n
}

// Chroms returns the names of all chromosomes with at least one indexed
// feature, in no particular order.
func (m *BinMap) Chroms() []string {
	names := make([]string, 0, len(m.refs))
	for name := range m.refs {
		names = append(names, name)
	}
	return names
}
