package interval

import (
	"github.com/grailbio/bedindex/feature"
)

// Overlaps returns copies of every indexed feature overlapping q by at
// least minFrac of q's length.  Results come in bin-walk order (finest
// level first), then file order within each bin; no other ordering is
// guaranteed.  Each returned copy has OverlapStart/OverlapEnd set to the
// intersection with q; indexed features themselves are never mutated.
func (m *BinMap) Overlaps(q *feature.Feature, minFrac float64) []feature.Feature {
	var hits []feature.Feature
	m.walk(q, minFrac, false, func(hit feature.Feature) bool {
		hits = append(hits, hit)
		return true
	})
	return hits
}

// OverlapsStranded is Overlaps restricted to candidates on q's strand.
// Strands compare by exact string equality, so an unknown (empty) strand
// only matches an unknown strand.
func (m *BinMap) OverlapsStranded(q *feature.Feature, minFrac float64) []feature.Feature {
	var hits []feature.Feature
	m.walk(q, minFrac, true, func(hit feature.Feature) bool {
		hits = append(hits, hit)
		return true
	})
	return hits
}

// AnyOverlap reports whether at least one indexed feature overlaps q by at
// least minFrac of q's length, stopping at the first hit.
func (m *BinMap) AnyOverlap(q *feature.Feature, minFrac float64) bool {
	found := false
	m.walk(q, minFrac, false, func(feature.Feature) bool {
		found = true
		return false
	})
	return found
}

// AnyOverlapStranded is AnyOverlap restricted to candidates on q's strand.
func (m *BinMap) AnyOverlapStranded(q *feature.Feature, minFrac float64) bool {
	found := false
	m.walk(q, minFrac, true, func(feature.Feature) bool {
		found = true
		return false
	})
	return found
}

// CountOverlaps returns the number of indexed features overlapping q by at
// least minFrac of q's length.
func (m *BinMap) CountOverlaps(q *feature.Feature, minFrac float64) int {
	n := 0
	m.walk(q, minFrac, false, func(feature.Feature) bool {
		n++
		return true
	})
	return n
}

// CountOverlapsStranded is CountOverlaps restricted to candidates on q's
// strand.
func (m *BinMap) CountOverlapsStranded(q *feature.Feature, minFrac float64) int {
	n := 0
	m.walk(q, minFrac, true, func(feature.Feature) bool {
		n++
		return true
	})
	return n
}

// walk visits, at each level of the binning hierarchy, every bin the query
// could share with a stored feature, and invokes visit with a copy of each
// candidate that passes the overlap-fraction (and optional strand) test.
// visit returns false to stop early.
//
// Coverage: a stored feature overlapping q shares a coarsened ancestor bin
// with q at the level the feature was binned, and the walk scans the
// query's full bin range at every level, so no overlapping feature can be
// missed.
func (m *BinMap) walk(q *feature.Feature, minFrac float64, forceStrand bool, visit func(feature.Feature) bool) {
	bins := m.refs[q.Chrom]
	if bins == nil {
		return
	}
	lo := q.Start >> binFirstShift
	var hi uint32
	if q.End > 0 {
		hi = (q.End - 1) >> binFirstShift
	}
	size := float64(q.End) - float64(q.Start)
	for i := 0; i < binLevels; i++ {
		offset := binOffsets[i]
		for j := lo + offset; j <= hi+offset; j++ {
			for k := range bins[j] {
				c := &bins[j][k]
				if forceStrand && q.Strand != c.Strand {
					continue
				}
				maxStart := q.Start
				if c.Start > maxStart {
					maxStart = c.Start
				}
				minEnd := q.End
				if c.End < minEnd {
					minEnd = c.End
				}
				overlap := int64(minEnd) - int64(maxStart)
				// ofrac is -Inf for a zero-length query that misses the
				// candidate, and NaN when both overlap and query length
				// are zero.  The NaN case is the exact-touch exception: a
				// zero-length query touching a candidate is always a hit,
				// whatever the threshold.
				ofrac := float64(overlap) / size
				if ofrac >= minFrac || (size == 0 && overlap == 0) {
					hit := *c
					hit.OverlapStart = maxStart
					hit.OverlapEnd = minEnd
					if !visit(hit) {
						return
					}
				}
			}
		}
		lo >>= binNextShift
		hi >>= binNextShift
	}
}
