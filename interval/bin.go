package interval

import "fmt"

// The binning scheme partitions each chromosome's coordinate space into a
// hierarchy of nested bins, numbered in a single flat namespace.  The
// finest bins span 16Kbp and each level up groups 8 bins of the level
// below, so a feature lands in the smallest bin that fully contains it and
// a query only has to visit O(log(span)) bins per level instead of
// scanning the chromosome.
const (
	binLevels     = 7
	binFirstShift = 14 // shift to the finest (16Kbp) level
	binNextShift  = 3  // shift to the next-coarser level

	// MaxPos is the inclusive upper bound on binnable coordinates: 512Mbp,
	// comfortably above the longest human chromosome.
	MaxPos = 1 << 29
)

// binOffsets[i] locates level i's bin numbers within the flat namespace;
// level 0 is the finest.
var binOffsets = [binLevels]uint32{
	32768 + 4096 + 512 + 64 + 8 + 1,
	4096 + 512 + 64 + 8 + 1,
	512 + 64 + 8 + 1,
	64 + 8 + 1,
	8 + 1,
	1,
	0,
}

// BinFor returns the bin number of the smallest bin fully containing the
// 0-based half-open interval [start, end).  Intervals extending past
// MaxPos cannot be binned and are reported as an error, never silently
// mapped to the root bin.
func BinFor(start, end uint32) (uint32, error) {
	if start > end || end > MaxPos {
		return 0, fmt.Errorf("interval: [%d, %d) out of range for the binning hierarchy (max is 512Mbp)", start, end)
	}
	lo := start >> binFirstShift
	var hi uint32
	if end > 0 {
		hi = (end - 1) >> binFirstShift
	}
	for i := 0; i < binLevels; i++ {
		if lo == hi {
			return binOffsets[i] + lo, nil
		}
		lo >>= binNextShift
		hi >>= binNextShift
	}
	return 0, fmt.Errorf("interval: no bin level contains [%d, %d)", start, end)
}
