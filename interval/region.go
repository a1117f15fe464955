package interval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/bedindex/feature"
)

// ParseRegion parses a region string of one of the forms
//
//	[chrom]:[1-based first pos]-[last pos]
//	[chrom]:[1-based pos]
//	[chrom]
//
// into a query feature with 0-based half-open coordinates.  The full
// binnable range [0, MaxPos) is used when there is no positional
// restriction.
func ParseRegion(region string) (q feature.Feature, err error) {
	if len(region) == 0 {
		return q, fmt.Errorf("interval: empty region string")
	}
	colon := strings.IndexByte(region, ':')
	if colon == -1 {
		q.Chrom = region
		q.End = MaxPos
		return q, nil
	}
	if colon == 0 {
		return q, fmt.Errorf("interval: region %q has an empty chromosome", region)
	}
	q.Chrom = region[:colon]
	rangeStr := region[colon+1:]
	dash := strings.IndexByte(rangeStr, '-')
	if dash == -1 {
		pos1, e := strconv.ParseUint(rangeStr, 10, 32)
		if e != nil || pos1 == 0 || pos1 > MaxPos {
			return q, fmt.Errorf("interval: position %q in region %q out of range", rangeStr, region)
		}
		q.Start = uint32(pos1 - 1)
		q.End = uint32(pos1)
		return q, nil
	}
	start1, e := strconv.ParseUint(rangeStr[:dash], 10, 32)
	if e != nil || start1 == 0 {
		return q, fmt.Errorf("interval: position %q in region %q out of range", rangeStr[:dash], region)
	}
	end, e := strconv.ParseUint(rangeStr[dash+1:], 10, 32)
	if e != nil || end < start1 || end > MaxPos {
		return q, fmt.Errorf("interval: invalid range %q in region %q", rangeStr, region)
	}
	q.Start = uint32(start1 - 1)
	q.End = uint32(end)
	return q, nil
}
