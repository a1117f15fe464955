package featio

import (
	"strings"
	"testing"

	"github.com/grailbio/bedindex/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAll drains a scanner, returning one record per input line.
func scanAll(t *testing.T, input string) []feature.Feature {
	s := NewScanner(strings.NewReader(input))
	var recs []feature.Feature
	var f feature.Feature
	for s.Scan(&f) {
		recs = append(recs, f)
	}
	require.NoError(t, s.Err())
	assert.Equal(t, feature.EndOfInput, f.Status)
	return recs
}

func TestSniffBED3(t *testing.T) {
	recs := scanAll(t, "chr1\t100\t200\nchr1\t150\t250\n")
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, feature.Valid, r.Status)
		assert.Equal(t, feature.BED, r.SourceFormat)
		assert.Equal(t, uint16(3), r.ColumnCount)
	}
	assert.Equal(t, "chr1", recs[0].Chrom)
	assert.Equal(t, uint32(100), recs[0].Start)
	assert.Equal(t, uint32(200), recs[0].End)
	assert.Equal(t, "", recs[0].Strand)
	assert.Equal(t, []string{"chr1", "100", "200"}, recs[0].Fields)
}

func TestSniffBEDWithExtras(t *testing.T) {
	recs := scanAll(t, "chr1\t100\t200\tfeat1\t960\t+\t100\t200\t0,0,255\n")
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, feature.Valid, r.Status)
	assert.Equal(t, feature.BED, r.SourceFormat)
	assert.Equal(t, uint16(9), r.ColumnCount)
	assert.Equal(t, "feat1", r.Name)
	assert.Equal(t, "960", r.Score)
	assert.Equal(t, "+", r.Strand)
	assert.Equal(t, []string{"100", "200", "0,0,255"}, r.Extra)
}

func TestSniffVCF(t *testing.T) {
	recs := scanAll(t, "chr2\t1000\t.\tA\tG\t71.0\tPASS\tDP=3\n")
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, feature.Valid, r.Status)
	assert.Equal(t, feature.VCF, r.SourceFormat)
	assert.Equal(t, uint32(999), r.Start)
	assert.Equal(t, uint32(1000), r.End)
	assert.Equal(t, "A/G", r.Name)
	assert.Equal(t, "+", r.Strand)
	assert.Equal(t, []string{".", "A", "G", "71.0", "PASS", "DP=3"}, r.Extra)
}

func TestVCFNameIncludesID(t *testing.T) {
	recs := scanAll(t, "chr2\t1000\trs99\tAC\tG\t71.0\tPASS\tDP=3\n")
	require.Len(t, recs, 1)
	assert.Equal(t, "AC/G_rs99", recs[0].Name)
	// The interval covers the two-base REF allele.
	assert.Equal(t, uint32(999), recs[0].Start)
	assert.Equal(t, uint32(1001), recs[0].End)
}

func TestVCFPositionBounds(t *testing.T) {
	// POS 0 would wrap the 0-based start; POS 1 yields start 0, which the
	// reference implementation also rejects.  POS 2 is the first accepted
	// position.
	recs := scanAll(t, "chr1\t0\t.\tA\tG\t0\tPASS\tDP=1\n"+
		"chr1\t1\t.\tA\tG\t0\tPASS\tDP=1\n"+
		"chr1\t2\t.\tA\tG\t0\tPASS\tDP=1\n")
	require.Len(t, recs, 3)
	assert.Equal(t, feature.Malformed, recs[0].Status)
	assert.Equal(t, feature.Malformed, recs[1].Status)
	assert.Equal(t, feature.Valid, recs[2].Status)
	assert.Equal(t, uint32(1), recs[2].Start)
}

func TestSniffGFF(t *testing.T) {
	recs := scanAll(t, "chr1\tcurated\texon\t100\t200\t0.0\t+\t.\tgene_id \"g1\"\n")
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, feature.Valid, r.Status)
	assert.Equal(t, feature.GFF, r.SourceFormat)
	assert.Equal(t, uint32(99), r.Start) // 1-based start converted
	assert.Equal(t, uint32(200), r.End)
	assert.Equal(t, "exon", r.Name)
	assert.Equal(t, "0.0", r.Score)
	assert.Equal(t, "+", r.Strand)
	assert.Equal(t, []string{"curated", ".", "gene_id \"g1\""}, r.Extra)
}

func TestSniffPriorityBEDBeatsVCF(t *testing.T) {
	// Columns 2 and 3 both integer: BED, even with 8+ columns.
	recs := scanAll(t, "chr1\t100\t200\ta\tb\tc\td\te\n")
	require.Len(t, recs, 1)
	assert.Equal(t, feature.BED, recs[0].SourceFormat)
}

func TestHeadersAndBlanks(t *testing.T) {
	recs := scanAll(t, "track name=x\nbrowser position chr1\n# comment\n\nchr1\t1\t2\n")
	require.Len(t, recs, 5)
	assert.Equal(t, feature.Header, recs[0].Status)
	assert.Equal(t, feature.Header, recs[1].Status)
	assert.Equal(t, feature.Header, recs[2].Status)
	assert.Equal(t, feature.Blank, recs[3].Status)
	assert.Equal(t, feature.Valid, recs[4].Status)
}

func TestHeaderLinesDoNotAdvanceLineNumber(t *testing.T) {
	s := NewScanner(strings.NewReader("# one\n# two\nchr1\t1\t2\n"))
	var f feature.Feature
	require.True(t, s.Scan(&f))
	assert.Equal(t, uint32(0), s.Line())
	require.True(t, s.Scan(&f))
	assert.Equal(t, uint32(0), s.Line())
	require.True(t, s.Scan(&f))
	assert.Equal(t, feature.Valid, f.Status)
	assert.Equal(t, uint32(1), s.Line())
}

func TestStickyColumnCount(t *testing.T) {
	// The file commits to 3 columns; a 5-column line is malformed even
	// though it would be a valid BED5 on its own.
	recs := scanAll(t, "chr1\t100\t200\nchr1\t150\t250\tname\t0\nchr1\t300\t400\n")
	require.Len(t, recs, 3)
	assert.Equal(t, feature.Valid, recs[0].Status)
	assert.Equal(t, feature.Malformed, recs[1].Status)
	assert.Equal(t, feature.Valid, recs[2].Status)
}

func TestStickyFormat(t *testing.T) {
	s := NewScanner(strings.NewReader("chr1\t100\t200\n"))
	var f feature.Feature
	require.True(t, s.Scan(&f))
	format, ok := s.Format()
	assert.True(t, ok)
	assert.Equal(t, feature.BED, format)
	assert.Equal(t, uint16(3), s.ColumnCount())
}

func TestUnrecognizedFirstLineDoesNotCommit(t *testing.T) {
	// The first data line matches no format; the scanner stays uncommitted
	// and sniffs again on the next data line.
	s := NewScanner(strings.NewReader("chr1\tabc\tdef\tx\nchr1\t100\t200\n"))
	var f feature.Feature
	require.True(t, s.Scan(&f))
	assert.Equal(t, feature.Malformed, f.Status)
	assert.Error(t, s.LineErr())
	_, ok := s.Format()
	assert.False(t, ok)
	require.True(t, s.Scan(&f))
	assert.Equal(t, feature.Valid, f.Status)
	assert.Equal(t, feature.BED, f.SourceFormat)
}

func TestMalformedLines(t *testing.T) {
	tests := []struct {
		name, line string
	}{
		{"too few fields", "chr1\t100"},
		{"start after end", "chr1\t200\t100"},
		{"negative start", "chr1\t-5\t100\tx\t0\t+\tz\te"}, // no format matches
		{"gff start after end", "chr1\tsrc\texon\t500\t100\t.\t+\t.\tattrs"},
		{"gff zero start", "chr1\tsrc\texon\t0\t100\t.\t+\t.\tattrs"},
	}
	for _, tt := range tests {
		recs := scanAll(t, tt.line+"\n")
		require.Len(t, recs, 1, tt.name)
		assert.Equal(t, feature.Malformed, recs[0].Status, tt.name)
	}
}

func TestNonIntegerCoordinateAfterCommit(t *testing.T) {
	recs := scanAll(t, "chr1\t100\t200\nchr1\t1e5\t300\n")
	require.Len(t, recs, 2)
	assert.Equal(t, feature.Valid, recs[0].Status)
	assert.Equal(t, feature.Malformed, recs[1].Status)
}

func TestLineErrResets(t *testing.T) {
	s := NewScanner(strings.NewReader("chr1\t100\nchr1\t100\t200\n"))
	var f feature.Feature
	require.True(t, s.Scan(&f))
	assert.Error(t, s.LineErr())
	require.True(t, s.Scan(&f))
	assert.NoError(t, s.LineErr())
	assert.Equal(t, feature.Valid, f.Status)
}

func TestEmptyInput(t *testing.T) {
	s := NewScanner(strings.NewReader(""))
	var f feature.Feature
	assert.False(t, s.Scan(&f))
	assert.Equal(t, feature.EndOfInput, f.Status)
	assert.NoError(t, s.Err())
}
