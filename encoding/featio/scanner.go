package featio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/bedindex/feature"
)

const (
	// maxCoord is the largest coordinate representable by feature.Feature.
	maxCoord = 1<<32 - 1
	// Parsers must tolerate very long lines (VCF INFO columns in
	// particular); bufio.Scanner does not grow its buffer past the initial
	// cap on its own.
	maxLineBytes = 16 * 1024 * 1024
)

// Scanner reads tab-delimited BED, GFF, or VCF text and classifies each
// line into a feature.Feature.  The file format and its column count are
// sniffed from the first data line and then enforced on every later line,
// so a Scanner carries per-file state and must not be shared between
// inputs.  Scanners are not threadsafe.
type Scanner struct {
	b       *bufio.Scanner
	err     error
	lineErr error

	formatKnown bool
	format      feature.Format
	colCount    uint16
	lineNum     uint32
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Scanner{b: b}
}

// Scan reads the next input line and classifies it into f, returning true
// while input remains.  Every line yields exactly one record: check
// f.Status to distinguish Valid records from Header, Blank, and Malformed
// lines.  Once Scan returns false, f.Status is EndOfInput and Err reports
// any underlying read error.
func (s *Scanner) Scan(f *feature.Feature) bool {
	if s.err != nil {
		*f = feature.Feature{Status: feature.EndOfInput}
		return false
	}
	if !s.b.Scan() {
		s.err = s.b.Err()
		*f = feature.Feature{Status: feature.EndOfInput}
		return false
	}
	s.lineNum++
	s.lineErr = nil

	fields := splitLine(s.b.Text())
	*f = feature.Feature{Status: feature.Malformed, Fields: fields}
	switch {
	case len(fields) == 0:
		f.Status = feature.Blank
		return true
	case isHeader(fields[0]):
		// The line counter tracks data lines, not physical lines, so that
		// reported line numbers match the reference tooling's diagnostics.
		s.lineNum--
		f.Status = feature.Header
		return true
	case len(fields) < 3:
		s.lineErr = fmt.Errorf("featio: line %d has %d fields; at least 3 are required (is the file tab-delimited?)",
			s.lineNum, len(fields))
		return true
	}

	if !s.formatKnown {
		if err := s.sniff(fields); err != nil {
			s.lineErr = err
			return true
		}
	} else if len(fields) != int(s.colCount) {
		s.lineErr = fmt.Errorf("featio: line %d has %d fields, but this %v file committed to %d on its first data line",
			s.lineNum, len(fields), s.format, s.colCount)
		return true
	}

	var err error
	switch s.format {
	case feature.BED:
		err = parseBED(f, fields)
	case feature.VCF:
		err = parseVCF(f, fields)
	case feature.GFF:
		err = parseGFF(f, fields)
	}
	if err != nil {
		s.lineErr = fmt.Errorf("featio: line %d: %v", s.lineNum, err)
		return true
	}
	f.ColumnCount = s.colCount
	f.SourceFormat = s.format
	f.Status = feature.Valid
	return true
}

// sniff commits the Scanner to a format and column count based on the
// first data line.  The priority order matters: BED whenever columns 2 and
// 3 are integers, then VCF (integer position, >= 8 columns), then GFF
// (>= 9 columns with integer columns 4 and 5).  On failure the Scanner
// stays uncommitted, so a later line could in principle still decide the
// format.
func (s *Scanner) sniff(fields []string) error {
	switch {
	case isUnsignedInt(fields[1]) && isUnsignedInt(fields[2]):
		s.format = feature.BED
	case isUnsignedInt(fields[1]) && len(fields) >= 8:
		s.format = feature.VCF
	case len(fields) >= 9 && isUnsignedInt(fields[3]) && isUnsignedInt(fields[4]):
		s.format = feature.GFF
	default:
		return fmt.Errorf("featio: line %d: unrecognized format; expected tab-delimited BED, GFF, or VCF (non-integer start or end?)",
			s.lineNum)
	}
	s.colCount = uint16(len(fields))
	s.formatKnown = true
	return nil
}

// Err returns the first error encountered while reading the underlying
// stream.  A clean end of input is not an error.
func (s *Scanner) Err() error {
	return s.err
}

// LineErr describes why the most recently scanned line was Malformed.  It
// is nil when that line had any other status.
func (s *Scanner) LineErr() error {
	return s.lineErr
}

// Line returns the current data-line number.  Header lines do not count.
func (s *Scanner) Line() uint32 {
	return s.lineNum
}

// Format returns the sniffed file format.  ok is false until a first data
// line has committed one.
func (s *Scanner) Format() (format feature.Format, ok bool) {
	return s.format, s.formatKnown
}

// ColumnCount returns the per-line column count the file committed to, or
// 0 before the format is known.
func (s *Scanner) ColumnCount() uint16 {
	if !s.formatKnown {
		return 0
	}
	return s.colCount
}

// parseBED fills f from a BED line: chrom, start, end, then optionally
// name, score, strand, and custom columns.
func parseBED(f *feature.Feature, fields []string) error {
	start, err := parseCoord(fields[1])
	if err != nil {
		return fmt.Errorf("malformed BED entry: %v", err)
	}
	end, err := parseCoord(fields[2])
	if err != nil {
		return fmt.Errorf("malformed BED entry: %v", err)
	}
	if start > end {
		return fmt.Errorf("malformed BED entry: start %d is greater than end %d", start, end)
	}
	f.Chrom = fields[0]
	f.Start = start
	f.End = end
	n := len(fields)
	if n >= 4 {
		f.Name = fields[3]
	}
	if n >= 5 {
		f.Score = fields[4]
	}
	if n >= 6 {
		f.Strand = fields[5]
	}
	if n > 6 {
		f.Extra = fields[6:]
	}
	return nil
}

// parseVCF fills f from a VCF line.  The 1-based POS column becomes the
// 0-based start, the interval covers the REF allele, and the name is
// composed from REF/ALT plus the ID column when present.  Everything from
// the ID column onward is retained verbatim in Extra.
func parseVCF(f *feature.Feature, fields []string) error {
	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return fmt.Errorf("malformed VCF entry: position %q is not an integer", fields[1])
	}
	start := pos - 1 // VCF is 1-based
	end := start + int64(len(fields[3]))
	// start must stay strictly positive: a POS of 0 would otherwise wrap
	// the unsigned coordinate.
	if start <= 0 || end > maxCoord {
		return fmt.Errorf("malformed VCF entry: position %d is out of range", pos)
	}
	f.Chrom = fields[0]
	f.Start = uint32(start)
	f.End = uint32(end)
	f.Strand = "+"
	f.Name = fields[3] + "/" + fields[4]
	if fields[2] != "." {
		f.Name += "_" + fields[2]
	}
	f.Extra = fields[2:]
	return nil
}

// parseGFF fills f from a 9-column GFF line, converting the 1-based start.
// The source, frame, and attributes columns are retained in Extra.
func parseGFF(f *feature.Feature, fields []string) error {
	if len(fields) != 9 {
		return fmt.Errorf("malformed GFF entry: 9 fields required, got %d", len(fields))
	}
	rawStart, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return fmt.Errorf("malformed GFF entry: start %q is not an integer", fields[3])
	}
	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return fmt.Errorf("malformed GFF entry: end %q is not an integer", fields[4])
	}
	start := rawStart - 1 // GFF is 1-based
	if start < 0 || end < 0 || end > maxCoord {
		return fmt.Errorf("malformed GFF entry: coordinate out of range at [%s, %s]", fields[3], fields[4])
	}
	if start > end {
		return fmt.Errorf("malformed GFF entry: start %d is greater than end %d", start, end)
	}
	f.Chrom = fields[0]
	f.Start = uint32(start)
	f.End = uint32(end)
	f.Name = fields[2]
	f.Score = fields[5]
	f.Strand = fields[6]
	f.Extra = []string{fields[1], fields[7], fields[8]}
	return nil
}

// parseCoord parses a non-negative coordinate that fits in 32 bits.
func parseCoord(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("coordinate %q is not a non-negative integer", s)
	}
	return uint32(v), nil
}

// splitLine tokenizes one line on hard tabs.  GFF attribute columns may
// contain spaces, so only '\t' delimits fields.  Lines with no content at
// all yield zero fields.
func splitLine(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	return strings.Split(line, "\t")
}

// isHeader reports whether a first field marks a track/browser/comment
// line.  Substring matching (not prefix) follows the reference behavior.
func isHeader(field0 string) bool {
	return strings.Contains(field0, "track") ||
		strings.Contains(field0, "browser") ||
		strings.Contains(field0, "#")
}

// isUnsignedInt reports whether s consists solely of decimal digits.
func isUnsignedInt(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
