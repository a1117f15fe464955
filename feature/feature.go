package feature

// Format identifies which of the supported tab-delimited layouts a file
// follows.  It is decided once per file, from the shape of the first data
// line, and every later line is parsed under that decision.
type Format int

const (
	// BED is the browser extensible data format: chrom/start/end plus up to
	// three canonical annotation columns and any number of custom ones.
	BED Format = iota
	// GFF is the 9-column general feature format, with 1-based coordinates.
	GFF
	// VCF is the variant call format, with a 1-based position column and an
	// interval length implied by the REF allele.
	VCF
)

func (f Format) String() string {
	switch f {
	case BED:
		return "BED"
	case GFF:
		return "GFF"
	case VCF:
		return "VCF"
	}
	return "unknown"
}

// Status classifies one input line.
type Status int

const (
	// Valid means the line parsed into a usable record.
	Valid Status = iota
	// Header marks track/browser/# lines.  They are not data and are not
	// counted against the data-line counter.
	Header
	// Blank marks lines with no fields at all.
	Blank
	// Malformed marks lines that cannot be parsed under the file's format:
	// wrong column count, non-integer coordinates, start past end, or an
	// unrecognizable first data line.  Malformed is a per-line condition;
	// whether to skip, collect, or abort is the caller's decision.
	Malformed
	// EndOfInput is reported once the underlying stream is exhausted.
	EndOfInput
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Header:
		return "header"
	case Blank:
		return "blank"
	case Malformed:
		return "malformed"
	case EndOfInput:
		return "end-of-input"
	}
	return "unknown"
}

// Feature is a single BED/GFF/VCF record.  Coordinates are always 0-based
// half-open, regardless of the source format; Start <= End holds for every
// Valid record.
type Feature struct {
	Chrom string
	Start uint32
	End   uint32

	Name string
	// Score is kept as text; the formats do not require it to be numeric.
	Score string
	// Strand is "+", "-", or "" when unknown.
	Strand string
	// Extra holds the columns beyond the six canonical BED ones, or the
	// format-specific remainder (GFF source/frame/attributes, VCF columns
	// from ID onward), verbatim and in input order.
	Extra []string

	// OverlapStart and OverlapEnd are populated only on copies returned by
	// overlap queries: they hold the clipped intersection of the query with
	// this record.  They are meaningless otherwise.
	OverlapStart uint32
	OverlapEnd   uint32

	// ColumnCount is the column count the source file committed to on its
	// first data line; every later data line must match it.
	ColumnCount  uint16
	SourceFormat Format
	Status       Status

	// Fields is the raw tab-split source line, unmodified, for lossless
	// passthrough.
	Fields []string
}

// Len returns the interval length in bases.
func (f *Feature) Len() uint32 {
	return f.End - f.Start
}
