package featio

import (
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/bedindex/feature"
)

// Render reconstructs f's original textual representation.  BED records
// render their committed number of canonical columns followed by any custom
// ones; VCF records render CHROM and the 1-based POS followed by all
// retained columns; GFF records render all nine columns with the start
// converted back to 1-based.
func Render(f *feature.Feature) string {
	var sb strings.Builder
	switch f.SourceFormat {
	case feature.VCF:
		sb.WriteString(f.Chrom)
		sb.WriteByte('\t')
		sb.WriteString(strconv.FormatUint(uint64(f.Start)+1, 10))
		for _, col := range f.Extra {
			sb.WriteByte('\t')
			sb.WriteString(col)
		}
	case feature.GFF:
		sb.WriteString(f.Chrom)
		sb.WriteByte('\t')
		sb.WriteString(f.Extra[0]) // source
		sb.WriteByte('\t')
		sb.WriteString(f.Name)
		sb.WriteByte('\t')
		sb.WriteString(strconv.FormatUint(uint64(f.Start)+1, 10))
		sb.WriteByte('\t')
		sb.WriteString(strconv.FormatUint(uint64(f.End), 10))
		sb.WriteByte('\t')
		sb.WriteString(f.Score)
		sb.WriteByte('\t')
		sb.WriteString(f.Strand)
		sb.WriteByte('\t')
		sb.WriteString(f.Extra[1]) // frame
		sb.WriteByte('\t')
		sb.WriteString(f.Extra[2]) // attributes
	default: // BED
		sb.WriteString(f.Chrom)
		sb.WriteByte('\t')
		sb.WriteString(strconv.FormatUint(uint64(f.Start), 10))
		sb.WriteByte('\t')
		sb.WriteString(strconv.FormatUint(uint64(f.End), 10))
		if f.ColumnCount >= 4 {
			sb.WriteByte('\t')
			sb.WriteString(f.Name)
		}
		if f.ColumnCount >= 5 {
			sb.WriteByte('\t')
			sb.WriteString(f.Score)
		}
		if f.ColumnCount >= 6 {
			sb.WriteByte('\t')
			sb.WriteString(f.Strand)
		}
		for _, col := range f.Extra {
			sb.WriteByte('\t')
			sb.WriteString(col)
		}
	}
	return sb.String()
}

// Writer writes features back out as tab-delimited lines, one per record.
type Writer struct {
	w *tsv.Writer
}

// NewWriter returns a Writer targeting w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: tsv.NewWriter(w)}
}

// Write appends one feature in its original textual representation.
func (w *Writer) Write(f *feature.Feature) error {
	w.w.WriteString(Render(f))
	return w.w.EndLine()
}

// Flush flushes buffered output.  Callers must Flush once done writing.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
