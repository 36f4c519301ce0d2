// Package vcf provides line-oriented VCF reading and writing.
package vcf

import "strings"

// Record represents a single data line from a VCF file. All columns except
// POS are kept verbatim so that rewriting INFO leaves the rest of the line
// byte-identical.
type Record struct {
	Chrom         string // Chromosome name (e.g., "12", "chr12")
	Pos           int64  // 1-based genomic position
	ID            string // Variant identifier (e.g., rs ID), "." when absent
	Ref           string // Reference allele
	Alt           string // Alternate allele(s), comma-separated when multi-allelic
	Qual          string // Quality column verbatim, "." when absent
	Filter        string // Filter status (PASS or filter name)
	Info          string // Raw INFO text, "." when empty
	SampleColumns string // FORMAT + per-sample columns, tab-joined; "" when absent
}

// Genotypes extracts the GT subfield for each sample in the record.
// sampleNames gives the column order from the #CHROM header line. Returns
// nil when the record carries no FORMAT/sample columns or no GT key.
func (r *Record) Genotypes(sampleNames []string) map[string]string {
	if r.SampleColumns == "" || len(sampleNames) == 0 {
		return nil
	}

	cols := strings.Split(r.SampleColumns, "\t")
	gtIndex := gtFieldIndex(cols[0])
	if gtIndex < 0 {
		return nil
	}

	gts := make(map[string]string, len(sampleNames))
	for i, name := range sampleNames {
		if i+1 >= len(cols) {
			break
		}
		gts[name] = subField(cols[i+1], gtIndex)
	}
	return gts
}

// gtFieldIndex returns the position of the GT key in a FORMAT column, or -1.
func gtFieldIndex(format string) int {
	for i, key := range strings.Split(format, ":") {
		if key == "GT" {
			return i
		}
	}
	return -1
}

// subField returns the idx-th colon-separated sub-field of a sample column.
// Trailing sub-fields may be dropped per the VCF spec; missing ones read ".".
func subField(col string, idx int) string {
	fields := strings.Split(col, ":")
	if idx >= len(fields) {
		return "."
	}
	return fields[idx]
}
