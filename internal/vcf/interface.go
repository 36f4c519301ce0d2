package vcf

// RecordReader is the interface for readers that produce VCF records.
// The file-backed Parser implements it; tests may substitute in-memory readers.
type RecordReader interface {
	// Next reads the next record.
	// Returns nil, nil when there are no more records.
	Next() (*Record, error)

	// LineNumber returns the current line number being processed.
	LineNumber() int
}
