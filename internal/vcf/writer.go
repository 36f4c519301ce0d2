package vcf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Writer emits a VCF header followed by records. Record columns other than
// INFO are written back exactly as they were read.
type Writer struct {
	w      *bufio.Writer
	gz     *gzip.Writer
	file   *os.File
	closed bool
}

// NewWriter creates a writer over an arbitrary io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Create creates a file-backed writer. "-" writes to stdout; paths ending
// in ".gz" are gzip-compressed.
func Create(path string) (*Writer, error) {
	if path == "-" {
		return NewWriter(os.Stdout), nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	w := &Writer{file: file}
	if strings.HasSuffix(path, ".gz") {
		w.gz = gzip.NewWriter(file)
		w.w = bufio.NewWriter(w.gz)
	} else {
		w.w = bufio.NewWriter(file)
	}
	return w, nil
}

// WriteHeader writes all header lines.
func (w *Writer) WriteHeader(h *Header) error {
	for _, line := range h.Lines {
		if _, err := w.w.WriteString(line); err != nil {
			return err
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecord writes one record as a VCF data line.
func (w *Writer) WriteRecord(r *Record) error {
	var lb strings.Builder
	lb.Grow(256)

	lb.WriteString(r.Chrom)
	lb.WriteByte('\t')
	lb.WriteString(strconv.FormatInt(r.Pos, 10))
	lb.WriteByte('\t')
	lb.WriteString(r.ID)
	lb.WriteByte('\t')
	lb.WriteString(r.Ref)
	lb.WriteByte('\t')
	lb.WriteString(r.Alt)
	lb.WriteByte('\t')
	lb.WriteString(r.Qual)
	lb.WriteByte('\t')
	lb.WriteString(r.Filter)
	lb.WriteByte('\t')
	if r.Info == "" {
		lb.WriteByte('.')
	} else {
		lb.WriteString(r.Info)
	}
	if r.SampleColumns != "" {
		lb.WriteByte('\t')
		lb.WriteString(r.SampleColumns)
	}
	lb.WriteByte('\n')

	_, err := w.w.WriteString(lb.String())
	return err
}

// Flush flushes buffered output without closing the underlying file.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	if w.gz != nil {
		return w.gz.Flush()
	}
	return nil
}

// Close flushes and closes the writer. Closing a stdout-backed writer only
// flushes the buffer. Close is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.w.Flush(); err != nil {
		return err
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			return err
		}
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
