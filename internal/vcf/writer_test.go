package vcf

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// Records the rewriter does not touch must round-trip byte-identically.
func TestWriter_RoundTrip(t *testing.T) {
	_, records := parseAll(t, sampleVCF)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, r := range records {
		if err := w.WriteRecord(r); err != nil {
			t.Fatalf("WriteRecord: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "1\t100\trs1\tA\tT\t29.5\tPASS\tDP=14\tGT:DP\t0/1:7\t1/1:7\n" +
		"2\t200\t.\tC\tG,GA\t.\tq10\t.\tGT\t0|0\t./.\n"
	if buf.String() != want {
		t.Errorf("Round trip mismatch:\ngot:  %q\nwant: %q", buf.String(), want)
	}
}

func TestWriter_Header(t *testing.T) {
	h := NewHeader([]string{"##fileformat=VCFv4.2", "#CHROM\tPOS"})

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteHeader(h); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if buf.String() != "##fileformat=VCFv4.2\n#CHROM\tPOS\n" {
		t.Errorf("Unexpected header output: %q", buf.String())
	}
}

func TestWriter_EmptyInfo(t *testing.T) {
	r := &Record{Chrom: "1", Pos: 5, ID: ".", Ref: "A", Alt: "T", Qual: ".", Filter: "PASS"}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteRecord(r); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if buf.String() != "1\t5\t.\tA\tT\t.\tPASS\t.\n" {
		t.Errorf("Unexpected line: %q", buf.String())
	}
}

// A .gz output must be readable back through the gzip-sniffing parser.
func TestWriter_GzipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.vcf.gz")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	h := NewHeader([]string{
		"##fileformat=VCFv4.2",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\ts1",
	})
	if err := w.WriteHeader(h); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	rec := &Record{Chrom: "1", Pos: 42, ID: ".", Ref: "G", Alt: "C",
		Qual: ".", Filter: "PASS", Info: "DP=3", SampleColumns: "GT\t0/1"}
	if err := w.WriteRecord(rec); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p, err := NewParser(path)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	defer p.Close()

	if samples := p.SampleNames(); len(samples) != 1 || samples[0] != "s1" {
		t.Errorf("Unexpected samples: %v", samples)
	}

	got, err := p.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got == nil || got.Pos != 42 || got.Info != "DP=3" {
		t.Errorf("Unexpected record: %+v", got)
	}
	if !strings.HasSuffix(got.SampleColumns, "0/1") {
		t.Errorf("Unexpected sample columns: %q", got.SampleColumns)
	}
}
