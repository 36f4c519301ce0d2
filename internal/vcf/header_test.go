package vcf

import (
	"strings"
	"testing"
)

func TestInfoID(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`##INFO=<ID=DP,Number=1,Type=Integer,Description="Depth">`, "DP"},
		{`##INFO=<ID=AF_grp,Number=1,Type=Float,Description="AF on 3 grp samples">`, "AF_grp"},
		{`##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">`, ""},
		{`##fileformat=VCFv4.2`, ""},
		{`#CHROM	POS`, ""},
	}
	for _, tt := range tests {
		if got := InfoID(tt.line); got != tt.want {
			t.Errorf("InfoID(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestHeader_RemoveInfo(t *testing.T) {
	h := NewHeader([]string{
		"##fileformat=VCFv4.2",
		`##INFO=<ID=DP,Number=1,Type=Integer,Description="Depth">`,
		`##INFO=<ID=AF_x,Number=1,Type=Float,Description="old">`,
		"#CHROM\tPOS",
	})

	h.RemoveInfo(func(id string) bool { return strings.HasPrefix(id, "AF_") })

	ids := h.InfoIDs()
	if len(ids) != 1 || ids[0] != "DP" {
		t.Errorf("Expected only DP left, got %v", ids)
	}
	if len(h.Lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(h.Lines))
	}
}

func TestHeader_AddInfo(t *testing.T) {
	h := NewHeader([]string{
		"##fileformat=VCFv4.2",
		"#CHROM\tPOS",
	})

	h.AddInfo("AF_grp", "1", "Float", "AF on 3 grp samples")

	want := `##INFO=<ID=AF_grp,Number=1,Type=Float,Description="AF on 3 grp samples">`
	if h.Lines[1] != want {
		t.Errorf("got %q, want %q", h.Lines[1], want)
	}
	if !strings.HasPrefix(h.Lines[2], "#CHROM") {
		t.Error("#CHROM must stay last")
	}
}

func TestHeader_AddInfo_NoChromLine(t *testing.T) {
	h := NewHeader([]string{"##fileformat=VCFv4.2"})
	h.AddInfo("AN_g", "1", "Integer", "d")
	if len(h.Lines) != 2 || InfoID(h.Lines[1]) != "AN_g" {
		t.Errorf("Expected appended declaration, got %v", h.Lines)
	}
}
