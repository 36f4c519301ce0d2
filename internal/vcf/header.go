package vcf

import (
	"fmt"
	"strings"
)

// Header holds the raw header lines of a VCF file: every ##-prefixed line
// plus the final #CHROM column line, in file order.
type Header struct {
	Lines []string
}

// NewHeader wraps parsed header lines. The slice is not copied.
func NewHeader(lines []string) *Header {
	return &Header{Lines: lines}
}

// InfoID extracts the ID attribute from a ##INFO header line.
// Returns "" if the line is not an INFO declaration.
func InfoID(line string) string {
	const prefix = "##INFO=<"
	if !strings.HasPrefix(line, prefix) {
		return ""
	}
	body := line[len(prefix):]

	idx := strings.Index(body, "ID=")
	if idx < 0 {
		return ""
	}
	id := body[idx+len("ID="):]
	if end := strings.IndexAny(id, ",>"); end >= 0 {
		id = id[:end]
	}
	return id
}

// RemoveInfo deletes every ##INFO declaration whose ID satisfies match.
func (h *Header) RemoveInfo(match func(id string) bool) {
	kept := h.Lines[:0]
	for _, line := range h.Lines {
		if id := InfoID(line); id != "" && match(id) {
			continue
		}
		kept = append(kept, line)
	}
	h.Lines = kept
}

// AddInfo inserts an ##INFO declaration immediately before the #CHROM line,
// or appends it if no #CHROM line is present.
func (h *Header) AddInfo(id, number, typ, description string) {
	line := fmt.Sprintf("##INFO=<ID=%s,Number=%s,Type=%s,Description=%q>", id, number, typ, description)
	for i, l := range h.Lines {
		if strings.HasPrefix(l, "#CHROM") {
			h.Lines = append(h.Lines[:i], append([]string{line}, h.Lines[i:]...)...)
			return
		}
	}
	h.Lines = append(h.Lines, line)
}

// InfoIDs returns the IDs of all ##INFO declarations, in header order.
func (h *Header) InfoIDs() []string {
	var ids []string
	for _, line := range h.Lines {
		if id := InfoID(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
