// Package grpaf recomputes per-group allele statistics for VCF records and
// rewrites them into the INFO field and header declarations.
package grpaf

import (
	"strconv"
	"strings"
)

// Classification of a single genotype call.
type Classification int

const (
	Missing Classification = iota
	Hemi
	HomRef
	Het
	HomAlt
)

func (c Classification) String() string {
	switch c {
	case Missing:
		return "MISSING"
	case Hemi:
		return "HEMI"
	case HomRef:
		return "HOMREF"
	case Het:
		return "HET"
	case HomAlt:
		return "HOMALT"
	default:
		return "UNKNOWN"
	}
}

// Call is the typed classification of one genotype field.
// AltAlleles is the number of alternate alleles the call carries (0-2);
// Missing calls carry none.
type Call struct {
	Class      Classification
	AltAlleles int
}

const missingAllele = "."

// Classify parses a raw GT field into a Call. The phase separator ("/" or
// "|") is irrelevant for counting. All alternate allele indices (>0)
// collapse into "alt", so multi-allelic sites need no special handling.
// Calls with more than two alleles return an UnsupportedPloidyError.
func Classify(gt string) (Call, error) {
	tokens := splitAlleles(gt)
	if len(tokens) == 0 {
		return Call{Class: Missing}, nil
	}

	// The missing rule comes before the ploidy check: any missing allele
	// makes the whole call missing, whatever its token count.
	indices := make([]int, len(tokens))
	for i, tok := range tokens {
		idx, ok := alleleIndex(tok)
		if !ok {
			return Call{Class: Missing}, nil
		}
		indices[i] = idx
	}

	if len(indices) > 2 {
		return Call{Class: Missing}, &UnsupportedPloidyError{Genotype: gt}
	}

	if len(indices) == 1 {
		c := Call{Class: Hemi}
		if indices[0] > 0 {
			c.AltAlleles = 1
		}
		return c, nil
	}

	a, b := indices[0], indices[1]
	switch {
	case a == 0 && b == 0:
		return Call{Class: HomRef}, nil
	case a == b:
		return Call{Class: HomAlt, AltAlleles: 2}, nil
	default:
		return Call{Class: Het, AltAlleles: 1}, nil
	}
}

// splitAlleles splits a GT field on phased and unphased separators.
func splitAlleles(gt string) []string {
	gt = strings.TrimSpace(gt)
	if gt == "" || gt == missingAllele {
		return nil
	}
	return strings.FieldsFunc(gt, func(r rune) bool {
		return r == '/' || r == '|'
	})
}

// alleleIndex parses one allele token. The missing marker and anything
// unparseable report !ok.
func alleleIndex(tok string) (int, bool) {
	if tok == missingAllele {
		return 0, false
	}
	idx, err := strconv.Atoi(tok)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
