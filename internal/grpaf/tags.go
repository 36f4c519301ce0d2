package grpaf

import (
	"strconv"
	"strings"
)

// metricOrder is the fixed emission order of the published statistics.
var metricOrder = []string{
	"AF", "MAF", "MAC", "AC", "AN",
	"N_HEMI", "N_MISS", "N_HOMREF", "N_HET", "N_HOMALT",
}

// prunePrefixes marks INFO keys owned by this tool. Any key starting with
// one of these is discarded before re-annotation, whatever group suffix it
// carries, so tags from renamed or removed groups never survive a rerun.
// ExcHet_ and HWE_ cover tags written by truvari's annotator.
var prunePrefixes = []string{
	"ExcHet_", "HWE_",
	"AF_", "MAF_", "MAC_", "AC_", "AN_",
	"N_HEMI_", "N_MISS_", "N_HOMREF_", "N_HET_", "N_HOMALT_",
}

// Recognized reports whether an INFO key belongs to the managed tag set.
func Recognized(key string) bool {
	for _, prefix := range prunePrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// RewriteTags returns the record's INFO text with every managed entry
// replaced. Unrecognized entries keep their original order; new entries are
// appended per group (registry order), metrics in metricOrder. Groups with
// AN == 0 get no AF/MAF/MAC keys. Applying RewriteTags to its own output
// yields identical text.
func RewriteTags(info string, groups []string, stats map[string]Metrics) string {
	var b strings.Builder
	b.Grow(len(info) + 32*len(groups))

	writeOtherEntries(&b, info)

	for _, group := range groups {
		m, ok := stats[group]
		if !ok {
			continue
		}
		for _, metric := range metricOrder {
			value, ok := formatMetric(metric, m)
			if !ok {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(';')
			}
			b.WriteString(metric)
			b.WriteByte('_')
			b.WriteString(group)
			b.WriteByte('=')
			b.WriteString(value)
		}
	}

	if b.Len() == 0 {
		return "."
	}
	return b.String()
}

// writeOtherEntries copies the unmanaged INFO entries, preserving order.
func writeOtherEntries(b *strings.Builder, info string) {
	if info == "" || info == "." {
		return
	}

	for rest := info; rest != ""; {
		semi := strings.IndexByte(rest, ';')
		var entry string
		if semi >= 0 {
			entry = rest[:semi]
			rest = rest[semi+1:]
		} else {
			entry = rest
			rest = ""
		}

		key := entry
		if eq := strings.IndexByte(entry, '='); eq >= 0 {
			key = entry[:eq]
		}
		if Recognized(key) {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(entry)
	}
}

// formatMetric serializes one metric value. Reports !ok for the
// frequency-derived metrics of a group with no called alleles.
func formatMetric(metric string, m Metrics) (string, bool) {
	switch metric {
	case "AF":
		if !m.HasFreq {
			return "", false
		}
		return formatFloat(m.AF), true
	case "MAF":
		if !m.HasFreq {
			return "", false
		}
		return formatFloat(m.MAF), true
	case "MAC":
		if !m.HasFreq {
			return "", false
		}
		return strconv.Itoa(m.MAC), true
	case "AC":
		return strconv.Itoa(m.AC), true
	case "AN":
		return strconv.Itoa(m.AN), true
	case "N_HEMI":
		return strconv.Itoa(m.NHemi), true
	case "N_MISS":
		return strconv.Itoa(m.NMiss), true
	case "N_HOMREF":
		return strconv.Itoa(m.NHomRef), true
	case "N_HET":
		return strconv.Itoa(m.NHet), true
	case "N_HOMALT":
		return strconv.Itoa(m.NHomAlt), true
	default:
		return "", false
	}
}

// formatFloat writes the shortest float32 representation, matching the
// single-precision values htslib-based annotators emit. A stable format is
// what makes repeated rewrites byte-identical.
func formatFloat(f float64) string {
	return strconv.FormatFloat(float64(float32(f)), 'g', -1, 32)
}
