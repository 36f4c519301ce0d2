package grpaf

import (
	"fmt"

	"github.com/zhengxinchang/vcfgrpaf/internal/vcf"
)

// SyncHeader normalizes the ##INFO declarations for the managed tag set.
// Every stale declaration (any recognized prefix, including groups that no
// longer exist) is removed, then exactly one declaration per metric per
// group is inserted before the #CHROM line. Runs once, before streaming.
func SyncHeader(h *vcf.Header, reg *Registry) {
	h.RemoveInfo(Recognized)

	for _, group := range reg.Groups() {
		count := len(reg.Members(group))
		for _, metric := range metricOrder {
			typ := "Integer"
			if metric == "AF" || metric == "MAF" {
				typ = "Float"
			}
			h.AddInfo(
				metric+"_"+group,
				"1",
				typ,
				fmt.Sprintf("%s on %d %s samples", metric, count, group),
			)
		}
	}
}
