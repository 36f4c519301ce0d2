package grpaf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func metricsFor(t *testing.T, gts ...string) Metrics {
	t.Helper()
	c := accumulate(t, gts...)
	return c.Metrics()
}

func TestRewriteTags_PrunesStaleGroups(t *testing.T) {
	stats := map[string]Metrics{"groupA": metricsFor(t, "0/1", "1/1")}

	out := RewriteTags("AF_groupX=0.3;FOO=1", []string{"groupA"}, stats)

	assert.NotContains(t, out, "groupX")
	assert.Contains(t, out, "FOO=1")
	assert.Contains(t, out, "AF_groupA=0.75")
	// Untouched entries keep their position at the front
	assert.True(t, strings.HasPrefix(out, "FOO=1;"), "got %q", out)
}

func TestRewriteTags_FullEntrySet(t *testing.T) {
	stats := map[string]Metrics{"groupA": metricsFor(t, "0/1", "1/1")}

	out := RewriteTags(".", []string{"groupA"}, stats)

	want := "AF_groupA=0.75;MAF_groupA=0.25;MAC_groupA=1;AC_groupA=3;AN_groupA=4;" +
		"N_HEMI_groupA=0;N_MISS_groupA=0;N_HOMREF_groupA=0;N_HET_groupA=1;N_HOMALT_groupA=1"
	assert.Equal(t, want, out)
}

func TestRewriteTags_OmitsFreqKeysWithoutData(t *testing.T) {
	stats := map[string]Metrics{"groupB": metricsFor(t, "./.")}

	out := RewriteTags(".", []string{"groupB"}, stats)

	assert.NotContains(t, out, "AF_groupB")
	assert.NotContains(t, out, "MAF_groupB")
	assert.NotContains(t, out, "MAC_groupB")
	assert.Contains(t, out, "AC_groupB=0")
	assert.Contains(t, out, "AN_groupB=0")
	assert.Contains(t, out, "N_MISS_groupB=1")
}

func TestRewriteTags_GroupThenMetricOrder(t *testing.T) {
	stats := map[string]Metrics{
		"b_grp": metricsFor(t, "0/0"),
		"a_grp": metricsFor(t, "1/1"),
	}

	// Registry order wins, not lexicographic order.
	out := RewriteTags(".", []string{"b_grp", "a_grp"}, stats)

	bIdx := strings.Index(out, "AF_b_grp=")
	aIdx := strings.Index(out, "AF_a_grp=")
	assert.Greater(t, aIdx, bIdx)

	// Within one group, metrics follow the published order.
	afIdx := strings.Index(out, "AF_b_grp=")
	anIdx := strings.Index(out, "AN_b_grp=")
	homAltIdx := strings.Index(out, "N_HOMALT_b_grp=")
	assert.Greater(t, anIdx, afIdx)
	assert.Greater(t, homAltIdx, anIdx)
}

func TestRewriteTags_Idempotent(t *testing.T) {
	stats := map[string]Metrics{
		"groupA": metricsFor(t, "0/1", "1/1", "./."),
		"groupB": metricsFor(t, "1"),
	}
	groups := []string{"groupA", "groupB"}

	first := RewriteTags("DP=30;AF_old=0.1;FLAG", groups, stats)
	second := RewriteTags(first, groups, stats)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "DP=30")
	assert.Contains(t, first, "FLAG")
	assert.NotContains(t, first, "AF_old")
}

func TestRewriteTags_PrunesTruvariTags(t *testing.T) {
	stats := map[string]Metrics{"g": metricsFor(t, "0/1")}

	out := RewriteTags("ExcHet_g=0.9;HWE_g=1;DP=5", []string{"g"}, stats)

	assert.NotContains(t, out, "ExcHet_")
	assert.NotContains(t, out, "HWE_")
	assert.Contains(t, out, "DP=5")
}

func TestRewriteTags_EmptyResult(t *testing.T) {
	out := RewriteTags("AF_gone=0.5", nil, nil)
	assert.Equal(t, ".", out)
}

func TestRecognized(t *testing.T) {
	assert.True(t, Recognized("AF_EUR"))
	assert.True(t, Recognized("N_HOMALT_cases"))
	assert.True(t, Recognized("HWE_ctrl"))
	assert.False(t, Recognized("AF"))
	assert.False(t, Recognized("DP"))
	assert.False(t, Recognized("SVLEN"))
}
