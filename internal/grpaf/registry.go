package grpaf

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Registry maps samples to their group. It is built once before streaming
// begins and is read-only afterwards, so workers share it without locking.
type Registry struct {
	groupOf map[string]string
	groups  []string            // distinct groups in first-appearance order
	members map[string][]string // group -> member samples in label order
}

// Label is one sample/group pair from the label table.
type Label struct {
	Sample string
	Group  string
}

// LoadLabels reads a label table: one sample/group pair per line, two
// tab-separated fields, no header line. Blank lines are ignored. A sample
// appearing more than once keeps its last mapping.
func LoadLabels(path string, logger *zap.Logger) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("open label table: %v", err)}
	}
	defer f.Close()

	var labels []Label
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			return nil, &ConfigError{Msg: fmt.Sprintf("%s line %d: expected <sample>\t<group>", path, lineNo)}
		}
		labels = append(labels, Label{Sample: fields[0], Group: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("read label table: %v", err)}
	}

	if len(labels) == 0 {
		return nil, &ConfigError{Msg: fmt.Sprintf("%s: no sample/group pairs found", path)}
	}

	return NewRegistry(labels, logger)
}

// NewRegistry builds a registry from ordered sample/group pairs.
func NewRegistry(labels []Label, logger *zap.Logger) (*Registry, error) {
	r := &Registry{
		groupOf: make(map[string]string),
		members: make(map[string][]string),
	}
	for _, l := range labels {
		if err := checkGroupName(l.Group); err != nil {
			return nil, err
		}
		r.add(l.Sample, l.Group, logger)
	}
	return r, nil
}

// add records one sample/group pair, last mapping wins.
func (r *Registry) add(sample, group string, logger *zap.Logger) {
	if prev, ok := r.groupOf[sample]; ok {
		if prev == group {
			return
		}
		if logger != nil {
			logger.Debug("sample remapped by a later label line",
				zap.String("sample", sample),
				zap.String("from", prev),
				zap.String("to", group))
		}
		r.members[prev] = removeString(r.members[prev], sample)
	}

	if _, ok := r.members[group]; !ok {
		r.groups = append(r.groups, group)
	}
	r.groupOf[sample] = group
	r.members[group] = append(r.members[group], sample)
}

// checkGroupName rejects group names that would corrupt the INFO syntax
// or header declarations they are embedded in.
func checkGroupName(group string) error {
	if strings.ContainsAny(group, ";=, \t\"") {
		return &ConfigError{Msg: fmt.Sprintf("group name %q contains INFO field separator characters", group)}
	}
	return nil
}

// Groups returns the distinct groups in first-appearance order.
func (r *Registry) Groups() []string {
	return r.groups
}

// Members returns the member samples of a group, in label-table order.
func (r *Registry) Members(group string) []string {
	return r.members[group]
}

// GroupOf returns the group a sample belongs to.
func (r *Registry) GroupOf(sample string) (string, bool) {
	g, ok := r.groupOf[sample]
	return g, ok
}

// SampleCount returns the number of mapped samples.
func (r *Registry) SampleCount() int {
	return len(r.groupOf)
}

// ValidateSamples drops label-table samples that are absent from the VCF
// sample list and reports them as a single UnknownSampleError. A non-nil
// error is advisory: the registry stays usable with the remaining samples.
func (r *Registry) ValidateSamples(vcfSamples []string) error {
	present := make(map[string]bool, len(vcfSamples))
	for _, s := range vcfSamples {
		present[s] = true
	}

	var missing []string
	for sample := range r.groupOf {
		if !present[sample] {
			missing = append(missing, sample)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)

	for _, sample := range missing {
		group := r.groupOf[sample]
		r.members[group] = removeString(r.members[group], sample)
		delete(r.groupOf, sample)
	}

	return &UnknownSampleError{Samples: missing}
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
