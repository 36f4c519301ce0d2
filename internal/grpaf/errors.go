package grpaf

import (
	"fmt"
	"strings"
)

// ConfigError reports an unusable configuration (malformed label table,
// group name colliding with the INFO syntax). Fatal before any record is read.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Msg
}

// UnknownSampleError reports label-table samples that are absent from the
// VCF sample list. Reported once; processing continues without them.
type UnknownSampleError struct {
	Samples []string
}

func (e *UnknownSampleError) Error() string {
	return fmt.Sprintf("label table names %d sample(s) absent from the VCF: %s",
		len(e.Samples), strings.Join(e.Samples, ", "))
}

// UnsupportedPloidyError reports a genotype call with more than two alleles.
// The sample is excluded from that record's counters; processing continues.
type UnsupportedPloidyError struct {
	Genotype string
}

func (e *UnsupportedPloidyError) Error() string {
	return fmt.Sprintf("unsupported ploidy: genotype %q has more than two alleles", e.Genotype)
}

// StreamError wraps a fatal error from the record stream. Output ordering
// cannot be guaranteed past a corrupt position, so the stream aborts.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return "stream error: " + e.Err.Error()
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
