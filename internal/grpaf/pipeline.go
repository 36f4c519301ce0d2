package grpaf

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zhengxinchang/vcfgrpaf/internal/vcf"
)

// progressEvery is the record interval between progress log lines.
const progressEvery = 10000

// workItem holds a parsed record ready for statistics recomputation.
type workItem struct {
	seq int
	rec *vcf.Record
}

// workResult holds the per-group statistics for a single record.
type workResult struct {
	seq   int
	rec   *vcf.Record
	stats map[string]Metrics
}

// RecordSink receives each record's per-group metrics after the record has
// been written. Called from the single drain goroutine, in record order.
type RecordSink interface {
	Append(rec *vcf.Record, group string, m Metrics) error
}

// Pipeline drives group-statistics recomputation over a VCF stream: one
// reader goroutine, a fixed worker pool, and a single drain that restores
// input order by sequence number. Records share nothing; the registry is
// the only shared state and is read-only.
type Pipeline struct {
	reg     *Registry
	samples []string // VCF sample order from the #CHROM line
	workers int
	logger  *zap.Logger
	sink    RecordSink
}

// NewPipeline creates a pipeline over an immutable registry.
// If workers is 0, runtime.NumCPU() is used.
func NewPipeline(reg *Registry, samples []string, workers int) *Pipeline {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{
		reg:     reg,
		samples: samples,
		workers: workers,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and progress messages.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
}

// SetSink registers an optional per-record metrics sink.
func (p *Pipeline) SetSink(s RecordSink) {
	p.sink = s
}

// Run streams records from src, rewrites their INFO text and writes them to
// w in input order. A parse error aborts the stream with a StreamError;
// per-sample anomalies are logged and skipped.
func (p *Pipeline) Run(src vcf.RecordReader, w *vcf.Writer) error {
	start := time.Now()
	items := make(chan workItem, 2*p.workers)
	var readErr error

	go func() {
		defer close(items)
		seq := 0
		for {
			rec, err := src.Next()
			if err != nil {
				readErr = &StreamError{Err: err}
				return
			}
			if rec == nil {
				return
			}
			items <- workItem{seq: seq, rec: rec}
			seq++
		}
	}()

	results := p.parallelProcess(items)

	count := 0
	err := orderedCollect(results, func(r workResult) error {
		r.rec.Info = RewriteTags(r.rec.Info, p.reg.Groups(), r.stats)
		if err := w.WriteRecord(r.rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}

		if p.sink != nil {
			for _, group := range p.reg.Groups() {
				m := r.stats[group]
				if !m.HasFreq {
					continue
				}
				if err := p.sink.Append(r.rec, group, m); err != nil {
					return &StreamError{Err: fmt.Errorf("append stats: %w", err)}
				}
			}
		}

		count++
		if count%progressEvery == 0 {
			p.logger.Info("processed records", zap.Int("count", count))
		}
		return nil
	})
	if err != nil {
		return err
	}

	// The reader goroutine finished before the workers drained, so readErr
	// is settled once orderedCollect returns.
	if readErr != nil {
		return readErr
	}

	p.logger.Info("finished",
		zap.Int("records", count),
		zap.Int("groups", len(p.reg.Groups())),
		zap.Duration("elapsed", time.Since(start)))

	return nil
}

// parallelProcess computes per-group statistics using a pool of workers.
// Results arrive in completion order; orderedCollect restores input order.
func (p *Pipeline) parallelProcess(items <-chan workItem) <-chan workResult {
	results := make(chan workResult, 2*p.workers)

	var wg sync.WaitGroup
	wg.Add(p.workers)

	for range p.workers {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- workResult{
					seq:   item.seq,
					rec:   item.rec,
					stats: p.process(item.rec),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// process classifies every group member present in the record and derives
// the group metrics. Counters are record-local and never outlive the call.
func (p *Pipeline) process(rec *vcf.Record) map[string]Metrics {
	gts := rec.Genotypes(p.samples)
	stats := make(map[string]Metrics, len(p.reg.Groups()))

	for _, group := range p.reg.Groups() {
		var counters Counters
		for _, sample := range p.reg.Members(group) {
			gt, ok := gts[sample]
			if !ok {
				continue
			}
			call, err := Classify(gt)
			if err != nil {
				p.logger.Warn("excluding sample from record counters",
					zap.String("chrom", rec.Chrom),
					zap.Int64("pos", rec.Pos),
					zap.String("sample", sample),
					zap.Error(err))
				continue
			}
			counters.Add(call)
		}
		stats[group] = counters.Metrics()
	}

	return stats
}

// orderedCollect calls fn for each result in sequence-number order.
// Out-of-order results wait in a pending map until the next expected
// sequence number arrives. Blocks until the results channel is closed.
func orderedCollect(results <-chan workResult, fn func(workResult) error) error {
	pending := make(map[int]workResult)
	nextSeq := 0

	for r := range results {
		pending[r.seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
