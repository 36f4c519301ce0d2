package grpaf

// Counters accumulates genotype tallies for one group over one record.
// Created fresh per record per group and discarded after Metrics().
type Counters struct {
	AlleleCountAlt int
	AlleleNumber   int
	NHemi          int
	NMiss          int
	NHomRef        int
	NHet           int
	NHomAlt        int
}

// Add folds one classified call into the counters.
func (c *Counters) Add(call Call) {
	switch call.Class {
	case Missing:
		c.NMiss++
	case Hemi:
		c.NHemi++
		c.AlleleNumber++
		c.AlleleCountAlt += call.AltAlleles
	case HomRef:
		c.NHomRef++
		c.AlleleNumber += 2
	case Het:
		c.NHet++
		c.AlleleNumber += 2
		c.AlleleCountAlt++
	case HomAlt:
		c.NHomAlt++
		c.AlleleNumber += 2
		c.AlleleCountAlt += 2
	}
}

// Total returns the number of samples folded in so far.
func (c *Counters) Total() int {
	return c.NHomRef + c.NHet + c.NHomAlt + c.NHemi + c.NMiss
}

// Metrics is the immutable per-group statistics snapshot for one record.
// AF, MAF and MAC are only meaningful when HasFreq is true (AN > 0); when
// false their annotation keys are omitted rather than emitting a division
// artifact.
type Metrics struct {
	AF      float64
	MAF     float64
	MAC     int
	AC      int
	AN      int
	NHemi   int
	NMiss   int
	NHomRef int
	NHet    int
	NHomAlt int
	HasFreq bool
}

// Metrics derives the published statistics from the counters.
func (c *Counters) Metrics() Metrics {
	m := Metrics{
		AC:      c.AlleleCountAlt,
		AN:      c.AlleleNumber,
		NHemi:   c.NHemi,
		NMiss:   c.NMiss,
		NHomRef: c.NHomRef,
		NHet:    c.NHet,
		NHomAlt: c.NHomAlt,
	}

	if c.AlleleNumber > 0 {
		m.HasFreq = true
		m.AF = float64(c.AlleleCountAlt) / float64(c.AlleleNumber)
		m.MAC = min(c.AlleleCountAlt, c.AlleleNumber-c.AlleleCountAlt)
		m.MAF = float64(m.MAC) / float64(c.AlleleNumber)
	}

	return m
}
