package services

import (
	"time"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// Outcome is the result of one input record.
type Outcome struct {
	Sample string
	Source string
	Line   int

	// Archive is the path of the written archive; empty when Err is set.
	Archive        string
	Merged         bool
	PriorAccession string

	Kind sraqs.ErrorKind
	Err  error
}

// OK reports whether the record was packaged.
func (o Outcome) OK() bool { return o.Err == nil }

// Report summarizes a batch.
type Report struct {
	BatchID   string
	Input     string
	OutputDir string
	Started   time.Time
	Finished  time.Time
	Outcomes  []Outcome
}

// Packaged returns the outcomes of records that produced an archive.
func (r *Report) Packaged() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// Failed returns the outcomes of skipped records.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// Archives returns the distinct archive paths in first-written order. A
// merged sample rewrites the same archive once per run.
func (r *Report) Archives() []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range r.Outcomes {
		if o.OK() && !seen[o.Archive] {
			seen[o.Archive] = true
			out = append(out, o.Archive)
		}
	}
	return out
}

func (r *Report) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}
