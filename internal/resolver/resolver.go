package resolver

import (
	"context"
	"fmt"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/sradoc"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// Plan is everything needed to package one record.
type Plan struct {
	Sample string
	Suffix string
	Merged bool

	// PriorAccession is the NCBI experiment the runs attach to, if any.
	PriorAccession string

	// Experiment is nil when the runs attach to PriorAccession.
	Experiment *sradoc.Experiment
	RunSet     *sradoc.RunSet
	Submission *sradoc.Submission
}

// Base returns the file name stem shared by the plan's documents.
func (p *Plan) Base() string {
	return p.Sample + p.Suffix
}

type mergeEntry struct {
	experiment *sradoc.Experiment
	runs       *sradoc.RunSet
}

// Context holds the state of one batch.
type Context struct {
	policy      MergePolicy
	lookup      sraqs.AccessionLookup
	layout      sradoc.Layout
	occurrences map[string]int
	merged      map[string]*mergeEntry
}

// NewContext creates the resolver state for a new batch. A nil lookup never
// finds a prior experiment.
func NewContext(policy MergePolicy, lookup sraqs.AccessionLookup, layout sradoc.Layout) *Context {
	return &Context{
		policy:      policy,
		lookup:      lookup,
		layout:      layout,
		occurrences: make(map[string]int),
		merged:      make(map[string]*mergeEntry),
	}
}

// Occurrences returns how often sample was resolved without merging.
func (c *Context) Occurrences(sample string) int {
	return c.occurrences[sample]
}

// Runs returns the number of runs accumulated for a merged sample.
func (c *Context) Runs(sample string) int {
	if e, ok := c.merged[sample]; ok {
		return len(e.runs.Runs)
	}
	return 0
}

// Resolve plans the documents for rec. For a merged sample without a prior
// SRA experiment, the experiment built from the sample's first record is
// kept for every later run, even when a later record carries a different
// version or library_length.
func (c *Context) Resolve(ctx context.Context, rec *sraqs.Record) (*Plan, error) {
	sample := rec.SampleName()
	if sample == "" {
		return nil, fmt.Errorf("%w: %q is empty", sraqs.ErrMissingField, sraqs.FieldSampleName)
	}
	if c.policy.Applies(sample) {
		return c.resolveMerged(ctx, rec, sample)
	}
	return c.resolveSingle(rec, sample)
}

// Suffix returns the disambiguation suffix for the n-th (1-based) occurrence.
func Suffix(n int) string {
	if n <= 1 {
		return ""
	}
	return fmt.Sprintf(".%02d", n)
}

func (c *Context) resolveSingle(rec *sraqs.Record, sample string) (*Plan, error) {
	c.occurrences[sample]++
	suffix := Suffix(c.occurrences[sample])

	exp, err := sradoc.BuildExperiment(rec, suffix, c.layout)
	if err != nil {
		return nil, err
	}
	run, err := sradoc.BuildRun(rec, suffix)
	if err != nil {
		return nil, err
	}
	sub, err := sradoc.BuildSubmission(rec, suffix, true)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Sample:     sample,
		Suffix:     suffix,
		Experiment: exp,
		RunSet:     sradoc.NewRunSet(*run),
		Submission: sub,
	}, nil
}

func (c *Context) resolveMerged(ctx context.Context, rec *sraqs.Record, sample string) (*Plan, error) {
	run, err := sradoc.BuildRun(rec, "")
	if err != nil {
		return nil, err
	}

	prior, found, err := c.lookupPrior(ctx, rec)
	if err != nil {
		return nil, err
	}

	entry := c.merged[sample]
	var exp *sradoc.Experiment
	if !found {
		if entry != nil && entry.experiment != nil {
			exp = entry.experiment
		} else if exp, err = sradoc.BuildExperiment(rec, "", c.layout); err != nil {
			return nil, err
		}
	}
	sub, err := sradoc.BuildSubmission(rec, "", !found)
	if err != nil {
		return nil, err
	}

	// Nothing above failed, so the batch state can change now.
	if entry == nil {
		entry = &mergeEntry{runs: sradoc.NewRunSet()}
		c.merged[sample] = entry
	}
	if exp != nil {
		entry.experiment = exp
	}
	entry.runs.Append(*run)
	if found {
		entry.runs.ReferenceExperiment(prior)
	}

	return &Plan{
		Sample:         sample,
		Merged:         true,
		PriorAccession: prior,
		Experiment:     exp,
		RunSet:         entry.runs,
		Submission:     sub,
	}, nil
}

func (c *Context) lookupPrior(ctx context.Context, rec *sraqs.Record) (string, bool, error) {
	if c.lookup == nil {
		return "", false, nil
	}
	return c.lookup.LookupExperiment(ctx, rec.BioSample())
}
