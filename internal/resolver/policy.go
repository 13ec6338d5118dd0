package resolver

import "strings"

// MergeAll selects every sample for merging.
const MergeAll = "all"

// MergePolicy selects the samples whose runs share one experiment.
type MergePolicy struct {
	all   bool
	names map[string]struct{}
}

// NewMergePolicy builds a policy from sample names. Each entry may itself
// hold several names separated by spaces or commas. The token "all" selects
// every sample.
func NewMergePolicy(entries []string) MergePolicy {
	p := MergePolicy{names: make(map[string]struct{})}
	for _, e := range entries {
		for _, tok := range strings.FieldsFunc(e, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
			if tok == MergeAll {
				p.all = true
				continue
			}
			p.names[tok] = struct{}{}
		}
	}
	return p
}

// Enabled reports whether any sample is merged.
func (p MergePolicy) Enabled() bool {
	return p.all || len(p.names) > 0
}

// Applies reports whether sample is merged.
func (p MergePolicy) Applies(sample string) bool {
	if p.all {
		return true
	}
	_, ok := p.names[sample]
	return ok
}
