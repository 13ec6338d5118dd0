package resolver

import (
	"context"
	"fmt"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// fakeLookup answers from a fixed table and counts calls.
type fakeLookup struct {
	accessions map[string]string
	err        error
	calls      []string
}

func (f *fakeLookup) LookupExperiment(ctx context.Context, biosample string) (string, bool, error) {
	f.calls = append(f.calls, biosample)
	if f.err != nil {
		return "", false, f.err
	}
	if len(biosample) < 4 || biosample[:4] != sraqs.BioSampleMarker {
		return "", false, fmt.Errorf("%w: %q", sraqs.ErrInvalidAccession, biosample)
	}
	acc, ok := f.accessions[biosample]
	return acc, ok, nil
}

var _ sraqs.AccessionLookup = (*fakeLookup)(nil)
