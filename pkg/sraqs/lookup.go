package sraqs

import "context"

// AccessionLookup finds an experiment previously registered in SRA for a
// BioSample, so that new runs can be attached to it instead of creating a new
// experiment.
//
// Implementations return ErrInvalidAccession (wrapped) when the BioSample does
// not look like an NCBI BioSample accession; that is an input problem, not a
// service failure. Timeouts and retries are layered by the caller.
type AccessionLookup interface {
	// LookupExperiment returns the experiment accession and true when a
	// matching prior experiment exists, or "" and false when none was found.
	LookupExperiment(ctx context.Context, biosample string) (accession string, found bool, err error)
}
