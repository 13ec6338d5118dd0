package lookup

import (
	"context"
	"time"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/retry"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

var _ sraqs.AccessionLookup = (*RetryingLookup)(nil)

// RetryingLookup repeats lookups that fail transiently and bounds each
// attempt by timeout (zero means no per-attempt bound).
type RetryingLookup struct {
	inner    sraqs.AccessionLookup
	executor *retry.Executor
	timeout  time.Duration
}

// NewRetryingLookup panics if inner, executor or logger is nil.
func NewRetryingLookup(inner sraqs.AccessionLookup, executor *retry.Executor, timeout time.Duration, logger sraqs.Logger) *RetryingLookup {
	if inner == nil {
		panic("inner lookup cannot be nil")
	}
	if executor == nil {
		panic("executor cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &RetryingLookup{
		inner: inner,
		executor: executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("Accession lookup failed (attempt %d): %v; retrying in %s", attempt+1, err, delay)
		}),
		timeout: timeout,
	}
}

func (r *RetryingLookup) LookupExperiment(ctx context.Context, biosample string) (string, bool, error) {
	a, err := retry.Value(ctx, r.executor, func(ctx context.Context) (answer, error) {
		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
		acc, found, err := r.inner.LookupExperiment(ctx, biosample)
		return answer{accession: acc, found: found}, err
	})
	if err != nil {
		return "", false, err
	}
	return a.accession, a.found, nil
}
