// Package retry re-runs operations that fail with transient errors, waiting
// an exponentially growing, jittered delay between attempts.
//
// Classification and timing are pluggable through sraqs.ErrorClassifier and
// sraqs.BackoffStrategy. HTTPErrorClassifier treats network failures,
// timeouts and HTTP 429/5xx answers as transient, which is what the
// accession lookup needs when talking to NCBI E-utilities.
//
//	executor := retry.NewExecutor(retry.NewHTTPErrorClassifier(), retry.NewExponentialBackoff(3))
//	acc, err := retry.Value(ctx, executor, func(ctx context.Context) (string, error) {
//	    return client.Fetch(ctx, id)
//	})
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy.
package retry
