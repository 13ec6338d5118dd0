package lookup

import (
	"net/http"
	"time"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/retry"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// Config selects and tunes the lookup stack for one batch.
type Config struct {
	Enabled bool
	Eutils  EutilsOptions

	// Timeout bounds each HTTP attempt; zero selects sraqs.DefaultLookupTimeout.
	Timeout time.Duration

	// Retries is the number of extra attempts after a transient failure.
	Retries int

	CacheSize int

	// Client overrides the HTTP client, mainly for tests.
	Client HTTPDoer
}

// New returns Disabled when cfg.Enabled is false, otherwise an E-utilities
// client wrapped in retry and cache layers.
func New(cfg Config, logger sraqs.Logger) (sraqs.AccessionLookup, error) {
	if !cfg.Enabled {
		return Disabled{}, nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = sraqs.DefaultLookupTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}

	executor := retry.NewExecutor(
		retry.NewHTTPErrorClassifier(),
		retry.NewExponentialBackoff(retries),
	)
	retrying := NewRetryingLookup(NewEutilsClient(cfg.Eutils, client), executor, timeout, logger)
	cached, err := NewCachedLookup(retrying, cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return cached, nil
}
