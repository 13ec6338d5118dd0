package lookup

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

var _ sraqs.AccessionLookup = (*CachedLookup)(nil)

type answer struct {
	accession string
	found     bool
}

// CachedLookup remembers successful answers per BioSample. Failures are not
// cached, so a later record for the same sample asks again.
type CachedLookup struct {
	inner sraqs.AccessionLookup
	cache *lru.Cache[string, answer]
}

// NewCachedLookup panics if inner is nil. A non-positive size selects
// sraqs.DefaultLookupCacheSize.
func NewCachedLookup(inner sraqs.AccessionLookup, size int) (*CachedLookup, error) {
	if inner == nil {
		panic("inner lookup cannot be nil")
	}
	if size <= 0 {
		size = sraqs.DefaultLookupCacheSize
	}
	cache, err := lru.New[string, answer](size)
	if err != nil {
		return nil, fmt.Errorf("create lookup cache: %w", err)
	}
	return &CachedLookup{inner: inner, cache: cache}, nil
}

func (c *CachedLookup) LookupExperiment(ctx context.Context, biosample string) (string, bool, error) {
	key := strings.TrimSpace(biosample)
	if a, ok := c.cache.Get(key); ok {
		return a.accession, a.found, nil
	}

	acc, found, err := c.inner.LookupExperiment(ctx, key)
	if err != nil {
		return "", false, err
	}
	c.cache.Add(key, answer{accession: acc, found: found})
	return acc, found, nil
}

// Len returns the number of cached answers.
func (c *CachedLookup) Len() int {
	return c.cache.Len()
}
