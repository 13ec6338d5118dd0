// Package lookup answers whether SRA already holds an Illumina experiment for
// a BioSample, so merged runs can be attached to it.
//
// EutilsClient talks to NCBI E-utilities (esearch, then efetch per hit).
// RetryingLookup and CachedLookup layer retry policy and per-batch memoization
// around any sraqs.AccessionLookup; New assembles the usual stack:
//
//	cache -> retry -> E-utilities
//
// Disabled answers "not found" without any network traffic.
package lookup
