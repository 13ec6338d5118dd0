// Package resolver decides, for each record of a batch, which documents are
// produced and under which names.
//
// Without merging, a sample name seen before in the batch gets a two-digit
// suffix: the second occurrence is ".02", the third ".03". With merging, a
// sample keeps its plain name; its runs accumulate into one run set and the
// accession lookup decides whether the batch creates an experiment or
// attaches the runs to one NCBI already holds.
//
// All state lives in a Context created per batch. A Context is not safe for
// concurrent use; records are resolved one at a time.
package resolver
