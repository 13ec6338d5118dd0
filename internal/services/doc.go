// Package services runs submission batches: it reads records from a metadata
// table or MiSeq run directory, resolves sample name collisions and merges,
// renders the SRA documents and bundles one archive per plan.
//
// A SubmissionService is NOT safe for concurrent Submit calls that share an
// output directory; the directory lock turns such a call into ErrOutputLocked.
package services
