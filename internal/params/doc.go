// Package params handles per-batch record field assignments.
//
// Fields come from two places: the `fields:` map in sraqs.yaml, which only
// fills values a record lacks, and repeated `--field key=value` flags, which
// replace whatever the record carries. Apply combines both onto a record.
package params
