// Package records turns submission input into canonical sraqs.Record values.
//
// Two sources exist. A table source reads a delimited metadata table with a
// header row; headers are mapped onto canonical field names and rows become
// records. An instrument source reads a MiSeq run directory: the sample sheet
// supplies the samples and their BioSample accessions, RunParameters.xml the
// base-caller version, and the paired FASTQ files their names and digests.
//
// Both sources yield records one at a time through Next. A record that
// cannot be submitted is reported as a *sraqs.RecordError and the source
// stays usable; io.EOF marks the end of input.
package records
