// Package metadata parses the run metadata an Illumina MiSeq writes next to
// its output.
//
// # RunParameters.xml
//
// The base-caller version is the text of the first RTAVersion element
// anywhere in the document. Older instruments nest it under Setup, newer
// ones place it at the root; both are found by walking the token stream.
//
// # SampleSheet.csv
//
// Everything up to and including the line containing "[Data]" is preamble.
// The next line is the comma-separated header and each following non-blank
// line is one sample. Samples are numbered from 1 in data row order; the
// number appears in the FASTQ file names MiSeq Reporter writes.
//
// # Usage
//
//	run, err := metadata.ReadRun(fsys, runDir)
//	if err != nil {
//	    return err // nothing in the run can be submitted
//	}
//	for _, row := range run.Samples {
//	    // row.Index, row.Get("Sample_Name")
//	}
package metadata
