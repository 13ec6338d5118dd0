// Package scanner locates paired read files in a MiSeq run directory and
// computes the digests recorded for them.
//
// MiSeq Reporter writes demultiplexed reads to Data/Intensities/BaseCalls as
// {sample}_S{index}_L001_R{1|2}_001.fastq.gz, where {sample} is the sample
// sheet's Sample_Name with underscores turned into dashes and {index} is the
// 1-based data row of the sample sheet.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// enabling both production use with the OS filesystem and tests with the
// in-memory filesystem.
package scanner
