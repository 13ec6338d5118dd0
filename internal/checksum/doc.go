// Package checksum computes the MD5 digests recorded for read files in run
// documents.
//
// Read files are streamed in sraqs.ChecksumBlockSize chunks and never held in
// memory whole. The same pass can feed a progress observer and, when gzip
// verification is enabled, decompress the stream with pgzip so a truncated or
// corrupt archive is detected before it is submitted.
//
// # Example Usage
//
//	calc := checksum.New(checksum.WithGzipVerification())
//	digest, err := calc.Sum(f, info.Size(), "S1_S1_L001_R1_001.fastq.gz")
//
// # Thread Safety
//
// MD5 holds no per-call state and is safe for concurrent use.
package checksum
