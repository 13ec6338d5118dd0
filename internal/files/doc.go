// Package files groups the file access used by a submission batch.
//
// Sub-packages:
//   - filesystem: read-only filesystem abstraction (OS and in-memory)
//   - scanner: read file discovery in run directories and digest computation
package files
