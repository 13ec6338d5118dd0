// Package filesystem provides the read-only filesystem abstraction used to
// reach metadata tables, run directories and read files.
//
// Key interfaces:
//   - FileSystemProvider: opens files as streams, reads small files whole,
//     lists directories and stats paths
//   - FileInfo: alias for fs.FileInfo
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for tests
//
// Missing paths are reported with errors that match fs.ErrNotExist.
package filesystem
