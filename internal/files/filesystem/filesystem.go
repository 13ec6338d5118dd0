package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider is the read side of the filesystem used by a batch.
type FileSystemProvider interface {
	// Open opens a file for streaming. Read files can be many gigabytes and
	// must never be loaded whole.
	Open(path string) (io.ReadCloser, error)

	// ReadFile reads a small file (table, sample sheet, run parameters) whole.
	ReadFile(path string) ([]byte, error)

	// ReadDir lists the entries of a directory, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
