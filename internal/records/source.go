package records

import (
	"fmt"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/checksum"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/filesystem"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/scanner"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/logging"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/params"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// Source yields records from one input.
type Source interface {
	// Name is the table path or run directory.
	Name() string

	// Next returns the next record. A *sraqs.RecordError reports a record
	// that was skipped; the caller may keep calling Next. io.EOF ends input.
	Next() (*sraqs.Record, error)
}

// Options configures how sources build records.
type Options struct {
	// Delimiter separates table columns. Zero means tab.
	Delimiter rune

	// Defaults fill absent fields; Overrides replace fields. Keys may be
	// any header spelling Canonical accepts.
	Defaults  map[string]string
	Overrides map[string]string

	// Scanner hashes read files for instrument input. Nil uses MD5 over
	// the source filesystem.
	Scanner *scanner.Scanner

	Logger sraqs.Logger
}

// Open picks a source for path: a directory is a MiSeq run, anything else
// a metadata table.
func Open(fsys filesystem.FileSystemProvider, path string, opts Options) (Source, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sraqs.ErrInputNotFound, path, err)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNullLogger()
	}
	if info.IsDir() {
		if opts.Scanner == nil {
			opts.Scanner = scanner.NewScannerWithFS(checksum.New(), fsys)
		}
		return NewInstrumentSource(fsys, path, opts)
	}
	return NewTableSource(fsys, path, opts)
}

// finish applies batch fields and checks the record can be submitted.
func finish(rec *sraqs.Record, opts Options) (*sraqs.Record, error) {
	params.Apply(rec, opts.Defaults, opts.Overrides, Canonical)
	if err := rec.ValidateSubmittable(); err != nil {
		return nil, rec.Fail(err)
	}
	return rec, nil
}
