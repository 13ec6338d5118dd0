package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/filesystem"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/metadata"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// TableSource reads a delimited metadata table.
type TableSource struct {
	path   string
	opts   Options
	reader *csv.Reader
	header []string
}

var _ Source = (*TableSource)(nil)

// NewTableSource reads and decodes the table at path and parses its header.
func NewTableSource(fsys filesystem.FileSystemProvider, path string, opts Options) (*TableSource, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sraqs.ErrInputNotFound, path, err)
	}

	text, err := metadata.DecodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = '\t'
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s has no header row", sraqs.ErrInvalidConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for i, h := range header {
		header[i] = Canonical(h)
	}

	return &TableSource{path: path, opts: opts, reader: r, header: header}, nil
}

// Name implements Source.
func (s *TableSource) Name() string { return s.path }

// Header returns the canonical column names.
func (s *TableSource) Header() []string { return s.header }

// Next implements Source.
func (s *TableSource) Next() (*sraqs.Record, error) {
	for {
		cells, err := s.reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.StartLine
			}
			return nil, &sraqs.RecordError{Source: s.path, Line: line, Err: fmt.Errorf("%w: %v", sraqs.ErrMissingField, err)}
		}
		line, _ := s.reader.FieldPos(0)
		if metadata.BlankRow(cells) {
			continue
		}

		rec := sraqs.NewRecord(s.path, line)
		for i, name := range s.header {
			if name == "" || i >= len(cells) {
				continue
			}
			rec.Set(name, strings.TrimSpace(cells[i]))
		}
		rec.SetDefault(sraqs.FieldVersion, sraqs.DefaultSoftwareVersion)

		return finish(rec, s.opts)
	}
}
