package records

import (
	"fmt"
	"io"
	"strings"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/filesystem"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/logging"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/metadata"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// InstrumentSource reads a MiSeq run directory.
type InstrumentSource struct {
	run  *metadata.Run
	opts Options
	pos  int
}

var _ Source = (*InstrumentSource)(nil)

// NewInstrumentSource parses the run metadata in dir. A run without a
// readable RunParameters.xml or SampleSheet.csv yields no source at all.
func NewInstrumentSource(fsys filesystem.FileSystemProvider, dir string, opts Options) (*InstrumentSource, error) {
	if opts.Scanner == nil {
		return nil, fmt.Errorf("instrument source for %s needs a read file scanner", dir)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNullLogger()
	}
	run, err := metadata.ReadRun(fsys, dir)
	if err != nil {
		return nil, err
	}
	return &InstrumentSource{run: run, opts: opts}, nil
}

// Name implements Source.
func (s *InstrumentSource) Name() string { return s.run.Dir }

// Version returns the run's base-caller version.
func (s *InstrumentSource) Version() string { return s.run.Version }

// Len returns the number of sample sheet data rows.
func (s *InstrumentSource) Len() int { return len(s.run.Samples) }

// Next implements Source.
func (s *InstrumentSource) Next() (*sraqs.Record, error) {
	if s.pos >= len(s.run.Samples) {
		return nil, io.EOF
	}
	row := s.run.Samples[s.pos]
	s.pos++

	rec := sraqs.NewRecord(s.run.Dir, row.Line)
	for k, v := range row.Values {
		rec.Set(k, v)
	}

	name := row.Get(metadata.ColumnSampleName)
	id := row.Get(metadata.ColumnSampleID)
	switch {
	case strings.Contains(name, sraqs.BioSampleMarker):
		rec.Set(sraqs.FieldSampleName, name)
		rec.Set(sraqs.FieldOrganism, name)
		rec.Set(sraqs.FieldBioSample, name)
	case strings.Contains(id, sraqs.BioSampleMarker):
		rec.Set(sraqs.FieldSampleName, name)
		rec.Set(sraqs.FieldOrganism, name)
		rec.Set(sraqs.FieldBioSample, id)
	default:
		rec.Set(sraqs.FieldSampleName, name)
		return nil, rec.Fail(fmt.Errorf("%w: can't submit sample %s, no NCBI BioSample ID", sraqs.ErrInvalidAccession, name))
	}
	if err := sraqs.ValidateSampleName(name); err != nil {
		return nil, rec.Fail(err)
	}
	rec.SetDefault(sraqs.FieldProject, row.Get(metadata.ColumnSampleProject))
	rec.Set(sraqs.FieldVersion, s.run.Version)

	s.opts.Logger.Verbose("Hashing reads of %s (S%d)", name, row.Index)
	pair, err := s.opts.Scanner.ScanPair(s.run.Dir, name, row.Index)
	if err != nil {
		return nil, rec.Fail(err)
	}
	rec.Set(sraqs.FieldFile1Name, pair[0].Name)
	rec.Set(sraqs.FieldFile1Checksum, pair[0].Checksum)
	rec.Set(sraqs.FieldFile2Name, pair[1].Name)
	rec.Set(sraqs.FieldFile2Checksum, pair[1].Checksum)

	return finish(rec, s.opts)
}
