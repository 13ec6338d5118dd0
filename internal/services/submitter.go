package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/archive"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/checksum"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/filesystem"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/scanner"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/records"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/resolver"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/sradoc"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// SubmissionService turns one input into per-sample submission archives.
type SubmissionService struct {
	fsys       filesystem.FileSystemProvider
	calculator checksum.Calculator
	lookup     sraqs.AccessionLookup
	logger     sraqs.Logger
	newBatchID func() string
	now        func() time.Time
}

// NewSubmissionService wires the batch dependencies.
// Panics if any of them is nil.
func NewSubmissionService(
	fsys filesystem.FileSystemProvider,
	calculator checksum.Calculator,
	lookup sraqs.AccessionLookup,
	logger sraqs.Logger,
) *SubmissionService {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if lookup == nil {
		panic("lookup cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SubmissionService{
		fsys:       fsys,
		calculator: calculator,
		lookup:     lookup,
		logger:     logger,
		newBatchID: func() string { return uuid.NewString() },
		now:        time.Now,
	}
}

// Submit processes every record of cfg.InputPath in order. Records that
// cannot be packaged are logged, reported and skipped; the error then wraps
// sraqs.ErrRecordsFailed. Problems that stop the whole batch (configuration,
// unreadable input, locked output) return before any record is processed.
func (s *SubmissionService) Submit(ctx context.Context, cfg sraqs.SubmissionConfig) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	report := &Report{
		BatchID:   s.newBatchID(),
		Input:     cfg.InputPath,
		OutputDir: cfg.OutputDir,
		Started:   s.now(),
	}
	s.logger.Verbose("Batch %s: reading %s", report.BatchID, cfg.InputPath)

	calculator := s.calculator
	if cfg.VerifyGzip {
		v, ok := calculator.(checksum.GzipVerifier)
		if !ok {
			return nil, fmt.Errorf("%w: checksum calculator cannot verify gzip streams", sraqs.ErrInvalidConfig)
		}
		calculator = v.VerifyingGzip()
	}

	src, err := records.Open(s.fsys, cfg.InputPath, records.Options{
		Delimiter: cfg.Delimiter,
		Defaults:  batchDefaults(cfg),
		Overrides: batchOverrides(cfg),
		Scanner:   scanner.NewScannerWithFS(calculator, s.fsys),
		Logger:    s.logger,
	})
	if err != nil {
		return nil, err
	}

	packager := archive.NewPackager(cfg.OutputDir, s.logger)
	if err := packager.Prepare(); err != nil {
		return nil, err
	}
	unlock, err := packager.Lock()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Error("release output lock: %v", err)
		}
	}()

	res := resolver.NewContext(resolver.NewMergePolicy(cfg.Merge), s.lookup, sradoc.SpotLengths(cfg.ReadLength))

	for {
		if err := ctx.Err(); err != nil {
			report.Finished = s.now()
			return report, err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.Outcomes = append(report.Outcomes, s.skipped(err))
			continue
		}

		outcome, err := s.packageRecord(ctx, res, packager, rec)
		if err != nil {
			report.Outcomes = append(report.Outcomes, s.skipped(rec.Fail(err)))
			continue
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.Finished = s.now()
	if failed := len(report.Failed()); failed > 0 {
		return report, fmt.Errorf("%w: %d of %d records skipped", sraqs.ErrRecordsFailed, failed, len(report.Outcomes))
	}
	return report, nil
}

// packageRecord resolves rec, writes its documents and bundles them.
func (s *SubmissionService) packageRecord(ctx context.Context, res *resolver.Context, packager *archive.Packager, rec *sraqs.Record) (Outcome, error) {
	plan, err := res.Resolve(ctx, rec)
	if err != nil {
		return Outcome{}, err
	}

	docs := []struct {
		kind string
		doc  any
	}{
		{sradoc.KindExperiment, plan.Experiment},
		{sradoc.KindRun, plan.RunSet},
		{sradoc.KindSubmission, plan.Submission},
	}

	var members []string
	for _, d := range docs {
		if d.kind == sradoc.KindExperiment && plan.Experiment == nil {
			continue
		}
		data, err := sradoc.Render(d.doc)
		if err != nil {
			return Outcome{}, fmt.Errorf("render %s document: %w", d.kind, err)
		}
		name := sradoc.FileName(plan.Sample, plan.Suffix, d.kind)
		if _, err := packager.WriteDocument(name, data); err != nil {
			return Outcome{}, err
		}
		members = append(members, name)
	}

	path, err := packager.Bundle(plan.Base()+archive.ArchiveSuffix, members)
	if err != nil {
		return Outcome{}, err
	}
	s.logger.Info("Wrote %s", path)
	if plan.PriorAccession != "" {
		s.logger.Verbose("%s runs attached to experiment %s", plan.Sample, plan.PriorAccession)
	}

	return Outcome{
		Sample:         plan.Sample,
		Source:         rec.Source,
		Line:           rec.Line,
		Archive:        path,
		Merged:         plan.Merged,
		PriorAccession: plan.PriorAccession,
	}, nil
}

func (s *SubmissionService) skipped(err error) Outcome {
	s.logger.Error("%v", err)
	o := Outcome{Kind: sraqs.KindOf(err), Err: err}
	var recErr *sraqs.RecordError
	if errors.As(err, &recErr) {
		o.Sample, o.Source, o.Line = recErr.Sample, recErr.Source, recErr.Line
	}
	return o
}

// batchDefaults fill fields a record lacks.
func batchDefaults(cfg sraqs.SubmissionConfig) map[string]string {
	out := canonicalized(cfg.Defaults)
	if _, ok := out[sraqs.FieldLibraryLength]; !ok {
		n := cfg.LibraryLength
		if n <= 0 {
			n = sraqs.DefaultLibraryLength
		}
		out[sraqs.FieldLibraryLength] = strconv.Itoa(n)
	}
	return out
}

// batchOverrides replace record fields. Explicit overrides win over the
// batch identity.
func batchOverrides(cfg sraqs.SubmissionConfig) map[string]string {
	out := map[string]string{
		sraqs.FieldSubmitterName:  cfg.SubmitterName,
		sraqs.FieldSubmitterEmail: cfg.SubmitterEmail,
		sraqs.FieldHoldDate:       cfg.HoldDate,
	}
	if p := strings.TrimSpace(cfg.Project); p != "" {
		out[sraqs.FieldProject] = p
	}
	for k, v := range canonicalized(cfg.Overrides) {
		out[k] = v
	}
	return out
}

func canonicalized(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[records.Canonical(k)] = v
	}
	return out
}
