package sraqs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Canonical record field names. Table columns are renamed to these by the
// normalizer; unknown columns pass through under their original header.
const (
	FieldSampleName     = "Sample Name"
	FieldOrganism       = "organism"
	FieldStrain         = "strain"
	FieldBioSample      = "Biosample Accession"
	FieldLibraryLength  = "library_length"
	FieldFile1Name      = "file1_name"
	FieldFile1Checksum  = "file1_checksum"
	FieldFile2Name      = "file2_name"
	FieldFile2Checksum  = "file2_checksum"
	FieldVersion        = "version"
	FieldProject        = "project"
	FieldSubmitterName  = "name"
	FieldSubmitterEmail = "email"
	FieldHoldDate       = "hold_date"
)

// TemplateColumns is the header row of the table template, in column order.
var TemplateColumns = []string{
	FieldSampleName,
	FieldOrganism,
	FieldStrain,
	FieldBioSample,
	FieldFile1Name,
	FieldFile1Checksum,
	FieldFile2Name,
	FieldFile2Checksum,
}

// Record is one sample's canonical metadata. It is created per input row,
// completed by the normalizer and the batch configuration, and discarded
// after packaging.
type Record struct {
	// Fields maps canonical field names to values.
	Fields map[string]string

	// Source is the table file or run directory the record came from.
	Source string

	// Line is the table line or sample sheet data row (1-based).
	Line int
}

// NewRecord creates an empty record for the given input location.
func NewRecord(source string, line int) *Record {
	return &Record{Fields: make(map[string]string), Source: source, Line: line}
}

// Get returns the trimmed value of field, or "" when absent.
func (r *Record) Get(field string) string {
	return strings.TrimSpace(r.Fields[field])
}

// Has reports whether field is present with a non-blank value.
func (r *Record) Has(field string) bool {
	return r.Get(field) != ""
}

// Set stores value under field.
func (r *Record) Set(field, value string) {
	r.Fields[field] = value
}

// SetDefault stores value only when field is absent or blank.
func (r *Record) SetDefault(field, value string) {
	if !r.Has(field) {
		r.Fields[field] = value
	}
}

// SampleName returns the record's sample name.
func (r *Record) SampleName() string { return r.Get(FieldSampleName) }

// BioSample returns the record's BioSample accession.
func (r *Record) BioSample() string { return r.Get(FieldBioSample) }

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := NewRecord(r.Source, r.Line)
	for k, v := range r.Fields {
		c.Fields[k] = v
	}
	return c
}

// Snapshot returns a copy of the record's fields for diagnostics.
func (r *Record) Snapshot() map[string]string {
	return r.Clone().Fields
}

// Fail wraps err in a RecordError located at this record.
func (r *Record) Fail(err error) error {
	return &RecordError{Source: r.Source, Line: r.Line, Sample: r.SampleName(), Err: err}
}

// ValidateSubmittable checks the record-level invariants: a sample name
// usable as an output file name and a BioSample accession carrying
// BioSampleMarker.
func (r *Record) ValidateSubmittable() error {
	if err := ValidateSampleName(r.SampleName()); err != nil {
		return err
	}
	acc := r.BioSample()
	if acc == "" {
		return fmt.Errorf("%w: no NCBI BioSample ID", ErrInvalidAccession)
	}
	if !strings.Contains(acc, BioSampleMarker) {
		return fmt.Errorf("%w: %q is not an NCBI BioSample ID", ErrInvalidAccession, acc)
	}
	return nil
}

// ValidateSampleName rejects names that are empty or would place output
// files outside the output directory.
func ValidateSampleName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: %q is empty", ErrMissingField, FieldSampleName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidSampleName, name)
	case strings.ContainsAny(name, "/\\"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidSampleName, name)
	}
	return nil
}

// SubmissionConfig contains all parameters needed for one submission batch.
type SubmissionConfig struct {
	// Project is the BioProject accession (PRJNAxxxxxx) the experiments belong to.
	// Empty means each record supplies its own (table "project" column or
	// sample sheet Sample_Project).
	Project string

	// InputPath is a metadata table file or a MiSeq run directory.
	InputPath string

	// OutputDir receives the XML documents and archives. Created if absent.
	OutputDir string

	// Submitter identity written into every submission document.
	SubmitterName  string
	SubmitterEmail string

	// HoldDate is the release date (YYYY-MM-DD) for the HOLD action.
	HoldDate string

	// LibraryLength is the nominal insert length used when a row has none.
	LibraryLength int

	// ReadLength is the number of cycles per read; 0 selects the 2x250 default.
	ReadLength int

	// Delimiter separates table columns. Zero means tab.
	Delimiter rune

	// Merge names the samples whose runs share one experiment; "all" selects every sample.
	Merge []string

	// Defaults fill record fields that are absent; Overrides replace them.
	Defaults  map[string]string
	Overrides map[string]string

	// VerifyGzip decompresses read files while hashing them to detect corruption.
	VerifyGzip bool
}

// Validate checks if the SubmissionConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *SubmissionConfig) Validate() error {
	var errs []error

	if p := strings.TrimSpace(c.Project); p != "" && strings.ContainsAny(p, " \t/") {
		errs = append(errs, fmt.Errorf("project accession %q is malformed: %w", p, ErrInvalidConfig))
	}

	if strings.TrimSpace(c.InputPath) == "" {
		errs = append(errs, fmt.Errorf("input path is required: %w", ErrInvalidConfig))
	}

	if strings.TrimSpace(c.SubmitterName) == "" {
		errs = append(errs, fmt.Errorf("submitter name is required: %w", ErrInvalidConfig))
	}

	if strings.TrimSpace(c.SubmitterEmail) == "" {
		errs = append(errs, fmt.Errorf("submitter email is required: %w", ErrInvalidConfig))
	}

	if _, err := time.Parse(HoldDateLayout, c.HoldDate); err != nil {
		errs = append(errs, fmt.Errorf("hold date %q is not YYYY-MM-DD: %w", c.HoldDate, ErrInvalidConfig))
	}

	if c.LibraryLength < 0 {
		errs = append(errs, fmt.Errorf("library length cannot be negative: %w", ErrInvalidConfig))
	}

	if c.ReadLength < 0 {
		errs = append(errs, fmt.Errorf("read length cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
