package sraqs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	report, err := service.Submit(ctx, config)
//	if errors.Is(err, sraqs.ErrRecordsFailed) {
//	    // Some records were skipped; report.Failed() lists them
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates the metadata table or run directory could not be opened.
	ErrInputNotFound = errors.New("input not found")

	// ErrInvalidAccession indicates a BioSample accession is missing or malformed.
	ErrInvalidAccession = errors.New("invalid BioSample accession")

	// ErrInvalidSampleName indicates a sample name that cannot name an output file.
	ErrInvalidSampleName = errors.New("invalid sample name")

	// ErrMissingField indicates a record lacks a field required before templating.
	ErrMissingField = errors.New("missing record field")

	// ErrReadFileUnavailable indicates a paired read file is missing, unreadable or corrupt.
	ErrReadFileUnavailable = errors.New("read file unavailable")

	// ErrLookupUnavailable indicates the accession lookup service could not answer.
	ErrLookupUnavailable = errors.New("accession lookup unavailable")

	// ErrTemplateFill indicates a document could not be filled from a record.
	ErrTemplateFill = errors.New("template fill failed")

	// ErrArchiveAssembly indicates a submission archive could not be assembled.
	ErrArchiveAssembly = errors.New("archive assembly failed")

	// ErrOutputLocked indicates another process is writing to the output directory.
	ErrOutputLocked = errors.New("output directory locked")

	// ErrRecordsFailed indicates the batch completed but skipped one or more records.
	ErrRecordsFailed = errors.New("one or more records failed")
)

// ErrorKind groups per-record failures by how they are recovered.
type ErrorKind int

const (
	KindUnknown             ErrorKind = iota
	KindInputValidation               // bad or missing accession or sample name, missing field
	KindResourceUnavailable           // unreadable read file, unreachable lookup
	KindTemplateFill                  // document references an absent field
	KindArchiveAssembly               // expected archive member absent
)

// String returns a human-readable string representation of the ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindInputValidation:
		return "input-validation"
	case KindResourceUnavailable:
		return "resource-unavailable"
	case KindTemplateFill:
		return "template-fill"
	case KindArchiveAssembly:
		return "archive-assembly"
	default:
		return "unknown"
	}
}

// KindOf classifies err into one of the per-record error kinds.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrTemplateFill):
		return KindTemplateFill
	case errors.Is(err, ErrArchiveAssembly):
		return KindArchiveAssembly
	case errors.Is(err, ErrInvalidAccession), errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidSampleName):
		return KindInputValidation
	case errors.Is(err, ErrReadFileUnavailable), errors.Is(err, ErrLookupUnavailable):
		return KindResourceUnavailable
	default:
		return KindUnknown
	}
}

// RecordError ties a failure to the input record that caused it.
type RecordError struct {
	Source string // Input table or run directory
	Line   int    // Line (table) or data row (sample sheet), 0 if unknown
	Sample string // Sample name, if known
	Err    error
}

func (e *RecordError) Error() string {
	location := e.Source
	if e.Line > 0 {
		location = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}
	if e.Sample != "" {
		return fmt.Sprintf("record %s (sample %q): %v", location, e.Sample, e.Err)
	}
	return fmt.Sprintf("record %s: %v", location, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// FillError reports a document that could not be filled because the record
// lacks a field. Attempted holds the record fields that were available.
type FillError struct {
	Document  string
	Sample    string
	Field     string
	Attempted map[string]string
}

func (e *FillError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s document for sample %q: field %q is absent", e.Document, e.Sample, e.Field)
	if len(e.Attempted) > 0 {
		keys := make([]string, 0, len(e.Attempted))
		for k := range e.Attempted {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\nattempted fill with:")
		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %s=%q", k, e.Attempted[k])
		}
	}
	return b.String()
}

func (e *FillError) Unwrap() error { return ErrTemplateFill }

// ArchiveError reports a submission archive that could not be assembled.
type ArchiveError struct {
	Archive string
	Member  string
	Err     error
}

func (e *ArchiveError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("archive %s: member %s: %v", e.Archive, e.Member, e.Err)
	}
	return fmt.Sprintf("archive %s: %v", e.Archive, e.Err)
}

func (e *ArchiveError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrArchiveAssembly}
	}
	return []error{ErrArchiveAssembly, e.Err}
}

// usagePatterns are the error prefixes cobra produces for command line misuse.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"missing required argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInputNotFound):
		return ExitInputNotFound
	case errors.Is(err, ErrOutputLocked):
		return ExitOutputLocked
	case errors.Is(err, ErrRecordsFailed):
		return ExitRecordsFailed
	}

	errStr := err.Error()
	for _, pattern := range usagePatterns {
		if strings.HasPrefix(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
