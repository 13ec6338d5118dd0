package metadata

import (
	"encoding/xml"
	"errors"
	"fmt"
)

var (
	// ErrNoVersion is returned when RunParameters.xml has no RTAVersion element.
	ErrNoVersion = errors.New("no RTAVersion in run parameters")

	// ErrNoDataSection is returned when SampleSheet.csv has no [Data] section.
	ErrNoDataSection = errors.New("no [Data] section in sample sheet")
)

// MetadataError represents a run metadata problem with context and a hint.
type MetadataError struct {
	FilePath string // Path to the file with the error
	Line     int    // Line number (0 if unknown)
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
	Err      error  // Underlying cause, if any
}

// Error implements the error interface with rich formatting.
func (e *MetadataError) Error() string {
	location := e.FilePath
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", e.FilePath, e.Line)
	}

	msg := fmt.Sprintf("run metadata error in %s: %s", location, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

func (e *MetadataError) Unwrap() error { return e.Err }

// wrapXMLError converts xml package errors to MetadataError with line numbers.
func wrapXMLError(err error, filePath string) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &MetadataError{
			FilePath: filePath,
			Line:     syntaxErr.Line,
			Message:  syntaxErr.Msg,
			Hint:     "RunParameters.xml is written by the instrument; re-copy it from the run folder.",
			Err:      err,
		}
	}
	return &MetadataError{FilePath: filePath, Message: err.Error(), Err: err}
}
