package sraqs

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess       = 0  // Every record was packaged
	ExitGeneralError  = 1  // Unknown or unclassified error
	ExitUsageError    = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic         = 3  // Internal panic (unexpected crash)
	ExitConfigError   = 10 // Invalid configuration or submitter identity
	ExitInputNotFound = 11 // Metadata table or run directory not found/unreadable
	ExitRecordsFailed = 12 // Batch finished but one or more records were skipped
	ExitOutputLocked  = 13 // Another sraqs process holds the output directory
)

const (
	// BioSampleMarker is the substring an NCBI BioSample accession must carry
	// for a record to be submittable.
	BioSampleMarker = "SAMN"

	// DefaultLibraryLength is the nominal library insert length used when
	// neither the row nor the configuration provides one.
	DefaultLibraryLength = 500

	// DefaultSpotLength and DefaultHalfSpotLength describe a 2x250 MiSeq run
	// and apply when no read length is configured.
	DefaultSpotLength     = 502
	DefaultHalfSpotLength = 251

	// DefaultSoftwareVersion is the base-caller (RTA) version recorded for
	// table input rows that carry no version column.
	DefaultSoftwareVersion = "1.17"

	// DefaultInstrumentModel is the platform a prior experiment must have been
	// sequenced on to be reused in merge mode.
	DefaultInstrumentModel = "Illumina MiSeq"

	// HoldDateLayout is the accepted hold date format (YYYY-MM-DD).
	HoldDateLayout = "2006-01-02"

	// ChecksumBlockSize is the read size used when streaming read files
	// through the checksum.
	ChecksumBlockSize = 1 << 20

	// DefaultLookupTimeout bounds a single E-utilities HTTP request.
	DefaultLookupTimeout = 30 * time.Second

	// DefaultLookupRetries is the number of retries for transient lookup failures.
	DefaultLookupRetries = 3

	// DefaultRetryInitialDelay is the initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 500 * time.Millisecond

	// DefaultRetryMaxDelay caps the delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultLookupCacheSize is the number of BioSample answers kept per batch.
	DefaultLookupCacheSize = 256

	// TemplateFileName is the table template written by `sraqs template`.
	TemplateFileName = "SRA_Quick_Submit_template.txt"
)
