package sradoc

import "encoding/xml"

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// Experiment is an SRA EXPERIMENT document.
type Experiment struct {
	XMLName    xml.Name   `xml:"EXPERIMENT"`
	Alias      string     `xml:"alias,attr"`
	XSI        string     `xml:"xmlns:xsi,attr,omitempty"`
	Title      string     `xml:"TITLE"`
	StudyRef   Ref        `xml:"STUDY_REF"`
	Design     Design     `xml:"DESIGN"`
	Platform   Platform   `xml:"PLATFORM"`
	Processing Processing `xml:"PROCESSING"`
}

// Ref is an accession reference such as STUDY_REF or SAMPLE_DESCRIPTOR.
type Ref struct {
	Accession string `xml:"accession,attr"`
}

type Design struct {
	Description       string            `xml:"DESIGN_DESCRIPTION"`
	SampleDescriptor  Ref               `xml:"SAMPLE_DESCRIPTOR"`
	LibraryDescriptor LibraryDescriptor `xml:"LIBRARY_DESCRIPTOR"`
	SpotDescriptor    SpotDescriptor    `xml:"SPOT_DESCRIPTOR"`
}

type LibraryDescriptor struct {
	Name                 string        `xml:"LIBRARY_NAME"`
	Strategy             string        `xml:"LIBRARY_STRATEGY"`
	Source               string        `xml:"LIBRARY_SOURCE"`
	Selection            string        `xml:"LIBRARY_SELECTION"`
	Layout               LibraryLayout `xml:"LIBRARY_LAYOUT"`
	ConstructionProtocol string        `xml:"LIBRARY_CONSTRUCTION_PROTOCOL"`
}

type LibraryLayout struct {
	Paired Paired `xml:"PAIRED"`
}

type Paired struct {
	NominalLength string `xml:"NOMINAL_LENGTH,attr"`
}

type SpotDescriptor struct {
	DecodeSpec SpotDecodeSpec `xml:"SPOT_DECODE_SPEC"`
}

type SpotDecodeSpec struct {
	SpotLength int        `xml:"SPOT_LENGTH"`
	Reads      []ReadSpec `xml:"READ_SPEC"`
}

type ReadSpec struct {
	Index     int    `xml:"READ_INDEX"`
	Class     string `xml:"READ_CLASS"`
	Type      string `xml:"READ_TYPE"`
	BaseCoord int    `xml:"BASE_COORD"`
}

type Platform struct {
	Illumina Instrument `xml:"ILLUMINA"`
}

type Instrument struct {
	Model string `xml:"INSTRUMENT_MODEL"`
}

type Processing struct {
	Pipeline Pipeline `xml:"PIPELINE"`
}

type Pipeline struct {
	Sections []PipeSection `xml:"PIPE_SECTION"`
}

type PipeSection struct {
	Name          string `xml:"section_name,attr"`
	StepIndex     int    `xml:"STEP_INDEX"`
	PrevStepIndex string `xml:"PREV_STEP_INDEX"`
	Program       string `xml:"PROGRAM"`
	Version       string `xml:"VERSION"`
}

// RunSet is an SRA RUN_SET document holding one RUN per sequencing run.
type RunSet struct {
	XMLName xml.Name `xml:"RUN_SET"`
	Runs    []Run    `xml:"RUN"`
}

// Run is one sequencing run of a sample.
type Run struct {
	Alias         string        `xml:"alias,attr"`
	ExperimentRef ExperimentRef `xml:"EXPERIMENT_REF"`
	DataBlock     DataBlock     `xml:"DATA_BLOCK"`
}

// ExperimentRef points a run at its experiment by alias and, once the
// experiment exists at NCBI, by accession.
type ExperimentRef struct {
	RefName   string `xml:"refname,attr"`
	Accession string `xml:"accession,attr,omitempty"`
}

type DataBlock struct {
	Files []File `xml:"FILES>FILE"`
}

type File struct {
	ChecksumMethod string `xml:"checksum_method,attr"`
	FileType       string `xml:"filetype,attr"`
	Checksum       string `xml:"checksum,attr"`
	Filename       string `xml:"filename,attr"`
}

// Submission is an SRA SUBMISSION document.
type Submission struct {
	XMLName  xml.Name  `xml:"SUBMISSION"`
	Alias    string    `xml:"alias,attr"`
	Comment  string    `xml:"submission_comment,attr"`
	Contacts []Contact `xml:"CONTACTS>CONTACT"`
	Actions  []Action  `xml:"ACTIONS>ACTION"`
}

type Contact struct {
	InformOnError  string `xml:"inform_on_error,attr"`
	InformOnStatus string `xml:"inform_on_status,attr"`
	Name           string `xml:"name,attr"`
}

// Action holds exactly one of Add or Hold.
type Action struct {
	Add  *Add  `xml:"ADD,omitempty"`
	Hold *Hold `xml:"HOLD,omitempty"`
}

type Add struct {
	Schema string `xml:"schema,attr"`
	Source string `xml:"source,attr"`
}

type Hold struct {
	HoldUntilDate string `xml:"HoldUntilDate,attr"`
}
