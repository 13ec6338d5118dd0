package sradoc

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// Document kinds, used in file names and fill errors.
const (
	KindExperiment = "experiment"
	KindRun        = "run"
	KindSubmission = "submission"
)

const (
	designDescription = "MiSeq deep shotgun sequencing of cultured isolate."
	submissionComment = "GenomeTrakr pathogen sampling project"
	readClass         = "Application Read"
)

// Layout is the read layout of a paired run.
type Layout struct {
	SpotLength     int
	HalfSpotLength int
}

// SpotLengths derives the layout from the cycles per read. Zero selects the
// 2x250 default.
func SpotLengths(readLength int) Layout {
	if readLength <= 0 {
		return Layout{SpotLength: sraqs.DefaultSpotLength, HalfSpotLength: sraqs.DefaultHalfSpotLength}
	}
	return Layout{SpotLength: 2 * (readLength + 1), HalfSpotLength: readLength + 1}
}

// FileName returns the output file name of a document.
func FileName(sample, suffix, kind string) string {
	return sample + suffix + "." + kind + ".xml"
}

// filler reads required record fields, remembering the first absent one.
type filler struct {
	rec      *sraqs.Record
	document string
	missing  string
}

func (f *filler) get(field string) string {
	if !f.rec.Has(field) {
		if f.missing == "" {
			f.missing = field
		}
		return ""
	}
	return f.rec.Get(field)
}

func (f *filler) err() error {
	if f.missing == "" {
		return nil
	}
	return &sraqs.FillError{
		Document:  f.document,
		Sample:    f.rec.SampleName(),
		Field:     f.missing,
		Attempted: f.rec.Snapshot(),
	}
}

// BuildExperiment fills the experiment document for rec.
func BuildExperiment(rec *sraqs.Record, suffix string, layout Layout) (*Experiment, error) {
	f := &filler{rec: rec, document: KindExperiment}
	sample := f.get(sraqs.FieldSampleName)
	organism := f.get(sraqs.FieldOrganism)
	project := f.get(sraqs.FieldProject)
	biosample := f.get(sraqs.FieldBioSample)
	libraryLength := f.get(sraqs.FieldLibraryLength)
	version := f.get(sraqs.FieldVersion)
	if err := f.err(); err != nil {
		return nil, err
	}

	return &Experiment{
		Alias:    sample + suffix,
		XSI:      xsiNamespace,
		Title:    fmt.Sprintf("Whole genome shotgun sequencing of %s by %s", organism, sraqs.DefaultInstrumentModel),
		StudyRef: Ref{Accession: project},
		Design: Design{
			Description:      designDescription,
			SampleDescriptor: Ref{Accession: biosample},
			LibraryDescriptor: LibraryDescriptor{
				Name:                 organism + " Nextera XT shotgun library",
				Strategy:             "WGS",
				Source:               "GENOMIC",
				Selection:            "RANDOM",
				Layout:               LibraryLayout{Paired: Paired{NominalLength: libraryLength}},
				ConstructionProtocol: fmt.Sprintf("Illumina Nextera XT library created for %s.", organism),
			},
			SpotDescriptor: SpotDescriptor{DecodeSpec: SpotDecodeSpec{
				SpotLength: layout.SpotLength,
				Reads: []ReadSpec{
					{Index: 0, Class: readClass, Type: "Forward", BaseCoord: 1},
					{Index: 1, Class: readClass, Type: "Reverse", BaseCoord: layout.HalfSpotLength},
				},
			}},
		},
		Platform: Platform{Illumina: Instrument{Model: sraqs.DefaultInstrumentModel}},
		Processing: Processing{Pipeline: Pipeline{Sections: []PipeSection{{
			Name:          "base caller",
			StepIndex:     0,
			PrevStepIndex: "NULL",
			Program:       "RTA",
			Version:       version,
		}}}},
	}, nil
}

// BuildRun fills the run fragment for rec.
func BuildRun(rec *sraqs.Record, suffix string) (*Run, error) {
	f := &filler{rec: rec, document: KindRun}
	sample := f.get(sraqs.FieldSampleName)
	sum1 := f.get(sraqs.FieldFile1Checksum)
	name1 := f.get(sraqs.FieldFile1Name)
	sum2 := f.get(sraqs.FieldFile2Checksum)
	name2 := f.get(sraqs.FieldFile2Name)
	if err := f.err(); err != nil {
		return nil, err
	}

	return &Run{
		Alias:         sample + suffix,
		ExperimentRef: ExperimentRef{RefName: sample},
		DataBlock: DataBlock{Files: []File{
			{ChecksumMethod: "MD5", FileType: "fastq", Checksum: sum1, Filename: name1},
			{ChecksumMethod: "MD5", FileType: "fastq", Checksum: sum2, Filename: name2},
		}},
	}, nil
}

// NewRunSet starts a run set with the given runs.
func NewRunSet(runs ...Run) *RunSet {
	return &RunSet{Runs: append([]Run(nil), runs...)}
}

// Append adds a run.
func (rs *RunSet) Append(run Run) {
	rs.Runs = append(rs.Runs, run)
}

// ReferenceExperiment points every run at an existing experiment accession.
func (rs *RunSet) ReferenceExperiment(accession string) {
	for i := range rs.Runs {
		rs.Runs[i].ExperimentRef.Accession = accession
	}
}

// BuildSubmission fills the submission document for rec. withExperiment
// controls whether the experiment document is added alongside the run.
func BuildSubmission(rec *sraqs.Record, suffix string, withExperiment bool) (*Submission, error) {
	f := &filler{rec: rec, document: KindSubmission}
	sample := f.get(sraqs.FieldSampleName)
	email := f.get(sraqs.FieldSubmitterEmail)
	name := f.get(sraqs.FieldSubmitterName)
	hold := f.get(sraqs.FieldHoldDate)
	if err := f.err(); err != nil {
		return nil, err
	}

	var actions []Action
	if withExperiment {
		actions = append(actions, Action{Add: &Add{Schema: KindExperiment, Source: FileName(sample, suffix, KindExperiment)}})
	}
	actions = append(actions,
		Action{Add: &Add{Schema: KindRun, Source: FileName(sample, suffix, KindRun)}},
		Action{Hold: &Hold{HoldUntilDate: hold + "Z"}},
	)

	return &Submission{
		Alias:   sample + suffix,
		Comment: submissionComment,
		Contacts: []Contact{{
			InformOnError:  "mailto:" + email,
			InformOnStatus: email,
			Name:           name,
		}},
		Actions: actions,
	}, nil
}

// Render serializes a document with an XML declaration and a trailing newline.
func Render(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
