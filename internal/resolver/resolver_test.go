package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/sradoc"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

func record(sample, biosample, checksum string) *sraqs.Record {
	rec := sraqs.NewRecord("table.txt", 2)
	for k, v := range map[string]string{
		sraqs.FieldSampleName:     sample,
		sraqs.FieldBioSample:      biosample,
		sraqs.FieldOrganism:       "E. coli",
		sraqs.FieldFile1Checksum:  checksum + "1",
		sraqs.FieldFile1Name:      "a.fastq.gz",
		sraqs.FieldFile2Checksum:  checksum + "2",
		sraqs.FieldFile2Name:      "b.fastq.gz",
		sraqs.FieldProject:        "PRJNA000001",
		sraqs.FieldLibraryLength:  "500",
		sraqs.FieldVersion:        "1.17",
		sraqs.FieldSubmitterName:  "Jane Doe",
		sraqs.FieldSubmitterEmail: "jane@example.org",
		sraqs.FieldHoldDate:       "2026-12-01",
	} {
		rec.Set(k, v)
	}
	return rec
}

func TestMergePolicy(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		enabled bool
		applies map[string]bool
	}{
		{"empty", nil, false, map[string]bool{"X": false}},
		{"all", []string{"all"}, true, map[string]bool{"X": true, "Y": true}},
		{"names", []string{"X Z", "W,V"}, true, map[string]bool{"X": true, "Z": true, "W": true, "V": true, "Y": false}},
		{"all is a token, not a substring", []string{"overall"}, true, map[string]bool{"overall": true, "X": false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewMergePolicy(tt.entries)
			assert.Equal(t, tt.enabled, p.Enabled())
			for sample, want := range tt.applies {
				assert.Equal(t, want, p.Applies(sample), sample)
			}
		})
	}
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, "", Suffix(1))
	assert.Equal(t, ".02", Suffix(2))
	assert.Equal(t, ".03", Suffix(3))
	assert.Equal(t, ".10", Suffix(10))
	assert.Equal(t, ".100", Suffix(100))
}

func TestResolve_SuffixSequence(t *testing.T) {
	c := NewContext(NewMergePolicy(nil), nil, sradoc.SpotLengths(0))

	for n := 1; n <= 4; n++ {
		plan, err := c.Resolve(context.Background(), record("X", "SAMN00000001", fmt.Sprint(n)))
		require.NoError(t, err)
		assert.Equal(t, Suffix(n), plan.Suffix)
		assert.Equal(t, "X"+Suffix(n), plan.Base())
		assert.False(t, plan.Merged)
		require.NotNil(t, plan.Experiment)
		assert.Equal(t, "X"+Suffix(n), plan.Experiment.Alias)
		require.Len(t, plan.RunSet.Runs, 1)
		assert.Equal(t, "X"+Suffix(n), plan.RunSet.Runs[0].Alias)
		assert.Len(t, plan.Submission.Actions, 3)
	}

	plan, err := c.Resolve(context.Background(), record("Y", "SAMN00000002", "y"))
	require.NoError(t, err)
	assert.Equal(t, "", plan.Suffix, "other samples are unaffected")
	assert.Equal(t, 4, c.Occurrences("X"))
}

func TestResolve_FreshContextForgets(t *testing.T) {
	layout := sradoc.SpotLengths(0)
	first := NewContext(NewMergePolicy(nil), nil, layout)
	_, err := first.Resolve(context.Background(), record("X", "SAMN1", "a"))
	require.NoError(t, err)

	second := NewContext(NewMergePolicy(nil), nil, layout)
	plan, err := second.Resolve(context.Background(), record("X", "SAMN1", "a"))
	require.NoError(t, err)
	assert.Equal(t, "", plan.Suffix)
}

func TestResolve_MergeWithoutPriorExperiment(t *testing.T) {
	lookup := &fakeLookup{}
	c := NewContext(NewMergePolicy([]string{"all"}), lookup, sradoc.SpotLengths(0))

	var plans []*Plan
	for _, sum := range []string{"a", "b", "c"} {
		plan, err := c.Resolve(context.Background(), record("X", "SAMN00000001", sum))
		require.NoError(t, err)
		plans = append(plans, plan)
	}

	last := plans[2]
	assert.True(t, last.Merged)
	assert.Equal(t, "", last.Suffix)
	assert.Equal(t, "", last.PriorAccession)
	require.NotNil(t, last.Experiment)
	assert.Same(t, plans[0].Experiment, last.Experiment, "the first record's experiment is retained")
	require.Len(t, last.RunSet.Runs, 3)
	assert.Equal(t, "a1", last.RunSet.Runs[0].DataBlock.Files[0].Checksum)
	assert.Equal(t, "c1", last.RunSet.Runs[2].DataBlock.Files[0].Checksum)
	assert.Len(t, last.Submission.Actions, 3)
	assert.Equal(t, 3, c.Runs("X"))
	assert.Len(t, lookup.calls, 3)
}

func TestResolve_MergeKeepsFirstExperiment(t *testing.T) {
	c := NewContext(NewMergePolicy([]string{"X"}), &fakeLookup{}, sradoc.SpotLengths(0))

	first, err := c.Resolve(context.Background(), record("X", "SAMN00000001", "a"))
	require.NoError(t, err)

	later := record("X", "SAMN00000001", "b")
	later.Set(sraqs.FieldLibraryLength, "350")
	later.Set(sraqs.FieldVersion, "1.18.54")
	plan, err := c.Resolve(context.Background(), later)
	require.NoError(t, err)

	assert.Equal(t, "500", plan.Experiment.Design.LibraryDescriptor.Layout.Paired.NominalLength)
	assert.Equal(t, first.Experiment, plan.Experiment)
	assert.Len(t, plan.RunSet.Runs, 2)
}

func TestResolve_MergeWithPriorExperiment(t *testing.T) {
	lookup := &fakeLookup{accessions: map[string]string{"SAMN00000001": "SRX000123"}}
	c := NewContext(NewMergePolicy([]string{"X"}), lookup, sradoc.SpotLengths(0))

	_, err := c.Resolve(context.Background(), record("X", "SAMN00000001", "a"))
	require.NoError(t, err)
	plan, err := c.Resolve(context.Background(), record("X", "SAMN00000001", "b"))
	require.NoError(t, err)

	assert.Equal(t, "SRX000123", plan.PriorAccession)
	assert.Nil(t, plan.Experiment)
	require.Len(t, plan.RunSet.Runs, 2)
	for _, r := range plan.RunSet.Runs {
		assert.Equal(t, sradoc.ExperimentRef{RefName: "X", Accession: "SRX000123"}, r.ExperimentRef)
	}
	require.Len(t, plan.Submission.Actions, 2)
	assert.Equal(t, "run", plan.Submission.Actions[0].Add.Schema)
	assert.NotNil(t, plan.Submission.Actions[1].Hold)
}

func TestResolve_MergeOnlyNamedSamples(t *testing.T) {
	c := NewContext(NewMergePolicy([]string{"X"}), &fakeLookup{}, sradoc.SpotLengths(0))

	for i := 0; i < 2; i++ {
		plan, err := c.Resolve(context.Background(), record("Y", "SAMN2", "y"))
		require.NoError(t, err)
		assert.False(t, plan.Merged)
		assert.Equal(t, Suffix(i+1), plan.Suffix)
	}
}

func TestResolve_LookupFailureLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name     string
		lookup   *fakeLookup
		record   *sraqs.Record
		wantKind sraqs.ErrorKind
	}{
		{"malformed accession", &fakeLookup{}, record("X", "XYZ123", "a"), sraqs.KindInputValidation},
		{"service down", &fakeLookup{err: fmt.Errorf("%w: 503", sraqs.ErrLookupUnavailable)}, record("X", "SAMN1", "a"), sraqs.KindResourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContext(NewMergePolicy([]string{"all"}), tt.lookup, sradoc.SpotLengths(0))
			_, err := c.Resolve(context.Background(), tt.record)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, sraqs.KindOf(err))
			assert.Equal(t, 0, c.Runs("X"))
		})
	}
}

func TestResolve_FillErrorInMergeLeavesStateUntouched(t *testing.T) {
	c := NewContext(NewMergePolicy([]string{"all"}), &fakeLookup{}, sradoc.SpotLengths(0))
	rec := record("X", "SAMN1", "a")
	delete(rec.Fields, sraqs.FieldOrganism)

	_, err := c.Resolve(context.Background(), rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sraqs.ErrTemplateFill))
	assert.Equal(t, 0, c.Runs("X"))
}

func TestResolve_EmptySampleName(t *testing.T) {
	c := NewContext(NewMergePolicy(nil), nil, sradoc.SpotLengths(0))
	_, err := c.Resolve(context.Background(), record("", "SAMN1", "a"))
	assert.True(t, errors.Is(err, sraqs.ErrMissingField))
}

func TestResolve_ReadLengthFlowsIntoExperiment(t *testing.T) {
	c := NewContext(NewMergePolicy(nil), nil, sradoc.SpotLengths(150))
	plan, err := c.Resolve(context.Background(), record("X", "SAMN1", "a"))
	require.NoError(t, err)
	assert.Equal(t, 302, plan.Experiment.Design.SpotDescriptor.DecodeSpec.SpotLength)
	assert.Equal(t, 151, plan.Experiment.Design.SpotDescriptor.DecodeSpec.Reads[1].BaseCoord)
}
