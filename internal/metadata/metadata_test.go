package metadata

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/filesystem"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

const sampleSheet = "[Header]\r\n" +
	"IEMFileVersion,4\r\n" +
	"Investigator Name,Jane\r\n" +
	"\r\n" +
	"[Reads]\r\n" +
	"251\r\n" +
	"251\r\n" +
	"\r\n" +
	"[Data]\r\n" +
	"Sample_ID,Sample_Name,Sample_Plate,I7_Index_ID,Sample_Project,Description\r\n" +
	"SAMN00000001,CFSAN_001,,N701,PRJNA000001,\r\n" +
	"2,SAMN00000002,,N702,PRJNA000001,\r\n" +
	"\r\n" +
	"3,no-biosample,,N703,,\r\n"

func TestParseRTAVersion(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			name: "nested under setup",
			xml:  `<?xml version="1.0"?><RunParameters><Setup><RTAVersion>1.18.54</RTAVersion></Setup></RunParameters>`,
			want: "1.18.54",
		},
		{
			name: "root level",
			xml:  `<RunParameters><RTAVersion> 2.4.6 </RTAVersion></RunParameters>`,
			want: "2.4.6",
		},
		{
			name: "first wins",
			xml:  `<RunParameters><A><RTAVersion>1</RTAVersion></A><RTAVersion>2</RTAVersion></RunParameters>`,
			want: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRTAVersion([]byte(tt.xml), "RunParameters.xml")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRTAVersion_Missing(t *testing.T) {
	for _, doc := range []string{
		`<RunParameters><Setup/></RunParameters>`,
		`<RunParameters><RTAVersion>  </RTAVersion></RunParameters>`,
	} {
		_, err := ParseRTAVersion([]byte(doc), "RunParameters.xml")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoVersion))

		var me *MetadataError
		require.True(t, errors.As(err, &me))
		assert.NotEmpty(t, me.Hint)
	}
}

func TestParseRTAVersion_Malformed(t *testing.T) {
	_, err := ParseRTAVersion([]byte(`<RunParameters><RTAVersion>1.18`), "rp.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rp.xml")
}

func TestParseSampleSheet(t *testing.T) {
	rows, err := ParseSampleSheet([]byte(sampleSheet), "SampleSheet.csv")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, 11, rows[0].Line)
	assert.Equal(t, "SAMN00000001", rows[0].Get(ColumnSampleID))
	assert.Equal(t, "CFSAN_001", rows[0].Get(ColumnSampleName))
	assert.Equal(t, "PRJNA000001", rows[0].Get(ColumnSampleProject))

	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, "SAMN00000002", rows[1].Get(ColumnSampleName))

	assert.Equal(t, 3, rows[2].Index, "blank lines are not samples")
	assert.Equal(t, 14, rows[2].Line)
	assert.Equal(t, "", rows[2].Get(ColumnSampleProject))
	assert.Equal(t, "", rows[2].Get("Missing_Column"))
}

func TestParseSampleSheet_LineEndings(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"carriage return only", strings.ReplaceAll(sampleSheet, "\r\n", "\r")},
		{"newline only", strings.ReplaceAll(sampleSheet, "\r\n", "\n")},
		{"utf-8 bom", "\xef\xbb\xbf" + sampleSheet},
		{"excel padding", sampleSheet + ",,,,,\r\n , ,,,,\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseSampleSheet([]byte(tt.data), "SampleSheet.csv")
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, "CFSAN_001", rows[0].Get(ColumnSampleName))
			assert.Equal(t, 11, rows[0].Line)
			assert.Equal(t, 3, rows[2].Index)
			assert.Equal(t, 14, rows[2].Line)
		})
	}
}

func TestParseSampleSheet_NoData(t *testing.T) {
	_, err := ParseSampleSheet([]byte("[Header]\nx,y\n"), "SampleSheet.csv")
	assert.True(t, errors.Is(err, ErrNoDataSection))
}

func TestParseSampleSheet_HeaderOnly(t *testing.T) {
	rows, err := ParseSampleSheet([]byte("[Data]\nSample_ID,Sample_Name\n"), "SampleSheet.csv")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRun(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/run")
	mfs.AddFile("RunParameters.xml", `<RunParameters><RTAVersion>1.18.54</RTAVersion></RunParameters>`)
	mfs.AddFile("SampleSheet.csv", sampleSheet)

	run, err := ReadRun(mfs, "/run")
	require.NoError(t, err)
	assert.Equal(t, "/run", run.Dir)
	assert.Equal(t, "1.18.54", run.Version)
	assert.Len(t, run.Samples, 3)
}

func TestReadRun_MissingFiles(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/run")
	_, err := ReadRun(mfs, "/run")
	assert.True(t, errors.Is(err, sraqs.ErrInputNotFound))

	mfs.AddFile("RunParameters.xml", `<RunParameters><RTAVersion>1</RTAVersion></RunParameters>`)
	_, err = ReadRun(mfs, "/run")
	assert.True(t, errors.Is(err, sraqs.ErrInputNotFound))
}
