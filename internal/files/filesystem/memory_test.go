package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_OpenStreams(t *testing.T) {
	mfs := NewMemoryFileSystem("/run")
	mfs.AddFile("Data/Intensities/BaseCalls/S1_S1_L001_R1_001.fastq.gz", "reads")

	rc, err := mfs.Open("/run/Data/Intensities/BaseCalls/S1_S1_L001_R1_001.fastq.gz")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "reads", string(data))
}

func TestMemoryFileSystem_ReadFileRelative(t *testing.T) {
	mfs := NewMemoryFileSystem("/run")
	mfs.AddFile("SampleSheet.csv", "[Data]\n")

	content, err := mfs.ReadFile("SampleSheet.csv")
	require.NoError(t, err)
	assert.Equal(t, "[Data]\n", string(content))
}

func TestMemoryFileSystem_NotExist(t *testing.T) {
	mfs := NewMemoryFileSystem("/run")

	_, err := mfs.Open("missing.fastq.gz")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = mfs.ReadFile("missing.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = mfs.Stat("missing")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	mfs := NewMemoryFileSystem("/run")
	mfs.AddFile("Data/Intensities/BaseCalls/b_R1_001.fastq.gz", "b")
	mfs.AddFile("Data/Intensities/BaseCalls/a_R1_001.fastq.gz", "a")
	mfs.AddFile("Data/Intensities/BaseCalls/Alignment/x.txt", "x")

	entries, err := mfs.ReadDir("Data/Intensities/BaseCalls")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"Alignment", "a_R1_001.fastq.gz", "b_R1_001.fastq.gz"}, names)
	assert.True(t, entries[0].IsDir())
}

func TestMemoryFileSystem_DirectoryErrors(t *testing.T) {
	mfs := NewMemoryFileSystem("/run")
	mfs.AddDir("Data")
	mfs.AddFile("RunParameters.xml", "<x/>")

	_, err := mfs.Open("Data")
	assert.Error(t, err)

	_, err = mfs.ReadDir("RunParameters.xml")
	assert.Error(t, err)

	info, err := mfs.Stat("/run")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
