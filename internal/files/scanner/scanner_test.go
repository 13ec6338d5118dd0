package scanner

import (
	"bytes"
	"compress/gzip"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/checksum"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/filesystem"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

func TestFileStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CFSAN_001", "CFSAN-001"},
		{"a_b_c", "a-b-c"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileStem(tt.in))
	}
}

func TestPairPaths(t *testing.T) {
	r1, r2 := PairPaths("/runs/150101_M0001", "CFSAN_001", 3)
	base := filepath.Join("/runs/150101_M0001", "Data", "Intensities", "BaseCalls")
	assert.Equal(t, filepath.Join(base, "CFSAN-001_S3_L001_R1_001.fastq.gz"), r1)
	assert.Equal(t, filepath.Join(base, "CFSAN-001_S3_L001_R2_001.fastq.gz"), r2)
}

func TestScanPair(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/run")
	r1, r2 := PairPaths("/run", "S_1", 1)
	mfs.AddFile(r1, "forward")
	mfs.AddFile(r2, "reverse")

	s := NewScannerWithFS(checksum.New(), mfs)
	pair, err := s.ScanPair("/run", "S_1", 1)
	require.NoError(t, err)

	assert.Equal(t, "S-1_S1_L001_R1_001.fastq.gz", pair[0].Name)
	assert.Equal(t, "S-1_S1_L001_R2_001.fastq.gz", pair[1].Name)
	assert.Equal(t, checksum.SumBytes([]byte("forward")), pair[0].Checksum)
	assert.Equal(t, checksum.SumBytes([]byte("reverse")), pair[1].Checksum)
	assert.Equal(t, int64(7), pair[1].Size)
}

func TestScanPair_MissingReverse(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/run")
	r1, _ := PairPaths("/run", "S1", 2)
	mfs.AddFile(r1, "forward")

	_, err := NewScannerWithFS(checksum.New(), mfs).ScanPair("/run", "S1", 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sraqs.ErrReadFileUnavailable))
	assert.Equal(t, sraqs.KindResourceUnavailable, sraqs.KindOf(err))
}

func TestHashFile_Directory(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/run")
	mfs.AddDir("reads")

	_, err := NewScannerWithFS(checksum.New(), mfs).HashFile("/run/reads")
	assert.True(t, errors.Is(err, sraqs.ErrReadFileUnavailable))
}

func TestHashFile_CorruptGzip(t *testing.T) {
	var good bytes.Buffer
	zw := gzip.NewWriter(&good)
	_, _ = zw.Write(bytes.Repeat([]byte("ACGT"), 1000))
	require.NoError(t, zw.Close())

	mfs := filesystem.NewMemoryFileSystem("/run")
	mfs.AddBytes("good.fastq.gz", good.Bytes())
	mfs.AddBytes("bad.fastq.gz", good.Bytes()[:good.Len()/2])

	s := NewScannerWithFS(checksum.New(checksum.WithGzipVerification()), mfs)

	_, err := s.HashFile("/run/good.fastq.gz")
	require.NoError(t, err)

	_, err = s.HashFile("/run/bad.fastq.gz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sraqs.ErrReadFileUnavailable))
}

func TestNewScanner_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewScanner(nil) })
	assert.Panics(t, func() { NewScannerWithFS(checksum.New(), nil) })
}
