package scanner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/checksum"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/filesystem"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// BaseCallsDir is where MiSeq Reporter writes FASTQ output, relative to the run directory.
var BaseCallsDir = filepath.Join("Data", "Intensities", "BaseCalls")

// ReadFile describes one hashed read file.
type ReadFile struct {
	Path     string
	Name     string
	Size     int64
	Checksum string
}

// Scanner discovers and hashes read files.
// Scanner is safe for concurrent use as long as the provided calculator and
// fsProvider are also safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// FileStem converts a sample sheet name into the stem MiSeq Reporter uses
// for its FASTQ files.
func FileStem(sampleName string) string {
	return strings.ReplaceAll(sampleName, "_", "-")
}

// PairPaths returns the forward and reverse read paths for a sample.
func PairPaths(runDir, sampleName string, index int) (string, string) {
	dir := filepath.Join(runDir, BaseCallsDir)
	stem := FileStem(sampleName)
	r1 := filepath.Join(dir, fmt.Sprintf("%s_S%d_L001_R1_001.fastq.gz", stem, index))
	r2 := filepath.Join(dir, fmt.Sprintf("%s_S%d_L001_R2_001.fastq.gz", stem, index))
	return r1, r2
}

// ScanPair locates and hashes both read files of a sample. Any failure is
// reported as sraqs.ErrReadFileUnavailable.
func (s *Scanner) ScanPair(runDir, sampleName string, index int) ([2]ReadFile, error) {
	var pair [2]ReadFile
	r1, r2 := PairPaths(runDir, sampleName, index)
	for i, p := range []string{r1, r2} {
		rf, err := s.HashFile(p)
		if err != nil {
			return pair, err
		}
		pair[i] = rf
	}
	return pair, nil
}

// HashFile streams one file through the calculator.
func (s *Scanner) HashFile(p string) (ReadFile, error) {
	info, err := s.fsProvider.Stat(p)
	if err != nil {
		return ReadFile{}, fmt.Errorf("%w: %s: %v", sraqs.ErrReadFileUnavailable, p, err)
	}
	if info.IsDir() {
		return ReadFile{}, fmt.Errorf("%w: %s is a directory", sraqs.ErrReadFileUnavailable, p)
	}

	rc, err := s.fsProvider.Open(p)
	if err != nil {
		return ReadFile{}, fmt.Errorf("%w: %s: %v", sraqs.ErrReadFileUnavailable, p, err)
	}
	defer rc.Close()

	name := path.Base(filepath.ToSlash(p))
	sum, err := s.calculator.Sum(rc, info.Size(), name)
	if err != nil {
		return ReadFile{}, fmt.Errorf("%w: %s: %w", sraqs.ErrReadFileUnavailable, p, err)
	}

	return ReadFile{
		Path:     p,
		Name:     name,
		Size:     info.Size(),
		Checksum: sum,
	}, nil
}
