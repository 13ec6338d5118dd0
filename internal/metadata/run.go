package metadata

import (
	"fmt"
	"path/filepath"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/files/filesystem"
	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// Run is the parsed metadata of one MiSeq run directory.
type Run struct {
	Dir     string
	Version string
	Samples []SampleRow
}

// ReadRun parses RunParameters.xml and SampleSheet.csv in dir. Either file
// missing or unusable means no sample in the run can be submitted.
func ReadRun(fsys filesystem.FileSystemProvider, dir string) (*Run, error) {
	paramsPath := filepath.Join(dir, RunParametersFile)
	data, err := fsys.ReadFile(paramsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sraqs.ErrInputNotFound, err)
	}
	version, err := ParseRTAVersion(data, paramsPath)
	if err != nil {
		return nil, err
	}

	sheetPath := filepath.Join(dir, SampleSheetFile)
	data, err = fsys.ReadFile(sheetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sraqs.ErrInputNotFound, err)
	}
	rows, err := ParseSampleSheet(data, sheetPath)
	if err != nil {
		return nil, err
	}

	return &Run{Dir: dir, Version: version, Samples: rows}, nil
}
