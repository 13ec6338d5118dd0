package metadata

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// SampleSheetFile is the instrument's sample sheet.
const SampleSheetFile = "SampleSheet.csv"

// Sample sheet columns read by the instrument source.
const (
	ColumnSampleID      = "Sample_ID"
	ColumnSampleName    = "Sample_Name"
	ColumnSampleProject = "Sample_Project"
)

// SampleRow is one data row of a sample sheet.
type SampleRow struct {
	// Index is the 1-based data row position.
	Index int

	// Line is the 1-based line in the file.
	Line int

	// Values maps header names to trimmed cell values.
	Values map[string]string
}

// Get returns a cell value, or "" when the column is absent.
func (r SampleRow) Get(column string) string {
	return r.Values[column]
}

// ParseSampleSheet extracts the [Data] section of a sample sheet. Any line
// ending convention is accepted; rows with only empty cells are skipped.
func ParseSampleSheet(data []byte, filePath string) ([]SampleRow, error) {
	text, err := DecodeText(data)
	if err != nil {
		return nil, &MetadataError{FilePath: filePath, Message: fmt.Sprintf("decode: %v", err), Err: err}
	}

	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	line := 0
	found := false
	for sc.Scan() {
		line++
		if strings.Contains(sc.Text(), "[Data]") {
			found = true
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &MetadataError{FilePath: filePath, Message: err.Error(), Err: err}
	}
	if !found {
		return nil, &MetadataError{
			FilePath: filePath,
			Message:  "no [Data] section",
			Hint:     "The sample sheet must list samples below a [Data] line.",
			Err:      ErrNoDataSection,
		}
	}

	var rest bytes.Buffer
	for sc.Scan() {
		rest.Write(sc.Bytes())
		rest.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, &MetadataError{FilePath: filePath, Message: err.Error(), Err: err}
	}

	r := csv.NewReader(&rest)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &MetadataError{FilePath: filePath, Line: line + 1, Message: err.Error(), Err: err}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []SampleRow
	for {
		cells, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MetadataError{FilePath: filePath, Message: fmt.Sprintf("malformed data row: %v", err), Err: err}
		}
		if BlankRow(cells) {
			continue
		}
		fileLine, _ := r.FieldPos(0)

		row := SampleRow{
			Index:  len(rows) + 1,
			Line:   line + fileLine,
			Values: make(map[string]string, len(header)),
		}
		for i, name := range header {
			if name == "" || i >= len(cells) {
				continue
			}
			row.Values[name] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
