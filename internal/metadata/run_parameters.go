package metadata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// RunParametersFile is the instrument's run parameter document.
const RunParametersFile = "RunParameters.xml"

// ParseRTAVersion returns the text of the first RTAVersion element in data.
func ParseRTAVersion(data []byte, filePath string) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", wrapXMLError(err, filePath)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "RTAVersion" {
			continue
		}

		var version string
		if err := dec.DecodeElement(&version, &start); err != nil {
			return "", wrapXMLError(err, filePath)
		}
		version = strings.TrimSpace(version)
		if version == "" {
			break
		}
		return version, nil
	}

	return "", &MetadataError{
		FilePath: filePath,
		Message:  "RTAVersion element is missing or empty",
		Hint:     "Point sraqs at the top-level MiSeq run folder, the one holding RunParameters.xml.",
		Err:      ErrNoVersion,
	}
}
