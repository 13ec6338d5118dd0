package records

import (
	"strings"
	"unicode"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// aliases maps folded header spellings to canonical field names.
var aliases = map[string]string{
	"samplename":          sraqs.FieldSampleName,
	"organism":            sraqs.FieldOrganism,
	"strain":              sraqs.FieldStrain,
	"biosampleaccession":  sraqs.FieldBioSample,
	"biosample":           sraqs.FieldBioSample,
	"biosampleid":         sraqs.FieldBioSample,
	"librarylength":       sraqs.FieldLibraryLength,
	"file1name":           sraqs.FieldFile1Name,
	"file1checksum":       sraqs.FieldFile1Checksum,
	"file2name":           sraqs.FieldFile2Name,
	"file2checksum":       sraqs.FieldFile2Checksum,
	"version":             sraqs.FieldVersion,
	"rtaversion":          sraqs.FieldVersion,
	"project":             sraqs.FieldProject,
	"bioproject":          sraqs.FieldProject,
	"bioprojectaccession": sraqs.FieldProject,
	"name":                sraqs.FieldSubmitterName,
	"email":               sraqs.FieldSubmitterEmail,
	"holddate":            sraqs.FieldHoldDate,
}

// fold lowercases s and drops spaces, underscores and dashes.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Canonical returns the canonical field name for a header, or the trimmed
// header itself when it is not a known field.
func Canonical(header string) string {
	header = strings.TrimSpace(header)
	if c, ok := aliases[fold(header)]; ok {
		return c
	}
	return header
}
