package lookup

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

var bioSamplePattern = regexp.MustCompile(`^` + sraqs.BioSampleMarker + `\d+$`)

// ValidateBioSample returns the trimmed accession, or an error wrapping
// sraqs.ErrInvalidAccession when it is not shaped like SAMN<digits>.
func ValidateBioSample(biosample string) (string, error) {
	acc := strings.TrimSpace(biosample)
	if !bioSamplePattern.MatchString(acc) {
		return "", fmt.Errorf("%w: %q is not a valid NCBI BioSample ID", sraqs.ErrInvalidAccession, acc)
	}
	return acc, nil
}

var _ sraqs.AccessionLookup = Disabled{}

// Disabled never finds a prior experiment.
type Disabled struct{}

func (Disabled) LookupExperiment(context.Context, string) (string, bool, error) {
	return "", false, nil
}
