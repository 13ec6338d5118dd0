package params

import (
	"fmt"
	"strings"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
// Keys and values are trimmed; later pairs win.
//
// Example:
//
//	fields, err := ParseKeyValuePairs([]string{"strain=LT2", "library_length=450"})
//	// Returns: map[string]string{"strain": "LT2", "library_length": "450"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("field %q is not in key=value format (example: --field strain=LT2)", pair)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("field has empty key: %q", pair)
		}

		result[key] = strings.TrimSpace(value)
	}

	return result, nil
}

// Apply fills absent record fields from defaults, then replaces fields with
// overrides. Keys are passed through canon before use so that aliases such
// as "biosample" land on the canonical field name.
func Apply(rec *sraqs.Record, defaults, overrides map[string]string, canon func(string) string) {
	if canon == nil {
		canon = func(s string) string { return s }
	}
	for k, v := range defaults {
		rec.SetDefault(canon(k), v)
	}
	for k, v := range overrides {
		rec.Set(canon(k), v)
	}
}
