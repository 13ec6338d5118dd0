package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `submitter:
  name: Jane Doe
  email: jane@example.org
hold_date: 2026-12-01
library_length: 450
read_length: 150
delimiter: ","
merge: [all]
fields:
  strain: LT2
instrument_model: Illumina MiSeq
lookup:
  enabled: false
  base_url: http://localhost:9999/
  api_key: secret
  tool: sraqs
  email: ops@example.org
  timeout: 5s
  retries: 1
  cache_size: 16
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Jane Doe", cfg.Submitter.Name)
	assert.Equal(t, "jane@example.org", cfg.Submitter.Email)
	assert.Equal(t, "2026-12-01", cfg.HoldDate)
	assert.Equal(t, 450, cfg.LibraryLength)
	assert.Equal(t, 150, cfg.ReadLength)
	assert.Equal(t, []string{"all"}, cfg.Merge)
	assert.Equal(t, "LT2", cfg.Fields["strain"])
	require.NotNil(t, cfg.Lookup.Enabled)
	assert.False(t, *cfg.Lookup.Enabled)
	require.NotNil(t, cfg.Lookup.Retries)
	assert.Equal(t, 1, *cfg.Lookup.Retries)
	assert.Equal(t, 16, cfg.Lookup.CacheSize)

	d, err := cfg.LookupTimeout(time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	r, err := cfg.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, ',', r)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(""), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Nil(t, cfg.Lookup.Enabled)

	d, err := cfg.LookupTimeout(42 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 42*time.Second, d)
}

func TestLookupTimeout_Invalid(t *testing.T) {
	cfg := &ProjectConfig{Lookup: LookupConfig{Timeout: "soon"}}
	_, err := cfg.LookupTimeout(time.Second)
	assert.Error(t, err)
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{`\t`, '\t', false},
		{"tab", '\t', false},
		{"\t", '\t', false},
		{",", ',', false},
		{"comma", ',', false},
		{";", ';', false},
		{"::", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDelimiter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
