package lookup

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

const (
	// DefaultBaseURL is the public NCBI E-utilities endpoint.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

	esearchEndpoint = "esearch.fcgi"
	efetchEndpoint  = "efetch.fcgi"

	maxResponseBytes = 32 << 20
)

var _ sraqs.AccessionLookup = (*EutilsClient)(nil)

// HTTPDoer is the part of *http.Client the E-utilities client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-200 answer from an E-utilities endpoint.
type StatusError struct {
	Endpoint string
	Code     int
	Status   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %s", e.Endpoint, e.Status)
}

func (e *StatusError) StatusCode() int { return e.Code }

func (e *StatusError) Unwrap() error { return sraqs.ErrLookupUnavailable }

// EutilsOptions identifies the caller to NCBI and selects the platform a
// prior experiment must match.
type EutilsOptions struct {
	BaseURL         string
	APIKey          string
	Tool            string
	Email           string
	InstrumentModel string
}

// EutilsClient finds prior experiments with esearch (db=sra, field BSPL)
// followed by efetch of every hit.
type EutilsClient struct {
	baseURL string
	apiKey  string
	tool    string
	email   string
	model   string
	client  HTTPDoer
}

// NewEutilsClient panics if client is nil. Empty options fall back to
// DefaultBaseURL and sraqs.DefaultInstrumentModel.
func NewEutilsClient(opts EutilsOptions, client HTTPDoer) *EutilsClient {
	if client == nil {
		panic("http client cannot be nil")
	}
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	model := strings.TrimSpace(opts.InstrumentModel)
	if model == "" {
		model = sraqs.DefaultInstrumentModel
	}
	return &EutilsClient{
		baseURL: base,
		apiKey:  strings.TrimSpace(opts.APIKey),
		tool:    strings.TrimSpace(opts.Tool),
		email:   strings.TrimSpace(opts.Email),
		model:   model,
		client:  client,
	}
}

// LookupExperiment returns the accession of the first experiment registered
// for biosample whose instrument model contains the configured model.
func (c *EutilsClient) LookupExperiment(ctx context.Context, biosample string) (string, bool, error) {
	acc, err := ValidateBioSample(biosample)
	if err != nil {
		return "", false, err
	}

	ids, err := c.search(ctx, acc)
	if err != nil {
		return "", false, err
	}

	for _, id := range ids {
		experiment, err := c.fetch(ctx, id)
		if err != nil {
			return "", false, err
		}
		if experiment != "" {
			return experiment, true, nil
		}
	}
	return "", false, nil
}

type searchResult struct {
	IDs []string `xml:"IdList>Id"`
}

func (c *EutilsClient) search(ctx context.Context, acc string) ([]string, error) {
	body, err := c.post(ctx, esearchEndpoint, url.Values{
		"db":    {"sra"},
		"term":  {acc},
		"field": {"BSPL"},
	})
	if err != nil {
		return nil, err
	}

	var result searchResult
	if err := xml.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decode %s answer: %w", sraqs.ErrLookupUnavailable, esearchEndpoint, err)
	}

	ids := result.IDs[:0]
	for _, id := range result.IDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// fetchedExperiment captures the instrument model wherever the platform
// element nests it (ILLUMINA, OXFORD_NANOPORE, ...).
type fetchedExperiment struct {
	Accession string `xml:"accession,attr"`
	Platform  struct {
		Vendors []struct {
			Model string `xml:"INSTRUMENT_MODEL"`
		} `xml:",any"`
	} `xml:"PLATFORM"`
}

func (e *fetchedExperiment) model() string {
	for _, v := range e.Platform.Vendors {
		if m := strings.TrimSpace(v.Model); m != "" {
			return m
		}
	}
	return ""
}

// fetch returns the first matching experiment accession in the efetch
// answer for id, or "" when none matches.
func (c *EutilsClient) fetch(ctx context.Context, id string) (string, error) {
	body, err := c.post(ctx, efetchEndpoint, url.Values{
		"db": {"sra"},
		"id": {id},
	})
	if err != nil {
		return "", err
	}

	decoder := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: decode %s answer for %s: %w", sraqs.ErrLookupUnavailable, efetchEndpoint, id, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "EXPERIMENT" {
			continue
		}

		var exp fetchedExperiment
		if err := decoder.DecodeElement(&exp, &start); err != nil {
			return "", fmt.Errorf("%w: decode %s answer for %s: %w", sraqs.ErrLookupUnavailable, efetchEndpoint, id, err)
		}
		if exp.Accession != "" && strings.Contains(exp.model(), c.model) {
			return exp.Accession, nil
		}
	}
}

func (c *EutilsClient) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	if c.apiKey != "" {
		form.Set("api_key", c.apiKey)
	}
	if c.tool != "" {
		form.Set("tool", c.tool)
	}
	if c.email != "" {
		form.Set("email", c.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", sraqs.ErrLookupUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s answer: %w", sraqs.ErrLookupUnavailable, endpoint, err)
	}
	return body, nil
}
