package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeLookup answers from a fixed table and counts calls. errs are returned
// in order before the table is consulted.
type fakeLookup struct {
	mu      sync.Mutex
	answers map[string]string
	errs    []error
	calls   int
}

func (f *fakeLookup) LookupExperiment(_ context.Context, biosample string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return "", false, err
	}
	acc, ok := f.answers[biosample]
	return acc, ok, nil
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingLogger struct {
	mu      sync.Mutex
	verbose []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Error(string, ...interface{}) {}

const searchTwoHits = `<?xml version="1.0" encoding="UTF-8" ?>
<!DOCTYPE eSearchResult PUBLIC "-//NLM//DTD esearch 20060628//EN" "https://eutils.ncbi.nlm.nih.gov/eutils/dtd/20060628/esearch.dtd">
<eSearchResult><Count>2</Count><RetMax>2</RetMax><RetStart>0</RetStart><IdList>
<Id>111</Id>
<Id>222</Id>
</IdList></eSearchResult>
`

const searchNoHits = `<?xml version="1.0" encoding="UTF-8" ?>
<eSearchResult><Count>0</Count><RetMax>0</RetMax><RetStart>0</RetStart><IdList/></eSearchResult>
`

func fetchPackage(experiment, model string) string {
	return `<?xml version="1.0" encoding="UTF-8" ?>
<EXPERIMENT_PACKAGE_SET>
  <EXPERIMENT_PACKAGE>
    <EXPERIMENT accession="` + experiment + `" alias="X">
      <TITLE>Whole genome shotgun sequencing</TITLE>
      <PLATFORM><ILLUMINA><INSTRUMENT_MODEL>` + model + `</INSTRUMENT_MODEL></ILLUMINA></PLATFORM>
    </EXPERIMENT>
    <RUN_SET><RUN accession="SRR1"><EXPERIMENT_REF accession="` + experiment + `"/></RUN></RUN_SET>
  </EXPERIMENT_PACKAGE>
</EXPERIMENT_PACKAGE_SET>
`
}

// eutilsServer serves esearch with search and efetch from fetches keyed by id.
// Every request must carry db=sra.
func eutilsServer(t *testing.T, search string, fetches map[string]string) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.Equal(t, http.MethodPost, r.Method) || !assert.NoError(t, r.ParseForm()) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "sra", r.PostForm.Get("db"))

		mu.Lock()
		requests = append(requests, r.URL.Path+"?"+r.PostForm.Encode())
		mu.Unlock()

		switch r.URL.Path {
		case "/esearch.fcgi":
			_, _ = w.Write([]byte(search))
		case "/efetch.fcgi":
			body, ok := fetches[r.PostForm.Get("id")]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(body))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), requests...)
	}
}
