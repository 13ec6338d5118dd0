// Package progress draws byte-proportional progress while read files are
// hashed. It is observational only; nothing it does affects a digest.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter hands out one observer per hashed file.
type Reporter struct {
	out  io.Writer
	mode Mode
}

// New creates a Reporter drawing to out in the given mode.
func New(out io.Writer, mode Mode) *Reporter {
	if out == nil {
		out = io.Discard
	}
	return &Reporter{out: out, mode: mode}
}

// Auto creates a Reporter on stderr with the detected mode.
func Auto() *Reporter {
	return New(os.Stderr, DetectMode())
}

// Enabled reports whether bars are drawn.
func (r *Reporter) Enabled() bool {
	return r.mode == ModeBar
}

// Start begins observing a file of size bytes. Its signature matches
// checksum.ProgressFunc.
func (r *Reporter) Start(label string, size int64) io.WriteCloser {
	if !r.Enabled() {
		return nopObserver{}
	}
	if size <= 0 {
		size = -1
	}
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription("md5 "+label),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &barObserver{bar: bar}
}

type barObserver struct {
	bar *progressbar.ProgressBar
}

func (b *barObserver) Write(p []byte) (int, error) {
	return b.bar.Write(p)
}

func (b *barObserver) Close() error {
	return b.bar.Finish()
}

type nopObserver struct{}

func (nopObserver) Write(p []byte) (int, error) { return len(p), nil }
func (nopObserver) Close() error                { return nil }
