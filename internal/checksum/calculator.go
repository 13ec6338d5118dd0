package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/pgzip"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// ErrCorruptGzip is returned when gzip verification is enabled and the
// stream does not decompress cleanly.
var ErrCorruptGzip = errors.New("corrupt gzip stream")

// Calculator computes the checksum of a stream.
type Calculator interface {
	// Sum reads r to EOF and returns the lowercase hex digest. size and label
	// only feed the progress observer.
	Sum(r io.Reader, size int64, label string) (string, error)
}

// GzipVerifier is a Calculator that can produce a variant which also checks
// that each stream decompresses cleanly.
type GzipVerifier interface {
	Calculator
	VerifyingGzip() Calculator
}

// ProgressFunc starts observing a stream of size bytes. Every byte hashed is
// written to the returned writer, which is closed when hashing ends.
type ProgressFunc func(label string, size int64) io.WriteCloser

// MD5 implements Calculator with crypto/md5.
type MD5 struct {
	verifyGzip bool
	progress   ProgressFunc
	blockSize  int
}

// Option configures an MD5 calculator.
type Option func(*MD5)

// WithGzipVerification decompresses the stream while hashing it.
func WithGzipVerification() Option {
	return func(m *MD5) { m.verifyGzip = true }
}

// WithProgress attaches a progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(m *MD5) { m.progress = fn }
}

// WithBlockSize overrides the read size. Non-positive values are ignored.
func WithBlockSize(n int) Option {
	return func(m *MD5) {
		if n > 0 {
			m.blockSize = n
		}
	}
}

// New creates an MD5 calculator.
func New(opts ...Option) *MD5 {
	m := &MD5{blockSize: sraqs.ChecksumBlockSize}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ GzipVerifier = (*MD5)(nil)

// VerifyingGzip returns a copy of m with gzip verification enabled.
func (m *MD5) VerifyingGzip() Calculator {
	c := *m
	c.verifyGzip = true
	return &c
}

// Sum implements Calculator.
func (m *MD5) Sum(r io.Reader, size int64, label string) (string, error) {
	hasher := md5.New()
	var sink io.Writer = hasher
	if m.progress != nil {
		obs := m.progress(label, size)
		defer obs.Close()
		sink = io.MultiWriter(hasher, obs)
	}

	buf := make([]byte, m.blockSize)
	src := io.TeeReader(r, sink)

	if m.verifyGzip {
		if err := drainGzip(src, m.blockSize); err != nil {
			return "", err
		}
	}

	// Whatever the decompressor did not consume still belongs to the digest.
	if _, err := io.CopyBuffer(io.Discard, src, buf); err != nil {
		return "", fmt.Errorf("read %s: %w", label, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func drainGzip(src io.Reader, blockSize int) error {
	zr, err := pgzip.NewReaderN(src, blockSize, 4)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptGzip, err)
	}
	_, copyErr := io.Copy(io.Discard, zr)
	closeErr := zr.Close()
	if copyErr != nil {
		return fmt.Errorf("%w: %v", ErrCorruptGzip, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", ErrCorruptGzip, closeErr)
	}
	return nil
}

// SumBytes is a convenience for small in-memory content.
func SumBytes(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}
