package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

// LockFileName is the advisory lock file created in the output directory.
const LockFileName = ".sraqs.lock"

// ArchiveSuffix ends every archive name.
const ArchiveSuffix = ".submission_archive.tar"

// Packager owns one output directory.
type Packager struct {
	dir    string
	logger sraqs.Logger
}

// NewPackager creates a packager for dir.
// Panics if logger is nil.
func NewPackager(dir string, logger sraqs.Logger) *Packager {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Packager{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (p *Packager) Dir() string { return p.dir }

// Prepare creates the output directory if it does not exist.
func (p *Packager) Prepare() error {
	if info, err := os.Stat(p.dir); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: output path %s is not a directory", sraqs.ErrInvalidConfig, p.dir)
		}
		return nil
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	p.logger.Info("Made %s.", p.dir)
	return nil
}

// Lock takes the output directory lock without waiting. The returned
// function releases it.
func (p *Packager) Lock() (func() error, error) {
	fl := flock.New(filepath.Join(p.dir, LockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock output directory: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s is in use by another sraqs process", sraqs.ErrOutputLocked, p.dir)
	}
	return fl.Unlock, nil
}

// WriteDocument writes data as name in the output directory and returns
// its path.
func (p *Packager) WriteDocument(name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	dst := filepath.Join(p.dir, name)
	err := writeAtomic(dst, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return dst, nil
}

// Bundle archives the named output files, in order, as archiveName. A
// missing member fails the archive and leaves no archive file behind.
func (p *Packager) Bundle(archiveName string, members []string) (string, error) {
	if err := checkName(archiveName); err != nil {
		return "", &sraqs.ArchiveError{Archive: archiveName, Err: err}
	}
	dst := filepath.Join(p.dir, archiveName)

	var infos []os.FileInfo
	for _, m := range members {
		if err := checkName(m); err != nil {
			return "", &sraqs.ArchiveError{Archive: archiveName, Member: m, Err: err}
		}
		info, err := os.Stat(filepath.Join(p.dir, m))
		if err != nil {
			return "", &sraqs.ArchiveError{Archive: archiveName, Member: m, Err: err}
		}
		if !info.Mode().IsRegular() {
			return "", &sraqs.ArchiveError{Archive: archiveName, Member: m, Err: errors.New("not a regular file")}
		}
		infos = append(infos, info)
	}

	err := writeAtomic(dst, func(w io.Writer) error {
		tw := tar.NewWriter(w)
		for i, m := range members {
			if err := addMember(tw, filepath.Join(p.dir, m), m, infos[i]); err != nil {
				return &sraqs.ArchiveError{Archive: archiveName, Member: m, Err: err}
			}
		}
		return tw.Close()
	})
	if err != nil {
		var ae *sraqs.ArchiveError
		if errors.As(err, &ae) {
			return "", err
		}
		return "", &sraqs.ArchiveError{Archive: archiveName, Err: err}
	}
	return dst, nil
}

// checkName accepts only plain file names inside the output directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsRune(name, '\\') {
		return fmt.Errorf("%q is not a plain file name", name)
	}
	return nil
}

func addMember(tw *tar.Writer, path, name string, info os.FileInfo) error {
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Format = tar.FormatGNU
	hdr.Uname, hdr.Gname = "", ""
	hdr.ModTime = info.ModTime().Truncate(time.Second)
	hdr.AccessTime, hdr.ChangeTime = time.Time{}, time.Time{}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	n, err := io.Copy(tw, f)
	if err != nil {
		return err
	}
	if n != hdr.Size {
		return fmt.Errorf("size changed while archiving: want %d bytes, copied %d", hdr.Size, n)
	}
	return nil
}

// writeAtomic writes through fill into a temporary file next to dst and
// renames it into place.
func writeAtomic(dst string, fill func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			os.Remove(tmpName)
		}
	}()

	if err := fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return err
	}
	tmpName = ""
	return nil
}
