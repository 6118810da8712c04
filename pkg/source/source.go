// Package source opens IONEX/ANTEX input files, transparently
// decompressing routinely-compressed IGS products before handing the
// stream to a header reader.
package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver/v3"
	"github.com/pkg/errors"
)

// ErrUnsupportedCompression is returned for a recognized-but-unhandled
// compression suffix, e.g. the classic Unix ".Z" (LZW) format that
// archiver/v3 does not implement.
var ErrUnsupportedCompression = errors.New("source: unsupported compression suffix")

// ReadSeekCloser is what the IONEX/ANTEX decoders need from an opened
// file: seekable for Reset, closable once the caller is done.
type ReadSeekCloser interface {
	io.ReadSeeker
	io.Closer
}

// Open opens path for reading. A .gz or .bz2 suffix is transparently
// decompressed into a temporary file first. An uncompressed path is
// opened directly. A .Z (Unix compress) suffix is rejected with
// ErrUnsupportedCompression rather than silently mishandled.
func Open(path string) (ReadSeekCloser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gz", ".bz2":
		return decompressToTemp(path, ext)
	case ".z":
		return nil, errors.Wrapf(ErrUnsupportedCompression, "%s", path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", path)
		}
		return f, nil
	}
}

func decompressToTemp(path, ext string) (ReadSeekCloser, error) {
	tmp, err := os.CreateTemp("", "ionexgo-*"+strings.TrimSuffix(filepath.Base(path), ext))
	if err != nil {
		return nil, errors.Wrapf(err, "create temp file for decompressing %s", path)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := archiver.DecompressFile(path, tmpPath); err != nil {
		os.Remove(tmpPath)
		return nil, errors.Wrapf(err, "decompress %s", path)
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, errors.Wrapf(err, "open decompressed temp file for %s", path)
	}
	return &tempFile{File: f, tmpPath: tmpPath}, nil
}

// tempFile removes its backing temporary file on Close.
type tempFile struct {
	*os.File
	tmpPath string
}

func (t *tempFile) Close() error {
	err := t.File.Close()
	if rmErr := os.Remove(t.tmpPath); err == nil {
		err = rmErr
	}
	return err
}
