package ionex

import (
	"github.com/pkg/errors"

	"github.com/dlr-gnss/ionexgo/pkg/source"
)

// Open opens the IONEX file at path (transparently decompressing a .gz
// or .bz2 suffix) and parses its header. The returned Decoder owns the
// file handle; callers must call Close when done.
func Open(path string) (*Decoder, error) {
	rc, err := source.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "open %s: %v", path, err)
	}

	dec, err := NewDecoder(rc)
	if err != nil {
		rc.Close()
		return nil, err
	}
	dec.closer = rc
	return dec, nil
}

// Close releases the underlying file handle. It is a no-op for decoders
// constructed directly from an io.ReadSeeker via NewDecoder.
func (dec *Decoder) Close() error {
	if dec.closer == nil {
		return nil
	}
	return dec.closer.Close()
}
