package antex

import (
	"github.com/pkg/errors"

	"github.com/dlr-gnss/ionexgo/pkg/source"
)

// Open opens the ANTEX file at path (transparently decompressing a .gz
// or .bz2 suffix, same as ionex.Open) and fully parses it.
func Open(path string) (*File, error) {
	rc, err := source.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "open %s: %v", path, err)
	}
	defer rc.Close()

	return Parse(rc)
}
