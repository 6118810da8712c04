// Package ionex implements a streaming reader for IONEX (Ionosphere Map
// Exchange) files: header parsing, per-epoch TEC map streaming, a
// fixed-point 2D grid lookup, and spatial/temporal interpolation.
package ionex

import (
	"bufio"
	"io"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/dlr-gnss/ionexgo/pkg/grid"
)

// validate is a single cached validator instance; it caches struct info
// internally so it should not be recreated per call.
var validate = validator.New()

// Decoder reads and decodes header and TEC map records from an IONEX
// input stream. It owns its underlying stream exclusively for its entire
// lifetime; concurrent calls on one Decoder are undefined behavior.
type Decoder struct {
	// Header is valid after NewDecoder returns successfully. It is
	// immutable thereafter.
	Header Header

	src    io.ReadSeeker
	closer io.Closer
	br     *bufio.Reader
	offset int64

	grd grid.Grid2D[int64]
	buf []int // reusable TEC map buffer, length grd.Size()

	lineNum int
	err     error
}

// NewDecoder creates a new decoder for IONEX data. The header is read
// immediately; construction fails if the header is missing or malformed.
//
// It is the caller's responsibility to close the underlying stream when
// done.
func NewDecoder(src io.ReadSeeker) (*Decoder, error) {
	dec := &Decoder{src: src}
	if err := dec.resetAt(0); err != nil {
		return nil, errors.Wrapf(ErrIO, "seek to start of stream: %v", err)
	}

	hdr, err := dec.readHeader()
	if err != nil {
		dec.err = err
		return dec, err
	}
	dec.Header = hdr

	g, err := hdr.grid()
	if err != nil {
		return dec, errors.Wrapf(ErrHeaderParse, "build grid from header axes: %v", err)
	}
	dec.grd = g
	dec.buf = make([]int, g.Size())

	return dec, nil
}

// Err returns the first non-EOF error encountered by the decoder.
func (dec *Decoder) Err() error {
	if dec.err == io.EOF {
		return nil
	}
	return dec.err
}

// setErr records the first error encountered, preserving it across
// later EOF reads.
func (dec *Decoder) setErr(err error) {
	if dec.err == nil || dec.err == io.EOF {
		dec.err = err
	}
}

// resetAt seeks the underlying stream to offset and installs a fresh
// buffered reader over it. Used both by NewDecoder (offset 0) and by
// Reset (the end-of-header anchor), since bufio read-ahead makes it
// unsafe to keep reusing a bufio.Reader across a Seek.
func (dec *Decoder) resetAt(offset int64) error {
	if _, err := dec.src.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	dec.br = bufio.NewReader(dec.src)
	dec.offset = offset
	dec.lineNum = 0
	dec.err = nil
	return nil
}

// Reset rewinds the stream to the durable end-of-header anchor recorded
// at construction time, so GetTecAt/Interpolate can be invoked repeatedly
// on the same Decoder without re-parsing the header.
func (dec *Decoder) Reset() error {
	return dec.resetAt(dec.Header.endOfHeader)
}

// readLine reads the next line (delimiter stripped) and advances the
// logical offset by the exact number of bytes consumed, independent of
// the bufio.Reader's internal read-ahead. It returns false at EOF or on
// error.
func (dec *Decoder) readLine() (string, bool) {
	raw, err := dec.br.ReadString('\n')
	if len(raw) == 0 {
		if err != nil && err != io.EOF {
			dec.setErr(err)
		}
		return "", false
	}
	dec.offset += int64(len(raw))
	dec.lineNum++
	return strings.TrimRight(raw, "\r\n"), true
}

func logUnhandledKeyword(key string) {
	log.Printf("ionex: header field %q not handled yet", key)
}
