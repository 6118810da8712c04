package ionex

import "errors"

// Sentinel error kinds. Wrap sites attach file/line context with
// github.com/pkg/errors.Wrapf; callers can still compare against these
// with errors.Is since Wrapf preserves the Unwrap/Cause chain.
var (
	// ErrIO is returned when the file cannot be opened or a stream read
	// fails mid-parse.
	ErrIO = errors.New("ionex: io error")

	// ErrHeaderParse is returned for a malformed header field or an
	// unsupported version/dimension.
	ErrHeaderParse = errors.New("ionex: header parse error")

	// ErrMapParse is returned for a malformed map marker, a wrong
	// latitude, a short read, or a missing trailing marker.
	ErrMapParse = errors.New("ionex: map parse error")

	// ErrMapSequence is returned when the number of maps actually read
	// does not match the header's map count.
	ErrMapSequence = errors.New("ionex: map sequence error")

	// ErrOutOfRange is returned when a query point lies outside the
	// grid.
	ErrOutOfRange = errors.New("ionex: point outside grid range")

	// ErrInvalidRange is returned by Interpolate when from > to.
	ErrInvalidRange = errors.New("ionex: invalid epoch range")

	// ErrNoHeader is returned when a stream does not begin with a valid
	// IONEX VERSION / TYPE record.
	ErrNoHeader = errors.New("ionex: no header")
)
