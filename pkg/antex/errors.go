package antex

import "errors"

// Sentinel error kinds, mirroring pkg/ionex's: wrap sites attach
// file/line context with github.com/pkg/errors.Wrapf.
var (
	// ErrIO is returned when the file cannot be opened or a stream read
	// fails mid-parse.
	ErrIO = errors.New("antex: io error")

	// ErrHeaderParse is returned for a missing ANTEX VERSION / SYST
	// record, a malformed header field, or an overlong header. The
	// version number itself is not checked against a supported set.
	ErrHeaderParse = errors.New("antex: header parse error")

	// ErrBlockParse is returned for a malformed antenna block.
	ErrBlockParse = errors.New("antex: antenna block parse error")

	// ErrNoAzimuthPCV is returned by Azi1/Azi2/Dazi when the antenna has
	// no azimuth-dependent pattern (dazi == 0).
	ErrNoAzimuthPCV = errors.New("antex: antenna has no azimuth-dependent PCV")

	// ErrUnknownFrequency is returned by PCV when the requested
	// frequency was not recorded for this antenna.
	ErrUnknownFrequency = errors.New("antex: unknown frequency")

	// ErrOutOfRange is returned when a zenith/azimuth query point lies
	// outside the antenna's grid.
	ErrOutOfRange = errors.New("antex: point outside grid range")
)
