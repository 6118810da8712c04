package ionex

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/dlr-gnss/ionexgo/pkg/calendar"
)

// readHeader parses the fixed-column IONEX header. Parsing stops at the
// line whose columns 61..73 contain "END OF HEADER"; the stream is left
// positioned immediately after that line, and that offset is recorded as
// the durable end-of-header anchor.
func (dec *Decoder) readHeader() (hdr Header, err error) {
readln:
	for n := 0; ; n++ {
		if n >= maxHeaderLines {
			return hdr, errors.Wrapf(ErrHeaderParse, "header exceeds %d lines without END OF HEADER", maxHeaderLines)
		}

		line, ok := dec.readLine()
		if !ok {
			if dec.err != nil && dec.err != io.EOF {
				return hdr, errors.Wrapf(ErrIO, "read header line %d: %v", dec.lineNum, dec.err)
			}
			return hdr, errors.Wrap(ErrNoHeader, "unexpected end of stream while reading header")
		}

		if dec.lineNum == 1 && !strings.Contains(line, "IONEX VERSION") {
			return hdr, errors.Wrap(ErrNoHeader, line)
		}

		if len(line) < 60 {
			continue
		}

		val := line[:60]
		key := strings.TrimSpace(line[60:])
		hdr.Labels = append(hdr.Labels, key)

		switch key {
		case "IONEX VERSION / TYPE":
			fvers, perr := strconv.ParseFloat(strings.TrimSpace(val[:8]), 32)
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: parse IONEX VERSION: %v", dec.lineNum, perr)
			}
			if math.Abs(fvers-1.0) > 0.001 {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: unsupported IONEX version %v", dec.lineNum, fvers)
			}
			hdr.Version = float32(fvers)

			hdr.FileType = strings.TrimSpace(val[20:21])
			if hdr.FileType != "I" {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: invalid IONEX file-type %q", dec.lineNum, hdr.FileType)
			}
		case "EPOCH OF FIRST MAP":
			ep, perr := parseIonexDatetime(val)
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: EPOCH OF FIRST MAP: %v", dec.lineNum, perr)
			}
			hdr.FirstEpoch = ep
		case "EPOCH OF LAST MAP":
			ep, perr := parseIonexDatetime(val)
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: EPOCH OF LAST MAP: %v", dec.lineNum, perr)
			}
			hdr.LastEpoch = ep
		case "INTERVAL":
			iv, perr := strconv.Atoi(strings.TrimSpace(val[:6]))
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: INTERVAL: %v", dec.lineNum, perr)
			}
			hdr.Interval = iv
		case "# OF MAPS IN FILE":
			n, perr := strconv.Atoi(strings.TrimSpace(val[:6]))
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: # OF MAPS IN FILE: %v", dec.lineNum, perr)
			}
			hdr.MapCount = n
		case "MAPPING FUNCTION":
			hdr.MappingFunction = strings.TrimSpace(val[2:6])
		case "ELEVATION CUTOFF":
			f, perr := strconv.ParseFloat(strings.TrimSpace(val[:10]), 64)
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: ELEVATION CUTOFF: %v", dec.lineNum, perr)
			}
			hdr.ElevationCutoff = f
		case "BASE RADIUS":
			f, perr := strconv.ParseFloat(strings.TrimSpace(val[:10]), 64)
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: BASE RADIUS: %v", dec.lineNum, perr)
			}
			hdr.BaseRadius = f
		case "MAP DIMENSION":
			d, perr := strconv.Atoi(strings.TrimSpace(val[:6]))
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: MAP DIMENSION: %v", dec.lineNum, perr)
			}
			if d != 2 {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: unsupported map dimension %d", dec.lineNum, d)
			}
			hdr.MapDimension = d
		case "HGT1 / HGT2 / DHGT":
			f1, f2, f3, perr := parseTriple(val)
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: HGT1/HGT2/DHGT: %v", dec.lineNum, perr)
			}
			hdr.Hgt1, hdr.Hgt2, hdr.Dhgt = f1, f2, f3
		case "LAT1 / LAT2 / DLAT":
			f1, f2, f3, perr := parseTriple(val)
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: LAT1/LAT2/DLAT: %v", dec.lineNum, perr)
			}
			hdr.Lat1, hdr.Lat2, hdr.Dlat = f1, f2, f3
		case "LON1 / LON2 / DLON":
			f1, f2, f3, perr := parseTriple(val)
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: LON1/LON2/DLON: %v", dec.lineNum, perr)
			}
			hdr.Lon1, hdr.Lon2, hdr.Dlon = f1, f2, f3
		case "EXPONENT":
			e, perr := strconv.Atoi(strings.TrimSpace(val[:10]))
			if perr != nil {
				return hdr, errors.Wrapf(ErrHeaderParse, "line %d: EXPONENT: %v", dec.lineNum, perr)
			}
			hdr.Exponent = e
		case "START OF AUX DATA":
			if err := dec.skipAuxData(); err != nil {
				return hdr, err
			}
		case "END OF HEADER":
			break readln
		default:
			logUnhandledKeyword(key)
		}
	}

	if hdr.Exponent == 0 && !containsLabel(hdr.Labels, "EXPONENT") {
		hdr.Exponent = -1
	}

	if err := validate.Struct(hdr); err != nil {
		return hdr, errors.Wrapf(ErrHeaderParse, "header validation: %v", err)
	}

	hdr.endOfHeader = dec.offset
	return hdr, nil
}

// skipAuxData consumes lines through END OF AUX DATA without
// interpreting the auxiliary payload.
func (dec *Decoder) skipAuxData() error {
	for {
		line, ok := dec.readLine()
		if !ok {
			return errors.Wrap(ErrHeaderParse, "unexpected end of stream inside AUX data block")
		}
		if len(line) >= 60 && strings.TrimSpace(line[60:]) == "END OF AUX DATA" {
			return nil
		}
	}
}

func containsLabel(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

// parseTriple parses three consecutive 6-column floats starting at column
// 3 (index 2), the (2X,3F6.1) layout IONEX uses for the HGT/LAT/LON axis
// records.
func parseTriple(val string) (a, b, c float64, err error) {
	if len(val) < 20 {
		return 0, 0, 0, errors.New("line too short for 3 fields")
	}
	a, err = strconv.ParseFloat(strings.TrimSpace(val[2:8]), 64)
	if err != nil {
		return
	}
	b, err = strconv.ParseFloat(strings.TrimSpace(val[8:14]), 64)
	if err != nil {
		return
	}
	c, err = strconv.ParseFloat(strings.TrimSpace(val[14:20]), 64)
	return
}

// parseIonexDatetime reads six consecutive 6-column integers
// (Y M D h m s) from the start of an IONEX epoch record.
func parseIonexDatetime(val string) (calendar.Epoch, error) {
	if len(val) < 36 {
		return calendar.Epoch{}, errors.New("datetime field too short")
	}
	fields := make([]int, 6)
	for i := 0; i < 6; i++ {
		s := strings.TrimSpace(val[i*6 : i*6+6])
		n, err := strconv.Atoi(s)
		if err != nil {
			return calendar.Epoch{}, errors.Wrapf(err, "field %d (%q)", i, s)
		}
		fields[i] = n
	}
	return calendar.NewEpoch(fields[0], fields[1], fields[2], fields[3], fields[4], float64(fields[5])), nil
}
