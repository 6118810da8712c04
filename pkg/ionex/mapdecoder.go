package ionex

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/dlr-gnss/ionexgo/pkg/calendar"
)

// lonLines returns the number of fixed-width-5 TEC value lines a single
// constant-latitude slice spans: ceil(xsize / 16).
func (dec *Decoder) lonLines() int {
	xsize := dec.grd.XSize()
	return (xsize + maxTECPerLine - 1) / maxTECPerLine
}

// skipTecMap consumes one epoch's maps (all constant-latitude slices) and
// the trailing END OF TEC MAP line, validating structure but discarding
// values.
func (dec *Decoder) skipTecMap() error {
	ysize := dec.grd.YSize()
	lines := dec.lonLines()

	for j := 0; j < ysize; j++ {
		if err := dec.expectLatLonLine(j); err != nil {
			return err
		}
		for i := 0; i < lines; i++ {
			if _, ok := dec.readLine(); !ok {
				return errors.Wrap(ErrMapParse, "unexpected end of stream skipping TEC values")
			}
		}
	}

	return dec.expectEndOfTecMap()
}

// readTecMap performs the same traversal as skipTecMap, but extracts all
// integer TEC values into buf in row-major order: on exit
// buf[j*xsize+i] holds the value at (lon1+i*dlon, lat1+j*dlat). buf must
// have length xsize*ysize.
func (dec *Decoder) readTecMap(buf []int) error {
	ysize := dec.grd.YSize()
	xsize := dec.grd.XSize()
	lines := dec.lonLines()

	if len(buf) != xsize*ysize {
		return errors.Wrapf(ErrMapParse, "buffer length %d does not match grid size %d", len(buf), xsize*ysize)
	}

	index := 0
	for j := 0; j < ysize; j++ {
		if err := dec.expectLatLonLine(j); err != nil {
			return err
		}

		remaining := xsize
		for i := 0; i < lines; i++ {
			line, ok := dec.readLine()
			if !ok {
				return errors.Wrap(ErrMapParse, "unexpected end of stream reading TEC values")
			}

			count := remaining
			if count > maxTECPerLine {
				count = maxTECPerLine
			}
			for k := 0; k < count; k++ {
				start := k * 5
				end := start + 5
				if end > len(line) {
					return errors.Wrapf(ErrMapParse, "line %d: short TEC value field", dec.lineNum)
				}
				v, perr := strconv.Atoi(strings.TrimSpace(line[start:end]))
				if perr != nil {
					return errors.Wrapf(ErrMapParse, "line %d: parse TEC value: %v", dec.lineNum, perr)
				}
				buf[index] = v
				index++
			}
			remaining -= count
		}
	}

	if index != xsize*ysize {
		return errors.Wrapf(ErrMapParse, "read %d TEC values, expected %d", index, xsize*ysize)
	}

	return dec.expectEndOfTecMap()
}

// expectLatLonLine reads one "LAT/LON1/LON2/DLON/H" slice header and
// validates its latitude against the expected lat1+j*dlat (compared in
// scaled-integer form) and its lon1/lon2/dlon/h against the header's.
func (dec *Decoder) expectLatLonLine(j int) error {
	line, ok := dec.readLine()
	if !ok {
		return errors.Wrap(ErrMapParse, "unexpected end of stream before LAT/LON1/LON2/DLON/H")
	}
	if len(line) < 60 || strings.TrimSpace(line[60:]) != "LAT/LON1/LON2/DLON/H" {
		return errors.Wrapf(ErrMapParse, "line %d: expected LAT/LON1/LON2/DLON/H, found %q", dec.lineNum, line)
	}

	lat, lon1, lon2, dlon, h, err := parseLatLonLine(line[:60])
	if err != nil {
		return errors.Wrapf(ErrMapParse, "line %d: %v", dec.lineNum, err)
	}

	wantLat := dec.Header.Lat1 + float64(j)*dec.Header.Dlat
	if scaleTo64(lat) != scaleTo64(wantLat) {
		return errors.Wrapf(ErrMapParse, "line %d: unexpected latitude %v, want %v", dec.lineNum, lat, wantLat)
	}
	if scaleTo64(lon1) != scaleTo64(dec.Header.Lon1) ||
		scaleTo64(lon2) != scaleTo64(dec.Header.Lon2) ||
		scaleTo64(dlon) != scaleTo64(dec.Header.Dlon) ||
		scaleTo64(h) != scaleTo64(dec.Header.Hgt1) {
		return errors.Wrapf(ErrMapParse, "line %d: slice lon/height does not match header", dec.lineNum)
	}

	return nil
}

// expectEndOfTecMap reads the next non-empty line and verifies it is
// END OF TEC MAP.
func (dec *Decoder) expectEndOfTecMap() error {
	line, ok := dec.readLine()
	if !ok {
		return errors.Wrap(ErrMapParse, "unexpected end of stream, expected END OF TEC MAP")
	}
	for strings.TrimSpace(line) == "" {
		line, ok = dec.readLine()
		if !ok {
			return errors.Wrap(ErrMapParse, "unexpected end of stream, expected END OF TEC MAP")
		}
	}
	if len(line) < 60 || strings.TrimSpace(line[60:]) != "END OF TEC MAP" {
		return errors.Wrapf(ErrMapParse, "line %d: expected END OF TEC MAP, found %q", dec.lineNum, line)
	}
	return nil
}

// parseLatLonLine parses the (2X,5F6.1) LAT/LON1/LON2/DLON/H record.
func parseLatLonLine(val string) (lat, lon1, lon2, dlon, h float64, err error) {
	if len(val) < 32 {
		err = errors.New("LAT/LON1/LON2/DLON/H line too short")
		return
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(val[2:8]), 64)
	if err != nil {
		return
	}
	lon1, err = strconv.ParseFloat(strings.TrimSpace(val[8:14]), 64)
	if err != nil {
		return
	}
	lon2, err = strconv.ParseFloat(strings.TrimSpace(val[14:20]), 64)
	if err != nil {
		return
	}
	dlon, err = strconv.ParseFloat(strings.TrimSpace(val[20:26]), 64)
	if err != nil {
		return
	}
	h, err = strconv.ParseFloat(strings.TrimSpace(val[26:32]), 64)
	return
}

// nextMapMarker reads the "START OF TEC MAP" record (expecting index
// mapIdx+1) followed by "EPOCH OF CURRENT MAP", and returns the parsed
// epoch.
func (dec *Decoder) nextMapMarker(mapIdx int) (calendar.Epoch, error) {
	line, ok := dec.readLine()
	if !ok {
		return calendar.Epoch{}, errors.Wrap(ErrMapSequence, "unexpected end of stream, expected START OF TEC MAP")
	}
	if len(line) < 60 || strings.TrimSpace(line[60:]) != "START OF TEC MAP" {
		return calendar.Epoch{}, errors.Wrapf(ErrMapSequence, "line %d: expected START OF TEC MAP, found %q", dec.lineNum, line)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(line[:6]))
	if err != nil {
		return calendar.Epoch{}, errors.Wrapf(ErrMapSequence, "line %d: parse map index: %v", dec.lineNum, err)
	}
	if idx != mapIdx+1 {
		return calendar.Epoch{}, errors.Wrapf(ErrMapSequence, "line %d: map index %d, expected %d", dec.lineNum, idx, mapIdx+1)
	}

	line, ok = dec.readLine()
	if !ok {
		return calendar.Epoch{}, errors.Wrap(ErrMapSequence, "unexpected end of stream, expected EPOCH OF CURRENT MAP")
	}
	if len(line) < 60 || strings.TrimSpace(line[60:]) != "EPOCH OF CURRENT MAP" {
		return calendar.Epoch{}, errors.Wrapf(ErrMapSequence, "line %d: expected EPOCH OF CURRENT MAP, found %q", dec.lineNum, line)
	}
	ep, err := parseIonexDatetime(line[:60])
	if err != nil {
		return calendar.Epoch{}, errors.Wrapf(ErrMapSequence, "line %d: EPOCH OF CURRENT MAP: %v", dec.lineNum, err)
	}

	return ep, nil
}
