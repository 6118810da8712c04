package antex

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/dlr-gnss/ionexgo/pkg/gnss"
	"github.com/dlr-gnss/ionexgo/pkg/grid"
)

const maxHeaderLines = 1000

// File is a fully-parsed ANTEX file: a format version plus every antenna
// block it carries. Unlike the IONEX reader, which streams maps one at
// a time to bound memory, ANTEX files are small enough to hold entirely
// in memory once parsed.
type File struct {
	Version float32
	PcvType string

	antennas []*Antenna
}

// Antennas returns every antenna block parsed from the file, in file
// order.
func (f *File) Antennas() []*Antenna { return f.antennas }

// antexDecoder is the line-oriented reader used only during parsing; it
// is discarded once Parse returns, unlike ionex.Decoder which stays
// alive for the object's lifetime to support repeated streaming.
type antexDecoder struct {
	br      *bufio.Reader
	lineNum int
}

// Parse reads a complete ANTEX stream and returns the parsed File.
func Parse(r io.Reader) (*File, error) {
	dec := &antexDecoder{br: bufio.NewReader(r)}
	f := &File{}

	if err := dec.readHeader(f); err != nil {
		return nil, err
	}

	for {
		line, ok := dec.readLine()
		if !ok {
			break
		}
		if len(line) < 60 {
			continue
		}
		key := strings.TrimSpace(line[60:])
		if key != "START OF ANTENNA" {
			continue
		}
		ant, err := dec.readAntennaBlock()
		if err != nil {
			return nil, err
		}
		f.antennas = append(f.antennas, ant)
	}

	return f, nil
}

func (dec *antexDecoder) readLine() (string, bool) {
	raw, _ := dec.br.ReadString('\n')
	if len(raw) == 0 {
		return "", false
	}
	dec.lineNum++
	return strings.TrimRight(raw, "\r\n"), true
}

func (dec *antexDecoder) readHeader(f *File) error {
	for n := 0; ; n++ {
		if n >= maxHeaderLines {
			return errors.Wrapf(ErrHeaderParse, "header exceeds %d lines without END OF HEADER", maxHeaderLines)
		}
		line, ok := dec.readLine()
		if !ok {
			return errors.Wrap(ErrIO, "unexpected end of stream while reading header")
		}
		if dec.lineNum == 1 && !strings.Contains(line, "ANTEX VERSION") {
			return errors.Wrap(ErrHeaderParse, "missing ANTEX VERSION / SYST record")
		}
		if len(line) < 60 {
			continue
		}

		val := line[:60]
		key := strings.TrimSpace(line[60:])
		switch key {
		case "ANTEX VERSION / SYST":
			v, err := strconv.ParseFloat(strings.TrimSpace(val[:8]), 32)
			if err != nil {
				return errors.Wrapf(ErrHeaderParse, "line %d: ANTEX VERSION: %v", dec.lineNum, err)
			}
			f.Version = float32(v)
		case "PCV TYPE / REFANT":
			f.PcvType = strings.TrimSpace(val[:1])
		case "END OF HEADER":
			return nil
		}
	}
}

// readAntennaBlock parses one antenna, from the line after START OF
// ANTENNA through END OF ANTENNA.
func (dec *antexDecoder) readAntennaBlock() (*Antenna, error) {
	ant := &Antenna{}
	var zen1, zen2, dzen, dazi float64
	var nfreq int

	for {
		line, ok := dec.readLine()
		if !ok {
			return nil, errors.Wrap(ErrBlockParse, "unexpected end of stream inside antenna block")
		}
		if len(line) < 60 {
			continue
		}
		val := line[:60]
		key := strings.TrimSpace(line[60:])

		switch key {
		case "TYPE / SERIAL NO":
			ant.Type = strings.TrimSpace(val[:20])
			if len(val) >= 40 {
				ant.Serial = strings.TrimSpace(val[20:40])
			}
		case "ZEN1 / ZEN2 / DZEN":
			a, b, c, err := parseTriple(val)
			if err != nil {
				return nil, errors.Wrapf(ErrBlockParse, "line %d: ZEN1/ZEN2/DZEN: %v", dec.lineNum, err)
			}
			zen1, zen2, dzen = a, b, c
		case "DAZI":
			d, err := strconv.ParseFloat(strings.TrimSpace(val[:8]), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrBlockParse, "line %d: DAZI: %v", dec.lineNum, err)
			}
			dazi = d
		case "# OF FREQUENCIES":
			n, err := strconv.Atoi(strings.TrimSpace(val[:6]))
			if err != nil {
				return nil, errors.Wrapf(ErrBlockParse, "line %d: # OF FREQUENCIES: %v", dec.lineNum, err)
			}
			nfreq = n
		case "START OF FREQUENCY":
			zenAxis, err := grid.NewAxis1D(zen1, zen2, dzen)
			if err != nil {
				return nil, errors.Wrapf(ErrBlockParse, "line %d: zenith axis: %v", dec.lineNum, err)
			}
			ant.zenAxis = zenAxis
			if dazi != 0 && ant.aziGrid == nil {
				aziAxis, err := grid.NewAxis1D(0.0, 360.0, dazi)
				if err != nil {
					return nil, errors.Wrapf(ErrBlockParse, "line %d: azimuth axis: %v", dec.lineNum, err)
				}
				g := grid.NewGrid2D(zenAxis, aziAxis)
				ant.aziGrid = &g
			}

			freqCode := strings.TrimSpace(val[3:6])
			fp, err := dec.readFrequencyBlock(freqCode, zenAxis, ant.aziGrid)
			if err != nil {
				return nil, err
			}
			ant.Frequencies = append(ant.Frequencies, fp)
		case "END OF ANTENNA":
			if len(ant.Frequencies) != nfreq {
				return nil, errors.Wrapf(ErrBlockParse, "antenna %s: read %d frequencies, header declared %d", ant.Type, len(ant.Frequencies), nfreq)
			}
			return ant, nil
		}
	}
}

func (dec *antexDecoder) readFrequencyBlock(freq string, zenAxis grid.Axis1D[float64], aziGrid *grid.Grid2D[float64]) (FrequencyPCV, error) {
	fp := FrequencyPCV{Freq: freq}
	if len(freq) >= 1 {
		sys, err := gnss.SystemFromAbbr(freq[:1])
		if err != nil {
			return fp, errors.Wrapf(ErrBlockParse, "line %d: frequency %q: %v", dec.lineNum, freq, err)
		}
		fp.System = sys
	}
	zsize := zenAxis.Size()

	for {
		line, ok := dec.readLine()
		if !ok {
			return fp, errors.Wrap(ErrBlockParse, "unexpected end of stream inside frequency block")
		}

		trimmed := strings.TrimSpace(line)
		if len(line) >= 60 && strings.TrimSpace(line[60:]) == "END OF FREQUENCY" {
			return fp, nil
		}
		if len(line) >= 60 && strings.TrimSpace(line[60:]) == "NORTH / EAST / UP" {
			n, e, u, err := parseTriple(line[:60])
			if err != nil {
				return fp, errors.Wrapf(ErrBlockParse, "line %d: NORTH/EAST/UP: %v", dec.lineNum, err)
			}
			fp.Eccentricity = [3]float64{n, e, u}
			continue
		}
		if strings.HasPrefix(trimmed, "NOAZI") {
			vals, err := dec.readValueRow(strings.TrimPrefix(trimmed, "NOAZI"), zsize)
			if err != nil {
				return fp, errors.Wrapf(ErrBlockParse, "line %d: NOAZI row: %v", dec.lineNum, err)
			}
			fp.NoAzi = vals
			continue
		}
		if aziGrid != nil {
			fields := strings.Fields(trimmed)
			if len(fields) > 0 {
				if _, err := strconv.ParseFloat(fields[0], 64); err == nil {
					rowValsStr := strings.TrimSpace(trimmed[len(fields[0]):])
					vals, err := dec.readValueRow(rowValsStr, zsize)
					if err != nil {
						return fp, errors.Wrapf(ErrBlockParse, "line %d: azimuth row: %v", dec.lineNum, err)
					}
					if fp.Azi == nil {
						fp.Azi = make([]float64, 0, aziGrid.Size())
					}
					fp.Azi = append(fp.Azi, vals...)
				}
			}
		}
	}
}

// readValueRow reads zsize float values, starting with those already
// present in first (the remainder of the row's opening line) and
// continuing onto as many wrap lines as needed; every whitespace-separated
// field on a wrap line is taken as a value.
func (dec *antexDecoder) readValueRow(first string, zsize int) ([]float64, error) {
	vals := make([]float64, 0, zsize)
	if err := appendFields(&vals, first); err != nil {
		return nil, err
	}
	for len(vals) < zsize {
		line, ok := dec.readLine()
		if !ok {
			return nil, errors.New("unexpected end of stream mid-row")
		}
		if err := appendFields(&vals, line); err != nil {
			return nil, err
		}
	}
	if len(vals) != zsize {
		return nil, errors.Errorf("read %d values, expected %d", len(vals), zsize)
	}
	return vals, nil
}

func appendFields(vals *[]float64, line string) error {
	for _, f := range strings.Fields(line) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return err
		}
		*vals = append(*vals, v)
	}
	return nil
}

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
