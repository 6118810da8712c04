package ionex

import (
	"log"

	"github.com/pkg/errors"

	"github.com/dlr-gnss/ionexgo/pkg/calendar"
)

// FirstEpoch returns the header's EPOCH OF FIRST MAP.
func (dec *Decoder) FirstEpoch() calendar.Epoch { return dec.Header.FirstEpoch }

// LastEpoch returns the header's EPOCH OF LAST MAP.
func (dec *Decoder) LastEpoch() calendar.Epoch { return dec.Header.LastEpoch }

// Interval returns the header's native map interval in seconds.
func (dec *Decoder) Interval() int { return dec.Header.Interval }

// MapCount returns the header's declared number of maps.
func (dec *Decoder) MapCount() int { return dec.Header.MapCount }

// Exponent returns the header's decimal exponent; physical TEC is
// value * 10^Exponent TECU.
func (dec *Decoder) Exponent() int { return dec.Header.Exponent }

// GetTecAt rewinds to the start of the map stream and spatially
// interpolates every map at each of points, at native file cadence.
// epochs has one entry per map, in file order; values[p][m] is the TEC
// value for points[p] at epochs[m]. A cell touching the missing-value
// sentinel yields the sentinel unchanged for that point/epoch rather
// than an error; other points and epochs in the same call are
// unaffected.
func (dec *Decoder) GetTecAt(points []Point) (epochs []calendar.Epoch, values [][]float64, err error) {
	pcs := make([]pointCell, len(points))
	for i, p := range points {
		cell, err := dec.cellFor(p)
		if err != nil {
			return nil, nil, err
		}
		pcs[i] = pointCell{p: p, cell: cell}
	}

	if err := dec.Reset(); err != nil {
		return nil, nil, errors.Wrap(ErrIO, "rewind to end of header")
	}

	epochs = make([]calendar.Epoch, dec.Header.MapCount)
	values = make([][]float64, len(points))
	for p := range values {
		values[p] = make([]float64, dec.Header.MapCount)
	}

	for m := 0; m < dec.Header.MapCount; m++ {
		ep, err := dec.nextMapMarker(m)
		if err != nil {
			return nil, nil, err
		}
		if err := dec.readTecMap(dec.buf); err != nil {
			return nil, nil, err
		}
		epochs[m] = ep
		for p, pc := range pcs {
			v, err := dec.sampleCell(dec.buf, pc)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "map %d at epoch %v, point %v", m, ep, pc.p)
			}
			values[p][m] = v
		}
	}

	return epochs, values, nil
}

// Interpolate streams the file once via GetTecAt and resamples the
// result onto a regular output epoch schedule.
//
// from and to default to the header's first/last epoch when nil, and
// are clamped into that range with a logged warning rather than
// rejected. If the clamped from is strictly after the clamped to, it
// fails with ErrInvalidRange. If they are equal, it returns an empty
// result per point without touching the stream. interval defaults to
// the header's native interval when nil; negative values are clamped
// to 0, meaning "use the file's own epochs".
func (dec *Decoder) Interpolate(points []Point, from, to *calendar.Epoch, interval *int) ([]calendar.Epoch, [][]float64, error) {
	actualFrom := dec.Header.FirstEpoch
	if from != nil {
		actualFrom = *from
	}
	actualTo := dec.Header.LastEpoch
	if to != nil {
		actualTo = *to
	}

	if actualFrom.Before(dec.Header.FirstEpoch) {
		log.Printf("ionex: from %v precedes first epoch %v, clamping", actualFrom, dec.Header.FirstEpoch)
		actualFrom = dec.Header.FirstEpoch
	}
	if actualTo.After(dec.Header.LastEpoch) {
		log.Printf("ionex: to %v follows last epoch %v, clamping", actualTo, dec.Header.LastEpoch)
		actualTo = dec.Header.LastEpoch
	}
	if actualFrom.After(actualTo) {
		return nil, nil, errors.Wrapf(ErrInvalidRange, "from %v after to %v", actualFrom, actualTo)
	}

	emptyValues := make([][]float64, len(points))
	for p := range emptyValues {
		emptyValues[p] = []float64{}
	}
	if actualFrom.Equal(actualTo) {
		return nil, emptyValues, nil
	}

	iv := dec.Header.Interval
	if interval != nil {
		iv = *interval
	}
	if iv < 0 {
		iv = 0
	}

	fileEpochs, fileValues, err := dec.GetTecAt(points)
	if err != nil {
		return nil, nil, err
	}
	if len(fileEpochs) == 0 {
		return nil, nil, errors.Wrap(ErrMapSequence, "no TEC maps available")
	}

	var outEpochs []calendar.Epoch
	if iv > 0 {
		for t := actualFrom; !t.After(actualTo); t = t.AddSeconds(float64(iv)) {
			outEpochs = append(outEpochs, t)
		}
	} else {
		for _, ep := range fileEpochs {
			if !ep.Before(actualFrom) && !ep.After(actualTo) {
				outEpochs = append(outEpochs, ep)
			}
		}
	}

	outValues := make([][]float64, len(points))
	for p := range outValues {
		outValues[p] = make([]float64, 0, len(outEpochs))
	}

	i := 0
	for _, t := range outEpochs {
		for i < len(fileEpochs)-2 && t.After(fileEpochs[i+1]) {
			i++
		}
		j := i + 1
		if j >= len(fileEpochs) {
			j = len(fileEpochs) - 1
		}
		a, b := fileEpochs[i], fileEpochs[j]

		for p := range points {
			if t.Equal(a) || i == j {
				outValues[p] = append(outValues[p], fileValues[p][i])
				continue
			}
			va, vb := fileValues[p][i], fileValues[p][j]
			if va == missingValue || vb == missingValue {
				outValues[p] = append(outValues[p], missingValue)
				continue
			}
			delta := b.DeltaSeconds(a)
			if delta == 0 {
				outValues[p] = append(outValues[p], va)
				continue
			}
			alpha := b.DeltaSeconds(t) / delta
			beta := t.DeltaSeconds(a) / delta
			outValues[p] = append(outValues[p], alpha*va+beta*vb)
		}
	}

	return outEpochs, outValues, nil
}
