package ionex

import (
	"github.com/pkg/errors"

	"github.com/dlr-gnss/ionexgo/pkg/grid"
)

// Point is a query location in decimal degrees.
type Point struct {
	Lon float64
	Lat float64
}

// pointCell pairs a query point with its precomputed enclosing cell; the
// grid is time-invariant, so callers compute this once per point and
// reuse it across every map in the stream.
type pointCell struct {
	p    Point
	cell grid.Cell[int64]
}

// cellFor locates the grid cell enclosing p.
func (dec *Decoder) cellFor(p Point) (grid.Cell[int64], error) {
	cell, err := dec.grd.NeighborNodes(scaleTo64(p.Lon), scaleTo64(p.Lat))
	if err != nil {
		return grid.Cell[int64]{}, errors.Wrapf(ErrOutOfRange, "(%v, %v): %v", p.Lon, p.Lat, err)
	}
	return cell, nil
}

// sampleCell performs bilinear spatial interpolation of one decoded TEC
// map (buf, in raw header-exponent units) at pc's query point, using its
// precomputed cell. The cell's scaled node coordinates are divided back
// to decimal degrees before arithmetic. If any of the four corners is
// the missing-value sentinel, the sentinel passes through unchanged
// rather than blending into the result.
func (dec *Decoder) sampleCell(buf []int, pc pointCell) (float64, error) {
	xsize := dec.grd.XSize()
	cell := pc.cell
	base := cell.J0*xsize + cell.I0

	f00 := buf[base]
	f10 := buf[base+1]
	f01 := buf[base+xsize]
	f11 := buf[base+xsize+1]

	if f00 == missingValue || f10 == missingValue || f01 == missingValue || f11 == missingValue {
		return missingValue, nil
	}

	x0 := float64(cell.X0) / scale
	x1 := float64(cell.X1) / scale
	y0 := float64(cell.Y0) / scale
	y1 := float64(cell.Y1) / scale
	x := pc.p.Lon
	y := pc.p.Lat

	denom := (x1 - x0) * (y1 - y0)
	if denom == 0 {
		return float64(f00), nil
	}

	raw := ((x1-x)*(y1-y)*float64(f00) +
		(x-x0)*(y1-y)*float64(f10) +
		(x1-x)*(y-y0)*float64(f01) +
		(x-x0)*(y-y0)*float64(f11)) / denom

	return raw, nil
}
