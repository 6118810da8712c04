package ionex

import (
	"math"

	"github.com/dlr-gnss/ionexgo/pkg/calendar"
	"github.com/dlr-gnss/ionexgo/pkg/grid"
)

// scale is the fixed-point factor applied to longitude/latitude degrees
// before any grid lookup, so that node equality is exact integer equality
// instead of float comparison (see DESIGN.md).
const scale = 100

// maxHeaderLines bounds how many lines a header parse will read before
// giving up, matching the original MAX_HEADER_LINES constant.
const maxHeaderLines = 1000

// maxTECPerLine is the maximum number of fixed-width-5 TEC integers packed
// into a single map data line.
const maxTECPerLine = 16

// missingValue is the IONEX "no data" sentinel. It is not the number
// 9999: the sampler and temporal interpolator must detect and propagate
// it rather than blend it into an interpolated result.
const missingValue = 9999

// Header holds the fixed-column IONEX header metadata. Header and the
// end-of-header stream offset are set once at construction and are
// immutable thereafter.
type Header struct {
	Version  float32 `validate:"required"`
	FileType string  `validate:"eq=I"`

	FirstEpoch calendar.Epoch
	LastEpoch  calendar.Epoch
	Interval   int
	MapCount   int `validate:"gt=0"`

	MappingFunction string
	ElevationCutoff float64
	BaseRadius      float64

	MapDimension int `validate:"eq=2"`

	Hgt1, Hgt2, Dhgt float64
	Lat1, Lat2, Dlat float64
	Lon1, Lon2, Dlon float64

	Exponent int

	Labels []string

	endOfHeader int64
}

// grid builds the fixed-point longitude x latitude grid described by the
// header's axes, scaled by 100 so that node-coordinate equality is exact.
func (h Header) grid() (grid.Grid2D[int64], error) {
	lonAxis, err := grid.NewAxis1D(scaleTo64(h.Lon1), scaleTo64(h.Lon2), scaleTo64(h.Dlon))
	if err != nil {
		return grid.Grid2D[int64]{}, err
	}
	latAxis, err := grid.NewAxis1D(scaleTo64(h.Lat1), scaleTo64(h.Lat2), scaleTo64(h.Dlat))
	if err != nil {
		return grid.Grid2D[int64]{}, err
	}
	return grid.NewGrid2D(lonAxis, latAxis), nil
}

// scaleTo64 converts a decimal-degree axis value to the scaled fixed-point
// integer representation used for grid lookups.
func scaleTo64(v float64) int64 {
	return int64(math.Round(v * scale))
}
