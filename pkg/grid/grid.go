// Package grid implements the fixed-precision axis-aligned grid skeleton
// shared by the IONEX TEC maps (a 2D longitude x latitude grid stored in
// integer fixed-point, scale 100) and the ANTEX PCV patterns (a 1D zenith
// grid, optionally paired with a 2D zenith x azimuth grid, both in plain
// float64 degrees). It answers index <-> coordinate conversions and
// locates the cell enclosing a query point; it does not itself hold any
// sampled values.
package grid

import (
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

// Number is the set of scalar types a grid axis can be defined over:
// fixed-point integers (IONEX, scaled by 100 to keep lookups exact) or
// plain floats (ANTEX zenith/azimuth, unscaled degrees).
type Number interface {
	constraints.Integer | constraints.Float
}

// ErrOutOfRange is returned by NeighborNodes / NeighborIndex when a query
// point lies strictly outside the closed interval the axis (or grid)
// spans.
var ErrOutOfRange = errors.New("grid: point outside axis range")

// Axis1D is a regular one-dimensional axis from From to To in steps of
// Step. Step must be non-zero and share To-From's sign; this is the
// caller's responsibility to establish (e.g. via NewAxis1D), since a grid
// that is only ever constructed from a validated header never needs to
// re-check it on every lookup.
type Axis1D[T Number] struct {
	From T
	To   T
	Step T
}

// NewAxis1D validates and builds an Axis1D.
func NewAxis1D[T Number](from, to, step T) (Axis1D[T], error) {
	var zero T
	if step == zero {
		return Axis1D[T]{}, errors.New("grid: step must not be zero")
	}
	diff := to - from
	if (diff > zero) != (step > zero) && diff != zero {
		return Axis1D[T]{}, errors.New("grid: step sign does not match (to - from)")
	}
	return Axis1D[T]{From: from, To: to, Step: step}, nil
}

// Size returns the number of nodes along the axis:
// size = floor((to - from) / step) + 1.
func (a Axis1D[T]) Size() int {
	return floorDiv(a.To-a.From, a.Step) + 1
}

// NodeAt returns the coordinate of node i.
func (a Axis1D[T]) NodeAt(i int) T {
	return a.From + T(i)*a.Step
}

// min and max as actually spanned by the axis (handles descending axes
// where From > To).
func (a Axis1D[T]) bounds() (lo, hi T) {
	if a.From <= a.To {
		return a.From, a.To
	}
	return a.To, a.From
}

// NeighborIndex locates the enclosing cell of x on the axis: the lower
// node index i0 such that x falls in [node(i0), node(i0+1)] (in whichever
// of ascending/descending order the axis runs). A point exactly on an
// interior node binds to the cell above it (i0 = that node's own index,
// not index-1); a point on the axis's maximum endpoint is pinned to
// i0 = size-2. Returns ErrOutOfRange if x lies strictly outside the
// axis's closed interval.
func (a Axis1D[T]) NeighborIndex(x T) (i0 int, err error) {
	lo, hi := a.bounds()
	if x < lo || x > hi {
		return 0, ErrOutOfRange
	}

	size := a.Size()
	raw := floorDiv(x-a.From, a.Step)
	if raw < 0 {
		raw = 0
	}
	if raw > size-2 {
		raw = size - 2
	}
	return raw, nil
}

// floorDiv returns floor(a/b) for either integer or float operands. The
// fixed-point axes in this package never exceed a few hundred thousand in
// magnitude (longitude/latitude scaled by 100), so routing the division
// through float64 loses no precision while letting one implementation
// serve both the integer (IONEX) and float (ANTEX) instantiations of Axis1D.
func floorDiv[T Number](a, b T) int {
	return int(math.Floor(float64(a) / float64(b)))
}

// Grid2D is two independent Axis1D axes, X and Y, composed into a regular
// 2D grid. Node index of (i, j) is j*xsize + i, matching the row-major
// layout a TEC map buffer is read into.
type Grid2D[T Number] struct {
	X Axis1D[T]
	Y Axis1D[T]
}

// NewGrid2D builds a Grid2D from its two axes. It performs no checks of
// its own; each axis is expected to come from NewAxis1D.
func NewGrid2D[T Number](x, y Axis1D[T]) Grid2D[T] {
	return Grid2D[T]{X: x, Y: y}
}

// XSize returns the number of nodes along the X axis.
func (g Grid2D[T]) XSize() int { return g.X.Size() }

// YSize returns the number of nodes along the Y axis.
func (g Grid2D[T]) YSize() int { return g.Y.Size() }

// Size returns the total number of nodes in the grid (XSize * YSize).
func (g Grid2D[T]) Size() int { return g.XSize() * g.YSize() }

// Index returns the flat buffer index of node (i, j).
func (g Grid2D[T]) Index(i, j int) int { return j*g.XSize() + i }

// NodeAt returns the coordinate of node (i, j).
func (g Grid2D[T]) NodeAt(i, j int) (x, y T) {
	return g.X.NodeAt(i), g.Y.NodeAt(j)
}

// Cell identifies the four nodes enclosing a query point: (i0, x0) and
// (i1, x1) bracket it on the X axis, (j0, y0) and (j1, y1) on the Y axis,
// with i1 = i0+1 and j1 = j0+1.
type Cell[T Number] struct {
	I0, I1 int
	X0, X1 T
	J0, J1 int
	Y0, Y1 T
}

// NeighborNodes returns the cell enclosing (x, y). It fails with
// ErrOutOfRange if either coordinate lies strictly outside its axis's
// closed interval.
func (g Grid2D[T]) NeighborNodes(x, y T) (Cell[T], error) {
	i0, err := g.X.NeighborIndex(x)
	if err != nil {
		return Cell[T]{}, err
	}
	j0, err := g.Y.NeighborIndex(y)
	if err != nil {
		return Cell[T]{}, err
	}

	return Cell[T]{
		I0: i0, I1: i0 + 1,
		X0: g.X.NodeAt(i0), X1: g.X.NodeAt(i0 + 1),
		J0: j0, J1: j0 + 1,
		Y0: g.Y.NodeAt(j0), Y1: g.Y.NodeAt(j0 + 1),
	}, nil
}
