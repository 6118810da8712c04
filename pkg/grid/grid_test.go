package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxis1D_Size(t *testing.T) {
	// ascending, e.g. IONEX longitude axis -180..180 step 5, scaled by 100
	ax, err := NewAxis1D[int64](-18000, 18000, 500)
	assert.NoError(t, err)
	assert.Equal(t, 73, ax.Size())

	// descending, e.g. IONEX latitude axis 87.5..-87.5 step -2.5, scaled by 100
	ax2, err := NewAxis1D[int64](8750, -8750, -250)
	assert.NoError(t, err)
	assert.Equal(t, 71, ax2.Size())
}

func TestAxis1D_RejectsBadStep(t *testing.T) {
	_, err := NewAxis1D[int64](0, 100, 0)
	assert.Error(t, err)

	_, err = NewAxis1D[int64](0, 100, -10)
	assert.Error(t, err)
}

func TestAxis1D_NodeAtRoundTrip(t *testing.T) {
	ax, err := NewAxis1D[int64](-18000, 18000, 500)
	assert.NoError(t, err)
	for i := 0; i < ax.Size(); i++ {
		x := ax.NodeAt(i)
		i0, err := ax.NeighborIndex(x)
		assert.NoError(t, err)
		if i == ax.Size()-1 {
			// upper endpoint pins to the last interior cell
			assert.Equal(t, ax.Size()-2, i0)
		} else {
			assert.Equal(t, i, i0)
		}
	}
}

func TestAxis1D_OutOfRange(t *testing.T) {
	ax, err := NewAxis1D[int64](-18000, 18000, 500)
	assert.NoError(t, err)
	_, err = ax.NeighborIndex(-18001)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = ax.NeighborIndex(18001)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestAxis1D_DescendingLookup(t *testing.T) {
	ax, err := NewAxis1D[int64](8750, -8750, -250)
	assert.NoError(t, err)

	// 32.14 degrees -> 3214 scaled; enclosed by nodes 32.50 (i=22) and 30.00 (i=23)
	i0, err := ax.NeighborIndex(3214)
	assert.NoError(t, err)
	assert.Equal(t, 22, i0)
	assert.Equal(t, int64(3250), ax.NodeAt(i0))
	assert.Equal(t, int64(3000), ax.NodeAt(i0+1))
}

func TestGrid2D_SizeAndIndex(t *testing.T) {
	xa, _ := NewAxis1D[int64](-18000, 18000, 500)
	ya, _ := NewAxis1D[int64](8750, -8750, -250)
	g := NewGrid2D(xa, ya)

	assert.Equal(t, 73, g.XSize())
	assert.Equal(t, 71, g.YSize())
	assert.Equal(t, 73*71, g.Size())
	assert.Equal(t, 5*73+3, g.Index(3, 5))
}

func TestGrid2D_MapIndexBijection(t *testing.T) {
	xa, _ := NewAxis1D[int64](-18000, 18000, 500)
	ya, _ := NewAxis1D[int64](8750, -8750, -250)
	g := NewGrid2D(xa, ya)

	for j := 0; j < g.YSize(); j++ {
		for i := 0; i < g.XSize(); i++ {
			idx := g.Index(i, j)
			decJ := idx / g.XSize()
			decI := idx % g.XSize()
			assert.Equal(t, i, decI)
			assert.Equal(t, j, decJ)
		}
	}
}

func TestGrid2D_NeighborNodes(t *testing.T) {
	xa, _ := NewAxis1D[int64](-18000, 18000, 500)
	ya, _ := NewAxis1D[int64](8750, -8750, -250)
	g := NewGrid2D(xa, ya)

	cell, err := g.NeighborNodes(2368, 3214)
	assert.NoError(t, err)
	assert.Equal(t, 40, cell.I0)
	assert.Equal(t, 41, cell.I1)
	assert.Equal(t, int64(2000), cell.X0)
	assert.Equal(t, int64(2500), cell.X1)
	assert.Equal(t, 22, cell.J0)
	assert.Equal(t, 23, cell.J1)
}

func TestGrid2D_UpperEndpointPinned(t *testing.T) {
	xa, _ := NewAxis1D[int64](-18000, 18000, 500)
	ya, _ := NewAxis1D[int64](8750, -8750, -250)
	g := NewGrid2D(xa, ya)

	cell, err := g.NeighborNodes(xa.To, ya.To)
	assert.NoError(t, err)
	assert.Equal(t, g.XSize()-2, cell.I0)
	assert.Equal(t, g.YSize()-2, cell.J0)
}

func TestAxis1D_Float(t *testing.T) {
	// ANTEX zenith axis, 0..90 step 5 degrees
	ax, err := NewAxis1D[float64](0, 90, 5)
	assert.NoError(t, err)
	assert.Equal(t, 19, ax.Size())

	i0, err := ax.NeighborIndex(23.7)
	assert.NoError(t, err)
	assert.Equal(t, 4, i0)
}
