// Package antex implements a reader for ANTEX (Antenna Exchange) files:
// per-antenna, per-frequency phase-center variation (PCV) patterns, each
// sampled over a zenith-only or zenith x azimuth grid. It mirrors the
// IONEX reader's structure (column-anchored header, pkg/grid-based
// lookup) but is read whole rather than streamed, since ANTEX files are
// small relative to the IONEX map series they travel alongside.
package antex

import (
	"github.com/pkg/errors"

	"github.com/dlr-gnss/ionexgo/pkg/gnss"
	"github.com/dlr-gnss/ionexgo/pkg/grid"
)

// FrequencyPCV holds the phase-center offset and PCV pattern for a
// single observation frequency, grounded in antpcv.hpp's frequency_pcv:
// an eccentricity vector plus the azimuth-independent ("NOAZI") values
// and, when the antenna carries one, the azimuth-dependent values.
type FrequencyPCV struct {
	Freq         string
	System       gnss.System // parsed from Freq's leading system letter
	Eccentricity [3]float64
	NoAzi        []float64 // one value per zenith node
	Azi          []float64 // zenith x azimuth, row-major: j*zsize+i
}

// Antenna holds everything parsed for one ANTEX antenna block: its
// zenith grid (always present) and an optional zenith x azimuth grid,
// shared by every FrequencyPCV it carries, following antpcv.hpp's
// antenna_pcv (one 1D grid, one nullable owned 2D grid).
type Antenna struct {
	Type   string
	Serial string
	PcvType string

	zenAxis grid.Axis1D[float64]
	aziGrid *grid.Grid2D[float64] // nil when dazi == 0

	Frequencies []FrequencyPCV
}

// Zen1, Zen2 and Dzen expose the antenna's zenith axis.
func (a *Antenna) Zen1() float64 { return a.zenAxis.From }
func (a *Antenna) Zen2() float64 { return a.zenAxis.To }
func (a *Antenna) Dzen() float64 { return a.zenAxis.Step }

// HasAzimuthPCV reports whether this antenna carries an
// azimuth-dependent pattern (DAZI != 0). Azi1/Azi2/Dazi are only valid
// to call when this returns true.
func (a *Antenna) HasAzimuthPCV() bool { return a.aziGrid != nil }

// Azi1 returns the azimuth axis's starting value. It fails with
// ErrNoAzimuthPCV if HasAzimuthPCV is false, rather than the C++
// original's documented undefined behavior on a null grid pointer.
func (a *Antenna) Azi1() (float64, error) {
	if !a.HasAzimuthPCV() {
		return 0, ErrNoAzimuthPCV
	}
	return a.aziGrid.Y.From, nil
}

// Azi2 returns the azimuth axis's ending value.
func (a *Antenna) Azi2() (float64, error) {
	if !a.HasAzimuthPCV() {
		return 0, ErrNoAzimuthPCV
	}
	return a.aziGrid.Y.To, nil
}

// Dazi returns the azimuth axis's step.
func (a *Antenna) Dazi() (float64, error) {
	if !a.HasAzimuthPCV() {
		return 0, ErrNoAzimuthPCV
	}
	return a.aziGrid.Y.Step, nil
}

// FrequenciesForSystem returns the recorded frequencies belonging to
// sys, in file order.
func (a *Antenna) FrequenciesForSystem(sys gnss.System) []FrequencyPCV {
	var out []FrequencyPCV
	for _, fp := range a.Frequencies {
		if fp.System == sys {
			out = append(out, fp)
		}
	}
	return out
}

// frequency looks up a recorded frequency by its observation-type code.
func (a *Antenna) frequency(freq string) (*FrequencyPCV, error) {
	for i := range a.Frequencies {
		if a.Frequencies[i].Freq == freq {
			return &a.Frequencies[i], nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownFrequency, "%s", freq)
}

// PCV returns the phase-center variation for freq at (zenith, azimuth)
// in decimal degrees. When the antenna has no azimuth-dependent pattern,
// azimuth is ignored and the value is linearly interpolated along
// zenith alone; otherwise it is bilinearly interpolated over the
// (zenith, azimuth) grid exactly as the IONEX spatial sampler does.
func (a *Antenna) PCV(freq string, zenith, azimuth float64) (float64, error) {
	fp, err := a.frequency(freq)
	if err != nil {
		return 0, err
	}

	if !a.HasAzimuthPCV() {
		i0, err := a.zenAxis.NeighborIndex(zenith)
		if err != nil {
			return 0, errors.Wrapf(ErrOutOfRange, "zenith %v: %v", zenith, err)
		}
		z0 := a.zenAxis.NodeAt(i0)
		z1 := a.zenAxis.NodeAt(i0 + 1)
		v0 := fp.NoAzi[i0]
		v1 := fp.NoAzi[i0+1]
		if z1 == z0 {
			return v0, nil
		}
		t := (zenith - z0) / (z1 - z0)
		return v0 + t*(v1-v0), nil
	}

	cell, err := a.aziGrid.NeighborNodes(zenith, azimuth)
	if err != nil {
		return 0, errors.Wrapf(ErrOutOfRange, "(zenith %v, azimuth %v): %v", zenith, azimuth, err)
	}

	xsize := a.aziGrid.XSize()
	f00 := fp.Azi[cell.J0*xsize+cell.I0]
	f10 := fp.Azi[cell.J0*xsize+cell.I1]
	f01 := fp.Azi[cell.J1*xsize+cell.I0]
	f11 := fp.Azi[cell.J1*xsize+cell.I1]

	denom := (cell.X1 - cell.X0) * (cell.Y1 - cell.Y0)
	if denom == 0 {
		return f00, nil
	}

	return ((cell.X1-zenith)*(cell.Y1-azimuth)*f00 +
		(zenith-cell.X0)*(cell.Y1-azimuth)*f10 +
		(cell.X1-zenith)*(azimuth-cell.Y0)*f01 +
		(zenith-cell.X0)*(azimuth-cell.Y0)*f11) / denom, nil
}
