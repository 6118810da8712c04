package ionex

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigFixture(values ...int) string {
	return buildFixture(fixtureParams{
		lon1: -180, lon2: 180, dlon: 5,
		lat1: 87.5, lat2: -87.5, dlat: -2.5,
		exponent:        -1,
		intervalSeconds: 3600,
		mapValues:       values,
	})
}

func TestInterpolate_ConcreteEndToEndExample(t *testing.T) {
	data := bigFixture(120, 160)
	dec, err := NewDecoder(bytes.NewReader([]byte(data)))
	require.NoError(t, err)

	assert.Equal(t, 73, dec.grd.XSize())
	assert.Equal(t, 71, dec.grd.YSize())

	points := []Point{{Lon: 23.68, Lat: 32.14}}
	mid := dec.FirstEpoch().AddSeconds(1800)

	fileEpochs, fileValues, err := dec.GetTecAt(points)
	require.NoError(t, err)
	require.Len(t, fileEpochs, 2)

	span := fileEpochs[1].DeltaSeconds(fileEpochs[0])
	alpha := fileEpochs[1].DeltaSeconds(mid) / span
	beta := mid.DeltaSeconds(fileEpochs[0]) / span
	got := alpha*fileValues[0][0] + beta*fileValues[0][1]

	assert.InDelta(t, 140, got, 1e-9)

	iv := 1800
	from := dec.FirstEpoch()
	to := dec.LastEpoch()
	epochsOut, valuesOut, err := dec.Interpolate(points, &from, &to, &iv)
	require.NoError(t, err)
	require.Len(t, epochsOut, 3)
	assert.True(t, epochsOut[1].Equal(mid))
	assert.InDelta(t, 140, valuesOut[0][1], 1e-9)
}

func TestGetTecAt_UniformMapsReturnTheirValue(t *testing.T) {
	data := bigFixture(120, 160)
	dec, err := NewDecoder(bytes.NewReader([]byte(data)))
	require.NoError(t, err)

	points := []Point{{Lon: 23.68, Lat: 32.14}, {Lon: -180, Lat: 87.5}, {Lon: 180, Lat: -87.5}}
	epochs, values, err := dec.GetTecAt(points)
	require.NoError(t, err)
	require.Len(t, epochs, 2)

	for p := range points {
		assert.InDelta(t, 120, values[p][0], 1e-9)
		assert.InDelta(t, 160, values[p][1], 1e-9)
	}
}

func TestInterpolate_TemporalIdentityAtNativeCadence(t *testing.T) {
	data := bigFixture(100, 130, 170)
	dec, err := NewDecoder(bytes.NewReader([]byte(data)))
	require.NoError(t, err)

	points := []Point{{Lon: 0, Lat: 0}}
	native := 0
	from := dec.FirstEpoch()
	to := dec.LastEpoch()

	epochsOut, valuesOut, err := dec.Interpolate(points, &from, &to, &native)
	require.NoError(t, err)

	epochsGet, valuesGet, err := dec.GetTecAt(points)
	require.NoError(t, err)

	require.Len(t, epochsOut, len(epochsGet))
	for i := range epochsOut {
		assert.True(t, epochsOut[i].Equal(epochsGet[i]))
		assert.InDelta(t, valuesGet[0][i], valuesOut[0][i], 1e-9)
	}
}

func TestInterpolate_FromEqualToReturnsEmptyWithoutStreamTraversal(t *testing.T) {
	data := bigFixture(100, 130)
	dec, err := NewDecoder(bytes.NewReader([]byte(data)))
	require.NoError(t, err)

	from := dec.FirstEpoch()
	epochs, values, err := dec.Interpolate([]Point{{Lon: 0, Lat: 0}}, &from, &from, nil)
	require.NoError(t, err)
	assert.Empty(t, epochs)
	require.Len(t, values, 1)
	assert.Empty(t, values[0])
}

func TestInterpolate_FromAfterToIsInvalidRange(t *testing.T) {
	data := bigFixture(100, 130)
	dec, err := NewDecoder(bytes.NewReader([]byte(data)))
	require.NoError(t, err)

	from := dec.LastEpoch()
	to := dec.FirstEpoch()
	_, _, err = dec.Interpolate([]Point{{Lon: 0, Lat: 0}}, &from, &to, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetTecAt_MissingValuePassesThroughOtherPointsUnaffected(t *testing.T) {
	data := bigFixture(missingValue, 160)
	dec, err := NewDecoder(bytes.NewReader([]byte(data)))
	require.NoError(t, err)

	points := []Point{{Lon: 23.68, Lat: 32.14}, {Lon: -180, Lat: 87.5}}
	epochs, values, err := dec.GetTecAt(points)
	require.NoError(t, err)
	require.Len(t, epochs, 2)

	assert.Equal(t, float64(missingValue), values[0][0])
	assert.Equal(t, float64(missingValue), values[1][0])
	assert.InDelta(t, 160, values[0][1], 1e-9)
	assert.InDelta(t, 160, values[1][1], 1e-9)
}

func TestInterpolate_MissingEndpointYieldsSentinelInsteadOfBlending(t *testing.T) {
	data := bigFixture(missingValue, 160)
	dec, err := NewDecoder(bytes.NewReader([]byte(data)))
	require.NoError(t, err)

	points := []Point{{Lon: 23.68, Lat: 32.14}}
	mid := dec.FirstEpoch().AddSeconds(1800)
	iv := 1800
	from := dec.FirstEpoch()
	to := dec.LastEpoch()

	epochsOut, valuesOut, err := dec.Interpolate(points, &from, &to, &iv)
	require.NoError(t, err)
	require.Len(t, epochsOut, 3)
	assert.True(t, epochsOut[1].Equal(mid))
	assert.Equal(t, float64(missingValue), valuesOut[0][1])
}

func TestInterpolate_LinearBlendAcrossUnevenValues(t *testing.T) {
	data := bigFixture(0, 100)
	dec, err := NewDecoder(bytes.NewReader([]byte(data)))
	require.NoError(t, err)

	quarter := dec.FirstEpoch().AddSeconds(900)
	iv := 900
	from := dec.FirstEpoch()
	to := dec.LastEpoch()
	epochs, values, err := dec.Interpolate([]Point{{Lon: 0, Lat: 0}}, &from, &to, &iv)
	require.NoError(t, err)

	found := false
	for i, ep := range epochs {
		if ep.Equal(quarter) {
			found = true
			assert.InDelta(t, 25, values[0][i], 1e-9)
		}
	}
	assert.True(t, found, "expected an output epoch at the 900s mark")
}
