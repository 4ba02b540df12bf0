package section

import (
	"math"
	"testing"

	"github.com/geosparse/newt/endian"
	"github.com/geosparse/newt/errs"
	"github.com/stretchr/testify/require"
)

func TestGridPoint_Bytes(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	point := GridPoint{LatIndex: 1, LonIndex: 3, Lat: 45.5, Lon: -120.25, Weight: 0.75}

	data := point.Bytes(engine)

	require.Len(t, data, GridPointSize)
	require.Equal(t, uint32(1), engine.Uint32(data[0:4]))
	require.Equal(t, uint32(3), engine.Uint32(data[4:8]))
	require.Equal(t, math.Float32bits(45.5), engine.Uint32(data[8:12]))
	require.Equal(t, math.Float32bits(-120.25), engine.Uint32(data[12:16]))
	require.Equal(t, math.Float32bits(0.75), engine.Uint32(data[16:20]))
}

func TestGridPoint_RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	points := []GridPoint{
		{},
		{LatIndex: 0, LonIndex: 1, Lat: 0.5, Lon: 1.5, Weight: 5.0},
		{LatIndex: math.MaxUint32, LonIndex: math.MaxUint32, Lat: -90, Lon: 180, Weight: -9999.0},
		{LatIndex: 7, LonIndex: 9, Lat: float32(math.Inf(1)), Lon: 0, Weight: math.SmallestNonzeroFloat32},
	}

	buf := make([]byte, GridPointSize*len(points))
	offset := 0
	for i := range points {
		offset = points[i].WriteToSlice(buf, offset, engine)
	}
	require.Equal(t, len(buf), offset)

	for i := range points {
		parsed, err := ParseGridPoint(buf[i*GridPointSize:], engine)
		require.NoError(t, err)
		require.Equal(t, points[i], parsed)
	}
}

func TestParseGridPoint_TooShort(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := ParseGridPoint(make([]byte, GridPointSize-1), engine)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidPointSize)
}
