package section

import (
	"math"

	"github.com/geosparse/newt/endian"
	"github.com/geosparse/newt/errs"
)

// GridPoint is one retained (non-fill) cell of a region's dense weight grid.
// It is a fixed size of 20 bytes: two unsigned 32-bit grid indices followed
// by three 32-bit floats.
type GridPoint struct {
	// LatIndex is the row index of the cell in the source dense grid.
	//
	// Offset: 0, Size: 4 bytes
	LatIndex uint32

	// LonIndex is the column index of the cell in the source dense grid.
	//
	// Offset: 4, Size: 4 bytes
	LonIndex uint32

	// Lat is the geographic latitude of the cell, taken from the source's
	// per-row coordinate array.
	//
	// Offset: 8, Size: 4 bytes
	Lat float32

	// Lon is the geographic longitude of the cell, taken from the source's
	// per-column coordinate array.
	//
	// Offset: 12, Size: 4 bytes
	Lon float32

	// Weight is the interpolation weight of the cell.
	//
	// Offset: 16, Size: 4 bytes
	Weight float32
}

// Bytes returns the grid point as a byte slice using the specified endian
// engine.
func (p *GridPoint) Bytes(engine endian.EndianEngine) []byte {
	var b [GridPointSize]byte // stack allocation, it's faster than heap allocation
	engine.PutUint32(b[0:4], p.LatIndex)
	engine.PutUint32(b[4:8], p.LonIndex)
	engine.PutUint32(b[8:12], math.Float32bits(p.Lat))
	engine.PutUint32(b[12:16], math.Float32bits(p.Lon))
	engine.PutUint32(b[16:20], math.Float32bits(p.Weight))

	return b[:]
}

// WriteToSlice writes the point to a pre-allocated slice and returns the next
// write position (offset + 20). This is the most efficient method when
// writing the flat point section sequentially.
func (p *GridPoint) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint32(data[offset:offset+4], p.LatIndex)
	engine.PutUint32(data[offset+4:offset+8], p.LonIndex)
	engine.PutUint32(data[offset+8:offset+12], math.Float32bits(p.Lat))
	engine.PutUint32(data[offset+12:offset+16], math.Float32bits(p.Lon))
	engine.PutUint32(data[offset+16:offset+20], math.Float32bits(p.Weight))

	return offset + GridPointSize
}

// ParseGridPoint parses a GridPoint from a byte slice.
//
// Returns errs.ErrInvalidPointSize if data is shorter than 20 bytes.
func ParseGridPoint(data []byte, engine endian.EndianEngine) (GridPoint, error) {
	if len(data) < GridPointSize {
		return GridPoint{}, errs.ErrInvalidPointSize
	}

	return GridPoint{
		LatIndex: engine.Uint32(data[0:4]),
		LonIndex: engine.Uint32(data[4:8]),
		Lat:      math.Float32frombits(engine.Uint32(data[8:12])),
		Lon:      math.Float32frombits(engine.Uint32(data[12:16])),
		Weight:   math.Float32frombits(engine.Uint32(data[16:20])),
	}, nil
}
