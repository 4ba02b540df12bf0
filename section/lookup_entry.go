package section

import (
	"github.com/geosparse/newt/endian"
	"github.com/geosparse/newt/errs"
)

// LookupEntry records where one region's grid points live inside the flat
// point section. It is a fixed size of 16 bytes.
//
// Offset is the cumulative point count of all preceding regions, so
// entry[i].Offset == Σ entry[j].Count for j < i and entry[0].Offset == 0.
// Multiplying Offset by GridPointSize yields the byte position of the
// region's first point relative to the start of the point section, letting
// readers seek to any region without scanning.
type LookupEntry struct {
	// Offset is the cumulative point count before this region.
	//
	// Offset: 0, Size: 8 bytes
	Offset uint64

	// Count is the number of grid points belonging to this region.
	// A zero count is valid and marks a region with no non-fill cells.
	//
	// Offset: 8, Size: 8 bytes
	Count uint64
}

// Bytes returns the lookup entry as a byte slice using the specified endian
// engine.
func (e *LookupEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [LookupEntrySize]byte // stack allocation, it's faster than heap allocation
	engine.PutUint64(b[0:8], e.Offset)
	engine.PutUint64(b[8:16], e.Count)

	return b[:]
}

// WriteToSlice writes the entry to a pre-allocated slice and returns the next
// write position (offset + 16). This is the most efficient method when
// writing the whole lookup table sequentially.
func (e *LookupEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], e.Offset)
	engine.PutUint64(data[offset+8:offset+16], e.Count)

	return offset + LookupEntrySize
}

// ParseLookupEntry parses a LookupEntry from a byte slice.
//
// Returns errs.ErrInvalidLookupEntrySize if data is shorter than 16 bytes.
func ParseLookupEntry(data []byte, engine endian.EndianEngine) (LookupEntry, error) {
	if len(data) < LookupEntrySize {
		return LookupEntry{}, errs.ErrInvalidLookupEntrySize
	}

	return LookupEntry{
		Offset: engine.Uint64(data[0:8]),
		Count:  engine.Uint64(data[8:16]),
	}, nil
}
