// Package sparse turns dense per-region weight grids into the compact point
// lists stored in a weight cache, and derives the lookup table that locates
// each region inside the flattened point section.
package sparse

import (
	"github.com/geosparse/newt/section"
)

// Extract produces one grid point per cell of the dense grid whose value
// differs from the fill sentinel. The comparison is exact equality, no
// epsilon: a cell that merely rounds to the sentinel is kept.
//
// The grid is addressed grid[lat][lon]; lats and lons are the caller's
// coordinate arrays with len(lats) == len(grid) and len(lons) == len(grid[i]).
// Points are emitted in row-major order (outer latitude, inner longitude).
// That order is load-bearing: it defines the serialized layout, and
// re-encoding must reproduce it for byte-level round-trip equality.
//
// A region with no non-fill cells yields an empty (non-nil) slice; that is a
// valid result, not an error.
func Extract(grid [][]float32, fill float32, lats, lons []float32) []section.GridPoint {
	points := []section.GridPoint{}
	for latIdx, row := range grid {
		for lonIdx, value := range row {
			if value == fill {
				continue
			}
			points = append(points, section.GridPoint{
				LatIndex: uint32(latIdx), //nolint: gosec
				LonIndex: uint32(lonIdx), //nolint: gosec
				Lat:      lats[latIdx],
				Lon:      lons[lonIdx],
				Weight:   value,
			})
		}
	}

	return points
}
