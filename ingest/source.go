// Package ingest builds the in-memory weight file model from a dense source:
// it harvests attributes and region ids, extracts the sparse points of every
// region and assembles a weight.File ready for encoding.
//
// The dense source itself is abstracted behind the Source interface so the
// pipeline can be driven by the NetCDF adapter in production and by fixtures
// in tests.
package ingest

// Names of the variables a regridding weight source must carry, and the
// reserved fill-value attribute name.
const (
	// WeightsVar is the 3-D (region, lat, lon) weight variable. It declares
	// the fill-value sentinel that marks "no data" cells.
	WeightsVar = "regridweights"

	// PolyIDVar is the 1-D variable holding the region id strings.
	PolyIDVar = "polyid"

	// LatVar and LonVar are the 1-D coordinate variables; they double as the
	// names of the grid dimensions.
	LatVar = "lat"
	LonVar = "lon"

	// FillValueAttr is the reserved attribute carrying a variable's fill
	// sentinel. It is skipped when harvesting variable attributes: the
	// sentinel is consumed by extraction, not descriptive metadata.
	FillValueAttr = "_FillValue"
)

// RawAttr is one source attribute before string conversion. Value keeps the
// source's native representation; the pipeline accepts a single string or a
// string sequence (first element wins) and rejects everything else.
type RawAttr struct {
	Name  string
	Value any
}

// Source is the dense-source collaborator consumed by Build. Implementations
// are not assumed to be safe for concurrent use; Build serializes all calls.
type Source interface {
	// GlobalAttributes returns the file-level attributes in declaration order.
	GlobalAttributes() []RawAttr

	// Variables returns the names of all variables in the source.
	Variables() []string

	// VariableAttributes returns the named variable's attributes in
	// declaration order.
	VariableAttributes(name string) ([]RawAttr, error)

	// Coordinates returns the named 1-D coordinate array.
	Coordinates(name string) ([]float32, error)

	// DimensionLength returns the length of the named dimension.
	DimensionLength(name string) (uint64, error)

	// FillValue returns the fill sentinel declared by the named variable.
	FillValue(name string) (float32, error)

	// RegionIDs returns the ordered region id strings.
	RegionIDs() ([]string, error)

	// RegionGrid returns the named variable's dense 2-D (lat, lon) grid for
	// one region index.
	RegionGrid(name string, region int) ([][]float32, error)
}
