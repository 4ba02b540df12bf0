// Package weight implements the in-memory weight file model and the binary
// codec that serializes it to and from the NEWT cache layout.
//
// A File is constructed wholesale, either by the ingestion pipeline
// (package ingest) or by the decoder here, and is read-only afterwards: no
// partial updates happen once a constructor returns. Encoding a decoded file
// reproduces the original bytes exactly, point order included.
package weight

import (
	"fmt"

	"github.com/geosparse/newt/errs"
	"github.com/geosparse/newt/metadata"
	"github.com/geosparse/newt/section"
	"github.com/geosparse/newt/sparse"
)

// File is the aggregate in-memory model of one weight file: the metadata
// store, the source grid shape, the per-region lookup table and the ordered
// region point lists.
//
// The lookup table always satisfies entry[i].Offset == Σ entry[j].Count for
// j < i. When a File is built from region entries the table is derived from
// them; when it is decoded from a cache the persisted table is read back
// verbatim and becomes the source of truth.
type File struct {
	meta     *metadata.Store
	latCount uint64
	lonCount uint64
	lookup   []section.LookupEntry
	regions  [][]section.GridPoint
}

// New builds a File from freshly extracted region entries, deriving the
// lookup table from them. The metadata store's region id count must match
// the number of region entries; the two are indexed identically.
func New(meta *metadata.Store, latCount, lonCount uint64, regions [][]section.GridPoint) (*File, error) {
	if meta.NumRegions() != len(regions) {
		return nil, fmt.Errorf("%w: %d region ids, %d region entries",
			errs.ErrRegionCountMismatch, meta.NumRegions(), len(regions))
	}

	return &File{
		meta:     meta,
		latCount: latCount,
		lonCount: lonCount,
		lookup:   sparse.BuildLookupTable(regions),
		regions:  regions,
	}, nil
}

// Metadata returns the file's metadata store.
func (f *File) Metadata() *metadata.Store {
	return f.meta
}

// GlobalAttrs returns all global attributes in their original order.
func (f *File) GlobalAttrs() []metadata.Attribute {
	return f.meta.GlobalAttrs()
}

// GlobalAttr returns the first global attribute with the given name.
func (f *File) GlobalAttr(name string) (string, error) {
	return f.meta.GlobalAttr(name)
}

// VariableAttrs returns all attributes of the named variable and whether the
// variable exists.
func (f *File) VariableAttrs(variable string) ([]metadata.Attribute, bool) {
	return f.meta.VariableAttrs(variable)
}

// VariableAttr returns the first attribute with the given name on the named
// variable.
func (f *File) VariableAttr(variable, name string) (string, error) {
	return f.meta.VariableAttr(variable, name)
}

// PolyIDs returns the ordered region id list. The id at index i names the
// region whose points Region(i) returns.
func (f *File) PolyIDs() []string {
	return f.meta.PolyIDs()
}

// Dimensions returns the (latitude, longitude) cell counts of the source
// dense grid. They describe provenance and bounds only; sparse data is
// located through the lookup table.
func (f *File) Dimensions() (uint64, uint64) {
	return f.latCount, f.lonCount
}

// LookupTable returns the per-region (offset, count) pairs.
// The returned slice is owned by the File and must not be mutated.
func (f *File) LookupTable() []section.LookupEntry {
	return f.lookup
}

// Regions returns all region point lists in region-index order.
// The returned slices are owned by the File and must not be mutated.
func (f *File) Regions() [][]section.GridPoint {
	return f.regions
}

// Region returns the point list of one region, or errs.ErrRegionOutOfRange.
func (f *File) Region(index int) ([]section.GridPoint, error) {
	if index < 0 || index >= len(f.regions) {
		return nil, fmt.Errorf("%w: index %d, %d regions", errs.ErrRegionOutOfRange, index, len(f.regions))
	}

	return f.regions[index], nil
}

// NumRegions returns the number of regions.
func (f *File) NumRegions() int {
	return len(f.regions)
}

// NumPoints returns the total number of grid points across all regions.
func (f *File) NumPoints() uint64 {
	return sparse.TotalPoints(f.lookup)
}

// RawPoints returns a flattened copy of every grid point, region-major and
// row-major within a region, i.e. the exact order of the cache's point
// section.
func (f *File) RawPoints() []section.GridPoint {
	points := make([]section.GridPoint, 0, f.NumPoints())
	for _, region := range f.regions {
		points = append(points, region...)
	}

	return points
}

// Summary returns dataset information suitable for structured logging.
func (f *File) Summary() []any {
	return []any{
		"regions", f.NumRegions(),
		"points", f.NumPoints(),
		"latCnt", f.latCount,
		"lonCnt", f.lonCount,
		"globalAttrs", len(f.meta.GlobalAttrs()),
		"variables", len(f.meta.Variables()),
	}
}
