package ingest

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/geosparse/newt/errs"
	"github.com/geosparse/newt/metadata"
	"github.com/geosparse/newt/section"
	"github.com/geosparse/newt/sparse"
	"github.com/geosparse/newt/weight"
)

// Build runs the full ingestion pipeline against a dense source and returns
// the assembled weight file model.
//
// Attribute harvesting happens first: a single failure there (or anywhere
// later) aborts the build with no partial model returned. Dense region grids
// are fetched from the source sequentially, since source handles are not
// assumed to be goroutine-safe, but the O(lat x lon) sparse-extraction scans
// run concurrently; each scan reads its own grid and writes its own region
// entry, and the lookup table is derived only after every region finished.
func Build(src Source) (*weight.File, error) {
	meta, err := harvestMetadata(src)
	if err != nil {
		return nil, err
	}

	ids, err := src.RegionIDs()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		meta.AddPolyID(id)
	}

	lats, err := src.Coordinates(LatVar)
	if err != nil {
		return nil, err
	}
	lons, err := src.Coordinates(LonVar)
	if err != nil {
		return nil, err
	}
	latLen, err := src.DimensionLength(LatVar)
	if err != nil {
		return nil, err
	}
	lonLen, err := src.DimensionLength(LonVar)
	if err != nil {
		return nil, err
	}
	fill, err := src.FillValue(WeightsVar)
	if err != nil {
		return nil, err
	}

	grids := make([][][]float32, len(ids))
	for i := range ids {
		grids[i], err = src.RegionGrid(WeightsVar, i)
		if err != nil {
			return nil, err
		}
	}

	regions := make([][]section.GridPoint, len(ids))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range grids {
		i := i
		g.Go(func() error {
			if err := checkGridShape(grids[i], len(lats), len(lons)); err != nil {
				return fmt.Errorf("region %d (%s): %w", i, ids[i], err)
			}
			regions[i] = sparse.Extract(grids[i], fill, lats, lons)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return weight.New(meta, latLen, lonLen, regions)
}

// harvestMetadata converts the source's global and per-variable attributes
// into a metadata store. The reserved fill-value attribute is skipped for
// variable attributes only; a global attribute with that name is kept
// verbatim.
func harvestMetadata(src Source) (*metadata.Store, error) {
	meta := metadata.NewStore()

	for _, attr := range src.GlobalAttributes() {
		val, err := attrString(attr)
		if err != nil {
			return nil, err
		}
		meta.AddGlobalAttr(attr.Name, val)
	}

	for _, name := range src.Variables() {
		meta.AddVariable(name)
		attrs, err := src.VariableAttributes(name)
		if err != nil {
			return nil, err
		}
		for _, attr := range attrs {
			if attr.Name == FillValueAttr {
				continue
			}
			val, err := attrString(attr)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", name, err)
			}
			meta.AddVariableAttr(name, attr.Name, val)
		}
	}

	return meta, nil
}

// attrString converts a raw attribute value to its string form: a single
// string as-is, a string sequence by its first element, anything else is an
// unsupported attribute type.
func attrString(attr RawAttr) (string, error) {
	switch v := attr.Value.(type) {
	case string:
		return v, nil
	case []string:
		if len(v) == 0 {
			return "", fmt.Errorf("%w: attribute %q is an empty string sequence", errs.ErrUnsupportedAttrType, attr.Name)
		}

		return v[0], nil
	default:
		return "", fmt.Errorf("%w: attribute %q has type %T", errs.ErrUnsupportedAttrType, attr.Name, attr.Value)
	}
}

// checkGridShape validates one region's dense grid against the coordinate
// arrays before extraction indexes into them.
func checkGridShape(grid [][]float32, latLen, lonLen int) error {
	if len(grid) != latLen {
		return fmt.Errorf("grid has %d rows, expected %d", len(grid), latLen)
	}
	for r, row := range grid {
		if len(row) != lonLen {
			return fmt.Errorf("grid row %d has %d columns, expected %d", r, len(row), lonLen)
		}
	}

	return nil
}
