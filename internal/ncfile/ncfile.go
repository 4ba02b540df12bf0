// Package ncfile adapts a NetCDF weight file to the ingest.Source interface.
//
// The adapter is deliberately thin: it opens the file with the pure-Go
// NetCDF reader, resolves the variables the ingestion pipeline asks for, and
// converts attribute and coordinate values into the small set of Go types
// the pipeline consumes. All schema interpretation (which variables matter,
// which attributes are reserved) stays in the ingest package.
package ncfile

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/geosparse/newt/errs"
	"github.com/geosparse/newt/ingest"
)

// Reader exposes one open NetCDF group as an ingest.Source.
//
// Variable getters are cached on first use. Region grids are fetched one
// region at a time via GetSlice so a large weights variable never has to be
// materialized in full. The reader is not safe for concurrent use; the
// ingestion pipeline fetches grids sequentially.
type Reader struct {
	group   api.Group
	getters map[string]api.VarGetter
}

// Open opens the NetCDF file at path and wraps it as a Reader.
func Open(path string) (*Reader, error) {
	group, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open netcdf %s: %w", path, err)
	}

	return &Reader{
		group:   group,
		getters: make(map[string]api.VarGetter),
	}, nil
}

// Close releases the underlying NetCDF handle.
func (r *Reader) Close() {
	r.group.Close()
}

func (r *Reader) getter(name string) (api.VarGetter, error) {
	if vg, ok := r.getters[name]; ok {
		return vg, nil
	}

	vg, err := r.group.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("%w: variable %q: %v", errs.ErrMissingField, name, err)
	}
	r.getters[name] = vg

	return vg, nil
}

// attributeMap is the slice of api.AttributeMap the adapter consumes.
type attributeMap interface {
	Keys() []string
	Get(key string) (any, bool)
}

// attrList flattens an attribute map into RawAttr pairs in the map's
// declared key order. Values keep their native type; classification happens
// in the ingest package.
func attrList(attrs attributeMap) []ingest.RawAttr {
	keys := attrs.Keys()
	out := make([]ingest.RawAttr, 0, len(keys))
	for _, key := range keys {
		val, ok := attrs.Get(key)
		if !ok {
			continue
		}
		out = append(out, ingest.RawAttr{Name: key, Value: val})
	}

	return out
}

// GlobalAttributes returns the group-level attributes in file order.
func (r *Reader) GlobalAttributes() []ingest.RawAttr {
	return attrList(r.group.Attributes())
}

// Variables lists every variable defined in the group.
func (r *Reader) Variables() []string {
	return r.group.ListVariables()
}

// VariableAttributes returns the attributes attached to one variable.
func (r *Reader) VariableAttributes(name string) ([]ingest.RawAttr, error) {
	vg, err := r.getter(name)
	if err != nil {
		return nil, err
	}

	return attrList(vg.Attributes()), nil
}

// Coordinates reads a 1-D coordinate variable as float32 values. NetCDF
// files written with double-precision coordinates are narrowed.
func (r *Reader) Coordinates(name string) ([]float32, error) {
	vg, err := r.getter(name)
	if err != nil {
		return nil, err
	}
	vals, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("read coordinate %q: %w", name, err)
	}

	switch v := vals.(type) {
	case []float32:
		return v, nil
	case []float64:
		out := make([]float32, len(v))
		for i, x := range v {
			out[i] = float32(x)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("coordinate %q has unexpected type %T", name, vals)
	}
}

// DimensionLength reports the length of a coordinate variable's dimension.
func (r *Reader) DimensionLength(name string) (uint64, error) {
	vg, err := r.getter(name)
	if err != nil {
		return 0, err
	}

	return uint64(vg.Len()), nil
}

// FillValue reads the fill sentinel attribute of a variable.
func (r *Reader) FillValue(name string) (float32, error) {
	vg, err := r.getter(name)
	if err != nil {
		return 0, err
	}

	val, ok := vg.Attributes().Get(ingest.FillValueAttr)
	if !ok {
		return 0, fmt.Errorf("%w: variable %q has no %s attribute",
			errs.ErrMissingField, name, ingest.FillValueAttr)
	}

	switch v := val.(type) {
	case float32:
		return v, nil
	case float64:
		return float32(v), nil
	case []float32:
		if len(v) == 1 {
			return v[0], nil
		}
	case []float64:
		if len(v) == 1 {
			return float32(v[0]), nil
		}
	}

	return 0, fmt.Errorf("%w: %s attribute has type %T",
		errs.ErrUnsupportedAttrType, ingest.FillValueAttr, val)
}

// RegionIDs reads the region identifier variable as strings.
func (r *Reader) RegionIDs() ([]string, error) {
	vg, err := r.getter(ingest.PolyIDVar)
	if err != nil {
		return nil, err
	}
	vals, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ingest.PolyIDVar, err)
	}

	ids, ok := vals.([]string)
	if !ok {
		return nil, fmt.Errorf("%s has unexpected type %T", ingest.PolyIDVar, vals)
	}

	return ids, nil
}

// RegionGrid reads one region's dense (lat, lon) slab of the weights
// variable.
func (r *Reader) RegionGrid(name string, region int) ([][]float32, error) {
	vg, err := r.getter(name)
	if err != nil {
		return nil, err
	}

	begin := int64(region)
	slab, err := vg.GetSlice(begin, begin+1)
	if err != nil {
		return nil, fmt.Errorf("read %s region %d: %w", name, region, err)
	}

	grids, ok := slab.([][][]float32)
	if !ok || len(grids) != 1 {
		return nil, fmt.Errorf("%s region %d has unexpected shape %T", name, region, slab)
	}

	return grids[0], nil
}
