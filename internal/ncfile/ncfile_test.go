package ncfile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geosparse/newt/ingest"
)

// fakeAttrMap is an ordered attribute map fixture.
type fakeAttrMap struct {
	keys []string
	vals map[string]any
}

func (m fakeAttrMap) Keys() []string { return m.keys }

func (m fakeAttrMap) Get(key string) (any, bool) {
	val, ok := m.vals[key]
	return val, ok
}

func TestAttrList(t *testing.T) {
	attrs := fakeAttrMap{
		keys: []string{"title", "history", "_FillValue"},
		vals: map[string]any{
			"title":      "aggregation weights",
			"history":    []string{"created", "revised"},
			"_FillValue": float32(-9999.0),
		},
	}

	got := attrList(attrs)

	// Declared key order is preserved and values keep their native type;
	// string conversion and reserved-name filtering happen downstream.
	require.Equal(t, []ingest.RawAttr{
		{Name: "title", Value: "aggregation weights"},
		{Name: "history", Value: []string{"created", "revised"}},
		{Name: "_FillValue", Value: float32(-9999.0)},
	}, got)
}

func TestAttrList_Empty(t *testing.T) {
	got := attrList(fakeAttrMap{})
	require.Empty(t, got)
	require.NotNil(t, got)
}

func TestAttrList_SkipsMissingKeys(t *testing.T) {
	attrs := fakeAttrMap{
		keys: []string{"present", "phantom"},
		vals: map[string]any{"present": "yes"},
	}

	got := attrList(attrs)
	require.Equal(t, []ingest.RawAttr{{Name: "present", Value: "yes"}}, got)
}
