// Package metadata holds the descriptive attributes of a weight file: global
// attributes, per-variable attributes and the ordered list of region ids
// ("polyids").
//
// Attribute order is preserved exactly as harvested from the dense source,
// and duplicate attribute names are allowed; lookups return the first match.
// The store serializes to the JSON shape embedded in the NEWT metadata blob:
// attributes as two-element [name, value] arrays under "global_attrs" and
// "per_variable_attrs", region ids under "polyids".
//
// The store follows a single-writer-then-many-readers discipline: it is
// populated during ingestion or decode and only read afterwards. It is not
// safe for concurrent mutation.
package metadata

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/geosparse/newt/errs"
)

// Attribute is one (name, value) pair. It marshals as a two-element JSON
// array ["name", "value"], matching the on-disk metadata blob shape.
type Attribute struct {
	Name  string
	Value string
}

// MarshalJSON encodes the attribute as a two-element array.
func (a Attribute) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{a.Name, a.Value})
}

// UnmarshalJSON decodes a two-element array into the attribute. Any other
// arity is malformed.
func (a *Attribute) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("attribute pair must have 2 elements, got %d", len(pair))
	}
	a.Name = pair[0]
	a.Value = pair[1]

	return nil
}

// Store holds the metadata of one weight file.
type Store struct {
	globalAttrs []Attribute
	varAttrs    map[string][]Attribute
	polyIDs     []string
}

// storeJSON is the wire shape of the metadata blob.
type storeJSON struct {
	GlobalAttrs      []Attribute            `json:"global_attrs"`
	PerVariableAttrs map[string][]Attribute `json:"per_variable_attrs"`
	PolyIDs          []string               `json:"polyids"`
}

// NewStore creates an empty metadata store.
func NewStore() *Store {
	return &Store{
		globalAttrs: []Attribute{},
		varAttrs:    map[string][]Attribute{},
		polyIDs:     []string{},
	}
}

// AddGlobalAttr appends a global attribute. Duplicate names are allowed;
// GlobalAttr returns the first match.
func (s *Store) AddGlobalAttr(name, value string) {
	s.globalAttrs = append(s.globalAttrs, Attribute{Name: name, Value: value})
}

// AddVariable registers a variable with an empty attribute list.
// Registration is idempotent: re-adding an existing variable keeps its
// attributes.
func (s *Store) AddVariable(name string) {
	if _, ok := s.varAttrs[name]; ok {
		return
	}
	s.varAttrs[name] = []Attribute{}
}

// AddVariableAttr appends an attribute to the named variable, registering
// the variable first if it has not been seen yet.
func (s *Store) AddVariableAttr(variable, name, value string) {
	s.AddVariable(variable)
	s.varAttrs[variable] = append(s.varAttrs[variable], Attribute{Name: name, Value: value})
}

// AddPolyID appends a region id to the ordered region list. The id's index
// position is the canonical region index used by the lookup table and the
// region entries.
func (s *Store) AddPolyID(id string) {
	s.polyIDs = append(s.polyIDs, id)
}

// GlobalAttr returns the first global attribute with the given name,
// or errs.ErrAttrNotFound.
func (s *Store) GlobalAttr(name string) (string, error) {
	for i := range s.globalAttrs {
		if s.globalAttrs[i].Name == name {
			return s.globalAttrs[i].Value, nil
		}
	}

	return "", fmt.Errorf("%w: global attribute %q", errs.ErrAttrNotFound, name)
}

// VariableAttr returns the first attribute with the given name on the named
// variable. It returns errs.ErrVariableNotFound for an unknown variable and
// errs.ErrAttrNotFound for a known variable without such an attribute.
func (s *Store) VariableAttr(variable, name string) (string, error) {
	attrs, ok := s.varAttrs[variable]
	if !ok {
		return "", fmt.Errorf("%w: variable %q", errs.ErrVariableNotFound, variable)
	}
	for i := range attrs {
		if attrs[i].Name == name {
			return attrs[i].Value, nil
		}
	}

	return "", fmt.Errorf("%w: attribute %q of variable %q", errs.ErrAttrNotFound, name, variable)
}

// GlobalAttrs returns all global attributes in harvest order.
// The returned slice is owned by the store and must not be mutated.
func (s *Store) GlobalAttrs() []Attribute {
	return s.globalAttrs
}

// VariableAttrs returns all attributes of the named variable in harvest
// order, and whether the variable is registered.
// The returned slice is owned by the store and must not be mutated.
func (s *Store) VariableAttrs(variable string) ([]Attribute, bool) {
	attrs, ok := s.varAttrs[variable]
	return attrs, ok
}

// Variables returns the registered variable names in sorted order.
func (s *Store) Variables() []string {
	names := make([]string, 0, len(s.varAttrs))
	for name := range s.varAttrs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// PolyIDs returns the ordered region id list.
// The returned slice is owned by the store and must not be mutated.
func (s *Store) PolyIDs() []string {
	return s.polyIDs
}

// NumRegions returns the number of region ids.
func (s *Store) NumRegions() int {
	return len(s.polyIDs)
}

// MarshalJSON encodes the store in the metadata blob wire shape.
func (s *Store) MarshalJSON() ([]byte, error) {
	payload := storeJSON{
		GlobalAttrs:      s.globalAttrs,
		PerVariableAttrs: s.varAttrs,
		PolyIDs:          s.polyIDs,
	}
	// Never emit null for empty sections; readers expect arrays/objects.
	if payload.GlobalAttrs == nil {
		payload.GlobalAttrs = []Attribute{}
	}
	if payload.PerVariableAttrs == nil {
		payload.PerVariableAttrs = map[string][]Attribute{}
	}
	if payload.PolyIDs == nil {
		payload.PolyIDs = []string{}
	}

	return json.Marshal(payload)
}

// UnmarshalJSON decodes the metadata blob wire shape into the store,
// replacing any existing content.
func (s *Store) UnmarshalJSON(data []byte) error {
	var payload storeJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	s.globalAttrs = payload.GlobalAttrs
	s.varAttrs = payload.PerVariableAttrs
	s.polyIDs = payload.PolyIDs
	if s.globalAttrs == nil {
		s.globalAttrs = []Attribute{}
	}
	if s.varAttrs == nil {
		s.varAttrs = map[string][]Attribute{}
	}
	if s.polyIDs == nil {
		s.polyIDs = []string{}
	}

	return nil
}
