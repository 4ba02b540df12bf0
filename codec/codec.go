// Package codec centralizes metadata text encoding for the weight cache.
//
// The metadata blob inside a NEWT file is JSON; the codec boundary exists so
// the binary layer can treat text serialization as an opaque collaborator and
// so callers can pick an implementation (standard library or goccy/go-json)
// without touching the format code.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}

	return b
}

// Default is the codec used when the caller does not choose one.
//
// Both built-in codecs produce and consume the same JSON text, so caches
// written with one decode fine with the other; Default only affects speed.
var Default Codec = GoJSON{}
