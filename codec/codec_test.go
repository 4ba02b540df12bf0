package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	require.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	require.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	require.False(t, ok)
}

func TestCodecsInterchangeable(t *testing.T) {
	type payload struct {
		Names  []string          `json:"names"`
		Lookup map[string]uint64 `json:"lookup"`
	}
	in := payload{
		Names:  []string{"alpha", "beta"},
		Lookup: map[string]uint64{"alpha": 0, "beta": 2},
	}

	stdBytes, err := JSON{}.Marshal(in)
	require.NoError(t, err)
	goBytes, err := GoJSON{}.Marshal(in)
	require.NoError(t, err)

	// Cross-decode: bytes from one codec must decode with the other.
	var out payload
	require.NoError(t, GoJSON{}.Unmarshal(stdBytes, &out))
	require.Equal(t, in, out)

	out = payload{}
	require.NoError(t, JSON{}.Unmarshal(goBytes, &out))
	require.Equal(t, in, out)
}

func TestMustMarshal(t *testing.T) {
	b := MustMarshal(nil, []int{1, 2})
	require.JSONEq(t, "[1,2]", string(b))

	require.Panics(t, func() {
		MustMarshal(JSON{}, make(chan int))
	})
}
