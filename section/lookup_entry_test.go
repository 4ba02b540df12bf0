package section

import (
	"testing"

	"github.com/geosparse/newt/endian"
	"github.com/geosparse/newt/errs"
	"github.com/stretchr/testify/require"
)

func TestLookupEntry_Bytes(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	entry := LookupEntry{Offset: 2, Count: 5}

	data := entry.Bytes(engine)

	require.Len(t, data, LookupEntrySize)
	require.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0}, data[0:8])
	require.Equal(t, []byte{5, 0, 0, 0, 0, 0, 0, 0}, data[8:16])
}

func TestLookupEntry_WriteToSlice(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	entries := []LookupEntry{
		{Offset: 0, Count: 2},
		{Offset: 2, Count: 0},
		{Offset: 2, Count: 9},
	}

	buf := make([]byte, LookupEntrySize*len(entries))
	offset := 0
	for i := range entries {
		offset = entries[i].WriteToSlice(buf, offset, engine)
	}
	require.Equal(t, len(buf), offset)

	for i := range entries {
		parsed, err := ParseLookupEntry(buf[i*LookupEntrySize:], engine)
		require.NoError(t, err)
		require.Equal(t, entries[i], parsed)
	}
}

func TestParseLookupEntry_TooShort(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := ParseLookupEntry(make([]byte, LookupEntrySize-1), engine)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidLookupEntrySize)
}
