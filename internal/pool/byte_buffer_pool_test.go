package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	require.Equal(t, 0, bb.Len())

	bb.ExtendOrGrow(4)
	require.Equal(t, 4, bb.Len())

	// Exceeds initial capacity; must grow and preserve contents.
	copy(bb.B, []byte{1, 2, 3, 4})
	bb.ExtendOrGrow(64)
	require.Equal(t, 68, bb.Len())
	require.Equal(t, []byte{1, 2, 3, 4}, bb.Bytes()[:4])
}

func TestByteBuffer_Extend(t *testing.T) {
	bb := NewByteBuffer(8)

	require.True(t, bb.Extend(8))
	require.False(t, bb.Extend(1))
	require.Equal(t, 8, bb.Len())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.ExtendOrGrow(3)
	copy(bb.B, []byte{7, 8, 9})

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.Equal(t, []byte{7, 8, 9}, out.Bytes())
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.ExtendOrGrow(10)
	p.Put(bb)

	reused := p.Get()
	require.Equal(t, 0, reused.Len(), "pooled buffers come back reset")

	// Oversized buffers are dropped, nil puts are ignored.
	big := NewByteBuffer(128)
	p.Put(big)
	p.Put(nil)
}

func TestEncodeBufferPool(t *testing.T) {
	bb := GetEncodeBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	PutEncodeBuffer(bb)
}
