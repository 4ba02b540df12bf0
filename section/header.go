package section

import (
	"bytes"

	"github.com/geosparse/newt/endian"
	"github.com/geosparse/newt/errs"
)

// Header represents the fixed-size header section at the start of the weight
// cache. All six fields are unsigned 64-bit little-endian values following
// the 4-byte magic token.
type Header struct {
	// MetadataLength is the byte length of the UTF-8 metadata blob.
	MetadataLength uint64 // byte offset 4-11
	// RegionCount is the number of regions (polyids) stored in the cache.
	RegionCount uint64 // byte offset 12-19
	// LatCount is the row count of the source dense grid. Provenance only;
	// it does not participate in locating sparse data.
	LatCount uint64 // byte offset 20-27
	// LonCount is the column count of the source dense grid.
	LonCount uint64 // byte offset 28-35
	// MetadataOffset is the byte offset of the metadata blob, always 52.
	MetadataOffset uint64 // byte offset 36-43
	// LookupOffset is the byte offset of the lookup table,
	// equal to MetadataOffset + MetadataLength.
	LookupOffset uint64 // byte offset 44-51
}

// NewHeader creates a Header for a cache with the given metadata blob length,
// region count and source grid shape. The two offset fields are derived here
// so callers never compute them by hand.
func NewHeader(metadataLength, regionCount, latCount, lonCount uint64) Header {
	return Header{
		MetadataLength: metadataLength,
		RegionCount:    regionCount,
		LatCount:       latCount,
		LonCount:       lonCount,
		MetadataOffset: MetadataOffsetValue,
		LookupOffset:   MetadataOffsetValue + metadataLength,
	}
}

// Parse parses the header from the leading bytes of data.
//
// The magic token is validated before any other field is read: a buffer whose
// first 4 bytes differ from "NEWT" fails with errs.ErrInvalidMagic even if it
// is long enough to hold a full header.
func (h *Header) Parse(data []byte) error {
	if len(data) < MagicSize {
		return errs.ErrTruncatedData
	}
	if !bytes.Equal(data[magicOffset:magicOffset+MagicSize], MagicToken[:]) {
		return errs.ErrInvalidMagic
	}
	if len(data) < HeaderSize {
		return errs.ErrTruncatedData
	}

	engine := endian.GetLittleEndianEngine()
	h.MetadataLength = engine.Uint64(data[metadataLengthOffset : metadataLengthOffset+8])
	h.RegionCount = engine.Uint64(data[regionCountOffset : regionCountOffset+8])
	h.LatCount = engine.Uint64(data[latCountOffset : latCountOffset+8])
	h.LonCount = engine.Uint64(data[lonCountOffset : lonCountOffset+8])
	h.MetadataOffset = engine.Uint64(data[metadataOffsetOffset : metadataOffsetOffset+8])
	h.LookupOffset = engine.Uint64(data[lookupOffsetOffset : lookupOffsetOffset+8])

	return nil
}

// Bytes serializes the Header, magic token included, into a new byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.WriteToSlice(b, 0)

	return b
}

// WriteToSlice writes the header into a pre-allocated slice and returns the
// next write position (offset + HeaderSize). The slice must have space for
// HeaderSize bytes at offset.
func (h *Header) WriteToSlice(data []byte, offset int) int {
	engine := endian.GetLittleEndianEngine()

	copy(data[offset+magicOffset:], MagicToken[:])
	engine.PutUint64(data[offset+metadataLengthOffset:offset+metadataLengthOffset+8], h.MetadataLength)
	engine.PutUint64(data[offset+regionCountOffset:offset+regionCountOffset+8], h.RegionCount)
	engine.PutUint64(data[offset+latCountOffset:offset+latCountOffset+8], h.LatCount)
	engine.PutUint64(data[offset+lonCountOffset:offset+lonCountOffset+8], h.LonCount)
	engine.PutUint64(data[offset+metadataOffsetOffset:offset+metadataOffsetOffset+8], h.MetadataOffset)
	engine.PutUint64(data[offset+lookupOffsetOffset:offset+lookupOffsetOffset+8], h.LookupOffset)

	return offset + HeaderSize
}

// ParseHeader parses a Header from the leading bytes of data.
func ParseHeader(data []byte) (Header, error) {
	h := Header{}
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
