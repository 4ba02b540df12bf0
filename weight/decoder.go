package weight

import (
	"fmt"
	"math"
	"os"
	"unicode/utf8"

	"github.com/geosparse/newt/codec"
	"github.com/geosparse/newt/endian"
	"github.com/geosparse/newt/errs"
	"github.com/geosparse/newt/metadata"
	"github.com/geosparse/newt/section"
)

// Decoder decodes an encoded weight cache and reconstructs a File.
//
// Every field read is bounds-checked against the buffer: the decoder derives
// read boundaries from the header and lookup table counts and never trusts
// the buffer's remaining length. Reads that would pass the buffer end fail
// with errs.ErrTruncatedData.
//
// Note: the Decoder is not reusable. After calling Decode, create a new
// decoder for further decoding.
type Decoder struct {
	data   []byte
	engine endian.EndianEngine
	codec  codec.Codec
	header section.Header
}

// NewDecoder creates a Decoder for the given encoded data with the default
// metadata codec.
//
// The magic token is validated before anything else: a buffer that does not
// start with "NEWT" fails with errs.ErrInvalidMagic without any further
// header fields being read.
func NewDecoder(data []byte) (*Decoder, error) {
	return NewDecoderWith(data, codec.Default)
}

// NewDecoderWith creates a Decoder using the given metadata codec.
func NewDecoderWith(data []byte, c codec.Codec) (*Decoder, error) {
	if c == nil {
		c = codec.Default
	}

	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
		codec:  c,
		header: header,
	}, nil
}

// Header returns the parsed cache header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Decode decodes the data into a File.
//
// On any failure no usable partial model is returned; construction either
// fully succeeds or yields only the error.
func (d *Decoder) Decode() (*File, error) {
	meta, err := d.decodeMetadata()
	if err != nil {
		return nil, err
	}

	lookup, err := d.decodeLookupTable()
	if err != nil {
		return nil, err
	}

	if meta.NumRegions() != len(lookup) {
		return nil, fmt.Errorf("%w: %d region ids, %d lookup entries",
			errs.ErrRegionCountMismatch, meta.NumRegions(), len(lookup))
	}

	regions, err := d.decodeRegions(lookup)
	if err != nil {
		return nil, err
	}

	return &File{
		meta:     meta,
		latCount: d.header.LatCount,
		lonCount: d.header.LonCount,
		lookup:   lookup,
		regions:  regions,
	}, nil
}

// slice returns data[offset : offset+length] after checking, with overflow
// in mind, that the range lies inside the buffer.
func (d *Decoder) slice(offset, length uint64) ([]byte, error) {
	end := offset + length
	if end < offset || end > uint64(len(d.data)) {
		return nil, errs.ErrTruncatedData
	}

	return d.data[offset:end], nil
}

func (d *Decoder) decodeMetadata() (*metadata.Store, error) {
	blob, err := d.slice(d.header.MetadataOffset, d.header.MetadataLength)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(blob) {
		return nil, errs.ErrInvalidEncoding
	}

	meta := metadata.NewStore()
	if err := d.codec.Unmarshal(blob, meta); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMetadataDecode, err)
	}

	return meta, nil
}

func (d *Decoder) decodeLookupTable() ([]section.LookupEntry, error) {
	count := d.header.RegionCount
	if count > math.MaxInt64/section.LookupEntrySize {
		// The declared table could never fit in any buffer.
		return nil, errs.ErrTruncatedData
	}

	tableBytes, err := d.slice(d.header.LookupOffset, count*section.LookupEntrySize)
	if err != nil {
		return nil, err
	}

	// The persisted table is read back verbatim; it is the source of truth
	// for locating regions, not a value re-derived from the point section.
	lookup := make([]section.LookupEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		entry, err := section.ParseLookupEntry(tableBytes[i*section.LookupEntrySize:], d.engine)
		if err != nil {
			return nil, err
		}
		lookup = append(lookup, entry)
	}

	return lookup, nil
}

func (d *Decoder) decodeRegions(lookup []section.LookupEntry) ([][]section.GridPoint, error) {
	// The point section starts right after the lookup table. The total point
	// count is implied by the lookup counts, never by len(data).
	offset := d.header.LookupOffset + uint64(len(lookup))*section.LookupEntrySize

	regions := make([][]section.GridPoint, len(lookup))
	for i, entry := range lookup {
		if entry.Count > math.MaxInt64/section.GridPointSize {
			return nil, errs.ErrTruncatedData
		}

		regionBytes, err := d.slice(offset, entry.Count*section.GridPointSize)
		if err != nil {
			return nil, err
		}

		points := make([]section.GridPoint, 0, entry.Count)
		for p := uint64(0); p < entry.Count; p++ {
			point, err := section.ParseGridPoint(regionBytes[p*section.GridPointSize:], d.engine)
			if err != nil {
				return nil, err
			}
			points = append(points, point)
		}

		regions[i] = points
		offset += entry.Count * section.GridPointSize
	}

	return regions, nil
}

// Decode decodes an encoded weight cache with the default metadata codec.
func Decode(data []byte) (*File, error) {
	return DecodeWith(data, codec.Default)
}

// DecodeWith decodes an encoded weight cache with the given metadata codec.
func DecodeWith(data []byte, c codec.Codec) (*File, error) {
	decoder, err := NewDecoderWith(data, c)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}

// ReadFile reads and decodes the weight cache at path with the default codec.
func ReadFile(path string) (*File, error) {
	return ReadFileWith(path, codec.Default)
}

// ReadFileWith reads and decodes the weight cache at path.
func ReadFileWith(path string, c codec.Codec) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weight cache %s: %w", path, err)
	}

	return DecodeWith(data, c)
}
