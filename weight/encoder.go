package weight

import (
	"fmt"
	"os"

	"github.com/geosparse/newt/codec"
	"github.com/geosparse/newt/endian"
	"github.com/geosparse/newt/internal/pool"
	"github.com/geosparse/newt/section"
)

// Encode serializes the file into the NEWT cache layout using the default
// metadata codec.
func Encode(f *File) ([]byte, error) {
	return EncodeWith(f, codec.Default)
}

// EncodeWith serializes the file into the NEWT cache layout using the given
// metadata codec. It fails only if the metadata cannot be text-serialized;
// the binary sections themselves are infallible once sizes are known.
func EncodeWith(f *File, c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}

	metaBlob, err := c.Marshal(f.meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	buf := make([]byte, encodedSize(f, len(metaBlob)))
	encodeInto(buf, f, metaBlob)

	return buf, nil
}

// WriteFile encodes the file and writes it to path with the default codec.
func WriteFile(f *File, path string) error {
	return WriteFileWith(f, path, codec.Default)
}

// WriteFileWith encodes the file into a pooled buffer and writes it to path.
//
// Callers must treat any returned error as leaving the destination in an
// undefined state; no partial-write recovery is attempted here.
func WriteFileWith(f *File, path string, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}

	metaBlob, err := c.Marshal(f.meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	bb := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(bb)

	bb.ExtendOrGrow(encodedSize(f, len(metaBlob)))
	encodeInto(bb.Bytes(), f, metaBlob)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create weight cache %s: %w", path, err)
	}
	if _, err := bb.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("write weight cache %s: %w", path, err)
	}

	return out.Close()
}

// encodedSize returns the exact byte size of the encoded cache. The total is
// fully determined by the model, so encoding never reallocates.
func encodedSize(f *File, metadataLength int) int {
	return section.HeaderSize +
		metadataLength +
		section.LookupEntrySize*len(f.lookup) +
		section.GridPointSize*int(f.NumPoints()) //nolint: gosec
}

// encodeInto writes the complete cache into buf, which must be exactly
// encodedSize(f, len(metaBlob)) bytes. All offset arithmetic is delegated to
// the section package; this function only advances the running write cursor.
func encodeInto(buf []byte, f *File, metaBlob []byte) {
	engine := endian.GetLittleEndianEngine()

	header := section.NewHeader(
		uint64(len(metaBlob)),
		uint64(len(f.regions)),
		f.latCount,
		f.lonCount,
	)

	offset := header.WriteToSlice(buf, 0)
	offset += copy(buf[offset:], metaBlob)

	for i := range f.lookup {
		offset = f.lookup[i].WriteToSlice(buf, offset, engine)
	}

	// Points are written region-major, preserving each region's row-major
	// point order so a decode/re-encode cycle is byte-identical.
	for _, region := range f.regions {
		for i := range region {
			offset = region[i].WriteToSlice(buf, offset, engine)
		}
	}
}
