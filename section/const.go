package section

// MagicToken is the 4-byte ASCII token at the start of every weight cache.
var MagicToken = [MagicSize]byte{'N', 'E', 'W', 'T'}

// Offsets and section sizes in the weight cache file.
const (
	MagicSize       = 4  // magic token size in bytes
	HeaderSize      = 52 // fixed header size in bytes, magic included
	LookupEntrySize = 16 // fixed lookup table entry size in bytes
	GridPointSize   = 20 // fixed grid point record size in bytes

	// MetadataOffsetValue is the byte offset where the metadata blob starts.
	// It always equals HeaderSize for a header of this fixed shape, but is
	// still written to (and read back from) the header field.
	MetadataOffsetValue = HeaderSize
)

// Byte offsets of the header fields, relative to the start of the file.
const (
	magicOffset          = 0
	metadataLengthOffset = 4
	regionCountOffset    = 12
	latCountOffset       = 20
	lonCountOffset       = 28
	metadataOffsetOffset = 36
	lookupOffsetOffset   = 44
)
