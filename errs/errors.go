// Package errs defines the sentinel errors shared across the newt packages.
//
// All errors are static sentinels so callers can classify failures with
// errors.Is regardless of how many layers wrapped them with context.
package errs

import "errors"

// Binary cache decoding errors.
var (
	// ErrInvalidMagic indicates the buffer does not start with the "NEWT"
	// magic token and therefore is not a weight cache file.
	ErrInvalidMagic = errors.New("invalid magic token, not a NEWT weight cache")

	// ErrTruncatedData indicates the buffer ends before a header field,
	// the metadata blob, the lookup table, or the point section it declares.
	ErrTruncatedData = errors.New("truncated weight cache data")

	// ErrInvalidEncoding indicates the metadata blob is not valid UTF-8.
	ErrInvalidEncoding = errors.New("metadata blob is not valid UTF-8")

	// ErrMetadataDecode indicates the metadata blob is valid text but could
	// not be decoded into the metadata store structure.
	ErrMetadataDecode = errors.New("malformed metadata blob")

	// ErrRegionCountMismatch indicates the decoded metadata's region id list
	// disagrees with the header's region count.
	ErrRegionCountMismatch = errors.New("region id count does not match header region count")

	// ErrInvalidLookupEntrySize indicates a lookup table entry slice is
	// shorter than the fixed 16-byte entry layout.
	ErrInvalidLookupEntrySize = errors.New("invalid lookup entry size")

	// ErrInvalidPointSize indicates a grid point slice is shorter than the
	// fixed 20-byte point layout.
	ErrInvalidPointSize = errors.New("invalid grid point size")
)

// Dense source ingestion errors.
var (
	// ErrUnsupportedAttrType indicates a source attribute whose value is
	// neither a single string nor a string sequence.
	ErrUnsupportedAttrType = errors.New("unsupported attribute type")

	// ErrMissingField indicates a required variable, dimension or fill value
	// is absent from the dense source.
	ErrMissingField = errors.New("missing required field in dense source")
)

// Metadata store lookup errors.
var (
	// ErrAttrNotFound indicates no attribute with the requested name exists.
	ErrAttrNotFound = errors.New("attribute not found")

	// ErrVariableNotFound indicates the requested variable is not registered
	// in the metadata store.
	ErrVariableNotFound = errors.New("variable not found")

	// ErrRegionOutOfRange indicates a region index outside the model's
	// region list.
	ErrRegionOutOfRange = errors.New("region index out of range")
)
