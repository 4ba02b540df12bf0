// Package section defines the low-level binary structures and constants of
// the NEWT weight cache format.
//
// It handles binary serialization and parsing of the fixed-size header,
// lookup table entries and grid point records, ensuring a consistent
// byte-level representation across platforms. All multi-byte fields are
// little-endian; this is a format contract, not an implementation detail.
//
// # Cache Structure
//
// A NEWT cache consists of a fixed header followed by three sections:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (52 bytes, fixed)                                │
//	│  - Magic "NEWT" (4 bytes)                               │
//	│  - MetadataLength (8 bytes)                             │
//	│  - RegionCount (8 bytes)                                │
//	│  - LatCount, LonCount (8 + 8 bytes, source grid shape)  │
//	│  - MetadataOffset (8 bytes, always 52)                  │
//	│  - LookupOffset (8 bytes, = 52 + MetadataLength)        │
//	├─────────────────────────────────────────────────────────┤
//	│ Metadata blob (MetadataLength bytes)                    │
//	│  - UTF-8 JSON: attributes + region id list              │
//	├─────────────────────────────────────────────────────────┤
//	│ Lookup table (RegionCount × 16 bytes)                   │
//	│  - (cumulative offset u64, point count u64) per region  │
//	├─────────────────────────────────────────────────────────┤
//	│ Grid points (Σ counts × 20 bytes)                       │
//	│  - region-major, row-major within a region              │
//	│  - latIdx u32, lonIdx u32, lat f32, lon f32, weight f32 │
//	└─────────────────────────────────────────────────────────┘
//
// The total point count is never stored explicitly; it is implied by the sum
// of the lookup table counts, and readers must derive read boundaries from it
// rather than trusting the remaining buffer length.
//
// All offset arithmetic of the format lives in this package so higher layers
// never re-derive byte positions ad hoc.
package section
