// Package endian provides byte order utilities for the NEWT binary layout.
//
// The package combines encoding/binary's ByteOrder and AppendByteOrder
// interfaces into a single EndianEngine interface so fixed-layout sections
// can be written and parsed with one engine value. The NEWT cache format is
// little-endian throughout, independent of the host byte order.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// The interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by the NEWT format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
