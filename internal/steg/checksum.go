package steg

import (
	"encoding/binary"
	"hash/crc32"
)

// ChecksumSize is the width of a fragment checksum in bytes.
const ChecksumSize = 4

// Checksum computes the fragment checksum: standard CRC-32 (polynomial
// 0xEDB88320, reflected) stored as 4 little-endian bytes. This matches the
// wire format peers already speak, so it must not change.
func Checksum(data []byte) [ChecksumSize]byte {
	var sum [ChecksumSize]byte
	binary.LittleEndian.PutUint32(sum[:], crc32.ChecksumIEEE(data))
	return sum
}

// VerifyChecksum reports whether data still hashes to sum.
func VerifyChecksum(data []byte, sum [ChecksumSize]byte) bool {
	return Checksum(data) == sum
}
