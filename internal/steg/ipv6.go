package steg

// IPv6Size is the steganographic capacity of one AAAA record.
const IPv6Size = 16

// EncodeToIPv6 packs up to 16 payload bytes starting at offset into an
// AAAA-record address value. Short tails are filled from the link-local
// fe80 pattern, the IPv6 analogue of the private-range padding used for
// A records.
func EncodeToIPv6(payload []byte, offset int) []byte {
	addr := make([]byte, IPv6Size)
	used := 0
	for ; used < IPv6Size && offset+used < len(payload); used++ {
		addr[used] = payload[offset+used]
	}

	pad := [2]byte{0xfe, 0x80}
	for i := used; i < IPv6Size; i++ {
		addr[i] = pad[(i-used)%2]
	}
	return addr
}

// DecodeFromIPv6 recovers the payload bytes from an AAAA-record address.
// It is the identity on exactly 16 bytes; anything else yields nothing.
func DecodeFromIPv6(addr []byte) []byte {
	if len(addr) != IPv6Size {
		return nil
	}
	return addr
}

// IsSteganographicIPv6 recognizes the prefixes this channel generates:
// fe80::/10 (link-local) and fc00::/7 (unique local).
func IsSteganographicIPv6(addr []byte) bool {
	if len(addr) != IPv6Size {
		return false
	}
	return (addr[0] == 0xfe && addr[1]&0xc0 == 0x80) ||
		addr[0] == 0xfc || addr[0] == 0xfd
}
