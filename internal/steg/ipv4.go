package steg

// IPv4Size is the steganographic capacity of one A record.
const IPv4Size = 4

// EncodeToIPv4 packs up to 4 payload bytes starting at offset into an
// A-record address value.
//
// When fewer than 4 bytes remain, the unused positions are not left zero:
// zero bytes there would produce addresses like 1.2.0.0 that stand out. They
// are filled from the 192.168 private-range pattern instead, so a short tail
// still looks like a plausible LAN address:
//
//	[0x01, 0x02] → 1.2.192.168
func EncodeToIPv4(payload []byte, offset int) []byte {
	addr := make([]byte, IPv4Size)
	used := 0
	for ; used < IPv4Size && offset+used < len(payload); used++ {
		addr[used] = payload[offset+used]
	}

	// Unused positions alternate 192/168 rather than staying zero.
	pad := [2]byte{192, 168}
	for i := used; i < IPv4Size; i++ {
		addr[i] = pad[(i-used)%2]
	}
	return addr
}

// DecodeFromIPv4 recovers the payload bytes from an A-record address.
// It is the identity on exactly 4 bytes; anything else yields nothing.
func DecodeFromIPv4(addr []byte) []byte {
	if len(addr) != IPv4Size {
		return nil
	}
	return addr
}

// IsSteganographicIPv4 is the receive-side heuristic: addresses in the
// private ranges 10/8, 172.16/12 and 192.168/16 are the ones this channel
// generates, so only those are treated as carrying payload.
func IsSteganographicIPv4(addr []byte) bool {
	if len(addr) != IPv4Size {
		return false
	}
	return (addr[0] == 192 && addr[1] == 168) ||
		addr[0] == 10 ||
		(addr[0] == 172 && addr[1] >= 16 && addr[1] <= 31)
}
