package dns

import (
	"encoding/binary"
	"fmt"

	"dnsveil/internal/helpers"
)

// ResourceRecord is a parsed DNS resource record (RFC 1035 Section 4.1.3).
//
// RData is kept opaque: the steganographic extractor interprets it per record
// type (4-byte addresses, 16-byte addresses, TXT character strings), so the
// codec does not impose any per-type structure. Records are constructed by
// ParseResponse and are immutable from then on; the caller owns them for the
// duration of one decode operation.
type ResourceRecord struct {
	Name  string
	Type  RecordType
	Class RecordClass
	TTL   uint32
	RData []byte
}

// ParseRecord parses a resource record from wire format.
// It advances *off past the parsed record on success.
func ParseRecord(msg []byte, off *int) (ResourceRecord, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return ResourceRecord{}, err
	}
	if *off+10 > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: unexpected EOF while reading record fixed fields", ErrOutOfBounds)
	}
	rr := ResourceRecord{
		Name:  name,
		Type:  RecordType(binary.BigEndian.Uint16(msg[*off : *off+2])),
		Class: RecordClass(binary.BigEndian.Uint16(msg[*off+2 : *off+4])),
		TTL:   binary.BigEndian.Uint32(msg[*off+4 : *off+8]),
	}
	rdlen := int(binary.BigEndian.Uint16(msg[*off+8 : *off+10]))
	*off += 10

	if *off+rdlen > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: declared %d bytes, %d remain", ErrRdataOverflow, rdlen, len(msg)-*off)
	}
	rr.RData = make([]byte, rdlen)
	copy(rr.RData, msg[*off:*off+rdlen])
	*off += rdlen

	return rr, nil
}

// MarshalRecord converts a ResourceRecord to wire-format bytes.
// Used when composing response packets (and by tests crafting replies).
func MarshalRecord(rr ResourceRecord) ([]byte, error) {
	nameWire, err := EncodeName(rr.Name)
	if err != nil {
		return nil, err
	}
	if len(rr.RData) > 65535 {
		return nil, fmt.Errorf("rdata too large: %d bytes (max 65535)", len(rr.RData))
	}

	out := make([]byte, 0, len(nameWire)+10+len(rr.RData))
	out = append(out, nameWire...)
	fixed := make([]byte, 10)
	binary.BigEndian.PutUint16(fixed[0:2], uint16(rr.Type))
	binary.BigEndian.PutUint16(fixed[2:4], uint16(rr.Class))
	binary.BigEndian.PutUint32(fixed[4:8], rr.TTL)
	binary.BigEndian.PutUint16(fixed[8:10], helpers.ClampIntToUint16(len(rr.RData)))
	out = append(out, fixed...)
	out = append(out, rr.RData...)
	return out, nil
}
