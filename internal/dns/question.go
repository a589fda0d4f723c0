package dns

import (
	"encoding/binary"
	"fmt"
)

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
type Question struct {
	Name  string
	Type  RecordType
	Class RecordClass
}

// Marshal serializes the question to DNS wire format.
func (q Question) Marshal() ([]byte, error) {
	name, err := EncodeName(q.Name)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, len(name)+4)
	b = append(b, name...)
	var fixed [4]byte
	binary.BigEndian.PutUint16(fixed[0:2], uint16(q.Type))
	binary.BigEndian.PutUint16(fixed[2:4], uint16(q.Class))
	return append(b, fixed[:]...), nil
}

// skipQuestion advances *off past one encoded question without retaining it.
// Response parsing only needs to step over the echoed question section.
func skipQuestion(msg []byte, off *int) error {
	if _, err := DecodeName(msg, off); err != nil {
		return err
	}
	if *off+4 > len(msg) {
		return fmt.Errorf("%w: unexpected EOF while skipping question", ErrOutOfBounds)
	}
	*off += 4 // type(2) + class(2)
	return nil
}
