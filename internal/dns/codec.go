package dns

import (
	"fmt"
	"strings"
)

const (
	// MaxLabelLength is the maximum length of a single DNS label (RFC 1035).
	MaxLabelLength = 63

	// MaxNameLength is the maximum length of a domain name in presentation
	// form, dots included.
	MaxNameLength = 253

	// maxEncodedNameLength is the wire-format limit including length
	// prefixes and the terminating zero byte.
	maxEncodedNameLength = 255

	// maxPointerJumps bounds how many compression pointers a single name
	// may chain through. Legitimate messages need one or two; anything past
	// this is a crafted loop.
	maxPointerJumps = 5
)

// EncodeName encodes a domain name to DNS wire format (RFC 1035 Section 3.1).
//
// Names are encoded as a sequence of labels, each preceded by a length byte,
// terminated by a zero-length label:
//
//	"www.example.com" → [3]www[7]example[3]com[0]
//
// An empty name encodes as the root: a single zero byte. Empty labels
// (consecutive or trailing dots) are skipped, matching how the queries are
// generated rather than rejecting operator input.
func EncodeName(domain string) ([]byte, error) {
	out := make([]byte, 0, len(domain)+2)
	for label := range strings.SplitSeq(domain, ".") {
		if label == "" {
			continue
		}
		if len(label) > MaxLabelLength {
			return nil, fmt.Errorf("%w: %q is %d bytes (max %d)", ErrLabelTooLong, label, len(label), MaxLabelLength)
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	out = append(out, 0)

	if len(out) > maxEncodedNameLength {
		return nil, fmt.Errorf("%w: encoded form is %d bytes (max %d)", ErrNameTooLong, len(out), maxEncodedNameLength)
	}
	return out, nil
}

// DecodeName decodes a possibly-compressed domain name from msg starting at
// *off (RFC 1035 Section 4.1.4).
//
// A length byte with its two high bits set (11xxxxxx) is a compression
// pointer: a 14-bit offset into msg where the name continues. On the first
// pointer the position right after the 2-byte pointer field is remembered;
// that is where sequential packet parsing resumes, regardless of where the
// jump target lies. Further pointers only move the read cursor.
//
// On success *off is advanced to the first byte after the name as it appears
// in the packet: past the terminating zero when no jump occurred, or past the
// first pointer's 2-byte field when one did. Name bytes reached through a
// jump are never counted against the caller's offset.
//
// At most maxPointerJumps jumps are followed; crafted circular or
// self-referential chains fail with ErrTooManyJumps after O(1) extra work.
func DecodeName(msg []byte, off *int) (string, error) {
	pos := *off
	if pos < 0 || pos >= len(msg) {
		return "", fmt.Errorf("%w: name offset %d outside message", ErrOutOfBounds, pos)
	}

	labels := make([]string, 0, 6)
	jumped := false
	resumeAt := 0
	jumps := 0

	for {
		if pos >= len(msg) {
			return "", fmt.Errorf("%w: unexpected end of message while decoding name", ErrOutOfBounds)
		}
		length := msg[pos]

		// Zero-length label marks the end of the name.
		if length == 0 {
			pos++
			break
		}

		// Compression pointer: high 2 bits set.
		if length&0xC0 == 0xC0 {
			if pos+1 >= len(msg) {
				return "", fmt.Errorf("%w: compression pointer straddles message end", ErrOutOfBounds)
			}
			target := int(length&0x3F)<<8 | int(msg[pos+1])
			if target >= len(msg) {
				return "", fmt.Errorf("%w: compression pointer target %d outside message", ErrOutOfBounds, target)
			}
			if !jumped {
				resumeAt = pos + 2
				jumped = true
			}
			jumps++
			if jumps > maxPointerJumps {
				return "", fmt.Errorf("%w: followed %d pointers", ErrTooManyJumps, jumps)
			}
			pos = target
			continue
		}

		pos++
		if pos+int(length) > len(msg) {
			return "", fmt.Errorf("%w: label extends past message end", ErrOutOfBounds)
		}
		labels = append(labels, string(msg[pos:pos+int(length)]))
		pos += int(length)
	}

	if jumped {
		*off = resumeAt
	} else {
		*off = pos
	}
	return strings.Join(labels, "."), nil
}

// ValidateName reports whether domain is a well-formed covert-channel query
// name: non-empty labels of at most 63 alphanumeric/hyphen/underscore bytes,
// at most 253 bytes overall. Underscores are permitted because service-style
// names (_spf, _dmarc) are common in real traffic.
func ValidateName(domain string) bool {
	if domain == "" || len(domain) > MaxNameLength {
		return false
	}
	for label := range strings.SplitSeq(domain, ".") {
		if label == "" || len(label) > MaxLabelLength {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
				(c >= '0' && c <= '9') || c == '-' || c == '_'
			if !ok {
				return false
			}
		}
	}
	return true
}
