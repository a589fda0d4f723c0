// Package dns implements the DNS wire format used by the covert channel:
// domain-name encoding with compression-pointer decompression, query
// building, and response parsing.
//
// Standards Compliance:
//
//   - RFC 1035: Domain Names - Implementation and Specification (core protocol)
//   - RFC 3596: DNS Extensions to Support IPv6 (AAAA records)
//
// Everything parsed by this package is attacker-controllable: response bytes
// arrive from the network via an external transport. All reads are
// bounds-checked and all failures are reported as errors, never panics.
//
// Error Handling:
//
// Each distinguishable parse failure has a sentinel error below. Call sites
// wrap them with context using fmt.Errorf("...: %w", err) so callers can
// match with errors.Is while still seeing what was being decoded.
package dns

import "errors"

var (
	// ErrTooShort is returned when a message is smaller than the fixed
	// 12-byte DNS header.
	ErrTooShort = errors.New("dns: message too short")

	// ErrOutOfBounds is returned when a length field, pointer, or
	// fixed-width read would extend past the end of the message.
	ErrOutOfBounds = errors.New("dns: read past end of message")

	// ErrLabelTooLong is returned when a domain label exceeds 63 bytes.
	ErrLabelTooLong = errors.New("dns: label too long")

	// ErrNameTooLong is returned when an encoded domain name exceeds the
	// wire-format limit.
	ErrNameTooLong = errors.New("dns: name too long")

	// ErrTooManyJumps is returned when a name contains more compression
	// pointer jumps than the decoder allows. The bound exists to keep
	// adversarial self-referential pointer chains from causing unbounded
	// work.
	ErrTooManyJumps = errors.New("dns: too many compression pointer jumps")

	// ErrRdataOverflow is returned when a record's declared RDATA length
	// extends past the end of the message.
	ErrRdataOverflow = errors.New("dns: rdata length exceeds message")

	// ErrPayloadTooLong is returned when an inline TXT payload exceeds the
	// 255-byte character-string limit.
	ErrPayloadTooLong = errors.New("dns: txt payload too long")
)
