// Package steg implements the steganographic fragment engine: it maps an
// opaque byte payload onto the capacity and shape of DNS record types
// (A, AAAA, TXT) and reassembles it from parsed resource records.
//
// The package is a pure transformation layer. It never touches the network;
// it consumes payload bytes from the caller and produces record-shaped
// values the packet codec wraps into wire-format queries.
//
// Two reconstruction policies coexist deliberately:
//
//   - The engine's own decoder (Encoder.DecodeFragments) tolerates loss: a
//     fragment failing its checksum is silently dropped and the rest are
//     still assembled.
//   - The extractor's strict path (ReconstructFromFragments) requires a
//     gap-free id sequence and fails hard otherwise.
package steg

import (
	"errors"

	"dnsveil/internal/dns"
)

var (
	// ErrPayloadTooLarge is returned for payloads the engine refuses to
	// encode. An empty payload reports this same error, a quirk kept for
	// compatibility with existing callers.
	ErrPayloadTooLarge = errors.New("steg: payload exceeds encoding limits")

	// ErrInvalidRecordType is returned when a fragment names a record type
	// no encoder exists for.
	ErrInvalidRecordType = errors.New("steg: invalid record type")

	// ErrEncoding is returned when no encoding strategy can serve the
	// request (e.g. the HTTP-body strategy invoked through the fragment
	// entry point).
	ErrEncoding = errors.New("steg: encoding failed")

	// ErrDecoding is returned when nothing usable could be decoded.
	ErrDecoding = errors.New("steg: decoding failed")

	// ErrFragmentation is returned by strict reconstruction when the
	// fragment id sequence has gaps.
	ErrFragmentation = errors.New("steg: fragment sequence incomplete")
)

// Strategy selects how a payload is mapped onto DNS traffic.
//
// The set is closed: each variant is a fixed behavior of the engine, not an
// extension point.
type Strategy int

const (
	// StrategyTXTOnly encodes everything into TXT record fragments.
	StrategyTXTOnly Strategy = iota
	// StrategyMultiRecord cycles fragments through A, AAAA and TXT records.
	StrategyMultiRecord
	// StrategyDistributed is multi-record with same-type fragments grouped
	// together, a simple form of traffic shaping.
	StrategyDistributed
	// StrategyHTTPBody embeds the payload in an opaque body blob for a
	// DoH-style transport. It bypasses fragmentation entirely and is served
	// by Encoder.EncodeHTTPBody, not EncodePayload.
	StrategyHTTPBody
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyTXTOnly:
		return "txt-only"
	case StrategyMultiRecord:
		return "multi-record"
	case StrategyDistributed:
		return "distributed"
	case StrategyHTTPBody:
		return "http-body"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a configuration name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "txt-only", "txt":
		return StrategyTXTOnly, nil
	case "multi-record", "multi":
		return StrategyMultiRecord, nil
	case "distributed":
		return StrategyDistributed, nil
	case "http-body", "http":
		return StrategyHTTPBody, nil
	default:
		return 0, errors.New("unknown encoding strategy: " + name)
	}
}

// NoiseFragmentID marks a decoy fragment. Decoys carry no payload bits; they
// exist only to obscure the real fragment count and are dropped before
// reconstruction.
const NoiseFragmentID uint32 = 0xFFFFFFFF

// Fragment is the unit the engine operates on: one payload chunk shaped as
// one DNS record.
//
// ID is 0-based and dense across the real fragments of one payload;
// a Fragment with ID == NoiseFragmentID is a decoy. For any real fragment,
// Checksum holds the CRC-32 of Data, computed at encode time and verified
// again at decode time.
type Fragment struct {
	RecordType     dns.RecordType
	Domain         string
	Data           []byte
	ID             uint32
	TotalFragments uint32
	Checksum       [ChecksumSize]byte
}

// IsNoise reports whether the fragment is a decoy.
func (f Fragment) IsNoise() bool {
	return f.ID == NoiseFragmentID
}

// Record shapes the fragment as the resource record it would travel in.
func (f Fragment) Record(ttl uint32) dns.ResourceRecord {
	return dns.ResourceRecord{
		Name:  f.Domain,
		Type:  f.RecordType,
		Class: dns.ClassIN,
		TTL:   ttl,
		RData: f.Data,
	}
}

// Config controls how the engine fragments and disguises a payload.
// Validation and defaulting live in the external configuration layer
// (internal/config); the engine trusts what it is handed.
type Config struct {
	Strategy Strategy

	// MaxTXTLength is the base64 budget per TXT chunk. At most 255 per the
	// DNS character-string limit; the default of 200 leaves headroom for
	// the cover-text metadata.
	MaxTXTLength int

	// MaxFragments caps how many real fragments one payload may produce.
	// Payload beyond the resulting capacity is dropped; see
	// EncodeResult.Truncated.
	MaxFragments int

	// UseCompression runs the payload through zlib before fragmenting.
	UseCompression bool

	// RandomizeOrder shuffles transmission order. Reassembly order always
	// comes from fragment ids, never list position.
	RandomizeOrder bool

	// NoiseRatio in [0,1]: fraction of the real fragment count added as
	// decoy fragments.
	NoiseRatio float64
}

// DefaultConfig returns the settings deployed peers expect.
func DefaultConfig() Config {
	return Config{
		Strategy:       StrategyMultiRecord,
		MaxTXTLength:   200,
		MaxFragments:   10,
		UseCompression: true,
		RandomizeOrder: true,
		NoiseRatio:     0.1,
	}
}
