package steg

import (
	"encoding/base64"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"dnsveil/internal/dns"
)

// txtCapacityEstimate is the conservative per-fragment byte capacity assumed
// for TXT records in capacity planning.
const txtCapacityEstimate = 200

// Encoder fragments payloads according to its Config.
//
// Each Encoder owns its random generator; nothing in the engine touches
// shared mutable state, so concurrent callers use one Encoder per goroutine.
type Encoder struct {
	cfg Config
	rng *rand.Rand
}

// NewEncoder returns an Encoder with the given configuration. A nil rng gets
// a time-seeded generator; inject a fixed-seed generator for reproducible
// noise and ordering in tests.
func NewEncoder(cfg Config, rng *rand.Rand) *Encoder {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>32))
	}
	return &Encoder{cfg: cfg, rng: rng}
}

// Config returns the encoder's configuration.
func (e *Encoder) Config() Config {
	return e.cfg
}

// EncodeResult is what one encode operation produced.
//
// Truncated reports that the payload exceeded MaxFragments worth of capacity
// and the tail was dropped. The drop itself is silent by design (an error
// would change long-standing behavior peers tune around), but callers that
// care can observe it here.
type EncodeResult struct {
	Fragments []Fragment
	Truncated bool
}

// EncodePayload maps payload onto DNS record fragments under baseDomain.
//
// The payload is compressed first when the configuration asks for it
// (failure falls back to the raw bytes), then dispatched to the configured
// strategy. Decoy fragments and transmission-order shuffling are applied on
// top of whatever the strategy produced.
//
// The HTTP-body strategy does not produce fragments; calling this with it
// returns ErrEncoding. Use EncodeHTTPBody instead.
func (e *Encoder) EncodePayload(payload []byte, baseDomain string) (EncodeResult, error) {
	if len(payload) == 0 {
		// Historical quirk: the empty payload reports the same error as an
		// oversized one.
		return EncodeResult{}, fmt.Errorf("%w: empty payload", ErrPayloadTooLarge)
	}

	processed := payload
	if e.cfg.UseCompression {
		processed = compressPayload(payload)
	}

	var res EncodeResult
	switch e.cfg.Strategy {
	case StrategyTXTOnly:
		res = e.encodeTXTOnly(processed, baseDomain)
	case StrategyMultiRecord:
		res = e.encodeMultiRecord(processed, baseDomain)
	case StrategyDistributed:
		res = e.encodeMultiRecord(processed, baseDomain)
		groupFragmentsByType(res.Fragments)
	default:
		return EncodeResult{}, fmt.Errorf("%w: strategy %s has no fragment encoding", ErrEncoding, e.cfg.Strategy)
	}

	if e.cfg.NoiseRatio > 0 {
		res.Fragments = e.addNoiseFragments(res.Fragments, baseDomain)
	}
	if e.cfg.RandomizeOrder {
		// Transmission order only; reassembly order comes from fragment ids.
		e.rng.Shuffle(len(res.Fragments), func(i, j int) {
			res.Fragments[i], res.Fragments[j] = res.Fragments[j], res.Fragments[i]
		})
	}
	return res, nil
}

// encodeTXTOnly chunks the payload through the TXT encoder; one fragment per
// cover string.
func (e *Encoder) encodeTXTOnly(payload []byte, baseDomain string) EncodeResult {
	covers := EncodeToTXTFragments(payload, e.cfg.MaxTXTLength)

	fragments := make([]Fragment, 0, len(covers))
	for i, cover := range covers {
		id := uint32(i)
		data := []byte(cover)
		fragments = append(fragments, Fragment{
			RecordType:     dns.TypeTXT,
			Domain:         e.subdomainFor(id, dns.TypeTXT) + "." + baseDomain,
			Data:           data,
			ID:             id,
			TotalFragments: uint32(len(covers)),
			Checksum:       Checksum(data),
		})
	}
	return EncodeResult{Fragments: fragments}
}

// encodeMultiRecord walks the payload with an offset cursor, cycling the
// record type A, AAAA, TXT, A, ... so the stream looks like a mixed burst of
// ordinary lookups. Chunk capacity follows the record type: 4 bytes for A,
// 16 for AAAA, up to MaxTXTLength for TXT.
//
// Generation stops when the payload is exhausted or MaxFragments is reached;
// in the latter case the remaining payload is dropped and the result is
// flagged Truncated.
func (e *Encoder) encodeMultiRecord(payload []byte, baseDomain string) EncodeResult {
	var fragments []Fragment
	offset := 0
	id := uint32(0)

	for offset < len(payload) {
		var recordType dns.RecordType
		var chunkSize int
		switch id % 3 {
		case 0:
			recordType = dns.TypeA
			chunkSize = IPv4Size
		case 1:
			recordType = dns.TypeAAAA
			chunkSize = IPv6Size
		default:
			recordType = dns.TypeTXT
			chunkSize = e.cfg.MaxTXTLength
		}
		chunkSize = min(chunkSize, len(payload)-offset)

		var data []byte
		switch recordType {
		case dns.TypeA:
			data = EncodeToIPv4(payload, offset)
		case dns.TypeAAAA:
			data = EncodeToIPv6(payload, offset)
		case dns.TypeTXT:
			chunk := base64.StdEncoding.EncodeToString(payload[offset : offset+chunkSize])
			data = []byte(CreateSteganographicTXT(chunk, id))
		}

		fragments = append(fragments, Fragment{
			RecordType: recordType,
			Domain:     e.subdomainFor(id, recordType) + "." + baseDomain,
			Data:       data,
			ID:         id,
			Checksum:   Checksum(data),
		})

		offset += chunkSize
		id++
		if int(id) >= e.cfg.MaxFragments {
			break
		}
	}

	for i := range fragments {
		fragments[i].TotalFragments = uint32(len(fragments))
	}
	return EncodeResult{Fragments: fragments, Truncated: offset < len(payload)}
}

// groupFragmentsByType stably sorts fragments so same-type fragments travel
// together while keeping their relative order within a type.
func groupFragmentsByType(fragments []Fragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].RecordType < fragments[j].RecordType
	})
}

// EncodeHTTPBody serves the HTTP-body strategy: a single opaque blob for a
// DoH-style transport instead of a fragment list.
func (e *Encoder) EncodeHTTPBody(payload []byte) []byte {
	return EncodeToHTTPBody(payload, e.rng)
}

// addNoiseFragments appends floor(len(fragments) * NoiseRatio) decoys: a
// random record type in 1..16, a throwaway numbered domain, 32 random bytes
// and the sentinel id. Decoys never pass through checksum verification; the
// decoder drops them on the sentinel alone.
func (e *Encoder) addNoiseFragments(fragments []Fragment, baseDomain string) []Fragment {
	noiseCount := int(float64(len(fragments)) * e.cfg.NoiseRatio)

	for i := 0; i < noiseCount; i++ {
		data := make([]byte, 32)
		for j := range data {
			data[j] = byte(e.rng.IntN(256))
		}
		fragments = append(fragments, Fragment{
			RecordType: dns.RecordType(1 + e.rng.IntN(16)),
			Domain:     fmt.Sprintf("noise%d.%s", i, baseDomain),
			Data:       data,
			ID:         NoiseFragmentID,
		})
	}
	return fragments
}

// subdomainFor generates the metadata-bearing subdomain for a fragment: a
// type-flavored prefix that blends into common hostnames, with the fragment
// id in hex.
func (e *Encoder) subdomainFor(fragmentID uint32, recordType dns.RecordType) string {
	switch recordType {
	case dns.TypeA:
		return fmt.Sprintf("www%x", fragmentID)
	case dns.TypeAAAA:
		return fmt.Sprintf("ipv6-%x", fragmentID)
	case dns.TypeTXT:
		return fmt.Sprintf("mail%x", fragmentID)
	default:
		return fmt.Sprintf("srv%x", fragmentID)
	}
}

// EstimateCapacity returns the payload bytes maxFragments records of the
// given type can carry.
func EstimateCapacity(recordType dns.RecordType, maxFragments int) int {
	switch recordType {
	case dns.TypeA:
		return IPv4Size * maxFragments
	case dns.TypeAAAA:
		return IPv6Size * maxFragments
	case dns.TypeTXT:
		return txtCapacityEstimate * maxFragments
	default:
		return 0
	}
}

// EstimateTotalCapacity returns the payload bytes a whole configuration can
// carry before truncation sets in.
func EstimateTotalCapacity(cfg Config) int {
	switch cfg.Strategy {
	case StrategyTXTOnly:
		return EstimateCapacity(dns.TypeTXT, cfg.MaxFragments)
	case StrategyMultiRecord, StrategyDistributed:
		third := cfg.MaxFragments / 3
		return EstimateCapacity(dns.TypeA, third) +
			EstimateCapacity(dns.TypeAAAA, third) +
			EstimateCapacity(dns.TypeTXT, third)
	case StrategyHTTPBody:
		return 1024
	default:
		return 0
	}
}
