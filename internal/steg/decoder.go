package steg

import (
	"fmt"
	"sort"
	"time"

	"dnsveil/internal/dns"
)

// DecodedPayload is the result of reassembling fragments.
type DecodedPayload struct {
	Data            []byte
	OriginalSize    int
	DecodeTime      time.Duration
	UsedRecordTypes []dns.RecordType
}

// DecodeFragments reconstructs a payload from fragments, in any order.
//
// Fragments are sorted by id, decoys (sentinel id) are dropped, and each
// remaining fragment is re-checksummed; a mismatch silently skips that
// fragment rather than failing the decode. Loss therefore degrades the
// result instead of aborting it — the strict, gap-intolerant policy lives in
// ReconstructFromFragments.
//
// If the encoder's configuration compressed the payload, the concatenated
// bytes are inflated; when inflation fails the still-compressed bytes are
// returned as-is, mirroring the encode-side fallback.
func (e *Encoder) DecodeFragments(fragments []Fragment) (DecodedPayload, error) {
	if len(fragments) == 0 {
		return DecodedPayload{}, fmt.Errorf("%w: no fragments", ErrDecoding)
	}

	start := time.Now()

	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	var reconstructed []byte
	var usedTypes []dns.RecordType

	for _, frag := range sorted {
		if frag.IsNoise() {
			continue
		}
		if !VerifyChecksum(frag.Data, frag.Checksum) {
			continue // corrupted fragment, degrade rather than abort
		}

		usedTypes = append(usedTypes, frag.RecordType)

		switch frag.RecordType {
		case dns.TypeA:
			reconstructed = append(reconstructed, DecodeFromIPv4(frag.Data)...)
		case dns.TypeAAAA:
			reconstructed = append(reconstructed, DecodeFromIPv6(frag.Data)...)
		case dns.TypeTXT:
			decoded, err := DecodeFromTXTFragments([]string{string(frag.Data)})
			if err != nil {
				continue
			}
			reconstructed = append(reconstructed, decoded...)
		}
	}

	if e.cfg.UseCompression {
		reconstructed = decompressPayload(reconstructed)
	}

	return DecodedPayload{
		Data:            reconstructed,
		OriginalSize:    len(reconstructed),
		DecodeTime:      time.Since(start),
		UsedRecordTypes: usedTypes,
	}, nil
}
