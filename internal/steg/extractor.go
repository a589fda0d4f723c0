package steg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"dnsveil/internal/dns"
)

// ExtractOptions controls how fragments are rebuilt from response records.
type ExtractOptions struct {
	// RecoverEmbeddedIDs parses each fragment's id out of the TXT "frag="
	// marker or the subdomain prefix instead of assigning ids positionally.
	//
	// Positional assignment is the historical default: the id the encoder
	// embedded is discarded and fragments are numbered by their position
	// among the matching records. That only reconstructs correctly when
	// records arrive in encode order, which is exactly what strict
	// validation then checks. Embedded-id recovery fixes this but changes
	// behavior against existing peers, so it is opt-in.
	RecoverEmbeddedIDs bool
}

// ExtractFromResponse recognizes steganographic records among the parsed
// answers of a DNS response and reassembles their payload bytes using the
// strict reconstruction path.
func ExtractFromResponse(records []dns.ResourceRecord) ([]byte, error) {
	return ExtractWithOptions(records, ExtractOptions{})
}

// ExtractWithOptions is ExtractFromResponse with explicit options.
func ExtractWithOptions(records []dns.ResourceRecord, opts ExtractOptions) ([]byte, error) {
	var fragments []Fragment
	for _, record := range records {
		if !DetectSteganographicPattern(record) {
			continue
		}

		id := uint32(len(fragments))
		if opts.RecoverEmbeddedIDs {
			if embedded, ok := embeddedFragmentID(record); ok {
				id = embedded
			}
		}

		fragments = append(fragments, Fragment{
			RecordType:     record.Type,
			Domain:         record.Name,
			Data:           record.RData,
			ID:             id,
			TotalFragments: uint32(len(records)),
		})
	}

	return ReconstructFromFragments(fragments)
}

// ExtractFromHTTPBody extracts hidden payload bytes from a DoH-style
// response body.
func ExtractFromHTTPBody(body []byte) ([]byte, error) {
	payload := DecodeFromHTTPBody(body)
	if payload == nil {
		return nil, fmt.Errorf("%w: body below minimum size", ErrDecoding)
	}
	return payload, nil
}

// DetectSteganographicPattern reports whether a record looks like it carries
// channel payload: private/link-local address shapes for A/AAAA, the frag
// marker or SPF cover text for TXT. Everything else is ordinary traffic.
func DetectSteganographicPattern(record dns.ResourceRecord) bool {
	switch record.Type {
	case dns.TypeA:
		return IsSteganographicIPv4(record.RData)
	case dns.TypeAAAA:
		return IsSteganographicIPv6(record.RData)
	case dns.TypeTXT:
		txt := string(record.RData)
		return strings.Contains(txt, fragMarker) || strings.Contains(txt, "v=spf1")
	default:
		return false
	}
}

// embeddedFragmentID recovers the id the encoder embedded in a record:
// the hex value between "frag=" and the next '=' for TXT, or the hex tail of
// the subdomain prefix (www<id>, ipv6-<id>, mail<id>, srv<id>) otherwise.
func embeddedFragmentID(record dns.ResourceRecord) (uint32, bool) {
	if record.Type == dns.TypeTXT {
		txt := string(record.RData)
		fragPos := strings.Index(txt, fragMarker)
		if fragPos < 0 {
			return 0, false
		}
		rest := txt[fragPos+len(fragMarker):]
		sep := strings.IndexByte(rest, '=')
		if sep <= 0 {
			return 0, false
		}
		return parseHexID(rest[:sep])
	}

	label, _, _ := strings.Cut(record.Name, ".")
	for _, prefix := range []string{"ipv6-", "www", "mail", "srv"} {
		if rest, ok := strings.CutPrefix(label, prefix); ok {
			return parseHexID(rest)
		}
	}
	return 0, false
}

func parseHexID(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// ReconstructFromFragments is the strict reassembly path: fragments are
// sorted by id and their raw data concatenated, but only if the id sequence
// is exactly 0..N-1. Any gap fails with ErrFragmentation — no best-effort
// partial result here, unlike Encoder.DecodeFragments.
func ReconstructFromFragments(fragments []Fragment) ([]byte, error) {
	sorted := sortFragmentsByID(fragments)

	if err := validateFragmentSequence(sorted); err != nil {
		return nil, err
	}

	var reconstructed []byte
	for _, frag := range sorted {
		reconstructed = append(reconstructed, frag.Data...)
	}
	return reconstructed, nil
}

// sortFragmentsByID returns a copy of fragments ordered by ascending id.
func sortFragmentsByID(fragments []Fragment) []Fragment {
	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// validateFragmentSequence requires the sorted ids to be dense from zero.
func validateFragmentSequence(sorted []Fragment) error {
	if len(sorted) == 0 {
		return fmt.Errorf("%w: no fragments", ErrFragmentation)
	}
	for i, frag := range sorted {
		if frag.ID != uint32(i) {
			return fmt.Errorf("%w: expected id %d, found %d", ErrFragmentation, i, frag.ID)
		}
	}
	return nil
}
