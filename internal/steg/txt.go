package steg

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// txtCoverPrefix makes a fragment read like an ordinary SPF record. The
// fragment id rides in the "frag=" attribute; everything after the id's
// terminating '=' is the base64 chunk.
const txtCoverPrefix = "v=spf1 include:_spf.google.com ~all; frag="

// fragMarker is what the decoder scans for.
const fragMarker = "frag="

// CreateSteganographicTXT wraps an already-base64-encoded chunk in the SPF
// cover text, embedding the fragment id in hex:
//
//	"v=spf1 include:_spf.google.com ~all; frag=1=" + chunk
func CreateSteganographicTXT(chunk string, fragmentID uint32) string {
	return fmt.Sprintf("%s%x=%s", txtCoverPrefix, fragmentID, chunk)
}

// EncodeToTXTFragments base64-encodes the payload and splits it into cover
// strings sized to stay within maxChunkLen base64 characters per fragment.
//
// Chunks are always a multiple of 4 characters so each one is independently
// valid base64; the final chunk is re-padded with '=' when the split leaves
// it ragged. Fragment ids are assigned sequentially from 0.
func EncodeToTXTFragments(payload []byte, maxChunkLen int) []string {
	encoded := base64.StdEncoding.EncodeToString(payload)

	chunkSize := (maxChunkLen / 4) * 4
	if chunkSize <= 0 {
		chunkSize = 4
	}

	var fragments []string
	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		chunk := encoded[i:end]

		if end >= len(encoded) && len(chunk)%4 != 0 {
			chunk += strings.Repeat("=", 4-len(chunk)%4)
		}

		fragments = append(fragments, CreateSteganographicTXT(chunk, uint32(len(fragments))))
	}
	return fragments
}

// DecodeFromTXTFragments concatenates the base64 parts of the given TXT
// strings and decodes them.
//
// For each string the marker "frag=" is located, then the '=' that ends the
// hex id; everything after that is taken as base64. A string without the
// marker is treated as base64 wholesale, which keeps the decoder usable
// against plain (uncovered) TXT data.
func DecodeFromTXTFragments(txtRecords []string) ([]byte, error) {
	var combined strings.Builder
	for _, txt := range txtRecords {
		combined.WriteString(txtBase64Part(txt))
	}

	decoded, err := base64.StdEncoding.DecodeString(combined.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	return decoded, nil
}

// txtBase64Part strips the cover text from one TXT string, returning the
// base64 payload portion.
func txtBase64Part(txt string) string {
	fragPos := strings.Index(txt, fragMarker)
	if fragPos < 0 {
		return txt
	}
	idStart := fragPos + len(fragMarker)
	sep := strings.IndexByte(txt[idStart:], '=')
	if sep < 0 {
		return ""
	}
	return txt[idStart+sep+1:]
}
