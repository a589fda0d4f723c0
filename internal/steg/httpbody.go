package steg

import "math/rand/v2"

// httpBodyMinPadding and httpBodyMaxExtra bound the random padding appended
// to an HTTP-body blob: 32 plus up to 64 extra bytes.
const (
	httpBodyMinPadding = 32
	httpBodyMaxExtra   = 64
)

// httpBodyPayloadSize is how many leading bytes the decoder treats as
// payload. The profile is deliberately simple: it is not an HTTP/2 frame
// parser, and peers depend on this exact boundary.
const httpBodyPayloadSize = 32

// EncodeToHTTPBody prepends the raw payload and appends 32-96 bytes of
// random padding, producing a blob sized like a legitimate DoH POST body.
func EncodeToHTTPBody(payload []byte, rng *rand.Rand) []byte {
	paddingSize := httpBodyMinPadding + rng.IntN(httpBodyMaxExtra)
	body := make([]byte, 0, len(payload)+paddingSize)
	body = append(body, payload...)
	for range paddingSize {
		body = append(body, byte(rng.IntN(256)))
	}
	return body
}

// DecodeFromHTTPBody extracts the payload from an HTTP-body blob.
// The first 32 bytes are taken as payload once the blob clears the minimum
// size; shorter blobs yield nothing.
func DecodeFromHTTPBody(body []byte) []byte {
	if len(body) < httpBodyPayloadSize {
		return nil
	}
	return body[:httpBodyPayloadSize]
}

// IsSteganographicHTTPBody is the receive-side heuristic for body blobs:
// anything larger than a typical bare DNS query is a candidate.
func IsSteganographicHTTPBody(body []byte) bool {
	return len(body) > 64
}
