package steg

import (
	"bytes"
	"compress/zlib"
	"io"
)

// compressPayload zlib-compresses the payload. Compression is best-effort:
// any failure returns the original bytes so the encode operation as a whole
// still succeeds.
func compressPayload(payload []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(payload); err != nil {
		w.Close()
		return payload
	}
	if err := w.Close(); err != nil {
		return payload
	}
	return buf.Bytes()
}

// decompressPayload reverses compressPayload. Mirroring the compression
// fallback policy, failure returns the input unchanged: a partially
// reconstructed payload that no longer inflates is still handed back to the
// caller rather than discarded.
func decompressPayload(compressed []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return compressed
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return compressed
	}
	return out
}
