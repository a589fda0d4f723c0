package steg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnsveil/internal/dns"
)

func stegRecord(name string, rt dns.RecordType, data []byte) dns.ResourceRecord {
	return dns.ResourceRecord{Name: name, Type: rt, Class: dns.ClassIN, TTL: 300, RData: data}
}

func TestDetectSteganographicPattern(t *testing.T) {
	assert.True(t, DetectSteganographicPattern(stegRecord("www0.x", dns.TypeA, []byte{192, 168, 1, 1})))
	assert.True(t, DetectSteganographicPattern(stegRecord("www0.x", dns.TypeA, []byte{10, 1, 2, 3})))
	assert.False(t, DetectSteganographicPattern(stegRecord("www.x", dns.TypeA, []byte{8, 8, 8, 8})))

	linkLocal := append([]byte{0xfe, 0x80}, make([]byte, 14)...)
	assert.True(t, DetectSteganographicPattern(stegRecord("ipv6-0.x", dns.TypeAAAA, linkLocal)))

	assert.True(t, DetectSteganographicPattern(stegRecord("mail0.x", dns.TypeTXT, []byte("v=spf1 ~all"))))
	assert.True(t, DetectSteganographicPattern(stegRecord("mail0.x", dns.TypeTXT, []byte("frag=0=QQ=="))))
	assert.False(t, DetectSteganographicPattern(stegRecord("mail.x", dns.TypeTXT, []byte("plain text"))))

	assert.False(t, DetectSteganographicPattern(stegRecord("x", dns.TypeCNAME, []byte{192, 168, 1, 1})))
}

func TestExtractFromResponse_FiltersAndConcatenates(t *testing.T) {
	records := []dns.ResourceRecord{
		stegRecord("www0.example.com", dns.TypeA, []byte{192, 168, 0x41, 0x42}),
		stegRecord("ordinary.example.com", dns.TypeA, []byte{93, 184, 216, 34}),
		stegRecord("www1.example.com", dns.TypeA, []byte{10, 0, 0x43, 0x44}),
	}

	out, err := ExtractFromResponse(records)
	require.NoError(t, err)
	assert.Equal(t, []byte{192, 168, 0x41, 0x42, 10, 0, 0x43, 0x44}, out)
}

func TestExtractFromResponse_NoStegRecords(t *testing.T) {
	records := []dns.ResourceRecord{
		stegRecord("a.example.com", dns.TypeA, []byte{8, 8, 8, 8}),
	}
	_, err := ExtractFromResponse(records)
	require.ErrorIs(t, err, ErrFragmentation)
}

// Positional id assignment ignores the ids the sender embedded: records
// arriving out of encode order reconstruct in arrival order.
func TestExtractFromResponse_PositionalIDs(t *testing.T) {
	records := []dns.ResourceRecord{
		stegRecord("www1.example.com", dns.TypeA, []byte{192, 168, 2, 2}),
		stegRecord("www0.example.com", dns.TypeA, []byte{192, 168, 1, 1}),
	}

	out, err := ExtractFromResponse(records)
	require.NoError(t, err)
	assert.Equal(t, []byte{192, 168, 2, 2, 192, 168, 1, 1}, out)
}

func TestExtractWithOptions_RecoverEmbeddedIDs(t *testing.T) {
	records := []dns.ResourceRecord{
		stegRecord("www1.example.com", dns.TypeA, []byte{192, 168, 2, 2}),
		stegRecord("www0.example.com", dns.TypeA, []byte{192, 168, 1, 1}),
	}

	out, err := ExtractWithOptions(records, ExtractOptions{RecoverEmbeddedIDs: true})
	require.NoError(t, err)
	assert.Equal(t, []byte{192, 168, 1, 1, 192, 168, 2, 2}, out)
}

func TestExtractWithOptions_EmbeddedIDFromTXTMarker(t *testing.T) {
	records := []dns.ResourceRecord{
		stegRecord("mail1.example.com", dns.TypeTXT, []byte(CreateSteganographicTXT("Qg==", 1))),
		stegRecord("mail0.example.com", dns.TypeTXT, []byte(CreateSteganographicTXT("QQ==", 0))),
	}

	out, err := ExtractWithOptions(records, ExtractOptions{RecoverEmbeddedIDs: true})
	require.NoError(t, err)

	// Raw record data in id order; TXT cover text is not stripped here.
	want := append([]byte(CreateSteganographicTXT("QQ==", 0)), []byte(CreateSteganographicTXT("Qg==", 1))...)
	assert.Equal(t, want, out)
}

func TestExtractWithOptions_EmbeddedIDGapFails(t *testing.T) {
	records := []dns.ResourceRecord{
		stegRecord("www0.example.com", dns.TypeA, []byte{192, 168, 1, 1}),
		stegRecord("www2.example.com", dns.TypeA, []byte{192, 168, 3, 3}),
	}

	_, err := ExtractWithOptions(records, ExtractOptions{RecoverEmbeddedIDs: true})
	require.ErrorIs(t, err, ErrFragmentation)
}

func TestReconstructFromFragments(t *testing.T) {
	fragments := []Fragment{
		{ID: 2, Data: []byte{5, 6}},
		{ID: 0, Data: []byte{1, 2}},
		{ID: 1, Data: []byte{3, 4}},
	}
	out, err := ReconstructFromFragments(fragments)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, out)
}

func TestReconstructFromFragments_SequenceGap(t *testing.T) {
	fragments := []Fragment{
		{ID: 0, Data: []byte{1}},
		{ID: 1, Data: []byte{2}},
		{ID: 3, Data: []byte{3}},
	}
	_, err := ReconstructFromFragments(fragments)
	require.ErrorIs(t, err, ErrFragmentation)
}

func TestReconstructFromFragments_Empty(t *testing.T) {
	_, err := ReconstructFromFragments(nil)
	require.ErrorIs(t, err, ErrFragmentation)
}

func TestExtractFromHTTPBody(t *testing.T) {
	body := make([]byte, 100)
	for i := range body {
		body[i] = byte(i)
	}
	out, err := ExtractFromHTTPBody(body)
	require.NoError(t, err)
	assert.Equal(t, body[:32], out)

	_, err = ExtractFromHTTPBody(make([]byte, 10))
	require.ErrorIs(t, err, ErrDecoding)
}

// End to end: fragments travel inside a real response packet and come back
// out through the codec.
func TestExtractFromParsedResponse(t *testing.T) {
	cfg := Config{Strategy: StrategyMultiRecord, MaxTXTLength: 8, MaxFragments: 100}
	enc := testEncoder(cfg)

	// Chunk boundaries chosen so the A value starts 10.x and the AAAA value
	// starts fd00: the receive-side heuristics must keep every fragment.
	payload := append([]byte{10, 1, 2, 3, 0xfd, 0x00}, testPayload(22)...)
	res, err := enc.EncodePayload(payload, "example.com")
	require.NoError(t, err)

	answers := make([]dns.ResourceRecord, 0, len(res.Fragments))
	for _, frag := range res.Fragments {
		answers = append(answers, frag.Record(300))
	}
	q := dns.Question{Name: "example.com", Type: dns.TypeTXT, Class: dns.ClassIN}
	wire, err := dns.BuildResponse(0x0B0E, q, answers)
	require.NoError(t, err)

	records, err := dns.ParseResponse(wire)
	require.NoError(t, err)
	require.Len(t, records, len(res.Fragments))

	out, err := ExtractWithOptions(records, ExtractOptions{RecoverEmbeddedIDs: true})
	require.NoError(t, err)

	// Raw fragment data in id order.
	var want []byte
	for _, frag := range res.Fragments {
		want = append(want, frag.Data...)
	}
	assert.Equal(t, want, out)
}
