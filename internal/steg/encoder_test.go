package steg

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnsveil/internal/dns"
)

func testEncoder(cfg Config) *Encoder {
	return NewEncoder(cfg, rand.New(rand.NewPCG(42, 42)))
}

func testPayload(n int) []byte {
	rng := rand.New(rand.NewPCG(99, uint64(n)))
	payload := make([]byte, n)
	for i := range payload {
		payload[i] = byte(rng.IntN(256))
	}
	return payload
}

func TestEncodePayload_EmptyPayload(t *testing.T) {
	enc := testEncoder(DefaultConfig())
	_, err := enc.EncodePayload(nil, "example.com")
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestEncodePayload_HTTPBodyStrategyRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyHTTPBody
	_, err := testEncoder(cfg).EncodePayload([]byte("x"), "example.com")
	require.ErrorIs(t, err, ErrEncoding)
}

func TestEncodeTXTOnly(t *testing.T) {
	cfg := Config{Strategy: StrategyTXTOnly, MaxTXTLength: 40, MaxFragments: 100}
	enc := testEncoder(cfg)

	payload := []byte("steganography hides in plain sight")
	res, err := enc.EncodePayload(payload, "example.com")
	require.NoError(t, err)
	require.NotEmpty(t, res.Fragments)
	assert.False(t, res.Truncated)

	for i, frag := range res.Fragments {
		assert.Equal(t, dns.TypeTXT, frag.RecordType)
		assert.Equal(t, uint32(i), frag.ID)
		assert.Equal(t, uint32(len(res.Fragments)), frag.TotalFragments)
		assert.True(t, strings.HasSuffix(frag.Domain, ".example.com"))
		assert.True(t, strings.HasPrefix(frag.Domain, "mail"))
		assert.Contains(t, string(frag.Data), "v=spf1")
		assert.True(t, VerifyChecksum(frag.Data, frag.Checksum))
	}
}

func TestEncodeMultiRecord_TypeCycle(t *testing.T) {
	cfg := Config{Strategy: StrategyMultiRecord, MaxTXTLength: 8, MaxFragments: 100}
	enc := testEncoder(cfg)

	// 4 + 16 + 8 bytes per full cycle; two cycles exactly.
	res, err := enc.EncodePayload(testPayload(56), "example.com")
	require.NoError(t, err)
	require.Len(t, res.Fragments, 6)
	assert.False(t, res.Truncated)

	wantTypes := []dns.RecordType{dns.TypeA, dns.TypeAAAA, dns.TypeTXT, dns.TypeA, dns.TypeAAAA, dns.TypeTXT}
	for i, frag := range res.Fragments {
		assert.Equal(t, wantTypes[i], frag.RecordType)
		assert.Equal(t, uint32(i), frag.ID)
		assert.Equal(t, uint32(6), frag.TotalFragments)
	}
	assert.True(t, strings.HasPrefix(res.Fragments[0].Domain, "www"))
	assert.True(t, strings.HasPrefix(res.Fragments[1].Domain, "ipv6-"))
	assert.True(t, strings.HasPrefix(res.Fragments[2].Domain, "mail"))
}

func TestEncodeMultiRecord_SilentTruncation(t *testing.T) {
	cfg := Config{Strategy: StrategyMultiRecord, MaxTXTLength: 8, MaxFragments: 3}
	enc := testEncoder(cfg)

	res, err := enc.EncodePayload(testPayload(100), "example.com")
	require.NoError(t, err)
	assert.Len(t, res.Fragments, 3)
	assert.True(t, res.Truncated)
}

func TestEncodeDistributed_GroupsByType(t *testing.T) {
	cfg := Config{Strategy: StrategyDistributed, MaxTXTLength: 8, MaxFragments: 100}
	enc := testEncoder(cfg)

	res, err := enc.EncodePayload(testPayload(56), "example.com")
	require.NoError(t, err)
	require.Len(t, res.Fragments, 6)

	// A records first, then TXT, then AAAA, as the numeric type order runs.
	var types []dns.RecordType
	for _, frag := range res.Fragments {
		types = append(types, frag.RecordType)
	}
	assert.Equal(t, []dns.RecordType{dns.TypeA, dns.TypeA, dns.TypeTXT, dns.TypeTXT, dns.TypeAAAA, dns.TypeAAAA}, types)

	// Grouping is stable: ids stay ascending within each type.
	assert.Equal(t, uint32(0), res.Fragments[0].ID)
	assert.Equal(t, uint32(3), res.Fragments[1].ID)
}

func TestNoiseFragments(t *testing.T) {
	// 600 payload bytes make exactly 800 base64 characters: 4 TXT fragments.
	cfg := Config{
		Strategy:     StrategyTXTOnly,
		MaxTXTLength: 200,
		MaxFragments: 100,
		NoiseRatio:   0.5,
	}
	enc := testEncoder(cfg)

	payload := testPayload(600)
	res, err := enc.EncodePayload(payload, "example.com")
	require.NoError(t, err)
	require.Len(t, res.Fragments, 6)

	noise := 0
	for _, frag := range res.Fragments {
		if frag.IsNoise() {
			noise++
			assert.Equal(t, NoiseFragmentID, frag.ID)
			assert.Len(t, frag.Data, 32)
		}
	}
	assert.Equal(t, 2, noise)

	// Decoys never contaminate the reconstructed payload.
	decoded, err := enc.DecodeFragments(res.Fragments)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded.Data)
}

func TestEncodePayload_ShuffleKeepsFragmentSet(t *testing.T) {
	cfg := Config{
		Strategy:       StrategyTXTOnly,
		MaxTXTLength:   16,
		MaxFragments:   100,
		RandomizeOrder: true,
	}
	enc := testEncoder(cfg)

	payload := testPayload(120)
	res, err := enc.EncodePayload(payload, "example.com")
	require.NoError(t, err)

	seen := make(map[uint32]bool)
	for _, frag := range res.Fragments {
		seen[frag.ID] = true
	}
	for i := range len(res.Fragments) {
		assert.True(t, seen[uint32(i)], "missing fragment id %d", i)
	}

	decoded, err := enc.DecodeFragments(res.Fragments)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded.Data)
}

func TestRoundTrip_AllFragmentStrategies(t *testing.T) {
	sizes := []int{1, 3, 17, 64, 200, 777, 2000}
	strategies := []Strategy{StrategyTXTOnly, StrategyMultiRecord, StrategyDistributed}

	for _, strat := range strategies {
		for _, n := range sizes {
			cfg := Config{
				Strategy:       strat,
				MaxTXTLength:   200,
				MaxFragments:   1000,
				UseCompression: true,
				RandomizeOrder: true,
				NoiseRatio:     0.25,
			}
			enc := testEncoder(cfg)

			payload := testPayload(n)
			res, err := enc.EncodePayload(payload, "covert.example.com")
			require.NoError(t, err, "%s/%d", strat, n)
			require.False(t, res.Truncated, "%s/%d", strat, n)

			decoded, err := enc.DecodeFragments(res.Fragments)
			require.NoError(t, err, "%s/%d", strat, n)
			assert.Equal(t, payload, decoded.Data, "%s/%d", strat, n)
		}
	}
}

func TestEncodeHTTPBody(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyHTTPBody
	enc := testEncoder(cfg)

	payload := testPayload(32)
	body := enc.EncodeHTTPBody(payload)
	require.GreaterOrEqual(t, len(body), 64)
	assert.Equal(t, payload, body[:32])
}

func TestEstimateCapacity(t *testing.T) {
	assert.Equal(t, 40, EstimateCapacity(dns.TypeA, 10))
	assert.Equal(t, 160, EstimateCapacity(dns.TypeAAAA, 10))
	assert.Equal(t, 2000, EstimateCapacity(dns.TypeTXT, 10))
	assert.Zero(t, EstimateCapacity(dns.TypeMX, 10))
}

func TestEstimateTotalCapacity(t *testing.T) {
	cfg := Config{Strategy: StrategyTXTOnly, MaxFragments: 10}
	assert.Equal(t, 2000, EstimateTotalCapacity(cfg))

	cfg.Strategy = StrategyMultiRecord
	assert.Equal(t, 3*(4+16+200), EstimateTotalCapacity(cfg))

	cfg.Strategy = StrategyHTTPBody
	assert.Equal(t, 1024, EstimateTotalCapacity(cfg))
}
