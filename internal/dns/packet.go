package dns

import (
	"fmt"
	"math/rand/v2"
	"time"

	"dnsveil/internal/helpers"
)

// Builder assembles DNS query and response packets.
//
// Each Builder owns its random generator, so concurrent callers construct one
// Builder per goroutine rather than sharing one. Transaction ids only need to
// be unpredictable enough to blend in with stub-resolver traffic; they carry
// no security property.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder returns a Builder using the given generator. A nil rng gets a
// time-seeded generator.
func NewBuilder(rng *rand.Rand) *Builder {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>32))
	}
	return &Builder{rng: rng}
}

// BuildQuery builds a standard recursive query for q with a fresh random
// transaction id: qdcount=1, all other counts zero.
//
// If inlinePayload is non-empty and the question type is TXT, a single
// length-prefixed character string is appended after the question. This is a
// legacy/testing path (the data rides inside the query packet itself, not in
// a resource record) and is limited to 255 bytes per the TXT
// character-string format.
func (b *Builder) BuildQuery(q Question, inlinePayload []byte) ([]byte, error) {
	h := Header{
		ID:      uint16(b.rng.Uint32()),
		Flags:   QueryFlags,
		QDCount: 1,
	}

	qb, err := q.Marshal()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(qb)+len(inlinePayload)+1)
	out = append(out, h.Marshal()...)
	out = append(out, qb...)

	if len(inlinePayload) > 0 && q.Type == TypeTXT {
		if len(inlinePayload) > 255 {
			return nil, fmt.Errorf("%w: %d bytes (max 255)", ErrPayloadTooLong, len(inlinePayload))
		}
		out = append(out, byte(len(inlinePayload)))
		out = append(out, inlinePayload...)
	}

	return out, nil
}

// BuildResponse builds a response packet answering q with the given records.
// The transaction id should echo the query's. Used by the loopback demo and
// by tests standing in for a resolver; a real reply arrives from the network.
func BuildResponse(id uint16, q Question, answers []ResourceRecord) ([]byte, error) {
	h := Header{
		ID:      id,
		Flags:   QRFlag | QueryFlags | RAFlag,
		QDCount: 1,
		ANCount: helpers.ClampIntToUint16(len(answers)),
	}

	qb, err := q.Marshal()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(qb)+len(answers)*64)
	out = append(out, h.Marshal()...)
	out = append(out, qb...)
	for _, rr := range answers {
		rb, err := MarshalRecord(rr)
		if err != nil {
			return nil, err
		}
		out = append(out, rb...)
	}
	return out, nil
}

// ParseResponse parses a raw DNS response into its answer records.
//
// The question section is skipped without being retained; authority and
// additional sections are ignored (the covert payload only ever rides in
// answers). Every length field is validated against the actual buffer before
// use, since the input comes straight off the wire.
func ParseResponse(msg []byte) ([]ResourceRecord, error) {
	off := 0
	h, err := ParseHeader(msg, &off)
	if err != nil {
		return nil, err
	}

	for range h.QDCount {
		if err := skipQuestion(msg, &off); err != nil {
			return nil, err
		}
	}

	// Cap the initial allocation: a hostile header can claim 65535 answers
	// for a 20-byte packet.
	answers := make([]ResourceRecord, 0, min(int(h.ANCount), 64))
	for range h.ANCount {
		rr, err := ParseRecord(msg, &off)
		if err != nil {
			return nil, err
		}
		answers = append(answers, rr)
	}
	return answers, nil
}
