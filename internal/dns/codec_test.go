package dns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	b, err := EncodeName("google.com")
	require.NoError(t, err)
	exp := []byte{6, 'g', 'o', 'o', 'g', 'l', 'e', 3, 'c', 'o', 'm', 0}
	assert.Equal(t, exp, b)
}

func TestEncodeName_Root(t *testing.T) {
	b, err := EncodeName("")
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, b)
}

func TestEncodeName_SkipsEmptyLabels(t *testing.T) {
	withDot, err := EncodeName("example.com.")
	require.NoError(t, err)
	without, err := EncodeName("example.com")
	require.NoError(t, err)
	assert.Equal(t, without, withDot)

	doubled, err := EncodeName("example..com")
	require.NoError(t, err)
	assert.Equal(t, without, doubled)
}

func TestEncodeName_LabelTooLong(t *testing.T) {
	_, err := EncodeName(strings.Repeat("a", 64) + ".com")
	require.ErrorIs(t, err, ErrLabelTooLong)
}

func TestEncodeName_NameTooLong(t *testing.T) {
	// Five 63-byte labels encode past the 255-byte wire limit.
	label := strings.Repeat("a", 63)
	name := strings.Join([]string{label, label, label, label, label}, ".")
	_, err := EncodeName(name)
	require.ErrorIs(t, err, ErrNameTooLong)
}

func TestDecodeName_Uncompressed(t *testing.T) {
	msg := []byte{3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}
	off := 0
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", n)
	assert.Equal(t, len(msg), off)
}

func TestDecodeName_Compressed(t *testing.T) {
	// "foo.com" at offset 0, then "www" + pointer back to it.
	msg := []byte{
		3, 'f', 'o', 'o', 3, 'c', 'o', 'm', 0,
		3, 'w', 'w', 'w', 0xC0, 0x00,
	}
	off := 9
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "www.foo.com", n)
	// Resumes right after the 2-byte pointer, not at the jump target.
	assert.Equal(t, 15, off)
}

func TestDecodeName_PointerChain(t *testing.T) {
	// www → pointer → foo → pointer → com. Two jumps, both legitimate.
	msg := []byte{
		3, 'c', 'o', 'm', 0, // 0
		3, 'f', 'o', 'o', 0xC0, 0x00, // 5
		3, 'w', 'w', 'w', 0xC0, 0x05, // 11
	}
	off := 11
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "www.foo.com", n)
	assert.Equal(t, 17, off)
}

func TestDecodeName_PointerLoop(t *testing.T) {
	// Two pointers referencing each other never terminate on their own.
	msg := []byte{0xC0, 0x02, 0xC0, 0x00}
	off := 0
	_, err := DecodeName(msg, &off)
	require.ErrorIs(t, err, ErrTooManyJumps)
}

func TestDecodeName_SelfPointer(t *testing.T) {
	msg := []byte{0xC0, 0x00}
	off := 0
	_, err := DecodeName(msg, &off)
	require.ErrorIs(t, err, ErrTooManyJumps)
}

func TestDecodeName_PointerTargetOutOfBounds(t *testing.T) {
	msg := []byte{0xC0, 0x7F}
	off := 0
	_, err := DecodeName(msg, &off)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDecodeName_PointerStraddlesEnd(t *testing.T) {
	msg := []byte{0xC0}
	off := 0
	_, err := DecodeName(msg, &off)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDecodeName_TruncatedLabel(t *testing.T) {
	msg := []byte{5, 'a', 'b'}
	off := 0
	_, err := DecodeName(msg, &off)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDecodeName_MissingTerminator(t *testing.T) {
	msg := []byte{3, 'w', 'w', 'w'}
	off := 0
	_, err := DecodeName(msg, &off)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDecodeName_OffsetOutsideMessage(t *testing.T) {
	msg := []byte{0}
	off := 10
	_, err := DecodeName(msg, &off)
	require.ErrorIs(t, err, ErrOutOfBounds)

	off = -1
	_, err = DecodeName(msg, &off)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestNameRoundTrip(t *testing.T) {
	names := []string{
		"example.com",
		"a.b.c.d.e.f",
		"www3a2b.covert.example.com",
		"xn--nxasmq6b.example",
	}
	for _, name := range names {
		wire, err := EncodeName(name)
		require.NoError(t, err)
		off := 0
		back, err := DecodeName(wire, &off)
		require.NoError(t, err)
		assert.Equal(t, name, back)
		assert.Equal(t, len(wire), off)
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{
		"example.com",
		"www3a.example.com",
		"_spf.example.com",
		"ipv6-1f.sub-domain.example",
	}
	for _, name := range valid {
		assert.True(t, ValidateName(name), name)
	}

	invalid := []string{
		"",
		"exa mple.com",
		"bad!.example.com",
		"double..dot.example",
		".leading.dot",
		strings.Repeat("a", 64) + ".com",
		strings.Repeat("abcdefgh.", 32) + "example.com",
	}
	for _, name := range invalid {
		assert.False(t, ValidateName(name), name)
	}
}
