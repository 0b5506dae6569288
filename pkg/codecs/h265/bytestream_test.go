package h265

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextNALUnit(t *testing.T) {
	for _, ca := range []struct {
		name  string
		buf   []byte
		start int
		size  int
	}{
		{
			"degenerate single byte",
			[]byte{0xAA},
			0,
			1,
		},
		{
			"degenerate two bytes",
			[]byte{0x00, 0x00},
			0,
			2,
		},
		{
			"3-byte start code",
			[]byte{0x00, 0x00, 0x01, 0xAA, 0xBB},
			3,
			2,
		},
		{
			"4-byte start code",
			[]byte{0x00, 0x00, 0x00, 0x01, 0xAA, 0xBB},
			4,
			2,
		},
		{
			"no start code",
			[]byte{0xAA, 0xBB, 0xCC, 0xDD},
			0,
			4,
		},
		{
			"unit followed by 3-byte start code",
			[]byte{0x00, 0x00, 0x00, 0x01, 0xAA, 0x00, 0x00, 0x01, 0xBB},
			4,
			1,
		},
		{
			"unit followed by 4-byte start code",
			[]byte{0x00, 0x00, 0x00, 0x01, 0xAA, 0x00, 0x00, 0x00, 0x01, 0xBB},
			4,
			1,
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			start, size, err := NextNALUnit(ca.buf)
			require.NoError(t, err)
			require.Equal(t, ca.start, start)
			require.Equal(t, ca.size, size)
		})
	}
}

func TestNextNALUnitError(t *testing.T) {
	for _, ca := range []struct {
		name string
		buf  []byte
		err  error
	}{
		{
			"empty buffer",
			[]byte{},
			ErrEmptyBuffer,
		},
		{
			"lone 3-byte start code",
			[]byte{0x00, 0x00, 0x01},
			ErrNoNALUnit,
		},
		{
			"lone 4-byte start code",
			[]byte{0x00, 0x00, 0x00, 0x01},
			ErrNoNALUnit,
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			_, _, err := NextNALUnit(ca.buf)
			require.ErrorIs(t, err, ca.err)
		})
	}
}

func TestNextNALUnitIterate(t *testing.T) {
	buf := []byte{
		0x00, 0x00, 0x00, 0x01, 0x40, 0x01, 0xAA,
		0x00, 0x00, 0x01, 0x42, 0x01,
		0x00, 0x00, 0x00, 0x01, 0x26, 0x01, 0xBB, 0xCC,
	}

	var payloads [][]byte
	pos := 0

	for pos < len(buf) {
		start, size, err := NextNALUnit(buf[pos:])
		if err != nil {
			require.ErrorIs(t, err, ErrNoNALUnit)
			break
		}
		payloads = append(payloads, buf[pos+start:pos+start+size])
		pos += start + size
	}

	require.Equal(t, [][]byte{
		{0x40, 0x01, 0xAA},
		{0x42, 0x01},
		{0x26, 0x01, 0xBB, 0xCC},
	}, payloads)
}

func TestConvertToLengthPrefixed(t *testing.T) {
	for _, ca := range []struct {
		name string
		buf  []byte
		conv []byte
	}{
		{
			"single unit",
			[]byte{0x00, 0x00, 0x00, 0x01, 0xAA, 0xBB, 0xCC},
			[]byte{0x00, 0x00, 0x00, 0x03, 0xAA, 0xBB, 0xCC},
		},
		{
			"two units",
			[]byte{0x00, 0x00, 0x00, 0x01, 0xAA, 0xBB, 0x00, 0x00, 0x00, 0x01, 0xCC},
			[]byte{0x00, 0x00, 0x00, 0x02, 0xAA, 0xBB, 0x00, 0x00, 0x00, 0x01, 0xCC},
		},
		{
			"payload containing start-code-like sequences",
			[]byte{
				0x00, 0x00, 0x00, 0x01, 0xAA, 0x00, 0x01, 0x00,
				0x00, 0x00, 0x00, 0x01, 0xBB,
			},
			[]byte{
				0x00, 0x00, 0x00, 0x04, 0xAA, 0x00, 0x01, 0x00,
				0x00, 0x00, 0x00, 0x01, 0xBB,
			},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			buf := append([]byte(nil), ca.buf...)
			err := ConvertToLengthPrefixed(buf)
			require.NoError(t, err)
			require.Equal(t, ca.conv, buf)
			require.Equal(t, len(ca.buf), len(buf))
		})
	}
}

func TestConvertToLengthPrefixedError(t *testing.T) {
	for _, ca := range []struct {
		name string
		buf  []byte
		err  error
	}{
		{
			"empty buffer",
			[]byte{},
			ErrEmptyBuffer,
		},
		{
			"3-byte start code",
			[]byte{0x00, 0x00, 0x01, 0xAA, 0x00, 0x00, 0x00, 0x01, 0xBB, 0xCC, 0xDD},
			ErrInvalidBitstream,
		},
		{
			"zero-size unit",
			[]byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0xAA},
			ErrInvalidBitstream,
		},
		{
			"no start code",
			[]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE},
			ErrInvalidBitstream,
		},
		{
			"already length-prefixed",
			[]byte{0x00, 0x00, 0x00, 0x02, 0xAA, 0xBB},
			ErrInvalidBitstream,
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			buf := append([]byte(nil), ca.buf...)
			err := ConvertToLengthPrefixed(buf)
			require.ErrorIs(t, err, ca.err)
		})
	}
}

func TestConvertToLengthPrefixedRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{0x40, 0x01, 0x0C, 0x01},
		{0x42, 0x01, 0x01, 0x01, 0x60},
		{0x44, 0x01, 0xC1},
		{0x26, 0x01, 0xAF, 0x08, 0x40, 0xF0},
	}

	var buf []byte
	for _, p := range payloads {
		buf = append(buf, 0x00, 0x00, 0x00, 0x01)
		buf = append(buf, p...)
	}

	err := ConvertToLengthPrefixed(buf)
	require.NoError(t, err)

	// re-parse as length-prefixed records
	var parsed [][]byte
	for pos := 0; pos < len(buf); {
		require.GreaterOrEqual(t, len(buf)-pos, 4)
		size := int(binary.BigEndian.Uint32(buf[pos:]))
		pos += 4
		require.GreaterOrEqual(t, len(buf)-pos, size)
		parsed = append(parsed, buf[pos:pos+size])
		pos += size
	}

	require.Equal(t, payloads, parsed)
}
