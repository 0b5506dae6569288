package h265

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrNoNALUnit is returned by NextNALUnit when the remaining region
// contains no NAL unit. It marks the end of the caller's iteration.
var ErrNoNALUnit = errors.New("no NAL unit found")

// ErrEmptyBuffer is returned when an operation requires a non-empty buffer.
var ErrEmptyBuffer = errors.New("buffer is empty")

// ErrInvalidBitstream is returned when a buffer cannot be interpreted as a
// valid byte-stream-formatted bitstream. Errors returned by
// ConvertToLengthPrefixed wrap it.
var ErrInvalidBitstream = errors.New("invalid bitstream")

// NextNALUnit locates the next NAL unit inside a byte-stream-formatted
// buffer. It returns the offset at which the unit payload begins (past the
// leading 3- or 4-byte start code, when present) and the payload size in
// bytes, which extends up to the next start code or to the end of the
// buffer. When the buffer ends right after a start code, ErrNoNALUnit is
// returned.
//
// The operation is restartable: calling it again on the buffer region past
// the returned unit continues the scan.
func NextNALUnit(buf []byte) (int, int, error) {
	if len(buf) == 0 {
		return 0, 0, ErrEmptyBuffer
	}

	// not enough bytes to hold a start code; report the whole region.
	if len(buf) < 3 {
		return 0, len(buf), nil
	}

	start := 0
	if buf[0] == 0x00 && buf[1] == 0x00 {
		switch {
		case buf[2] == 0x01: // 0x000001
			start = 3

		case buf[2] == 0x00 && len(buf) >= 4 && buf[3] == 0x01: // 0x00000001
			start = 4
		}
	}

	// sliding window over the last 4 bytes read; the low 3 bytes matching
	// 0x000001 mark the start code of the following unit.
	window := uint32(0xFFFFFFFF)

	for i := start; i < len(buf); i++ {
		window = (window << 8) | uint32(buf[i])
		if (window & 0x00FFFFFF) == 0x00000001 {
			if window == 0x00000001 {
				return start, i + 1 - 4 - start, nil
			}
			return start, i + 1 - 3 - start, nil
		}
	}

	if start >= len(buf) {
		return 0, 0, ErrNoNALUnit
	}

	return start, len(buf) - start, nil
}

// ConvertToLengthPrefixed converts a buffer from the byte-stream format to
// the length-prefixed format, in place, by overwriting the 4-byte start
// code that precedes each NAL unit with the unit size encoded as a 4-byte
// big-endian integer. Total buffer length and payload content are
// unchanged.
//
// Every NAL unit in buf must be preceded by a 4-byte start code, since the
// length field permanently overwrites exactly those 4 bytes. On error the
// buffer may have been partially rewritten and must be discarded.
func ConvertToLengthPrefixed(buf []byte) error {
	if len(buf) == 0 {
		return ErrEmptyBuffer
	}

	pos := 0

	for pos < len(buf) {
		start, size, err := NextNALUnit(buf[pos:])
		if err != nil {
			if errors.Is(err, ErrNoNALUnit) {
				break
			}
			return err
		}

		if size == 0 {
			return fmt.Errorf("%w: zero-size NAL unit at offset %d", ErrInvalidBitstream, pos)
		}

		if start != 4 {
			return fmt.Errorf("%w: NAL unit at offset %d is not preceded by a 4-byte start code",
				ErrInvalidBitstream, pos)
		}

		binary.BigEndian.PutUint32(buf[pos:], uint32(size))
		pos += start + size
	}

	return nil
}
