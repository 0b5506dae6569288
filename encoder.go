// Package gohevclib is a library to negotiate and format the output of
// hardware H265 encoders, in pure Go. It rewrites encoded frames between
// the Annex-B byte-stream format and the length-prefixed format required
// by ISO-BMFF-style muxers, and selects the best profile among the ones a
// downstream consumer accepts.
package gohevclib

import (
	"fmt"

	"github.com/bluenviron/gohevclib/pkg/caps"
	"github.com/bluenviron/gohevclib/pkg/codecs/h265"
)

// StreamFormat is the NAL unit framing of encoder output buffers.
type StreamFormat int

// stream formats.
const (
	// StreamFormatByteStream delimits NAL units with Annex-B start codes.
	StreamFormatByteStream StreamFormat = iota

	// StreamFormatHVC1 prefixes each NAL unit with its size, encoded as a
	// 4-byte big-endian integer.
	StreamFormatHVC1
)

// String implements fmt.Stringer.
func (f StreamFormat) String() string {
	if f == StreamFormatHVC1 {
		return "hvc1"
	}
	return "byte-stream"
}

// HardwareEncoder is the interface of the external encoder wrapped by an
// Encoder. Implementations produce encoded frames in byte-stream format,
// with a 4-byte start code before every NAL unit.
type HardwareEncoder interface {
	// ProfileTierLevel returns the negotiated profile, tier and level.
	// Values not negotiated yet are reported as zero values.
	ProfileTierLevel() (h265.Profile, h265.Tier, h265.Level)

	// SetMaxProfile constrains the encoder to profiles up to the given one.
	SetMaxProfile(p h265.Profile) error
}

// Encoder wraps a hardware H265 encoder, negotiating its output with a
// downstream consumer and rewriting output buffers when the consumer
// requires length-prefixed NAL units.
type Encoder struct {
	// Hardware is the wrapped encoder. Required.
	Hardware HardwareEncoder

	// Provider supplies profile rankings. It defaults to DefaultProvider.
	Provider CapabilityProvider

	streamFormat  StreamFormat
	needCodecData bool
}

// Negotiate examines the caps accepted by the downstream consumer,
// constrains the hardware encoder to the best profile the consumer
// accepts, and records the requested output stream format. A nil
// downstream leaves the encoder unconstrained, producing byte-stream
// output.
func (e *Encoder) Negotiate(downstream caps.Caps) error {
	if e.Provider == nil {
		e.Provider = DefaultProvider
	}

	e.streamFormat = StreamFormatByteStream
	e.needCodecData = false

	if downstream == nil {
		return nil
	}

	if profile, ok := SelectBestProfile(downstream, e.Provider); ok {
		err := e.Hardware.SetMaxProfile(profile)
		if err != nil {
			return fmt.Errorf("setting maximum profile: %w", err)
		}
	}

	if sf, ok := downstream.FirstString("stream-format"); ok && sf == StreamFormatHVC1.String() {
		e.streamFormat = StreamFormatHVC1
		e.needCodecData = true
	}

	return nil
}

// StreamFormat returns the negotiated output stream format.
func (e *Encoder) StreamFormat() StreamFormat {
	return e.streamFormat
}

// NeedsCodecData reports whether the downstream consumer requires
// out-of-band codec configuration (hvcC parameter sets) instead of
// in-band parameter sets.
func (e *Encoder) NeedsCodecData() bool {
	return e.needCodecData
}

// OutputCaps describes the encoder output after negotiation, including
// the profile, tier and level reported by the hardware encoder, when
// available.
func (e *Encoder) OutputCaps() caps.Caps {
	s := caps.NewStructure("video/x-h265")
	s.Set("stream-format", caps.Single(e.streamFormat.String()))
	s.Set("alignment", caps.Single("au"))

	profile, tier, level := e.Hardware.ProfileTierLevel()
	if profile != h265.ProfileUnknown {
		s.Set("profile", caps.Single(profile.String()))

		if level != h265.LevelUnknown {
			s.Set("level", caps.Single(level.String()))

			if tier != h265.TierUnknown {
				s.Set("tier", caps.Single(tier.String()))
			}
		}
	}

	return caps.Caps{s}
}

// ProcessOutput prepares an encoded frame for the downstream consumer. In
// hvc1 mode the buffer is rewritten in place into the length-prefixed
// format; when rewriting fails, the buffer is discarded and must not be
// forwarded. In byte-stream mode buffers pass through untouched.
func (e *Encoder) ProcessOutput(buf *Buffer) error {
	if e.streamFormat != StreamFormatHVC1 {
		return nil
	}

	err := buf.Map(h265.ConvertToLengthPrefixed)
	if err != nil {
		buf.Discard()
		return fmt.Errorf("converting to hvc1: %w", err)
	}

	return nil
}
