package gohevclib

import (
	"github.com/bluenviron/gohevclib/pkg/codecs/h265"
)

// CapabilityProvider supplies codec capability information: the profiles
// the platform knows about and their relative ranking. Rankings are
// provider-defined; higher means more capable.
type CapabilityProvider interface {
	// ParseProfile resolves a profile name. Unknown or malformed names
	// return false.
	ParseProfile(s string) (h265.Profile, bool)

	// ProfileScore returns the rank of a profile.
	ProfileScore(p h265.Profile) uint32
}

// StaticProvider is a CapabilityProvider backed by a fixed score table.
type StaticProvider struct {
	// Scores ranks each profile; profiles absent from the table score zero.
	Scores map[h265.Profile]uint32
}

// ParseProfile implements CapabilityProvider.
func (p *StaticProvider) ParseProfile(s string) (h265.Profile, bool) {
	return h265.ParseProfile(s)
}

// ProfileScore implements CapabilityProvider.
func (p *StaticProvider) ProfileScore(pr h265.Profile) uint32 {
	return p.Scores[pr]
}

// DefaultProvider ranks the profiles commonly exposed by hardware
// encoders, preferring higher bit depth and chroma sampling.
var DefaultProvider CapabilityProvider = &StaticProvider{
	Scores: map[h265.Profile]uint32{
		h265.ProfileMainStillPicture: 1,
		h265.ProfileMain:             2,
		h265.ProfileMain10:           3,
		h265.ProfileMain422_10:       4,
		h265.ProfileMain444:          5,
	},
}
