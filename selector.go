package gohevclib

import (
	"github.com/bluenviron/gohevclib/pkg/caps"
	"github.com/bluenviron/gohevclib/pkg/codecs/h265"
)

// SelectBestProfile walks the "profile" field of every structure in cps,
// resolves each candidate name through the provider and returns the
// highest-scored profile. Unresolvable names are skipped silently. A
// candidate replaces the running best only when its score is strictly
// greater, so on equal score the candidate seen first wins. When no
// structure carries a resolvable profile, ok is false.
func SelectBestProfile(cps caps.Caps, provider CapabilityProvider) (h265.Profile, bool) {
	best := h265.ProfileUnknown
	bestScore := uint32(0)

	for _, s := range cps {
		v, ok := s.Get("profile")
		if !ok {
			continue
		}

		for _, name := range v.Strings() {
			profile, ok := provider.ParseProfile(name)
			if !ok {
				continue
			}

			score := provider.ProfileScore(profile)
			if best == h265.ProfileUnknown || score > bestScore {
				best = profile
				bestScore = score
			}
		}
	}

	return best, best != h265.ProfileUnknown
}
