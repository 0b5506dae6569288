package h265

import (
	"fmt"
)

// Profile is an H265 profile.
type Profile uint8

// Profiles.
const (
	ProfileUnknown Profile = iota
	ProfileMain
	ProfileMain10
	ProfileMainStillPicture
	ProfileMain422_10 //nolint:revive
	ProfileMain444
)

var profileLabels = map[Profile]string{
	ProfileMain:             "main",
	ProfileMain10:           "main-10",
	ProfileMainStillPicture: "main-still-picture",
	ProfileMain422_10:       "main-422-10",
	ProfileMain444:          "main-444",
}

// String implements fmt.Stringer.
func (p Profile) String() string {
	if l, ok := profileLabels[p]; ok {
		return l
	}
	return fmt.Sprintf("unknown (%d)", uint8(p))
}

// ParseProfile converts a profile name into a Profile.
func ParseProfile(s string) (Profile, bool) {
	for p, l := range profileLabels {
		if l == s {
			return p, true
		}
	}
	return ProfileUnknown, false
}

// ProfileFromPTL extracts the profile signaled by a profile_tier_level()
// structure, using general_profile_idc and, as a fallback, the profile
// compatibility flags. Only the profiles produced by hardware encoders are
// recognized; other combinations return ProfileUnknown.
func ProfileFromPTL(ptl ProfileTierLevel) Profile {
	if ptl.GeneralProfileSpace != 0 {
		return ProfileUnknown
	}

	switch {
	case ptl.GeneralProfileIdc == 1 || ptl.GeneralProfileCompatibilityFlag[1]:
		return ProfileMain

	case ptl.GeneralProfileIdc == 2 || ptl.GeneralProfileCompatibilityFlag[2]:
		return ProfileMain10

	case ptl.GeneralProfileIdc == 3 || ptl.GeneralProfileCompatibilityFlag[3]:
		return ProfileMainStillPicture

	case ptl.GeneralProfileIdc == 4 || ptl.GeneralProfileCompatibilityFlag[4]:
		// format range extensions; distinguish through the constraint flags
		// (ITU-T H.265, Table A.2).
		if ptl.Max422ChromaConstraintFlag && !ptl.Max420ChromaConstraintFlag {
			return ProfileMain422_10
		}
		if !ptl.Max422ChromaConstraintFlag && !ptl.Max420ChromaConstraintFlag {
			return ProfileMain444
		}
		return ProfileUnknown
	}

	return ProfileUnknown
}
