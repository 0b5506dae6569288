package h265

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfileTierLevelUnmarshalFromSPS(t *testing.T) {
	for _, ca := range []struct {
		name string
		byts []byte
		ptl  ProfileTierLevel
	}{
		{
			"main 4.0",
			[]byte{
				0x42, 0x01, 0x01, 0x01, 0x60, 0x00, 0x00, 0x03,
				0x00, 0x90, 0x00, 0x00, 0x03, 0x00, 0x00, 0x03,
				0x00, 0x78, 0xa0, 0x03, 0xc0, 0x80, 0x10, 0xe5,
				0x96, 0x66, 0x69, 0x24, 0xca, 0xe0, 0x10, 0x00,
				0x00, 0x03, 0x00, 0x10, 0x00, 0x00, 0x03, 0x01,
				0xe0, 0x80,
			},
			ProfileTierLevel{
				GeneralProfileIdc: 1,
				GeneralProfileCompatibilityFlag: [32]bool{
					false, true, true, false, false, false, false, false,
					false, false, false, false, false, false, false, false,
					false, false, false, false, false, false, false, false,
					false, false, false, false, false, false, false, false,
				},
				ProgressiveSourceFlag:   true,
				FrameOnlyConstraintFlag: true,
				LevelIdc:                120,
			},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			var ptl ProfileTierLevel
			err := ptl.UnmarshalFromSPS(ca.byts)
			require.NoError(t, err)
			require.Equal(t, ca.ptl, ptl)
		})
	}
}

func TestProfileTierLevelUnmarshalFromSPSError(t *testing.T) {
	for _, ca := range []struct {
		name string
		byts []byte
	}{
		{
			"empty",
			[]byte{},
		},
		{
			"not a SPS",
			[]byte{0x44, 0x01, 0xC1},
		},
		{
			"truncated",
			[]byte{0x42, 0x01, 0x01, 0x01, 0x60, 0x00},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			var ptl ProfileTierLevel
			err := ptl.UnmarshalFromSPS(ca.byts)
			require.Error(t, err)
		})
	}
}

func TestProfileTierLevelAccessors(t *testing.T) {
	ptl := ProfileTierLevel{
		GeneralTierFlag: 1,
		LevelIdc:        123,
	}
	require.Equal(t, TierHigh, ptl.Tier())
	require.Equal(t, Level4_1, ptl.Level())

	ptl = ProfileTierLevel{
		LevelIdc: 93,
	}
	require.Equal(t, TierMain, ptl.Tier())
	require.Equal(t, Level3_1, ptl.Level())
}
