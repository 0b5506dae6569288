package h265

import (
	"fmt"

	"github.com/bluenviron/gohevclib/pkg/bits"
)

// emulationPreventionRemove removes emulation prevention bytes from a NALU.
//
// 0x00 0x00 0x03 0x00 -> 0x00 0x00 0x00
// 0x00 0x00 0x03 0x01 -> 0x00 0x00 0x01
// 0x00 0x00 0x03 0x02 -> 0x00 0x00 0x02
// 0x00 0x00 0x03 0x03 -> 0x00 0x00 0x03
func emulationPreventionRemove(nalu []byte) []byte {
	l := len(nalu)
	n := l

	for i := 2; i < l; i++ {
		if nalu[i-2] == 0 && nalu[i-1] == 0 && nalu[i] == 3 {
			n--
		}
	}

	ret := make([]byte, n)
	pos := 0
	start := 0

	for i := 2; i < l; i++ {
		if nalu[i-2] == 0 && nalu[i-1] == 0 && nalu[i] == 3 {
			pos += copy(ret[pos:], nalu[start:i])
			start = i + 1
		}
	}

	copy(ret[pos:], nalu[start:])

	return ret
}

// ProfileTierLevel is the general part of a profile_tier_level() syntax
// structure, as defined in ITU-T H.265, section 7.3.3.
type ProfileTierLevel struct {
	GeneralProfileSpace             uint8
	GeneralTierFlag                 uint8
	GeneralProfileIdc               uint8
	GeneralProfileCompatibilityFlag [32]bool
	ProgressiveSourceFlag           bool
	InterlacedSourceFlag            bool
	NonPackedConstraintFlag         bool
	FrameOnlyConstraintFlag         bool
	Max12bitConstraintFlag          bool
	Max10bitConstraintFlag          bool
	Max8bitConstraintFlag           bool
	Max422ChromaConstraintFlag      bool
	Max420ChromaConstraintFlag      bool
	MaxMonochromeConstraintFlag     bool
	IntraConstraintFlag             bool
	OnePictureOnlyConstraintFlag    bool
	LowerBitRateConstraintFlag      bool
	Max14BitConstraintFlag          bool
	LevelIdc                        uint8
}

func (p *ProfileTierLevel) unmarshal(buf []byte, pos *int) error {
	err := bits.HasSpace(buf, *pos, 8+32+12+34+8)
	if err != nil {
		return err
	}

	p.GeneralProfileSpace = uint8(bits.ReadBitsUnsafe(buf, pos, 2))
	p.GeneralTierFlag = uint8(bits.ReadBitsUnsafe(buf, pos, 1))
	p.GeneralProfileIdc = uint8(bits.ReadBitsUnsafe(buf, pos, 5))

	for j := 0; j < 32; j++ {
		p.GeneralProfileCompatibilityFlag[j] = bits.ReadFlagUnsafe(buf, pos)
	}

	p.ProgressiveSourceFlag = bits.ReadFlagUnsafe(buf, pos)
	p.InterlacedSourceFlag = bits.ReadFlagUnsafe(buf, pos)
	p.NonPackedConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
	p.FrameOnlyConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
	p.Max12bitConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
	p.Max10bitConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
	p.Max8bitConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
	p.Max422ChromaConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
	p.Max420ChromaConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
	p.MaxMonochromeConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
	p.IntraConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
	p.OnePictureOnlyConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
	p.LowerBitRateConstraintFlag = bits.ReadFlagUnsafe(buf, pos)

	if p.GeneralProfileIdc == 5 ||
		p.GeneralProfileIdc == 9 ||
		p.GeneralProfileIdc == 10 ||
		p.GeneralProfileIdc == 11 ||
		p.GeneralProfileCompatibilityFlag[5] ||
		p.GeneralProfileCompatibilityFlag[9] ||
		p.GeneralProfileCompatibilityFlag[10] ||
		p.GeneralProfileCompatibilityFlag[11] {
		p.Max14BitConstraintFlag = bits.ReadFlagUnsafe(buf, pos)
		*pos += 34
	} else {
		*pos += 35
	}

	p.LevelIdc = uint8(bits.ReadBitsUnsafe(buf, pos, 8))

	return nil
}

// UnmarshalFromSPS decodes the profile_tier_level() structure carried at
// the beginning of a SPS NALU. The input must include the 2-byte NALU
// header.
func (p *ProfileTierLevel) UnmarshalFromSPS(nalu []byte) error {
	nalu = emulationPreventionRemove(nalu)

	if len(nalu) < 2 {
		return fmt.Errorf("not enough bits")
	}

	if NALUTypeOf(nalu) != NALUType_SPS_NUT {
		return fmt.Errorf("not a SPS NALU")
	}

	buf := nalu[2:]
	pos := 0

	err := bits.HasSpace(buf, pos, 8)
	if err != nil {
		return err
	}

	// sps_video_parameter_set_id, sps_max_sub_layers_minus1,
	// sps_temporal_id_nesting_flag
	pos += 8

	return p.unmarshal(buf, &pos)
}

// Tier returns the tier signaled by general_tier_flag.
func (p ProfileTierLevel) Tier() Tier {
	if p.GeneralTierFlag == 1 {
		return TierHigh
	}
	return TierMain
}

// Level returns the level signaled by general_level_idc.
func (p ProfileTierLevel) Level() Level {
	return Level(p.LevelIdc)
}
