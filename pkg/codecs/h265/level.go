package h265

import (
	"fmt"
)

// Tier is an H265 tier.
type Tier uint8

// Tiers.
const (
	TierUnknown Tier = iota
	TierMain
	TierHigh
)

// String implements fmt.Stringer.
func (t Tier) String() string {
	switch t {
	case TierMain:
		return "main"
	case TierHigh:
		return "high"
	}
	return fmt.Sprintf("unknown (%d)", uint8(t))
}

// Level is an H265 level. Its numeric value is general_level_idc
// (30 times the level number).
type Level uint8

// Levels.
const (
	LevelUnknown Level = 0
	Level1       Level = 30
	Level2       Level = 60
	Level2_1     Level = 63 //nolint:revive
	Level3       Level = 90
	Level3_1     Level = 93 //nolint:revive
	Level4       Level = 120
	Level4_1     Level = 123 //nolint:revive
	Level5       Level = 150
	Level5_1     Level = 153 //nolint:revive
	Level5_2     Level = 156 //nolint:revive
	Level6       Level = 180
	Level6_1     Level = 183 //nolint:revive
	Level6_2     Level = 186 //nolint:revive
)

// String implements fmt.Stringer.
func (l Level) String() string {
	if l == LevelUnknown || l%30 != 0 && l%3 != 0 {
		return fmt.Sprintf("unknown (%d)", uint8(l))
	}
	if l%30 == 0 {
		return fmt.Sprintf("%d", l/30)
	}
	return fmt.Sprintf("%d.%d", l/30, (l%30)/3)
}
