package leveling

import "time"

// LevelReward describes the side effects of a single level-up.
type LevelReward struct {
	Level          int
	Title          string
	EnergyBonus    int
	CosmeticUnlock string
}

// Result summarizes one GrantXP call, including a possible multi-level
// cascade.
type Result struct {
	XPGained     int64
	LevelsGained int
	NewLevel     int
	XPIntoLevel  int64
	XPToNext     int64
	Rewards      []LevelReward
}

// DailyResult summarizes a claimed daily reward.
type DailyResult struct {
	XPGained     int64
	LevelsGained int
	NewLevel     int
	XPIntoLevel  int64
	XPToNext     int64
	EnergyGained int
	NewEnergy    int
	GoldGained   int64
	NewGoldTotal int64
	ClaimedAt    time.Time
	LevelRewards []LevelReward
}
