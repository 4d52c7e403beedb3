package leveling

import "time"

type Config struct {
	Curve Curve

	// Per-level side effects
	LevelEnergyBonus int
	LevelTitles      map[int]string
	LevelCosmetics   map[int]string
	FallbackTitle    string // fmt verb receives the level

	// Daily reward
	DailyCooldown time.Duration
	DailyXP       int64
	DailyEnergy   int
	DailyGold     int64
}

func NewDefaultConfig() *Config {
	return &Config{
		Curve:            CharacterCurve,
		LevelEnergyBonus: 5,
		LevelTitles: map[int]string{
			1: "Початківець Шляху",
			2: "Дослідник Вітрів",
			3: "Оберігач Сутінків",
			4: "Голос Ночі",
			5: "Провідник Світла",
		},
		LevelCosmetics: map[int]string{
			2: "mask_dusk_epic",
			4: "cloak_traveler_rare",
		},
		FallbackTitle: "Мандрівник рівня %d",

		DailyCooldown: 24 * time.Hour,
		DailyXP:       50,
		DailyEnergy:   5,
		DailyGold:     100,
	}
}
