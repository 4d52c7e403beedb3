package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Crop lifecycle states. Harvested crops are deleted, not archived.
const (
	CropStateGrowing = "growing"
	CropStateReady   = "ready"
)

// PlantType is the farm catalog entity.
type PlantType struct {
	bun.BaseModel `bun:"table:farm_plant_catalog,alias:pt"`

	ID                 int64  `bun:"id,pk,autoincrement"`
	Name               string `bun:"name,notnull,unique"`
	Description        string `bun:"description"`
	GrowthSeconds      int    `bun:"growth_seconds,notnull,default:600"`
	XPReward           int64  `bun:"xp_reward,notnull,default:15"`
	EnergyCost         int    `bun:"energy_cost,notnull,default:2"`
	SeedCost           int64  `bun:"seed_cost,notnull,default:0"`
	SellPrice          int64  `bun:"sell_price,notnull,default:0"`
	UnlockLevel        int    `bun:"unlock_level,notnull,default:1"`
	UnlockFarmingLevel int    `bun:"unlock_farming_level,notnull,default:1"`
	Icon               string `bun:"icon"`
}

// PlayerFarmingStats is a singleton row per player.
type PlayerFarmingStats struct {
	bun.BaseModel `bun:"table:farm_player_stats,alias:fs"`

	PlayerID           int64      `bun:"player_id,pk"`
	Level              int        `bun:"level,notnull,default:1"`
	XP                 int64      `bun:"xp,notnull,default:0"`
	Energy             int        `bun:"energy,notnull,default:30"`
	MaxEnergy          int        `bun:"max_energy,notnull,default:30"`
	ToolLevel          int        `bun:"tool_level,notnull,default:1"`
	ToolName           string     `bun:"tool_name,notnull"`
	ToolBonusPercent   int        `bun:"tool_bonus_percent,notnull,default:0"`
	LastEnergyRefillAt *time.Time `bun:"last_energy_refill_at"`
	StarterSeedCharges int        `bun:"starter_seed_charges,notnull,default:1"`
}

type FarmPlot struct {
	bun.BaseModel `bun:"table:farm_plots,alias:fp"`

	ID                            int64     `bun:"id,pk,autoincrement"`
	PlayerID                      int64     `bun:"player_id,notnull"`
	SlotIndex                     int       `bun:"slot_index,notnull"`
	Unlocked                      bool      `bun:"unlocked,notnull,default:false"`
	UnlockCost                    int64     `bun:"unlock_cost,notnull,default:200"`
	UnlockLevelRequirement        int       `bun:"unlock_level_requirement,notnull,default:1"`
	UnlockFarmingLevelRequirement int       `bun:"unlock_farming_level_requirement,notnull,default:1"`
	CreatedAt                     time.Time `bun:"created_at,notnull,default:current_timestamp"`

	Crop *PlantedCrop `bun:"rel:has-one,join:id=plot_id"`
}

// PlantedCrop occupies exactly one plot and is deleted on harvest.
type PlantedCrop struct {
	bun.BaseModel `bun:"table:farm_planted_crops,alias:pc"`

	ID          int64     `bun:"id,pk,autoincrement"`
	PlotID      int64     `bun:"plot_id,notnull,unique"`
	PlantTypeID int64     `bun:"plant_type_id,notnull"`
	PlantedAt   time.Time `bun:"planted_at,notnull"`
	ReadyAt     time.Time `bun:"ready_at,notnull"`
	State       string    `bun:"state,notnull,default:'growing'"`

	PlantType *PlantType `bun:"rel:has-one,join:plant_type_id=id"`
}

// MarkReady promotes a growing crop once its ready time has passed.
// Persisted timestamps may round-trip without zone information, so both
// sides are normalized to UTC before comparison.
func (c *PlantedCrop) MarkReady(now time.Time) {
	if c.State != CropStateGrowing {
		return
	}
	if !now.UTC().Before(c.ReadyAt.UTC()) {
		c.State = CropStateReady
	}
}
