package farm

import (
	"time"

	"github.com/fallencrown/gamecore/gamecore/database/models"
)

// Farm economy tuning. Values are part of the live game balance.
const (
	BasePlots          = 3
	TotalPlots         = 8
	BasePlotUnlockCost = 400
	PlotUnlockCostStep = 250

	EnergyGoldPerPoint  = 25
	EnergyMaxCap        = 60
	EnergyRegenInterval = 600 * time.Second

	// Shortest possible growth timer, regardless of tool bonus.
	MinGrowthSeconds = 60

	// Per farm level gained: max energy bump (capped) and energy restore.
	LevelMaxEnergyBonus = 2
	LevelEnergyRestore  = 2

	DefaultToolName = "Дерев'яна сапка"
)

// ToolUpgrade is one step of the tool ladder. The bonus percent shortens
// crop growth duration.
type ToolUpgrade struct {
	Level                int
	Name                 string
	BonusPercent         int
	Cost                 int64
	RequiredFarmingLevel int
}

var toolUpgrades = []ToolUpgrade{
	{Level: 1, Name: DefaultToolName, BonusPercent: 0, Cost: 0, RequiredFarmingLevel: 1},
	{Level: 2, Name: "Бронзова сапка", BonusPercent: 10, Cost: 250, RequiredFarmingLevel: 2},
	{Level: 3, Name: "Срібна сапка", BonusPercent: 20, Cost: 600, RequiredFarmingLevel: 4},
	{Level: 4, Name: "Кришталевий культиватор", BonusPercent: 35, Cost: 1200, RequiredFarmingLevel: 6},
}

func findToolUpgrade(level int) *ToolUpgrade {
	for i := range toolUpgrades {
		if toolUpgrades[i].Level == level {
			return &toolUpgrades[i]
		}
	}
	return nil
}

// DefaultPlants returns the fixed starting plant catalog, seeded on first
// farm access.
func DefaultPlants() []*models.PlantType {
	return []*models.PlantType{
		{
			Name:               "Соковита морква",
			Description:        "Невибаглива культура для перших врожаїв.",
			GrowthSeconds:      900,
			XPReward:           25,
			EnergyCost:         2,
			SeedCost:           0,
			SellPrice:          35,
			UnlockLevel:        1,
			UnlockFarmingLevel: 1,
			Icon:               "plant_carrot_common",
		},
		{
			Name:               "Вербена зоряного сяйва",
			Description:        "Легендарна трава, що краще росте поруч із реальними овочами.",
			GrowthSeconds:      1500,
			XPReward:           40,
			EnergyCost:         3,
			SeedCost:           55,
			SellPrice:          110,
			UnlockLevel:        2,
			UnlockFarmingLevel: 2,
			Icon:               "plant_starverbena_uncommon",
		},
		{
			Name:               "Медова полуниця",
			Description:        "Швидко росте та додає вітамінів.",
			GrowthSeconds:      1800,
			XPReward:           45,
			EnergyCost:         3,
			SeedCost:           40,
			SellPrice:          95,
			UnlockLevel:        3,
			UnlockFarmingLevel: 2,
			Icon:               "plant_strawberry_rare",
		},
		{
			Name:               "Сонячний гарбуз-глорія",
			Description:        "Гібрид гарбуза і фантазійного світляка, світиться уночі.",
			GrowthSeconds:      2700,
			XPReward:           70,
			EnergyCost:         4,
			SeedCost:           85,
			SellPrice:          190,
			UnlockLevel:        4,
			UnlockFarmingLevel: 3,
			Icon:               "plant_pumpkin_gloria",
		},
		{
			Name:               "Місячна лаванда",
			Description:        "Рослина для досвідчених фермерів. Дає багато досвіду.",
			GrowthSeconds:      3600,
			XPReward:           110,
			EnergyCost:         4,
			SeedCost:           120,
			SellPrice:          260,
			UnlockLevel:        6,
			UnlockFarmingLevel: 4,
			Icon:               "plant_lavender_epic",
		},
	}
}

// defaultPlots builds the fixed pre-provisioned plot set for a player: the
// first BasePlots slots start unlocked and free, the rest are gated by
// gold, character level and farm level.
func defaultPlots(playerID int64) []*models.FarmPlot {
	plots := make([]*models.FarmPlot, 0, TotalPlots)
	for slot := 1; slot <= TotalPlots; slot++ {
		plot := &models.FarmPlot{
			PlayerID:  playerID,
			SlotIndex: slot,
		}
		if slot <= BasePlots {
			plot.Unlocked = true
			plot.UnlockCost = 0
			plot.UnlockLevelRequirement = 1
			plot.UnlockFarmingLevelRequirement = 1
		} else {
			plot.Unlocked = false
			plot.UnlockCost = BasePlotUnlockCost + int64(slot-BasePlots)*PlotUnlockCostStep
			plot.UnlockLevelRequirement = slot
			plot.UnlockFarmingLevelRequirement = slot/2 + 1
		}
		plots = append(plots, plot)
	}
	return plots
}
