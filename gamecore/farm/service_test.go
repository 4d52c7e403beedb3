package farm

import (
	"context"
	"testing"
	"time"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/fallencrown/gamecore/gamecore/database/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestFarm(t *testing.T) (*Service, *bun.DB) {
	t.Helper()
	db := testdb.New(t)
	return NewService(db), db
}

func insertFarmer(t *testing.T, db *bun.DB, id int64, level int, gold int64) {
	t.Helper()
	player := &models.Player{
		ID:        id,
		Username:  "farmer",
		Level:     level,
		Energy:    20,
		MaxEnergy: 20,
		Gold:      gold,
	}
	_, err := db.NewInsert().Model(player).Exec(context.Background())
	require.NoError(t, err)
}

func updateStats(t *testing.T, db *bun.DB, stats *models.PlayerFarmingStats) {
	t.Helper()
	_, err := db.NewUpdate().Model(stats).WherePK().Exec(context.Background())
	require.NoError(t, err)
}

func plantID(t *testing.T, state *State, name string) int64 {
	t.Helper()
	for _, plant := range state.Plants {
		if plant.Name == name {
			return plant.ID
		}
	}
	t.Fatalf("no plant named %q", name)
	return 0
}

func plotBySlot(t *testing.T, state *State, slot int) *models.FarmPlot {
	t.Helper()
	for _, plot := range state.Plots {
		if plot.SlotIndex == slot {
			return plot
		}
	}
	t.Fatalf("no plot in slot %d", slot)
	return nil
}

func assertSameTime(t *testing.T, want time.Time, got *time.Time) {
	t.Helper()
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %s, got %s", want, got)
}

func TestGetStateBootstrapsFarm(t *testing.T) {
	svc, _ := newTestFarm(t)
	ctx := context.Background()

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)

	assert.Equal(t, 1, state.Stats.Level)
	assert.Equal(t, 30, state.Stats.Energy)
	assert.Equal(t, 30, state.Stats.MaxEnergy)
	assert.Equal(t, 1, state.Stats.ToolLevel)
	assert.Equal(t, DefaultToolName, state.Stats.ToolName)
	assert.Equal(t, 1, state.Stats.StarterSeedCharges)
	require.NotNil(t, state.Stats.LastEnergyRefillAt)

	require.Len(t, state.Plots, TotalPlots)
	unlocked := 0
	for _, plot := range state.Plots {
		if plot.Unlocked {
			unlocked++
		}
	}
	assert.Equal(t, BasePlots, unlocked)

	// Slot 4 is the first paid plot.
	slot4 := plotBySlot(t, state, 4)
	assert.Equal(t, int64(650), slot4.UnlockCost)
	assert.Equal(t, 4, slot4.UnlockLevelRequirement)
	assert.Equal(t, 3, slot4.UnlockFarmingLevelRequirement)

	require.Len(t, state.Plants, 5)
	require.NotNil(t, state.Wallet)
}

func TestPassiveEnergyRegen(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)

	last := testNow.Add(-3300 * time.Second)
	state.Stats.Energy = 5
	state.Stats.LastEnergyRefillAt = &last
	updateStats(t, db, state.Stats)

	state, err = svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)

	// 3300s / 600s = 5 whole intervals; the 300s remainder keeps accruing.
	assert.Equal(t, 10, state.Stats.Energy)
	assertSameTime(t, last.Add(3000*time.Second), state.Stats.LastEnergyRefillAt)
}

func TestPassiveEnergyRegenPartialIntervalDoesNothing(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)

	last := testNow.Add(-599 * time.Second)
	state.Stats.Energy = 5
	state.Stats.LastEnergyRefillAt = &last
	updateStats(t, db, state.Stats)

	state, err = svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)

	assert.Equal(t, 5, state.Stats.Energy)
	assertSameTime(t, last, state.Stats.LastEnergyRefillAt)
}

func TestPassiveEnergyRegenSnapsTimestampAtCap(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)

	// 12 intervals elapsed but only 1 point fits below the cap: the
	// timestamp snaps to now so nothing is banked past full.
	last := testNow.Add(-2 * time.Hour)
	state.Stats.Energy = 29
	state.Stats.LastEnergyRefillAt = &last
	updateStats(t, db, state.Stats)

	state, err = svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)

	assert.Equal(t, 30, state.Stats.Energy)
	assertSameTime(t, testNow, state.Stats.LastEnergyRefillAt)
}

func TestPlantCrop(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 1, 0)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	carrot := plantID(t, state, "Соковита морква")
	plot := plotBySlot(t, state, 1)

	state, msg, err := svc.PlantCrop(ctx, 1, plot.ID, carrot, testNow)
	require.NoError(t, err)
	assert.Contains(t, msg, "Соковита морква")

	// Spending energy resets the regen anchor to now.
	assert.Equal(t, 28, state.Stats.Energy)
	assertSameTime(t, testNow, state.Stats.LastEnergyRefillAt)

	planted := plotBySlot(t, state, 1)
	require.NotNil(t, planted.Crop)
	assert.Equal(t, models.CropStateGrowing, planted.Crop.State)
	assert.True(t, testNow.Add(900*time.Second).Equal(planted.Crop.ReadyAt))
}

func TestPlantCropGates(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 1, 1000)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	carrot := plantID(t, state, "Соковита морква")
	lavender := plantID(t, state, "Місячна лаванда")
	locked := plotBySlot(t, state, 4)
	open := plotBySlot(t, state, 1)

	_, _, err = svc.PlantCrop(ctx, 1, locked.ID, carrot, testNow)
	assert.ErrorIs(t, err, ErrPlotLocked)

	// Lavender requires character level 6 and farm level 4.
	_, _, err = svc.PlantCrop(ctx, 1, open.ID, lavender, testNow)
	assert.ErrorIs(t, err, ErrPlantLocked)

	_, _, err = svc.PlantCrop(ctx, 1, open.ID, carrot, testNow)
	require.NoError(t, err)
	_, _, err = svc.PlantCrop(ctx, 1, open.ID, carrot, testNow)
	assert.ErrorIs(t, err, ErrPlotOccupied)
}

func TestPlantCropEnergyShortage(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 1, 0)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	state.Stats.Energy = 1
	state.Stats.LastEnergyRefillAt = &testNow
	updateStats(t, db, state.Stats)

	carrot := plantID(t, state, "Соковита морква")
	plot := plotBySlot(t, state, 1)

	_, _, err = svc.PlantCrop(ctx, 1, plot.ID, carrot, testNow)
	assert.ErrorIs(t, err, ErrNotEnoughEnergy)
}

func TestPlantCropSeedCostAndStarterSeed(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 2, 100)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	state.Stats.Level = 2
	updateStats(t, db, state.Stats)
	verbena := plantID(t, state, "Вербена зоряного сяйва")

	// Enough gold: the seed is bought, the starter charge stays.
	state, _, err = svc.PlantCrop(ctx, 1, plotBySlot(t, state, 1).ID, verbena, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(45), state.Wallet.Gold)
	assert.Equal(t, 1, state.Stats.StarterSeedCharges)

	// Gold short: the starter charge covers the seed, gold untouched.
	state, msg, err := svc.PlantCrop(ctx, 1, plotBySlot(t, state, 2).ID, verbena, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(45), state.Wallet.Gold)
	assert.Equal(t, 0, state.Stats.StarterSeedCharges)
	assert.Contains(t, msg, "подарункове насіння")

	// Gold short and no charge left.
	_, _, err = svc.PlantCrop(ctx, 1, plotBySlot(t, state, 3).ID, verbena, testNow)
	var fundsErr *InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, int64(45), fundsErr.Available)
	assert.Equal(t, int64(55), fundsErr.Required)
}

func TestHarvestCrop(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 1, 0)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	carrot := plantID(t, state, "Соковита морква")
	plot := plotBySlot(t, state, 1)

	_, _, err = svc.HarvestCrop(ctx, 1, plot.ID, testNow)
	assert.ErrorIs(t, err, ErrPlotEmpty)

	_, _, err = svc.PlantCrop(ctx, 1, plot.ID, carrot, testNow)
	require.NoError(t, err)

	// Too early: the remaining time is reported.
	_, _, err = svc.HarvestCrop(ctx, 1, plot.ID, testNow.Add(500*time.Second))
	var notReady *CropNotReadyError
	require.ErrorAs(t, err, &notReady)
	assert.Equal(t, 400*time.Second, notReady.Remaining)
	assert.ErrorIs(t, err, ErrPlotOccupied)

	harvestAt := testNow.Add(901 * time.Second)
	state, msg, err := svc.HarvestCrop(ctx, 1, plot.ID, harvestAt)
	require.NoError(t, err)
	assert.Contains(t, msg, "35 золотих")

	assert.Equal(t, int64(35), state.Wallet.Gold)
	assert.Equal(t, int64(35), state.Player.Gold)
	assert.Equal(t, int64(25), state.Stats.XP)
	assert.Nil(t, plotBySlot(t, state, 1).Crop, "harvested crop is deleted")
}

func TestHarvestCropFarmLevelUp(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 1, 0)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	carrot := plantID(t, state, "Соковита морква")
	plot := plotBySlot(t, state, 1)

	_, _, err = svc.PlantCrop(ctx, 1, plot.ID, carrot, testNow)
	require.NoError(t, err)

	// 60 banked + 25 from the carrot clears the level-1 requirement of 80.
	state, err = svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	state.Stats.XP = 60
	updateStats(t, db, state.Stats)

	harvestAt := testNow.Add(901 * time.Second)
	state, msg, err := svc.HarvestCrop(ctx, 1, plot.ID, harvestAt)
	require.NoError(t, err)
	assert.Contains(t, msg, "Рівень ферми підвищено до 2")

	assert.Equal(t, 2, state.Stats.Level)
	assert.Equal(t, int64(5), state.Stats.XP)
	assert.Equal(t, 32, state.Stats.MaxEnergy)
	// 28 after planting, +1 passive point over the 901s, +2 restore.
	assert.Equal(t, 31, state.Stats.Energy)
}

func TestUnlockPlot(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 4, 1000)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	slot4 := plotBySlot(t, state, 4)

	// Farm level 1 is below the required 3.
	_, _, err = svc.UnlockPlot(ctx, 1, slot4.ID, testNow)
	assert.ErrorIs(t, err, ErrPlotLocked)

	state.Stats.Level = 3
	updateStats(t, db, state.Stats)

	state, msg, err := svc.UnlockPlot(ctx, 1, slot4.ID, testNow)
	require.NoError(t, err)
	assert.Contains(t, msg, "Нова ділянка")
	assert.True(t, plotBySlot(t, state, 4).Unlocked)
	assert.Equal(t, int64(350), state.Wallet.Gold)

	// Unlocking again is a friendly no-op.
	_, msg, err = svc.UnlockPlot(ctx, 1, slot4.ID, testNow)
	require.NoError(t, err)
	assert.Contains(t, msg, "вже відкрита")
}

func TestUnlockPlotInsufficientGold(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 4, 100)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	state.Stats.Level = 3
	updateStats(t, db, state.Stats)

	_, _, err = svc.UnlockPlot(ctx, 1, plotBySlot(t, state, 4).ID, testNow)
	var fundsErr *InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, int64(650), fundsErr.Required)
}

func TestUpgradeTool(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 1, 1000)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)

	// Farm level 1 is below the required 2 for the bronze tool.
	_, _, err = svc.UpgradeTool(ctx, 1, testNow)
	assert.ErrorIs(t, err, ErrToolUpgradeUnavailable)

	state.Stats.Level = 2
	updateStats(t, db, state.Stats)

	state, msg, err := svc.UpgradeTool(ctx, 1, testNow)
	require.NoError(t, err)
	assert.Contains(t, msg, "рівня 2")
	assert.Equal(t, 2, state.Stats.ToolLevel)
	assert.Equal(t, "Бронзова сапка", state.Stats.ToolName)
	assert.Equal(t, 10, state.Stats.ToolBonusPercent)
	assert.Equal(t, int64(750), state.Wallet.Gold)
}

func TestUpgradeToolAtMaxLevel(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 1, 10000)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	state.Stats.Level = 10
	state.Stats.ToolLevel = 4
	updateStats(t, db, state.Stats)

	_, _, err = svc.UpgradeTool(ctx, 1, testNow)
	assert.ErrorIs(t, err, ErrToolUpgradeUnavailable)
}

func TestToolBonusShortensGrowth(t *testing.T) {
	assert.Equal(t, 900*time.Second, growthDuration(900, 0))
	assert.Equal(t, 585*time.Second, growthDuration(900, 35))
	// The floor wins over the bonus.
	assert.Equal(t, 60*time.Second, growthDuration(80, 35))
	assert.Equal(t, 60*time.Second, growthDuration(30, 0))
}

func TestRefillEnergy(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 1, 500)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)

	// Already full.
	_, msg, err := svc.RefillEnergy(ctx, 1, 5, testNow)
	require.NoError(t, err)
	assert.Contains(t, msg, "вже повна")

	state.Stats.Energy = 20
	state.Stats.LastEnergyRefillAt = &testNow
	updateStats(t, db, state.Stats)

	state, msg, err = svc.RefillEnergy(ctx, 1, 4, testNow)
	require.NoError(t, err)
	assert.Contains(t, msg, "Поповнено 4")
	assert.Equal(t, 24, state.Stats.Energy)
	assert.Equal(t, int64(400), state.Wallet.Gold)

	// Requests above the cap are clamped before pricing.
	state, _, err = svc.RefillEnergy(ctx, 1, 100, testNow)
	require.NoError(t, err)
	assert.Equal(t, 30, state.Stats.Energy)
	assert.Equal(t, int64(250), state.Wallet.Gold)
}

func TestRefillEnergyInsufficientGold(t *testing.T) {
	svc, db := newTestFarm(t)
	ctx := context.Background()
	insertFarmer(t, db, 1, 1, 10)

	state, err := svc.GetState(ctx, 1, testNow)
	require.NoError(t, err)
	state.Stats.Energy = 20
	state.Stats.LastEnergyRefillAt = &testNow
	updateStats(t, db, state.Stats)

	_, _, err = svc.RefillEnergy(ctx, 1, 2, testNow)
	var fundsErr *InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, int64(50), fundsErr.Required)
}
