package farm

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/fallencrown/gamecore/gamecore/database/repositories"
	"github.com/fallencrown/gamecore/gamecore/leveling"
	"github.com/fallencrown/gamecore/gamecore/logger"
	"github.com/uptrace/bun"
)

// State is a consistent snapshot of a player's farm, taken after the lazy
// time-dependent transitions (energy regen, crop readiness) have been
// applied.
type State struct {
	Player *models.Player
	Stats  *models.PlayerFarmingStats
	Plots  []*models.FarmPlot
	Plants []*models.PlantType
	Wallet *models.Wallet
	Now    time.Time
}

// Service is the time-quantized farm simulation: crop growth, passive
// energy regeneration, tool upgrades, plot unlocking and farm leveling.
// There is no background scheduler; every time-based transition is
// computed lazily at the moment of access.
type Service struct {
	db    *bun.DB
	curve leveling.Curve
}

func NewService(db *bun.DB) *Service {
	return &Service{
		db:    db,
		curve: leveling.FarmingCurve,
	}
}

// GetState loads (and lazily bootstraps) the farm for a player, applying
// passive regen and promoting crops whose ready time has passed.
func (s *Service) GetState(ctx context.Context, playerID int64, now time.Time) (*State, error) {
	var state *State
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		state, err = s.loadState(ctx, tx, playerID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// PlantCrop plants the given plant type on an unlocked empty plot,
// deducting energy and the seed cost (gold, or one starter seed charge
// when gold is short).
func (s *Service) PlantCrop(ctx context.Context, playerID, plotID, plantTypeID int64, now time.Time) (*State, string, error) {
	var (
		state   *State
		message string
	)
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		st, err := s.loadState(ctx, tx, playerID, now)
		if err != nil {
			return err
		}
		repo := repositories.NewFarmRepository(tx)

		plot, err := plotByID(st.Plots, plotID)
		if err != nil {
			return err
		}
		if !plot.Unlocked {
			return fmt.Errorf("%w: plot %d", ErrPlotLocked, plotID)
		}
		if plot.Crop != nil {
			return fmt.Errorf("%w: plot %d", ErrPlotOccupied, plotID)
		}

		plant, err := plantByID(st.Plants, plantTypeID)
		if err != nil {
			return err
		}
		if st.Player.Level < plant.UnlockLevel || st.Stats.Level < plant.UnlockFarmingLevel {
			return fmt.Errorf("%w: %s", ErrPlantLocked, plant.Name)
		}

		if st.Stats.Energy < plant.EnergyCost {
			return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughEnergy, st.Stats.Energy, plant.EnergyCost)
		}
		st.Stats.Energy -= plant.EnergyCost
		refillAt := now.UTC()
		st.Stats.LastEnergyRefillAt = &refillAt

		usedStarterSeed := false
		if plant.SeedCost > 0 {
			if st.Wallet.Gold < plant.SeedCost {
				if st.Stats.StarterSeedCharges > 0 {
					st.Stats.StarterSeedCharges--
					usedStarterSeed = true
				} else {
					return &InsufficientFundsError{Available: st.Wallet.Gold, Required: plant.SeedCost}
				}
			} else {
				st.Wallet.Gold -= plant.SeedCost
				st.Player.Gold = st.Wallet.Gold
			}
		}

		readyAt := now.UTC().Add(growthDuration(plant.GrowthSeconds, st.Stats.ToolBonusPercent))
		crop := &models.PlantedCrop{
			PlotID:      plot.ID,
			PlantTypeID: plant.ID,
			PlantedAt:   now.UTC(),
			ReadyAt:     readyAt,
			State:       models.CropStateGrowing,
		}
		if err := repo.CreateCrop(ctx, crop); err != nil {
			return err
		}

		if err := s.persistEconomy(ctx, tx, st); err != nil {
			return err
		}

		message = fmt.Sprintf("Ви посадили %s. Врожай буде готовий приблизно о %s.", plant.Name, readyAt.Format("15:04"))
		if usedStarterSeed {
			message += " Використано подарункове насіння."
		}

		state, err = s.loadState(ctx, tx, playerID, now)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	logger.LogFarm("Crop planted", playerID,
		slog.Int64("plot_id", plotID),
		slog.Int64("plant_type_id", plantTypeID))
	return state, message, nil
}

// HarvestCrop collects a ready crop: farm XP, sell price in gold, and the
// plot is freed. Harvesting too early fails with the remaining time.
func (s *Service) HarvestCrop(ctx context.Context, playerID, plotID int64, now time.Time) (*State, string, error) {
	var (
		state   *State
		message string
	)
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		st, err := s.loadState(ctx, tx, playerID, now)
		if err != nil {
			return err
		}
		repo := repositories.NewFarmRepository(tx)

		plot, err := plotByID(st.Plots, plotID)
		if err != nil {
			return err
		}
		if plot.Crop == nil {
			return fmt.Errorf("%w: plot %d", ErrPlotEmpty, plotID)
		}

		crop := plot.Crop
		crop.MarkReady(now)
		if crop.State != models.CropStateReady {
			remaining := crop.ReadyAt.UTC().Sub(now.UTC())
			if remaining < 0 {
				remaining = 0
			}
			return &CropNotReadyError{Remaining: remaining}
		}

		plant := crop.PlantType
		if plant == nil {
			plant, err = repo.GetPlant(ctx, crop.PlantTypeID)
			if err != nil {
				return err
			}
		}

		levelsGained := s.grantFarmingXP(st.Stats, plant.XPReward)

		st.Wallet.Gold += plant.SellPrice
		st.Player.Gold = st.Wallet.Gold

		if err := repo.DeleteCrop(ctx, crop.ID); err != nil {
			return err
		}
		if err := s.persistEconomy(ctx, tx, st); err != nil {
			return err
		}

		parts := []string{
			fmt.Sprintf("Ви зібрали %s і заробили %d золотих.", plant.Name, plant.SellPrice),
			fmt.Sprintf("Отримано %d досвіду фермерства.", plant.XPReward),
		}
		if levelsGained > 0 {
			parts = append(parts, fmt.Sprintf("Рівень ферми підвищено до %d!", st.Stats.Level))
		}
		message = strings.Join(parts, " ")

		state, err = s.loadState(ctx, tx, playerID, now)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	logger.LogFarm("Crop harvested", playerID, slog.Int64("plot_id", plotID))
	return state, message, nil
}

// UnlockPlot spends gold to open a locked plot, re-validating both level
// gates.
func (s *Service) UnlockPlot(ctx context.Context, playerID, plotID int64, now time.Time) (*State, string, error) {
	var (
		state    *State
		message  string
		unlocked bool
	)
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		st, err := s.loadState(ctx, tx, playerID, now)
		if err != nil {
			return err
		}
		repo := repositories.NewFarmRepository(tx)

		plot, err := plotByID(st.Plots, plotID)
		if err != nil {
			return err
		}
		if plot.Unlocked {
			state = st
			message = "Ділянка вже відкрита."
			return nil
		}

		if st.Player.Level < plot.UnlockLevelRequirement {
			return fmt.Errorf("%w: requires character level %d", ErrPlotLocked, plot.UnlockLevelRequirement)
		}
		if st.Stats.Level < plot.UnlockFarmingLevelRequirement {
			return fmt.Errorf("%w: requires farm level %d", ErrPlotLocked, plot.UnlockFarmingLevelRequirement)
		}
		if st.Wallet.Gold < plot.UnlockCost {
			return &InsufficientFundsError{Available: st.Wallet.Gold, Required: plot.UnlockCost}
		}

		st.Wallet.Gold -= plot.UnlockCost
		st.Player.Gold = st.Wallet.Gold
		plot.Unlocked = true
		unlocked = true
		if err := repo.UpdatePlot(ctx, plot); err != nil {
			return err
		}
		if err := s.persistEconomy(ctx, tx, st); err != nil {
			return err
		}

		message = "Нова ділянка готова до посадки!"
		state, err = s.loadState(ctx, tx, playerID, now)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	if unlocked {
		logger.LogFarm("Plot unlocked", playerID, slog.Int64("plot_id", plotID))
	}
	return state, message, nil
}

// UpgradeTool buys the next tool on the ladder, improving the growth-time
// bonus.
func (s *Service) UpgradeTool(ctx context.Context, playerID int64, now time.Time) (*State, string, error) {
	var (
		state   *State
		message string
	)
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		st, err := s.loadState(ctx, tx, playerID, now)
		if err != nil {
			return err
		}

		next := findToolUpgrade(st.Stats.ToolLevel + 1)
		if next == nil {
			return fmt.Errorf("%w: tool already at max level", ErrToolUpgradeUnavailable)
		}
		if st.Stats.Level < next.RequiredFarmingLevel {
			return fmt.Errorf("%w: requires farm level %d", ErrToolUpgradeUnavailable, next.RequiredFarmingLevel)
		}
		if st.Wallet.Gold < next.Cost {
			return &InsufficientFundsError{Available: st.Wallet.Gold, Required: next.Cost}
		}

		st.Wallet.Gold -= next.Cost
		st.Player.Gold = st.Wallet.Gold
		st.Stats.ToolLevel = next.Level
		st.Stats.ToolName = next.Name
		st.Stats.ToolBonusPercent = next.BonusPercent

		if err := s.persistEconomy(ctx, tx, st); err != nil {
			return err
		}

		message = fmt.Sprintf("Інструмент покращено до рівня %d.", next.Level)
		state, err = s.loadState(ctx, tx, playerID, now)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	logger.LogFarm("Tool upgraded", playerID,
		slog.Int("tool_level", state.Stats.ToolLevel))
	return state, message, nil
}

// RefillEnergy trades gold for energy points, clamped at the cap.
func (s *Service) RefillEnergy(ctx context.Context, playerID int64, amount int, now time.Time) (*State, string, error) {
	var (
		state    *State
		message  string
		refilled int
	)
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		st, err := s.loadState(ctx, tx, playerID, now)
		if err != nil {
			return err
		}
		if amount <= 0 {
			state = st
			message = "Нічого не зроблено."
			return nil
		}

		points := min(amount, st.Stats.MaxEnergy-st.Stats.Energy)
		if points <= 0 {
			state = st
			message = "Енергія вже повна."
			return nil
		}
		refilled = points

		goldRequired := int64(points) * EnergyGoldPerPoint
		if st.Wallet.Gold < goldRequired {
			return &InsufficientFundsError{Available: st.Wallet.Gold, Required: goldRequired}
		}

		st.Wallet.Gold -= goldRequired
		st.Player.Gold = st.Wallet.Gold
		st.Stats.Energy = min(st.Stats.MaxEnergy, st.Stats.Energy+points)
		refillAt := now.UTC()
		st.Stats.LastEnergyRefillAt = &refillAt

		if err := s.persistEconomy(ctx, tx, st); err != nil {
			return err
		}

		message = fmt.Sprintf("Поповнено %d енергії ферми.", points)
		state, err = s.loadState(ctx, tx, playerID, now)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	if refilled > 0 {
		logger.LogFarm("Energy refilled", playerID,
			slog.Int("points", refilled),
			slog.Int("energy", state.Stats.Energy))
	}
	return state, message, nil
}

// --- internal helpers -------------------------------------------------

// loadState bootstraps missing default records, applies passive energy
// regen and promotes ready crops. The read path mutates state on purpose:
// crop readiness and regen credit are derived lazily so the simulation
// behaves the same however sparsely the player polls it.
func (s *Service) loadState(ctx context.Context, tx bun.IDB, playerID int64, now time.Time) (*State, error) {
	playerRepo := repositories.NewPlayerRepository(tx)
	walletRepo := repositories.NewWalletRepository(tx)
	repo := repositories.NewFarmRepository(tx)

	player, err := playerRepo.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	stats, err := s.ensureStats(ctx, repo, playerID, now)
	if err != nil {
		return nil, err
	}
	if err := s.applyPassiveRegen(ctx, repo, stats, now); err != nil {
		return nil, err
	}

	wallet, err := walletRepo.EnsureFor(ctx, player)
	if err != nil {
		return nil, err
	}

	plants, err := s.ensurePlants(ctx, repo)
	if err != nil {
		return nil, err
	}

	plots, err := s.ensurePlots(ctx, repo, playerID)
	if err != nil {
		return nil, err
	}
	for _, plot := range plots {
		if plot.Crop == nil || plot.Crop.State != models.CropStateGrowing {
			continue
		}
		plot.Crop.MarkReady(now)
		if plot.Crop.State == models.CropStateReady {
			if err := repo.UpdateCrop(ctx, plot.Crop); err != nil {
				return nil, err
			}
		}
	}

	return &State{
		Player: player,
		Stats:  stats,
		Plots:  plots,
		Plants: plants,
		Wallet: wallet,
		Now:    now,
	}, nil
}

func (s *Service) ensureStats(ctx context.Context, repo repositories.FarmRepository, playerID int64, now time.Time) (*models.PlayerFarmingStats, error) {
	stats, err := repo.GetStats(ctx, playerID)
	if err == nil {
		if stats.LastEnergyRefillAt == nil {
			refillAt := now.UTC()
			stats.LastEnergyRefillAt = &refillAt
			if err := repo.UpdateStats(ctx, stats); err != nil {
				return nil, err
			}
		}
		return stats, nil
	}
	if !repositories.IsNotFound(err) {
		return nil, err
	}

	refillAt := now.UTC()
	stats = &models.PlayerFarmingStats{
		PlayerID:           playerID,
		Level:              1,
		XP:                 0,
		Energy:             30,
		MaxEnergy:          30,
		ToolLevel:          1,
		ToolName:           DefaultToolName,
		ToolBonusPercent:   0,
		LastEnergyRefillAt: &refillAt,
		StarterSeedCharges: 1,
	}
	if err := repo.CreateStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) ensurePlots(ctx context.Context, repo repositories.FarmRepository, playerID int64) ([]*models.FarmPlot, error) {
	plots, err := repo.GetPlots(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if len(plots) >= BasePlots {
		return plots, nil
	}

	have := make(map[int]bool, len(plots))
	for _, plot := range plots {
		have[plot.SlotIndex] = true
	}
	var missing []*models.FarmPlot
	for _, plot := range defaultPlots(playerID) {
		if !have[plot.SlotIndex] {
			missing = append(missing, plot)
		}
	}
	if err := repo.CreatePlots(ctx, missing); err != nil {
		return nil, err
	}
	return repo.GetPlots(ctx, playerID)
}

func (s *Service) ensurePlants(ctx context.Context, repo repositories.FarmRepository) ([]*models.PlantType, error) {
	plants, err := repo.GetPlants(ctx)
	if err != nil {
		return nil, err
	}
	if len(plants) > 0 {
		return plants, nil
	}
	if err := repo.CreatePlants(ctx, DefaultPlants()); err != nil {
		return nil, err
	}
	return repo.GetPlants(ctx)
}

// applyPassiveRegen credits one energy point per full elapsed interval.
// The timestamp advances by exactly the consumed whole intervals so a
// leftover fraction keeps accruing; at the cap it snaps to now, preventing
// banked regeneration.
func (s *Service) applyPassiveRegen(ctx context.Context, repo repositories.FarmRepository, stats *models.PlayerFarmingStats, now time.Time) error {
	if stats.Energy >= stats.MaxEnergy {
		refillAt := now.UTC()
		stats.LastEnergyRefillAt = &refillAt
		return repo.UpdateStats(ctx, stats)
	}

	if stats.LastEnergyRefillAt == nil {
		refillAt := now.UTC()
		stats.LastEnergyRefillAt = &refillAt
		return repo.UpdateStats(ctx, stats)
	}

	// Stored timestamps may come back zone-less; normalize before the
	// subtraction.
	lastRefill := stats.LastEnergyRefillAt.UTC()
	elapsed := now.UTC().Sub(lastRefill)
	points := int(elapsed / EnergyRegenInterval)
	if points <= 0 {
		return nil
	}

	stats.Energy = min(stats.MaxEnergy, stats.Energy+points)
	advanced := lastRefill.Add(time.Duration(points) * EnergyRegenInterval)
	if stats.Energy >= stats.MaxEnergy {
		advanced = now.UTC()
	}
	stats.LastEnergyRefillAt = &advanced
	return repo.UpdateStats(ctx, stats)
}

// grantFarmingXP resolves farm XP with its own curve: every level gained
// bumps max energy (capped) and restores some current energy.
func (s *Service) grantFarmingXP(stats *models.PlayerFarmingStats, amount int64) int {
	if amount <= 0 {
		return 0
	}
	stats.XP += amount
	levelsGained := 0
	for stats.XP >= s.curve.RequirementFor(stats.Level) {
		stats.XP -= s.curve.RequirementFor(stats.Level)
		stats.Level++
		levelsGained++
		stats.MaxEnergy = min(EnergyMaxCap, stats.MaxEnergy+LevelMaxEnergyBonus)
		stats.Energy = min(stats.MaxEnergy, stats.Energy+LevelEnergyRestore)
	}
	return levelsGained
}

// persistEconomy flushes the player/wallet/stats rows mutated by an
// operation inside its transaction.
func (s *Service) persistEconomy(ctx context.Context, tx bun.IDB, st *State) error {
	if err := repositories.NewPlayerRepository(tx).Update(ctx, st.Player); err != nil {
		return err
	}
	if err := repositories.NewWalletRepository(tx).Update(ctx, st.Wallet); err != nil {
		return err
	}
	return repositories.NewFarmRepository(tx).UpdateStats(ctx, st.Stats)
}

func growthDuration(baseSeconds, bonusPercent int) time.Duration {
	adjusted := baseSeconds
	if bonusPercent > 0 {
		adjusted = baseSeconds - baseSeconds*bonusPercent/100
	}
	if adjusted < MinGrowthSeconds {
		adjusted = MinGrowthSeconds
	}
	return time.Duration(adjusted) * time.Second
}

func plotByID(plots []*models.FarmPlot, plotID int64) (*models.FarmPlot, error) {
	for _, plot := range plots {
		if plot.ID == plotID {
			return plot, nil
		}
	}
	return nil, fmt.Errorf("%w: no plot with id %d", ErrPlotLocked, plotID)
}

func plantByID(plants []*models.PlantType, plantID int64) (*models.PlantType, error) {
	for _, plant := range plants {
		if plant.ID == plantID {
			return plant, nil
		}
	}
	return nil, fmt.Errorf("%w: no plant with id %d", ErrPlantLocked, plantID)
}
