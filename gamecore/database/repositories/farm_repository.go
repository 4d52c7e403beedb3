package repositories

import (
	"context"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/uptrace/bun"
)

type FarmRepository interface {
	// Stats
	GetStats(ctx context.Context, playerID int64) (*models.PlayerFarmingStats, error)
	CreateStats(ctx context.Context, stats *models.PlayerFarmingStats) error
	UpdateStats(ctx context.Context, stats *models.PlayerFarmingStats) error

	// Plots
	GetPlots(ctx context.Context, playerID int64) ([]*models.FarmPlot, error)
	CreatePlots(ctx context.Context, plots []*models.FarmPlot) error
	UpdatePlot(ctx context.Context, plot *models.FarmPlot) error

	// Plant catalog
	GetPlants(ctx context.Context) ([]*models.PlantType, error)
	GetPlant(ctx context.Context, id int64) (*models.PlantType, error)
	CreatePlants(ctx context.Context, plants []*models.PlantType) error

	// Crops
	CreateCrop(ctx context.Context, crop *models.PlantedCrop) error
	UpdateCrop(ctx context.Context, crop *models.PlantedCrop) error
	DeleteCrop(ctx context.Context, id int64) error
}

type farmRepository struct {
	*BaseRepository
	db bun.IDB
}

func NewFarmRepository(db bun.IDB) FarmRepository {
	return &farmRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

func (r *farmRepository) GetStats(ctx context.Context, playerID int64) (*models.PlayerFarmingStats, error) {
	stats := new(models.PlayerFarmingStats)
	err := r.db.NewSelect().
		Model(stats).
		Where("player_id = ?", playerID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "farm_stats", playerID, err)
	}
	return stats, nil
}

func (r *farmRepository) CreateStats(ctx context.Context, stats *models.PlayerFarmingStats) error {
	_, err := r.db.NewInsert().Model(stats).Exec(ctx)
	return r.HandleErrorWithID("create", "farm_stats", stats.PlayerID, err)
}

func (r *farmRepository) UpdateStats(ctx context.Context, stats *models.PlayerFarmingStats) error {
	_, err := r.db.NewUpdate().Model(stats).WherePK().Exec(ctx)
	return r.HandleErrorWithID("update", "farm_stats", stats.PlayerID, err)
}

func (r *farmRepository) GetPlots(ctx context.Context, playerID int64) ([]*models.FarmPlot, error) {
	var plots []*models.FarmPlot
	err := r.db.NewSelect().
		Model(&plots).
		Relation("Crop").
		Relation("Crop.PlantType").
		Where("player_id = ?", playerID).
		Order("slot_index ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("list", "farm_plot", playerID, err)
	}
	return plots, nil
}

func (r *farmRepository) CreatePlots(ctx context.Context, plots []*models.FarmPlot) error {
	if len(plots) == 0 {
		return nil
	}
	_, err := r.db.NewInsert().Model(&plots).Exec(ctx)
	return r.HandleError("create", "farm_plot", err)
}

func (r *farmRepository) UpdatePlot(ctx context.Context, plot *models.FarmPlot) error {
	_, err := r.db.NewUpdate().Model(plot).WherePK().Exec(ctx)
	return r.HandleErrorWithID("update", "farm_plot", plot.ID, err)
}

func (r *farmRepository) GetPlants(ctx context.Context) ([]*models.PlantType, error) {
	var plants []*models.PlantType
	err := r.db.NewSelect().
		Model(&plants).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "plant_type", err)
	}
	return plants, nil
}

func (r *farmRepository) GetPlant(ctx context.Context, id int64) (*models.PlantType, error) {
	plant := new(models.PlantType)
	err := r.db.NewSelect().
		Model(plant).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "plant_type", id, err)
	}
	return plant, nil
}

func (r *farmRepository) CreatePlants(ctx context.Context, plants []*models.PlantType) error {
	if len(plants) == 0 {
		return nil
	}
	_, err := r.db.NewInsert().Model(&plants).Exec(ctx)
	return r.HandleError("create", "plant_type", err)
}

func (r *farmRepository) CreateCrop(ctx context.Context, crop *models.PlantedCrop) error {
	_, err := r.db.NewInsert().Model(crop).Exec(ctx)
	return r.HandleErrorWithID("create", "planted_crop", crop.PlotID, err)
}

func (r *farmRepository) UpdateCrop(ctx context.Context, crop *models.PlantedCrop) error {
	_, err := r.db.NewUpdate().Model(crop).WherePK().Exec(ctx)
	return r.HandleErrorWithID("update", "planted_crop", crop.ID, err)
}

func (r *farmRepository) DeleteCrop(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*models.PlantedCrop)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return r.HandleErrorWithID("delete", "planted_crop", id, err)
}
