package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/uptrace/bun"
)

// Defaults applied when a player record is created lazily.
const (
	DefaultPlayerEnergy    = 20
	DefaultPlayerMaxEnergy = 20
)

type PlayerRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	// GetOrCreate is the player existence/creation oracle: unknown ids get
	// a fresh record with default stats.
	GetOrCreate(ctx context.Context, id int64) (*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
}

type playerRepository struct {
	*BaseRepository
	db bun.IDB
}

func NewPlayerRepository(db bun.IDB) PlayerRepository {
	return &playerRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	player := new(models.Player)
	err := r.db.NewSelect().
		Model(player).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "player", id, err)
	}
	return player, nil
}

func (r *playerRepository) GetOrCreate(ctx context.Context, id int64) (*models.Player, error) {
	player, err := r.GetByID(ctx, id)
	if err == nil {
		return player, nil
	}
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		return nil, err
	}

	now := time.Now().UTC()
	player = &models.Player{
		ID:        id,
		Level:     1,
		XP:        0,
		Energy:    DefaultPlayerEnergy,
		MaxEnergy: DefaultPlayerMaxEnergy,
		Gold:      0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.db.NewInsert().Model(player).Exec(ctx); err != nil {
		return nil, r.HandleErrorWithID("create", "player", id, err)
	}
	return player, nil
}

func (r *playerRepository) Update(ctx context.Context, player *models.Player) error {
	player.UpdatedAt = time.Now().UTC()
	res, err := r.db.NewUpdate().
		Model(player).
		WherePK().
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("update", "player", player.ID, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return r.HandleErrorWithID("update", "player", player.ID, sql.ErrNoRows)
	}
	return nil
}
