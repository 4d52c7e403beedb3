package repositories

import (
	"context"
	"errors"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/uptrace/bun"
)

type WalletRepository interface {
	Get(ctx context.Context, playerID int64) (*models.Wallet, error)
	// EnsureFor returns the player's wallet, creating it from the player's
	// current gold mirror when absent.
	EnsureFor(ctx context.Context, player *models.Player) (*models.Wallet, error)
	Update(ctx context.Context, wallet *models.Wallet) error
}

type walletRepository struct {
	*BaseRepository
	db bun.IDB
}

func NewWalletRepository(db bun.IDB) WalletRepository {
	return &walletRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

func (r *walletRepository) Get(ctx context.Context, playerID int64) (*models.Wallet, error) {
	wallet := new(models.Wallet)
	err := r.db.NewSelect().
		Model(wallet).
		Where("player_id = ?", playerID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "wallet", playerID, err)
	}
	return wallet, nil
}

func (r *walletRepository) EnsureFor(ctx context.Context, player *models.Player) (*models.Wallet, error) {
	wallet, err := r.Get(ctx, player.ID)
	if err == nil {
		return wallet, nil
	}
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		return nil, err
	}

	wallet = &models.Wallet{PlayerID: player.ID, Gold: player.Gold}
	if _, err := r.db.NewInsert().Model(wallet).Exec(ctx); err != nil {
		return nil, r.HandleErrorWithID("create", "wallet", player.ID, err)
	}
	return wallet, nil
}

func (r *walletRepository) Update(ctx context.Context, wallet *models.Wallet) error {
	_, err := r.db.NewUpdate().
		Model(wallet).
		WherePK().
		Exec(ctx)
	return r.HandleErrorWithID("update", "wallet", wallet.PlayerID, err)
}
