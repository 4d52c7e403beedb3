package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/fallencrown/gamecore/gamecore/database/repositories"
	"github.com/uptrace/bun"
)

// ErrItemNotFound is returned when a catalog item cannot be located.
var ErrItemNotFound = errors.New("inventory catalog item not found")

// GrantedItem describes a freshly issued inventory instance.
type GrantedItem struct {
	ItemID        int64
	CatalogItemID int64
	Name          string
}

// Service handles inventory mutations for players. Equip-slot exclusivity
// belongs to a separate management flow and is not touched here.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// GrantCatalogItem issues an unequipped instance of the catalog item to the
// player, on whatever connection or transaction idb carries.
func (s *Service) GrantCatalogItem(ctx context.Context, idb bun.IDB, player *models.Player, catalogItemID int64) (*GrantedItem, error) {
	repo := repositories.NewInventoryRepository(idb)

	catalogItem, err := repo.GetCatalogItem(ctx, catalogItemID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, fmt.Errorf("%w: catalog item %d", ErrItemNotFound, catalogItemID)
		}
		return nil, err
	}

	item := &models.InventoryItem{
		OwnerID:       player.ID,
		CatalogItemID: catalogItem.ID,
	}
	if err := repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return &GrantedItem{
		ItemID:        item.ID,
		CatalogItemID: catalogItem.ID,
		Name:          catalogItem.Name,
	}, nil
}

// EnsureDefaultCatalog seeds the fixed item catalog on first access so that
// quest reward references always resolve. Guarded by an existence check to
// stay idempotent.
func (s *Service) EnsureDefaultCatalog(ctx context.Context, idb bun.IDB) error {
	repo := repositories.NewInventoryRepository(idb)

	count, err := repo.CountCatalog(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return repo.CreateCatalogItems(ctx, DefaultCatalog())
}

// Catalog ids are pinned so quest blueprints can reference reward items
// without a lookup.
const (
	ItemGuardToken    int64 = 1
	ItemTravelerCloak int64 = 2
	ItemDuskMask      int64 = 3
	ItemSealShard     int64 = 4
)

// DefaultCatalog returns the fixed starting item rows.
func DefaultCatalog() []*models.ItemCatalog {
	return []*models.ItemCatalog{
		{
			ID:          ItemGuardToken,
			Name:        "Жетон вартового",
			Slot:        "misc",
			Rarity:      models.RarityCommon,
			Description: "Пам'ятка про зустріч на спаленій дорозі.",
			Icon:        "token_guard_common",
		},
		{
			ID:          ItemTravelerCloak,
			Name:        "Плащ мандрівника",
			Slot:        "cloak",
			Rarity:      models.RarityRare,
			Cosmetic:    true,
			Description: "Вицвілий, але теплий плащ для довгих доріг.",
			Icon:        "cloak_traveler_rare",
		},
		{
			ID:          ItemDuskMask,
			Name:        "Маска сутінків",
			Slot:        "head",
			Rarity:      models.RarityEpic,
			Cosmetic:    true,
			Description: "Нагорода для тих, хто пройшов крізь ніч.",
			Icon:        "mask_dusk_epic",
		},
		{
			ID:          ItemSealShard,
			Name:        "Уламок печаті",
			Slot:        "misc",
			Rarity:      models.RarityEpic,
			Description: "Фрагмент давньої печаті Згаслого Королівства.",
			Icon:        "seal_shard_epic",
		},
	}
}
