package repositories

import (
	"context"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/uptrace/bun"
)

type InventoryRepository interface {
	GetCatalogItem(ctx context.Context, id int64) (*models.ItemCatalog, error)
	GetCatalogItemsByIDs(ctx context.Context, ids []int64) ([]*models.ItemCatalog, error)
	CountCatalog(ctx context.Context) (int, error)
	CreateCatalogItems(ctx context.Context, items []*models.ItemCatalog) error
	CreateItem(ctx context.Context, item *models.InventoryItem) error
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.InventoryItem, error)
}

type inventoryRepository struct {
	*BaseRepository
	db bun.IDB
}

func NewInventoryRepository(db bun.IDB) InventoryRepository {
	return &inventoryRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

func (r *inventoryRepository) GetCatalogItem(ctx context.Context, id int64) (*models.ItemCatalog, error) {
	item := new(models.ItemCatalog)
	err := r.db.NewSelect().
		Model(item).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "item_catalog", id, err)
	}
	return item, nil
}

func (r *inventoryRepository) GetCatalogItemsByIDs(ctx context.Context, ids []int64) ([]*models.ItemCatalog, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []*models.ItemCatalog
	err := r.db.NewSelect().
		Model(&items).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list_by_ids", "item_catalog", err)
	}
	return items, nil
}

func (r *inventoryRepository) CountCatalog(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.ItemCatalog)(nil)).
		Count(ctx)
	if err != nil {
		return 0, r.HandleError("count", "item_catalog", err)
	}
	return count, nil
}

func (r *inventoryRepository) CreateCatalogItems(ctx context.Context, items []*models.ItemCatalog) error {
	if len(items) == 0 {
		return nil
	}
	_, err := r.db.NewInsert().Model(&items).Exec(ctx)
	return r.HandleError("create", "item_catalog", err)
}

func (r *inventoryRepository) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	_, err := r.db.NewInsert().Model(item).Exec(ctx)
	return r.HandleErrorWithID("create", "inventory_item", item.OwnerID, err)
}

func (r *inventoryRepository) GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	err := r.db.NewSelect().
		Model(&items).
		Relation("CatalogItem").
		Where("owner_id = ?", ownerID).
		Order("ii.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("list", "inventory_item", ownerID, err)
	}
	return items, nil
}
