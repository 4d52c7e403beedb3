package models

import "github.com/uptrace/bun"

// Item rarity values used by the default catalog.
const (
	RarityCommon   = "common"
	RarityRare     = "rare"
	RarityEpic     = "epic"
	RaritySeasonal = "seasonal"
)

// ItemCatalog describes every item that can exist in the game.
type ItemCatalog struct {
	bun.BaseModel `bun:"table:inventory_items_catalog,alias:ic"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Name        string `bun:"name,notnull"`
	Slot        string `bun:"slot,notnull,default:'misc'"`
	Rarity      string `bun:"rarity,notnull,default:'common'"`
	Cosmetic    bool   `bun:"cosmetic,notnull,default:false"`
	Description string `bun:"description"`
	Icon        string `bun:"icon"`
}

// InventoryItem is a concrete item instance owned by a player.
type InventoryItem struct {
	bun.BaseModel `bun:"table:inventory_items,alias:ii"`

	ID            int64 `bun:"id,pk,autoincrement"`
	OwnerID       int64 `bun:"owner_id,notnull"`
	CatalogItemID int64 `bun:"catalog_item_id,notnull"`
	IsEquipped    bool  `bun:"is_equipped,notnull,default:false"`

	CatalogItem *ItemCatalog `bun:"rel:has-one,join:catalog_item_id=id"`
}
