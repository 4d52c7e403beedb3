package models

import "github.com/uptrace/bun"

type Wallet struct {
	bun.BaseModel `bun:"table:wallets,alias:w"`

	PlayerID int64 `bun:"player_id,pk"`
	Gold     int64 `bun:"gold,notnull,default:0"`
}
