package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID       int64  `bun:"id,pk"`
	Username string `bun:"username"`

	Level     int   `bun:"level,notnull,default:1"`
	XP        int64 `bun:"xp,notnull,default:0"`
	Energy    int   `bun:"energy,notnull,default:20"`
	MaxEnergy int   `bun:"max_energy,notnull,default:20"`

	// Mirror of the wallet balance, kept in sync by the engines so that
	// profile reads never need a join.
	Gold int64 `bun:"gold,notnull,default:0"`

	OnboardingCompleted bool       `bun:"onboarding_completed,notnull,default:false"`
	LastDailyClaimAt    *time.Time `bun:"last_daily_claim_at"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
