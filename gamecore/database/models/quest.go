package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Quest struct {
	bun.BaseModel `bun:"table:quests,alias:q"`

	ID           int64  `bun:"id,pk,autoincrement"`
	Title        string `bun:"title,notnull"`
	Description  string `bun:"description"`
	IsRepeatable bool   `bun:"is_repeatable,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	Nodes []*QuestNode `bun:"rel:has-many,join:id=quest_id"`
}

// QuestNode ids are content-author assigned and stable across redeploys.
type QuestNode struct {
	bun.BaseModel `bun:"table:quest_nodes,alias:qn"`

	ID      string `bun:"id,pk"`
	QuestID int64  `bun:"quest_id,notnull"`
	Title   string `bun:"title,notnull"`
	Body    string `bun:"body,notnull"`
	IsStart bool   `bun:"is_start,notnull,default:false"`
	IsFinal bool   `bun:"is_final,notnull,default:false"`

	Choices []*QuestChoice `bun:"rel:has-many,join:id=node_id"`
}

// QuestChoice ids are unique across all quests, not just the owning node.
// The traversal engine resolves a choice by id alone.
type QuestChoice struct {
	bun.BaseModel `bun:"table:quest_choices,alias:qc"`

	ID           string  `bun:"id,pk"`
	NodeID       string  `bun:"node_id,notnull"`
	Label        string  `bun:"label,notnull"`
	NextNodeID   *string `bun:"next_node_id"`
	RewardXP     int64   `bun:"reward_xp,notnull,default:0"`
	RewardItemID *int64  `bun:"reward_item_id"`
}

// QuestProgress is a singleton row per player.
type QuestProgress struct {
	bun.BaseModel `bun:"table:quest_progress,alias:qp"`

	PlayerID      int64  `bun:"player_id,pk"`
	QuestID       int64  `bun:"quest_id,notnull"`
	CurrentNodeID string `bun:"current_node_id,notnull"`

	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
