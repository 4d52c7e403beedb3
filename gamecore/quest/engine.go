package quest

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/fallencrown/gamecore/gamecore/database/repositories"
	"github.com/fallencrown/gamecore/gamecore/inventory"
	"github.com/fallencrown/gamecore/gamecore/leveling"
	"github.com/fallencrown/gamecore/gamecore/logger"
	"github.com/uptrace/bun"
)

// ChoiceView is the player-facing shape of a choice.
type ChoiceView struct {
	ChoiceID       string
	Label          string
	RewardXP       int64
	RewardItemName string
}

// NodeView is the player-facing shape of a quest node.
type NodeView struct {
	NodeID  string
	Title   string
	Body    string
	IsFinal bool
	Choices []ChoiceView
}

// AppliedRewards summarizes the outcome of one applied choice.
type AppliedRewards struct {
	XPGained     int64
	LevelsGained int
	NewLevel     int
	XPIntoLevel  int64
	XPToNext     int64
	GrantedItem  *inventory.GrantedItem
	LevelUp      bool
	Message      string
}

// Engine is the per-player quest state machine: current node resolution,
// choice validation, transition, and reward application.
type Engine struct {
	db        *bun.DB
	leveling  *leveling.Service
	inventory *inventory.Service
	cache     *NodeCache
}

func NewEngine(db *bun.DB, levelingService *leveling.Service, inventoryService *inventory.Service, cache *NodeCache) *Engine {
	return &Engine{
		db:        db,
		leveling:  levelingService,
		inventory: inventoryService,
		cache:     cache,
	}
}

// GetCurrentNode returns the node the player currently occupies. A player
// without progress is placed on the global default start node; that lazy
// write shares the read's transaction.
func (e *Engine) GetCurrentNode(ctx context.Context, playerID int64) (*NodeView, error) {
	var view *NodeView
	err := e.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		repo := repositories.NewQuestRepository(tx)

		playerRepo := repositories.NewPlayerRepository(tx)
		if _, err := playerRepo.GetByID(ctx, playerID); err != nil {
			if repositories.IsNotFound(err) {
				return fmt.Errorf("%w: player %d does not exist", ErrNotConfigured, playerID)
			}
			return err
		}

		progress, err := repo.GetProgress(ctx, playerID)
		if err != nil && !repositories.IsNotFound(err) {
			return err
		}

		var node *models.QuestNode
		if progress == nil || repositories.IsNotFound(err) {
			node, err = repo.GetDefaultStartNode(ctx)
			if err != nil {
				if repositories.IsNotFound(err) {
					return fmt.Errorf("%w: no quest start node", ErrNotConfigured)
				}
				return err
			}
			progress = &models.QuestProgress{
				PlayerID:      playerID,
				QuestID:       node.QuestID,
				CurrentNodeID: node.ID,
			}
			if err := repo.CreateProgress(ctx, progress); err != nil {
				return err
			}
		} else {
			node, err = e.loadNode(ctx, repo, progress.CurrentNodeID)
			if err != nil {
				return err
			}
		}

		view, err = e.toNodeView(ctx, tx, node)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ApplyChoice validates and applies a choice by id: XP grant (with level
// cascade), optional item grant, optional transition. A choice on a final
// node with no next node grants its rewards and leaves the player on the
// terminal node.
func (e *Engine) ApplyChoice(ctx context.Context, playerID int64, choiceID string) (*NodeView, *AppliedRewards, error) {
	var (
		view    *NodeView
		rewards *AppliedRewards
	)
	err := e.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		repo := repositories.NewQuestRepository(tx)
		playerRepo := repositories.NewPlayerRepository(tx)

		player, err := playerRepo.GetByID(ctx, playerID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return fmt.Errorf("%w: player %d does not exist", ErrChoiceInvalid, playerID)
			}
			return err
		}

		progress, err := repo.GetProgress(ctx, playerID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return fmt.Errorf("%w: no progress for player %d", ErrChoiceInvalid, playerID)
			}
			return err
		}

		choice, err := repo.GetChoice(ctx, choiceID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return fmt.Errorf("%w: choice %q does not exist", ErrChoiceInvalid, choiceID)
			}
			return err
		}
		if choice.NodeID != progress.CurrentNodeID {
			return fmt.Errorf("%w: choice %q does not belong to the current node", ErrChoiceInvalid, choiceID)
		}

		xpResult := e.leveling.GrantXP(player, choice.RewardXP)

		var grantedItem *inventory.GrantedItem
		if choice.RewardItemID != nil {
			grantedItem, err = e.inventory.GrantCatalogItem(ctx, tx, player, *choice.RewardItemID)
			if err != nil {
				return err
			}
		}

		var nextNode *models.QuestNode
		if choice.NextNodeID != nil {
			nextNode, err = e.loadNode(ctx, repo, *choice.NextNodeID)
			if err != nil {
				return err
			}
			progress.CurrentNodeID = nextNode.ID
			progress.QuestID = nextNode.QuestID
		} else {
			nextNode, err = e.loadNode(ctx, repo, progress.CurrentNodeID)
			if err != nil {
				return err
			}
		}

		if err := playerRepo.Update(ctx, player); err != nil {
			return err
		}
		if err := repo.UpdateProgress(ctx, progress); err != nil {
			return err
		}

		rewards = &AppliedRewards{
			XPGained:     choice.RewardXP,
			LevelsGained: xpResult.LevelsGained,
			NewLevel:     xpResult.NewLevel,
			XPIntoLevel:  xpResult.XPIntoLevel,
			XPToNext:     xpResult.XPToNext,
			GrantedItem:  grantedItem,
			LevelUp:      xpResult.LevelsGained > 0,
			Message:      fmt.Sprintf("Ти зробив вибір: %s.", choice.Label),
		}

		view, err = e.toNodeView(ctx, tx, nextNode)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	logger.LogQuest("Choice applied", playerID,
		slog.String("choice_id", choiceID),
		slog.Int64("xp", rewards.XPGained))
	return view, rewards, nil
}

// loadNode reads a node through the LRU cache; the content synchronizer
// purges the cache whenever node rows change.
func (e *Engine) loadNode(ctx context.Context, repo repositories.QuestRepository, nodeID string) (*models.QuestNode, error) {
	if node, ok := e.cache.Get(nodeID); ok {
		return node, nil
	}
	node, err := repo.GetNode(ctx, nodeID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
		}
		return nil, err
	}
	e.cache.Add(node)
	return node, nil
}

func (e *Engine) toNodeView(ctx context.Context, idb bun.IDB, node *models.QuestNode) (*NodeView, error) {
	rewardNames, err := e.rewardItemNames(ctx, idb, node)
	if err != nil {
		return nil, err
	}

	choices := make([]ChoiceView, 0, len(node.Choices))
	for _, choice := range node.Choices {
		view := ChoiceView{
			ChoiceID: choice.ID,
			Label:    choice.Label,
			RewardXP: choice.RewardXP,
		}
		if choice.RewardItemID != nil {
			view.RewardItemName = rewardNames[*choice.RewardItemID]
		}
		choices = append(choices, view)
	}

	return &NodeView{
		NodeID:  node.ID,
		Title:   node.Title,
		Body:    node.Body,
		IsFinal: node.IsFinal,
		Choices: choices,
	}, nil
}

func (e *Engine) rewardItemNames(ctx context.Context, idb bun.IDB, node *models.QuestNode) (map[int64]string, error) {
	var rewardIDs []int64
	for _, choice := range node.Choices {
		if choice.RewardItemID != nil {
			rewardIDs = append(rewardIDs, *choice.RewardItemID)
		}
	}
	if len(rewardIDs) == 0 {
		return nil, nil
	}

	items, err := repositories.NewInventoryRepository(idb).GetCatalogItemsByIDs(ctx, rewardIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names, nil
}
