package quest

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/fallencrown/gamecore/gamecore/database/repositories"
	"github.com/fallencrown/gamecore/gamecore/logger"
	"github.com/uptrace/bun"
)

// Builder reconciles declarative quest blueprints with persisted graph
// state. Re-running the same blueprint against already-synced state is a
// no-op; the builder is invoked speculatively on startup and on admin
// writes.
type Builder struct {
	db    *bun.DB
	cache *NodeCache
}

func NewBuilder(db *bun.DB, cache *NodeCache) *Builder {
	return &Builder{db: db, cache: cache}
}

// SyncBlueprints validates the whole batch, then syncs every quest inside
// one transaction. A validation failure rejects the batch before any
// mutation is applied.
func (b *Builder) SyncBlueprints(ctx context.Context, specs []Spec) error {
	err := b.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		repo := repositories.NewQuestRepository(tx)
		if err := validateBatch(ctx, repo, specs); err != nil {
			return err
		}
		for _, spec := range specs {
			if _, err := b.syncQuest(ctx, repo, spec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.cache.Purge()
	logger.LogSystem("Quest blueprints synced", slog.Int("quests", len(specs)))
	return nil
}

// MigrateToSaga advances, in bulk, every player who finished the given
// onboarding quest and has no saga progress yet to the saga's start node.
// Keyed on progress sitting on an onboarding final node, so a re-run never
// moves anyone twice.
func (b *Builder) MigrateToSaga(ctx context.Context, onboardingQuestID int64, startNodeID string) error {
	return b.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		repo := repositories.NewQuestRepository(tx)

		startNode, err := repo.GetNode(ctx, startNodeID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return ErrNotConfigured
			}
			return err
		}

		finalIDs, err := repo.FinalNodeIDs(ctx, onboardingQuestID)
		if err != nil {
			return err
		}

		moved, err := repo.MoveProgressFromNodes(ctx, finalIDs, startNode.QuestID, startNode.ID)
		if err != nil {
			return err
		}
		created, err := repo.CreateMissingProgress(ctx, startNode.QuestID, startNode.ID)
		if err != nil {
			return err
		}

		if moved > 0 || created > 0 {
			logger.LogSystem("Migrated players to saga start",
				slog.Int64("moved", moved),
				slog.Int64("created", created),
				slog.String("start_node", startNode.ID))
		}
		return nil
	})
}

// syncQuest reconciles one quest. Nodes are upserted first so that stale
// player progress can be re-pointed at the (possibly new) start node before
// removed nodes are deleted, all within the surrounding transaction.
func (b *Builder) syncQuest(ctx context.Context, repo repositories.QuestRepository, spec Spec) (*models.Quest, error) {
	quest, err := b.loadOrCreateQuest(ctx, repo, spec)
	if err != nil {
		return nil, err
	}

	existingNodes, err := repo.GetNodesByQuest(ctx, quest.ID)
	if err != nil {
		return nil, err
	}
	existingByID := make(map[string]*models.QuestNode, len(existingNodes))
	for _, node := range existingNodes {
		existingByID[node.ID] = node
	}

	desired := make(map[string]bool, len(spec.Nodes))
	for _, nodeSpec := range spec.Nodes {
		desired[nodeSpec.ID] = true
	}

	// Create or overwrite every node the spec names.
	for _, nodeSpec := range spec.Nodes {
		node, exists := existingByID[nodeSpec.ID]
		if !exists {
			node = &models.QuestNode{
				ID:      nodeSpec.ID,
				QuestID: quest.ID,
				Title:   nodeSpec.Title,
				Body:    nodeSpec.Body,
				IsStart: nodeSpec.IsStart,
				IsFinal: nodeSpec.IsFinal,
			}
			if err := repo.CreateNode(ctx, node); err != nil {
				return nil, err
			}
		} else {
			node.Title = nodeSpec.Title
			node.Body = nodeSpec.Body
			node.IsStart = nodeSpec.IsStart
			node.IsFinal = nodeSpec.IsFinal
			if err := repo.UpdateNode(ctx, node); err != nil {
				return nil, err
			}
		}

		if err := b.syncChoices(ctx, repo, node, nodeSpec.Choices); err != nil {
			return nil, err
		}
	}

	// Re-point live progress off nodes about to disappear, then delete
	// them (choices first).
	var removedIDs []string
	for id := range existingByID {
		if !desired[id] {
			removedIDs = append(removedIDs, id)
		}
	}
	if len(removedIDs) > 0 {
		if startID := spec.StartNodeID(); startID != "" {
			if _, err := repo.MoveProgressFromNodes(ctx, removedIDs, quest.ID, startID); err != nil {
				return nil, err
			}
		}
		for _, id := range removedIDs {
			if err := repo.DeleteChoicesByNode(ctx, id); err != nil {
				return nil, err
			}
			if err := repo.DeleteNode(ctx, id); err != nil {
				return nil, err
			}
		}
	}

	quest.Title = spec.Title
	quest.Description = spec.Description
	quest.IsRepeatable = spec.IsRepeatable
	if err := repo.UpdateQuest(ctx, quest); err != nil {
		return nil, err
	}
	return quest, nil
}

func (b *Builder) loadOrCreateQuest(ctx context.Context, repo repositories.QuestRepository, spec Spec) (*models.Quest, error) {
	if spec.ID != 0 {
		quest, err := repo.GetQuest(ctx, spec.ID)
		if err == nil {
			return quest, nil
		}
		if !repositories.IsNotFound(err) {
			return nil, err
		}
	}

	quest, err := repo.GetQuestByTitle(ctx, spec.Title)
	if err == nil {
		return quest, nil
	}
	if !repositories.IsNotFound(err) {
		return nil, err
	}

	quest = &models.Quest{
		ID:           spec.ID,
		Title:        spec.Title,
		Description:  spec.Description,
		IsRepeatable: spec.IsRepeatable,
	}
	if err := repo.CreateQuest(ctx, quest); err != nil {
		return nil, err
	}
	return quest, nil
}

func (b *Builder) syncChoices(ctx context.Context, repo repositories.QuestRepository, node *models.QuestNode, specs []ChoiceSpec) error {
	existing, err := repo.GetChoicesByNode(ctx, node.ID)
	if err != nil {
		return err
	}
	existingByID := make(map[string]*models.QuestChoice, len(existing))
	for _, choice := range existing {
		existingByID[choice.ID] = choice
	}

	desired := make(map[string]bool, len(specs))
	for _, choiceSpec := range specs {
		desired[choiceSpec.ID] = true
	}

	for id := range existingByID {
		if !desired[id] {
			if err := repo.DeleteChoice(ctx, id); err != nil {
				return err
			}
		}
	}

	for _, choiceSpec := range specs {
		var nextNodeID *string
		if choiceSpec.NextNodeID != "" {
			next := choiceSpec.NextNodeID
			nextNodeID = &next
		}
		var rewardItemID *int64
		if choiceSpec.RewardItemID != 0 {
			item := choiceSpec.RewardItemID
			rewardItemID = &item
		}

		choice, exists := existingByID[choiceSpec.ID]
		if !exists {
			choice = &models.QuestChoice{
				ID:           choiceSpec.ID,
				NodeID:       node.ID,
				Label:        choiceSpec.Label,
				NextNodeID:   nextNodeID,
				RewardXP:     choiceSpec.RewardXP,
				RewardItemID: rewardItemID,
			}
			if err := repo.CreateChoice(ctx, choice); err != nil {
				return err
			}
			continue
		}

		choice.NodeID = node.ID
		choice.Label = choiceSpec.Label
		choice.NextNodeID = nextNodeID
		choice.RewardXP = choiceSpec.RewardXP
		choice.RewardItemID = rewardItemID
		if err := repo.UpdateChoice(ctx, choice); err != nil {
			return err
		}
	}
	return nil
}
