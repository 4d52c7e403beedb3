package repositories

import (
	"context"
	"time"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/uptrace/bun"
)

type QuestRepository interface {
	// Quest rows
	GetQuest(ctx context.Context, id int64) (*models.Quest, error)
	GetQuestByTitle(ctx context.Context, title string) (*models.Quest, error)
	CreateQuest(ctx context.Context, quest *models.Quest) error
	UpdateQuest(ctx context.Context, quest *models.Quest) error

	// Nodes
	GetNode(ctx context.Context, id string) (*models.QuestNode, error)
	GetNodesByQuest(ctx context.Context, questID int64) ([]*models.QuestNode, error)
	GetDefaultStartNode(ctx context.Context) (*models.QuestNode, error)
	ExistingNodeIDs(ctx context.Context, ids []string) (map[string]bool, error)
	GetNodesByIDs(ctx context.Context, ids []string) ([]*models.QuestNode, error)
	CreateNode(ctx context.Context, node *models.QuestNode) error
	UpdateNode(ctx context.Context, node *models.QuestNode) error
	DeleteNode(ctx context.Context, id string) error
	FinalNodeIDs(ctx context.Context, questID int64) ([]string, error)

	// Choices
	GetChoice(ctx context.Context, id string) (*models.QuestChoice, error)
	GetChoicesByIDs(ctx context.Context, ids []string) ([]*models.QuestChoice, error)
	GetChoicesByNode(ctx context.Context, nodeID string) ([]*models.QuestChoice, error)
	CreateChoice(ctx context.Context, choice *models.QuestChoice) error
	UpdateChoice(ctx context.Context, choice *models.QuestChoice) error
	DeleteChoice(ctx context.Context, id string) error
	DeleteChoicesByNode(ctx context.Context, nodeID string) error

	// Progress
	GetProgress(ctx context.Context, playerID int64) (*models.QuestProgress, error)
	CreateProgress(ctx context.Context, progress *models.QuestProgress) error
	UpdateProgress(ctx context.Context, progress *models.QuestProgress) error
	// MoveProgressFromNodes re-points every progress row sitting on one of
	// the given nodes. Used for stale-node migration and the bulk
	// onboarding migration; both must stay idempotent.
	MoveProgressFromNodes(ctx context.Context, fromNodeIDs []string, toQuestID int64, toNodeID string) (int64, error)
	// CreateMissingProgress inserts a progress row at the given node for
	// every onboarding-completed player that has none yet.
	CreateMissingProgress(ctx context.Context, questID int64, nodeID string) (int64, error)
}

type questRepository struct {
	*BaseRepository
	db bun.IDB
}

func NewQuestRepository(db bun.IDB) QuestRepository {
	return &questRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

// Quest rows

func (r *questRepository) GetQuest(ctx context.Context, id int64) (*models.Quest, error) {
	quest := new(models.Quest)
	err := r.db.NewSelect().
		Model(quest).
		Where("q.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "quest", id, err)
	}
	return quest, nil
}

func (r *questRepository) GetQuestByTitle(ctx context.Context, title string) (*models.Quest, error) {
	quest := new(models.Quest)
	err := r.db.NewSelect().
		Model(quest).
		Where("title = ?", title).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get_by_title", "quest", title, err)
	}
	return quest, nil
}

func (r *questRepository) CreateQuest(ctx context.Context, quest *models.Quest) error {
	now := time.Now().UTC()
	quest.CreatedAt = now
	quest.UpdatedAt = now
	_, err := r.db.NewInsert().Model(quest).Exec(ctx)
	return r.HandleError("create", "quest", err)
}

func (r *questRepository) UpdateQuest(ctx context.Context, quest *models.Quest) error {
	quest.UpdatedAt = time.Now().UTC()
	_, err := r.db.NewUpdate().Model(quest).WherePK().Exec(ctx)
	return r.HandleErrorWithID("update", "quest", quest.ID, err)
}

// Nodes

func (r *questRepository) GetNode(ctx context.Context, id string) (*models.QuestNode, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	node := new(models.QuestNode)
	err := r.db.NewSelect().
		Model(node).
		Relation("Choices", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("id ASC")
		}).
		Where("qn.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "quest_node", id, err)
	}
	return node, nil
}

func (r *questRepository) GetNodesByQuest(ctx context.Context, questID int64) ([]*models.QuestNode, error) {
	var nodes []*models.QuestNode
	err := r.db.NewSelect().
		Model(&nodes).
		Relation("Choices").
		Where("quest_id = ?", questID).
		Order("qn.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("list", "quest_node", questID, err)
	}
	return nodes, nil
}

// GetDefaultStartNode resolves the global default start node: the start
// node of the quest with the lowest id.
func (r *questRepository) GetDefaultStartNode(ctx context.Context) (*models.QuestNode, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	node := new(models.QuestNode)
	err := r.db.NewSelect().
		Model(node).
		Relation("Choices").
		Where("is_start = ?", true).
		Order("quest_id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("get_default_start", "quest_node", err)
	}
	return node, nil
}

func (r *questRepository) ExistingNodeIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}
	var found []string
	err := r.db.NewSelect().
		Model((*models.QuestNode)(nil)).
		Column("id").
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx, &found)
	if err != nil {
		return nil, r.HandleError("existing_ids", "quest_node", err)
	}
	existing := make(map[string]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// GetNodesByIDs returns the persisted nodes matching the given ids,
// without relations. Used by blueprint validation to detect collisions
// with quests outside a batch.
func (r *questRepository) GetNodesByIDs(ctx context.Context, ids []string) ([]*models.QuestNode, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var nodes []*models.QuestNode
	err := r.db.NewSelect().
		Model(&nodes).
		Where("qn.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list_by_ids", "quest_node", err)
	}
	return nodes, nil
}

func (r *questRepository) CreateNode(ctx context.Context, node *models.QuestNode) error {
	_, err := r.db.NewInsert().Model(node).Exec(ctx)
	return r.HandleErrorWithID("create", "quest_node", node.ID, err)
}

func (r *questRepository) UpdateNode(ctx context.Context, node *models.QuestNode) error {
	_, err := r.db.NewUpdate().Model(node).WherePK().Exec(ctx)
	return r.HandleErrorWithID("update", "quest_node", node.ID, err)
}

func (r *questRepository) DeleteNode(ctx context.Context, id string) error {
	_, err := r.db.NewDelete().
		Model((*models.QuestNode)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return r.HandleErrorWithID("delete", "quest_node", id, err)
}

func (r *questRepository) FinalNodeIDs(ctx context.Context, questID int64) ([]string, error) {
	var ids []string
	err := r.db.NewSelect().
		Model((*models.QuestNode)(nil)).
		Column("id").
		Where("quest_id = ?", questID).
		Where("is_final = ?", true).
		Scan(ctx, &ids)
	if err != nil {
		return nil, r.HandleErrorWithID("final_ids", "quest_node", questID, err)
	}
	return ids, nil
}

// Choices

func (r *questRepository) GetChoice(ctx context.Context, id string) (*models.QuestChoice, error) {
	choice := new(models.QuestChoice)
	err := r.db.NewSelect().
		Model(choice).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "quest_choice", id, err)
	}
	return choice, nil
}

func (r *questRepository) GetChoicesByIDs(ctx context.Context, ids []string) ([]*models.QuestChoice, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var choices []*models.QuestChoice
	err := r.db.NewSelect().
		Model(&choices).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list_by_ids", "quest_choice", err)
	}
	return choices, nil
}

func (r *questRepository) GetChoicesByNode(ctx context.Context, nodeID string) ([]*models.QuestChoice, error) {
	var choices []*models.QuestChoice
	err := r.db.NewSelect().
		Model(&choices).
		Where("node_id = ?", nodeID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("list", "quest_choice", nodeID, err)
	}
	return choices, nil
}

func (r *questRepository) CreateChoice(ctx context.Context, choice *models.QuestChoice) error {
	_, err := r.db.NewInsert().Model(choice).Exec(ctx)
	return r.HandleErrorWithID("create", "quest_choice", choice.ID, err)
}

func (r *questRepository) UpdateChoice(ctx context.Context, choice *models.QuestChoice) error {
	_, err := r.db.NewUpdate().Model(choice).WherePK().Exec(ctx)
	return r.HandleErrorWithID("update", "quest_choice", choice.ID, err)
}

func (r *questRepository) DeleteChoice(ctx context.Context, id string) error {
	_, err := r.db.NewDelete().
		Model((*models.QuestChoice)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return r.HandleErrorWithID("delete", "quest_choice", id, err)
}

func (r *questRepository) DeleteChoicesByNode(ctx context.Context, nodeID string) error {
	_, err := r.db.NewDelete().
		Model((*models.QuestChoice)(nil)).
		Where("node_id = ?", nodeID).
		Exec(ctx)
	return r.HandleErrorWithID("delete_by_node", "quest_choice", nodeID, err)
}

// Progress

func (r *questRepository) GetProgress(ctx context.Context, playerID int64) (*models.QuestProgress, error) {
	progress := new(models.QuestProgress)
	err := r.db.NewSelect().
		Model(progress).
		Where("player_id = ?", playerID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "quest_progress", playerID, err)
	}
	return progress, nil
}

func (r *questRepository) CreateProgress(ctx context.Context, progress *models.QuestProgress) error {
	progress.UpdatedAt = time.Now().UTC()
	_, err := r.db.NewInsert().Model(progress).Exec(ctx)
	return r.HandleErrorWithID("create", "quest_progress", progress.PlayerID, err)
}

func (r *questRepository) UpdateProgress(ctx context.Context, progress *models.QuestProgress) error {
	progress.UpdatedAt = time.Now().UTC()
	_, err := r.db.NewUpdate().Model(progress).WherePK().Exec(ctx)
	return r.HandleErrorWithID("update", "quest_progress", progress.PlayerID, err)
}

func (r *questRepository) MoveProgressFromNodes(ctx context.Context, fromNodeIDs []string, toQuestID int64, toNodeID string) (int64, error) {
	if len(fromNodeIDs) == 0 {
		return 0, nil
	}
	res, err := r.db.NewUpdate().
		Model((*models.QuestProgress)(nil)).
		Set("quest_id = ?", toQuestID).
		Set("current_node_id = ?", toNodeID).
		Set("updated_at = ?", time.Now().UTC()).
		Where("current_node_id IN (?)", bun.In(fromNodeIDs)).
		Exec(ctx)
	if err != nil {
		return 0, r.HandleError("move_progress", "quest_progress", err)
	}
	moved, _ := res.RowsAffected()
	return moved, nil
}

func (r *questRepository) CreateMissingProgress(ctx context.Context, questID int64, nodeID string) (int64, error) {
	var playerIDs []int64
	err := r.db.NewSelect().
		Model((*models.Player)(nil)).
		Column("id").
		Where("onboarding_completed = ?", true).
		Where("id NOT IN (SELECT player_id FROM quest_progress)").
		Scan(ctx, &playerIDs)
	if err != nil {
		return 0, r.HandleError("players_without_progress", "quest_progress", err)
	}
	if len(playerIDs) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]*models.QuestProgress, 0, len(playerIDs))
	for _, id := range playerIDs {
		rows = append(rows, &models.QuestProgress{
			PlayerID:      id,
			QuestID:       questID,
			CurrentNodeID: nodeID,
			UpdatedAt:     now,
		})
	}
	if _, err := r.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return 0, r.HandleError("create_missing", "quest_progress", err)
	}
	return int64(len(rows)), nil
}
