package quest

import (
	"context"
	"testing"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/fallencrown/gamecore/gamecore/database/repositories"
	"github.com/fallencrown/gamecore/gamecore/database/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestBuilder(t *testing.T) (*Builder, *bun.DB) {
	t.Helper()
	db := testdb.New(t)
	cache, err := NewNodeCache(0)
	require.NoError(t, err)
	return NewBuilder(db, cache), db
}

func twoStepSpec(id int64, title string) Spec {
	return Spec{
		ID:          id,
		Title:       title,
		Description: "test line",
		Nodes: []NodeSpec{
			{
				ID:      title + "_start",
				Title:   "Start",
				Body:    "start body",
				IsStart: true,
				Choices: []ChoiceSpec{
					{ID: title + "_go", Label: "Go", RewardXP: 10, NextNodeID: title + "_end"},
				},
			},
			{
				ID:      title + "_end",
				Title:   "End",
				Body:    "end body",
				IsFinal: true,
			},
		},
	}
}

func insertPlayer(t *testing.T, db *bun.DB, id int64, onboarded bool) *models.Player {
	t.Helper()
	player := &models.Player{
		ID:                  id,
		Username:            "tester",
		Level:               1,
		Energy:              20,
		MaxEnergy:           20,
		OnboardingCompleted: onboarded,
	}
	_, err := db.NewInsert().Model(player).Exec(context.Background())
	require.NoError(t, err)
	return player
}

func countRows(t *testing.T, db *bun.DB, model interface{}) int {
	t.Helper()
	count, err := db.NewSelect().Model(model).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestSyncBlueprintsCreatesGraph(t *testing.T) {
	builder, db := newTestBuilder(t)
	ctx := context.Background()

	require.NoError(t, builder.SyncBlueprints(ctx, []Spec{twoStepSpec(7, "alpha")}))

	quest := new(models.Quest)
	require.NoError(t, db.NewSelect().Model(quest).Where("id = ?", 7).Scan(ctx))
	assert.Equal(t, "alpha", quest.Title)

	assert.Equal(t, 2, countRows(t, db, (*models.QuestNode)(nil)))
	assert.Equal(t, 1, countRows(t, db, (*models.QuestChoice)(nil)))
}

func TestSyncBlueprintsIsIdempotent(t *testing.T) {
	builder, db := newTestBuilder(t)
	ctx := context.Background()
	specs := []Spec{twoStepSpec(7, "alpha"), twoStepSpec(8, "beta")}

	require.NoError(t, builder.SyncBlueprints(ctx, specs))
	require.NoError(t, builder.SyncBlueprints(ctx, specs))

	assert.Equal(t, 2, countRows(t, db, (*models.Quest)(nil)))
	assert.Equal(t, 4, countRows(t, db, (*models.QuestNode)(nil)))
	assert.Equal(t, 2, countRows(t, db, (*models.QuestChoice)(nil)))
}

func TestSyncBlueprintsOverwritesExistingContent(t *testing.T) {
	builder, db := newTestBuilder(t)
	ctx := context.Background()

	require.NoError(t, builder.SyncBlueprints(ctx, []Spec{twoStepSpec(7, "alpha")}))

	updated := twoStepSpec(7, "alpha")
	updated.Nodes[0].Title = "Rewritten"
	updated.Nodes[0].Choices[0].RewardXP = 99
	require.NoError(t, builder.SyncBlueprints(ctx, []Spec{updated}))

	node := new(models.QuestNode)
	require.NoError(t, db.NewSelect().Model(node).Where("id = ?", "alpha_start").Scan(ctx))
	assert.Equal(t, "Rewritten", node.Title)

	choice := new(models.QuestChoice)
	require.NoError(t, db.NewSelect().Model(choice).Where("id = ?", "alpha_go").Scan(ctx))
	assert.Equal(t, int64(99), choice.RewardXP)
}

func TestSyncBlueprintsDeletesRemovedNodesAndMigratesProgress(t *testing.T) {
	builder, db := newTestBuilder(t)
	ctx := context.Background()

	spec := twoStepSpec(7, "alpha")
	spec.Nodes = append(spec.Nodes, NodeSpec{
		ID:    "alpha_extra",
		Title: "Extra",
		Body:  "will be removed",
	})
	require.NoError(t, builder.SyncBlueprints(ctx, []Spec{spec}))

	insertPlayer(t, db, 1, false)
	progress := &models.QuestProgress{PlayerID: 1, QuestID: 7, CurrentNodeID: "alpha_extra"}
	_, err := db.NewInsert().Model(progress).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, builder.SyncBlueprints(ctx, []Spec{twoStepSpec(7, "alpha")}))

	exists, err := db.NewSelect().Model((*models.QuestNode)(nil)).Where("id = ?", "alpha_extra").Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists, "removed node should be deleted")

	require.NoError(t, db.NewSelect().Model(progress).Where("player_id = ?", 1).Scan(ctx))
	assert.Equal(t, "alpha_start", progress.CurrentNodeID, "stale progress moves to the start node")
}

func TestSyncBlueprintsRejectsInvalidBatches(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Spec)
		problem string
	}{
		{
			name:    "no start node",
			mutate:  func(s *Spec) { s.Nodes[0].IsStart = false },
			problem: "expected exactly one start node",
		},
		{
			name: "two start nodes",
			mutate: func(s *Spec) {
				s.Nodes[1].IsStart = true
			},
			problem: "expected exactly one start node",
		},
		{
			name:    "no final node",
			mutate:  func(s *Spec) { s.Nodes[1].IsFinal = false },
			problem: "no final node",
		},
		{
			name: "duplicate node ids",
			mutate: func(s *Spec) {
				s.Nodes[1].ID = s.Nodes[0].ID
			},
			problem: "duplicate node id",
		},
		{
			name: "dangling next node",
			mutate: func(s *Spec) {
				s.Nodes[0].Choices[0].NextNodeID = "nowhere"
			},
			problem: "does not exist",
		},
		{
			name: "negative reward xp",
			mutate: func(s *Spec) {
				s.Nodes[0].Choices[0].RewardXP = -5
			},
			problem: "negative reward xp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder, db := newTestBuilder(t)
			spec := twoStepSpec(7, "alpha")
			tt.mutate(&spec)

			err := builder.SyncBlueprints(context.Background(), []Spec{spec})
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Error(), tt.problem)

			// All-or-nothing: a rejected batch leaves no trace.
			assert.Equal(t, 0, countRows(t, db, (*models.Quest)(nil)))
			assert.Equal(t, 0, countRows(t, db, (*models.QuestNode)(nil)))
		})
	}
}

func TestSyncBlueprintsRejectsChoiceIDReuseAcrossBatch(t *testing.T) {
	builder, _ := newTestBuilder(t)

	specA := twoStepSpec(7, "alpha")
	specB := twoStepSpec(8, "beta")
	specB.Nodes[0].Choices[0].ID = "alpha_go"

	err := builder.SyncBlueprints(context.Background(), []Spec{specA, specB})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "alpha_go")
}

func TestSyncBlueprintsRejectsChoiceIDCollisionWithPersistedRows(t *testing.T) {
	builder, _ := newTestBuilder(t)
	ctx := context.Background()

	require.NoError(t, builder.SyncBlueprints(ctx, []Spec{twoStepSpec(7, "alpha")}))

	specB := twoStepSpec(8, "beta")
	specB.Nodes[0].Choices[0].ID = "alpha_go"

	err := builder.SyncBlueprints(ctx, []Spec{specB})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "already exists")
}

func TestSyncBlueprintsRejectsNodeIDReuseAcrossBatch(t *testing.T) {
	builder, db := newTestBuilder(t)

	specA := twoStepSpec(7, "alpha")
	specB := twoStepSpec(8, "beta")
	specB.Nodes[1].ID = "alpha_end"
	specB.Nodes[0].Choices[0].NextNodeID = "alpha_end"

	err := builder.SyncBlueprints(context.Background(), []Spec{specA, specB})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), `node id "alpha_end" appears in both "alpha" and "beta"`)

	assert.Equal(t, 0, countRows(t, db, (*models.Quest)(nil)))
	assert.Equal(t, 0, countRows(t, db, (*models.QuestNode)(nil)))
}

func TestSyncBlueprintsRejectsNodeIDCollisionWithPersistedRows(t *testing.T) {
	builder, _ := newTestBuilder(t)
	ctx := context.Background()

	require.NoError(t, builder.SyncBlueprints(ctx, []Spec{twoStepSpec(7, "alpha")}))

	specB := twoStepSpec(8, "beta")
	specB.Nodes[1].ID = "alpha_end"
	specB.Nodes[0].Choices[0].NextNodeID = "alpha_end"
	specB.Nodes[0].Choices[0].ID = "beta_go"

	err := builder.SyncBlueprints(ctx, []Spec{specB})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), `node id "alpha_end" already exists in quest 7`)
}

func TestSyncBlueprintsReportsDuplicateChoiceIDOnce(t *testing.T) {
	builder, _ := newTestBuilder(t)

	spec := twoStepSpec(7, "alpha")
	spec.Nodes[0].Choices = append(spec.Nodes[0].Choices, ChoiceSpec{
		ID: "alpha_go", Label: "Go again", RewardXP: 5, NextNodeID: "alpha_end",
	})

	err := builder.SyncBlueprints(context.Background(), []Spec{spec})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Problems, 1)
	assert.Contains(t, validationErr.Problems[0], `duplicate choice id "alpha_go"`)
}

func TestCreateNodeMapsUniqueViolationToConflict(t *testing.T) {
	db := testdb.New(t)
	repo := repositories.NewQuestRepository(db)
	ctx := context.Background()

	node := &models.QuestNode{ID: "alpha_start", QuestID: 7, Title: "Start", Body: "start body", IsStart: true}
	require.NoError(t, repo.CreateNode(ctx, node))

	dup := &models.QuestNode{ID: "alpha_start", QuestID: 8, Title: "Start", Body: "start body", IsStart: true}
	err := repo.CreateNode(ctx, dup)
	require.Error(t, err)
	assert.True(t, repositories.IsConflict(err))
}

func TestSyncBlueprintsAllowsCrossQuestNextNodes(t *testing.T) {
	builder, _ := newTestBuilder(t)
	ctx := context.Background()

	specA := twoStepSpec(7, "alpha")
	specA.Nodes[1].Choices = []ChoiceSpec{
		{ID: "alpha_bridge", Label: "Onward", RewardXP: 5, NextNodeID: "beta_start"},
	}
	specB := twoStepSpec(8, "beta")

	require.NoError(t, builder.SyncBlueprints(ctx, []Spec{specA, specB}))
}

func TestMigrateToSaga(t *testing.T) {
	builder, db := newTestBuilder(t)
	ctx := context.Background()

	onboarding := twoStepSpec(1, "tutorial")
	saga := twoStepSpec(2001, "saga")
	require.NoError(t, builder.SyncBlueprints(ctx, []Spec{onboarding, saga}))

	// Finished the tutorial: sits on its final node.
	insertPlayer(t, db, 1, true)
	_, err := db.NewInsert().Model(&models.QuestProgress{PlayerID: 1, QuestID: 1, CurrentNodeID: "tutorial_end"}).Exec(ctx)
	require.NoError(t, err)

	// Mid-tutorial: must not be touched.
	insertPlayer(t, db, 2, false)
	_, err = db.NewInsert().Model(&models.QuestProgress{PlayerID: 2, QuestID: 1, CurrentNodeID: "tutorial_start"}).Exec(ctx)
	require.NoError(t, err)

	// Onboarded long ago, no progress row at all.
	insertPlayer(t, db, 3, true)

	require.NoError(t, builder.MigrateToSaga(ctx, 1, "saga_start"))

	var progress models.QuestProgress
	require.NoError(t, db.NewSelect().Model(&progress).Where("player_id = ?", 1).Scan(ctx))
	assert.Equal(t, "saga_start", progress.CurrentNodeID)
	assert.Equal(t, int64(2001), progress.QuestID)

	require.NoError(t, db.NewSelect().Model(&progress).Where("player_id = ?", 2).Scan(ctx))
	assert.Equal(t, "tutorial_start", progress.CurrentNodeID)

	require.NoError(t, db.NewSelect().Model(&progress).Where("player_id = ?", 3).Scan(ctx))
	assert.Equal(t, "saga_start", progress.CurrentNodeID)

	// Re-running moves nobody twice.
	require.NoError(t, builder.MigrateToSaga(ctx, 1, "saga_start"))
	assert.Equal(t, 3, countRows(t, db, (*models.QuestProgress)(nil)))
}

func TestMigrateToSagaMissingStartNode(t *testing.T) {
	builder, _ := newTestBuilder(t)
	err := builder.MigrateToSaga(context.Background(), 1, "missing_node")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
