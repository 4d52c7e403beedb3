package content

import (
	"context"
	"testing"

	"github.com/fallencrown/gamecore/gamecore/database/models"
	"github.com/fallencrown/gamecore/gamecore/database/repositories"
	"github.com/fallencrown/gamecore/gamecore/database/testdb"
	"github.com/fallencrown/gamecore/gamecore/quest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestContent(t *testing.T) (*quest.Builder, *bun.DB) {
	t.Helper()
	db := testdb.New(t)
	cache, err := quest.NewNodeCache(0)
	require.NoError(t, err)
	return quest.NewBuilder(db, cache), db
}

func TestEnsureContentSyncsAuthoredQuests(t *testing.T) {
	builder, db := newTestContent(t)
	ctx := context.Background()

	require.NoError(t, EnsureContent(ctx, builder))

	var questIDs []int64
	err := db.NewSelect().Model((*models.Quest)(nil)).
		Column("id").Order("id ASC").Scan(ctx, &questIDs)
	require.NoError(t, err)
	assert.Equal(t, []int64{
		OnboardingQuestID,
		FallenCrownActIID,
		FallenCrownActIIID,
		FallenCrownActIIIID,
		FallenCrownActIVID,
		FallenCrownActVID,
	}, questIDs)

	// New players start on the tutorial, not the saga.
	repo := repositories.NewQuestRepository(db)
	start, err := repo.GetDefaultStartNode(ctx)
	require.NoError(t, err)
	assert.Equal(t, OnboardingNodeIntro, start.ID)

	saga, err := repo.GetNode(ctx, FallenCrownStartNodeID)
	require.NoError(t, err)
	assert.True(t, saga.IsStart)
	assert.NotEmpty(t, saga.Choices)
}

func TestEnsureContentIsIdempotent(t *testing.T) {
	builder, db := newTestContent(t)
	ctx := context.Background()

	require.NoError(t, EnsureContent(ctx, builder))

	nodesBefore, err := db.NewSelect().Model((*models.QuestNode)(nil)).Count(ctx)
	require.NoError(t, err)
	choicesBefore, err := db.NewSelect().Model((*models.QuestChoice)(nil)).Count(ctx)
	require.NoError(t, err)

	require.NoError(t, EnsureContent(ctx, builder))

	nodesAfter, err := db.NewSelect().Model((*models.QuestNode)(nil)).Count(ctx)
	require.NoError(t, err)
	choicesAfter, err := db.NewSelect().Model((*models.QuestChoice)(nil)).Count(ctx)
	require.NoError(t, err)

	assert.Equal(t, nodesBefore, nodesAfter)
	assert.Equal(t, choicesBefore, choicesAfter)
}

func TestEnsureContentMovesOnboardedPlayersToSaga(t *testing.T) {
	builder, db := newTestContent(t)
	ctx := context.Background()

	player := &models.Player{ID: 1, Username: "veteran", Level: 3, OnboardingCompleted: true}
	_, err := db.NewInsert().Model(player).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, EnsureContent(ctx, builder))

	// Park the player back on the tutorial's final node, as an older
	// deployment would have left them.
	_, err = db.NewUpdate().Model((*models.QuestProgress)(nil)).
		Set("quest_id = ?", OnboardingQuestID).
		Set("current_node_id = ?", OnboardingNodeFinish).
		Where("player_id = ?", 1).
		Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, EnsureContent(ctx, builder))

	moved := new(models.QuestProgress)
	require.NoError(t, db.NewSelect().Model(moved).Where("player_id = ?", 1).Scan(ctx))
	assert.Equal(t, FallenCrownStartNodeID, moved.CurrentNodeID)
	assert.Equal(t, FallenCrownActIID, moved.QuestID)
}

func TestFallenCrownActsBridgeForward(t *testing.T) {
	acts := FallenCrownBlueprint()
	require.Len(t, acts, 5)

	nodeOwner := make(map[string]int64)
	for _, act := range acts {
		for _, node := range act.Nodes {
			nodeOwner[node.ID] = act.ID
		}
	}

	// Every act's final node leads into the next act, except the last.
	for i, act := range acts[:len(acts)-1] {
		var bridged bool
		for _, node := range act.Nodes {
			if !node.IsFinal {
				continue
			}
			for _, choice := range node.Choices {
				if choice.NextNodeID == "" {
					continue
				}
				if nodeOwner[choice.NextNodeID] == acts[i+1].ID {
					bridged = true
				}
			}
		}
		assert.True(t, bridged, "act %d has no bridge into act %d", act.ID, acts[i+1].ID)
	}

	// The saga's ending absorbs: terminal choices stay on their node.
	last := acts[len(acts)-1]
	var terminalChoices int
	for _, node := range last.Nodes {
		if !node.IsFinal {
			continue
		}
		for _, choice := range node.Choices {
			if choice.NextNodeID == "" {
				terminalChoices++
			}
		}
	}
	assert.Greater(t, terminalChoices, 0)
}
