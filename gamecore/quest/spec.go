package quest

import (
	"context"
	"fmt"

	"github.com/fallencrown/gamecore/gamecore/database/repositories"
)

// ChoiceSpec is the declarative definition of a choice within a node.
// Choice ids are author-assigned and must be unique across the entire
// system, because the traversal engine resolves choices by id alone.
type ChoiceSpec struct {
	ID           string
	Label        string
	RewardXP     int64
	NextNodeID   string // empty: the choice leaves the player on its node
	RewardItemID int64  // zero: no item reward
}

// NodeSpec is the declarative definition of a quest node.
type NodeSpec struct {
	ID      string
	Title   string
	Body    string
	IsStart bool
	IsFinal bool
	Choices []ChoiceSpec
}

// Spec is the declarative definition of a quest with its nodes and choices.
type Spec struct {
	ID           int64 // zero: resolve by title, else create
	Title        string
	Description  string
	IsRepeatable bool
	Nodes        []NodeSpec
}

// StartNodeID returns the id of the spec's start node, or "".
func (s Spec) StartNodeID() string {
	for _, node := range s.Nodes {
		if node.IsStart {
			return node.ID
		}
	}
	return ""
}

// validateBatch enforces the authoring invariants over a whole blueprint
// batch, all-or-nothing: node ids unique across the whole system (the
// node table is keyed on the id alone), exactly one start node, at least
// one final node, choice ids unique within their node and across the
// whole system, and every next-node reference resolving either inside
// the batch or to an already persisted node.
func validateBatch(ctx context.Context, repo repositories.QuestRepository, specs []Spec) error {
	var problems []string

	batchNodeOwner := make(map[string]string) // node id -> quest title
	batchChoiceIDs := make(map[string]string) // choice id -> quest title
	var danglingNodeRefs []string

	for _, spec := range specs {
		nodeIDs := make(map[string]bool, len(spec.Nodes))
		startCount := 0
		finalCount := 0

		for _, node := range spec.Nodes {
			if nodeIDs[node.ID] {
				problems = append(problems, fmt.Sprintf("quest %q: duplicate node id %q", spec.Title, node.ID))
			} else if owner, seen := batchNodeOwner[node.ID]; seen {
				problems = append(problems, fmt.Sprintf("node id %q appears in both %q and %q", node.ID, owner, spec.Title))
			}
			nodeIDs[node.ID] = true
			batchNodeOwner[node.ID] = spec.Title
			if node.IsStart {
				startCount++
			}
			if node.IsFinal {
				finalCount++
			}

			choiceIDs := make(map[string]bool, len(node.Choices))
			for _, choice := range node.Choices {
				if choiceIDs[choice.ID] {
					problems = append(problems, fmt.Sprintf("quest %q: node %q: duplicate choice id %q", spec.Title, node.ID, choice.ID))
				} else if owner, seen := batchChoiceIDs[choice.ID]; seen {
					problems = append(problems, fmt.Sprintf("choice id %q appears in both %q and %q", choice.ID, owner, spec.Title))
				}
				choiceIDs[choice.ID] = true
				batchChoiceIDs[choice.ID] = spec.Title

				if choice.RewardXP < 0 {
					problems = append(problems, fmt.Sprintf("quest %q: choice %q: negative reward xp", spec.Title, choice.ID))
				}
			}
		}

		if startCount != 1 {
			problems = append(problems, fmt.Sprintf("quest %q: expected exactly one start node, got %d", spec.Title, startCount))
		}
		if finalCount == 0 {
			problems = append(problems, fmt.Sprintf("quest %q: no final node", spec.Title))
		}
	}

	// Next-node references must resolve inside the batch or in the store.
	for _, spec := range specs {
		for _, node := range spec.Nodes {
			for _, choice := range node.Choices {
				if _, inBatch := batchNodeOwner[choice.NextNodeID]; choice.NextNodeID != "" && !inBatch {
					danglingNodeRefs = append(danglingNodeRefs, choice.NextNodeID)
				}
			}
		}
	}
	if len(danglingNodeRefs) > 0 {
		persisted, err := repo.ExistingNodeIDs(ctx, danglingNodeRefs)
		if err != nil {
			return err
		}
		for _, spec := range specs {
			for _, node := range spec.Nodes {
				for _, choice := range node.Choices {
					if _, inBatch := batchNodeOwner[choice.NextNodeID]; choice.NextNodeID != "" && !inBatch && !persisted[choice.NextNodeID] {
						problems = append(problems, fmt.Sprintf("quest %q: choice %q: next node %q does not exist", spec.Title, choice.ID, choice.NextNodeID))
					}
				}
			}
		}
	}

	// System-wide node uniqueness: a persisted node with the same id that
	// belongs to a quest outside this batch would be silently overwritten
	// (or trip the storage unique constraint mid-sync).
	batchQuestIDs := make(map[int64]bool, len(specs))
	for _, spec := range specs {
		id := spec.ID
		if id == 0 {
			quest, err := repo.GetQuestByTitle(ctx, spec.Title)
			if err != nil {
				if repositories.IsNotFound(err) {
					continue
				}
				return err
			}
			id = quest.ID
		}
		batchQuestIDs[id] = true
	}
	allNodeIDs := make([]string, 0, len(batchNodeOwner))
	for id := range batchNodeOwner {
		allNodeIDs = append(allNodeIDs, id)
	}
	persistedNodes, err := repo.GetNodesByIDs(ctx, allNodeIDs)
	if err != nil {
		return err
	}
	for _, existing := range persistedNodes {
		if !batchQuestIDs[existing.QuestID] {
			problems = append(problems, fmt.Sprintf("node id %q already exists in quest %d outside this batch", existing.ID, existing.QuestID))
		}
	}

	// System-wide choice uniqueness: a persisted choice with the same id on
	// a node outside this batch would be silently captured by traversal.
	allChoiceIDs := make([]string, 0, len(batchChoiceIDs))
	for id := range batchChoiceIDs {
		allChoiceIDs = append(allChoiceIDs, id)
	}
	persistedChoices, err := repo.GetChoicesByIDs(ctx, allChoiceIDs)
	if err != nil {
		return err
	}
	for _, existing := range persistedChoices {
		if _, inBatch := batchNodeOwner[existing.NodeID]; !inBatch {
			problems = append(problems, fmt.Sprintf("choice id %q already exists on node %q outside this batch", existing.ID, existing.NodeID))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
