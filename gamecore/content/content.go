// Package content carries the authored quest blueprints and syncs them
// into the store on startup.
package content

import (
	"context"

	"github.com/fallencrown/gamecore/gamecore/quest"
)

// Blueprints returns every authored quest line in sync order.
func Blueprints() []quest.Spec {
	specs := []quest.Spec{OnboardingBlueprint()}
	return append(specs, FallenCrownBlueprint()...)
}

// EnsureContent syncs all authored blueprints and then moves players who
// already finished onboarding onto the saga's first node. Safe to run on
// every startup.
func EnsureContent(ctx context.Context, builder *quest.Builder) error {
	if err := builder.SyncBlueprints(ctx, Blueprints()); err != nil {
		return err
	}
	return builder.MigrateToSaga(ctx, OnboardingQuestID, FallenCrownStartNodeID)
}
