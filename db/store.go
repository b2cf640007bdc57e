package db

import (
	"context"

	"being/db/models"
)

// Store adapts the repository functions to the loop controller's interface
type Store struct{}

func (Store) GetBeing(ctx context.Context) (*models.BeingStateDocument, error) {
	return GetBeing(ctx)
}

func (Store) ListActivities(ctx context.Context) ([]models.ActivityDocument, error) {
	return ListActivities(ctx)
}

func (Store) ListSkills(ctx context.Context) ([]models.SkillDocument, error) {
	return ListSkills(ctx)
}

func (Store) UpdateAfterActivity(ctx context.Context, energyCost float64, newMood string) (float64, string, error) {
	return UpdateAfterActivity(ctx, energyCost, newMood)
}

func (Store) RecoverEnergy(ctx context.Context, amount float64) (float64, error) {
	return RecoverEnergy(ctx, amount)
}

func (Store) RecordExecution(ctx context.Context, record *models.ActivityHistoryDocument) error {
	return RecordExecution(ctx, record)
}

func (Store) Remember(ctx context.Context, content, memoryType string, metadata map[string]any, importance float64) error {
	_, err := Remember(ctx, content, memoryType, metadata, importance)
	return err
}

func (Store) GetRecentMemories(ctx context.Context, limit int) ([]models.ShortTermMemoryDocument, error) {
	return GetRecentMemories(ctx, limit, "")
}
