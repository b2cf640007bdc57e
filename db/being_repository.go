package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"being/db/models"
)

// GetBeing returns the singleton being state, or nil if none exists yet
func GetBeing(ctx context.Context) (*models.BeingStateDocument, error) {
	var being models.BeingStateDocument
	err := GetCollection(beingStateCollection).FindOne(ctx, bson.M{}).Decode(&being)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &being, nil
}

// CreateBeing inserts the singleton being state. Fails if one already exists.
func CreateBeing(ctx context.Context, being *models.BeingStateDocument) (primitive.ObjectID, error) {
	existing, err := GetBeing(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if existing != nil {
		return primitive.NilObjectID, ErrAlreadyInitialized
	}

	result, err := GetCollection(beingStateCollection).InsertOne(ctx, being)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// UpdateAfterActivity applies an energy delta and optional mood change after a
// successful execution. Energy is clamped to [0, 1]; newMood == "" leaves the
// mood unchanged. Returns the new energy and mood.
func UpdateAfterActivity(ctx context.Context, energyCost float64, newMood string) (float64, string, error) {
	being, err := GetBeing(ctx)
	if err != nil {
		return 0, "", err
	}
	if being == nil {
		return 0, "", ErrNotInitialized
	}

	newEnergy := models.ClampEnergy(being.Energy - energyCost)
	mood := being.Mood
	if newMood != "" {
		mood = newMood
	}
	now := time.Now()

	_, err = GetCollection(beingStateCollection).UpdateByID(ctx, being.ID, bson.M{
		"$set": bson.M{
			"energy":           newEnergy,
			"mood":             mood,
			"last_activity_at": now,
		},
	})
	if err != nil {
		return 0, "", err
	}
	return newEnergy, mood, nil
}

// RecoverEnergy adds a passive energy amount, clamped to 1.0. A missing being
// is not an error here; recovery is silently skipped.
func RecoverEnergy(ctx context.Context, amount float64) (float64, error) {
	being, err := GetBeing(ctx)
	if err != nil || being == nil {
		return 0, err
	}

	newEnergy := models.ClampEnergy(being.Energy + amount)
	_, err = GetCollection(beingStateCollection).UpdateByID(ctx, being.ID, bson.M{
		"$set": bson.M{"energy": newEnergy},
	})
	if err != nil {
		return 0, err
	}
	return newEnergy, nil
}

// SetPaused pauses or resumes the loop for the being
func SetPaused(ctx context.Context, paused bool) error {
	being, err := GetBeing(ctx)
	if err != nil {
		return err
	}
	if being == nil {
		return ErrNotInitialized
	}

	_, err = GetCollection(beingStateCollection).UpdateByID(ctx, being.ID, bson.M{
		"$set": bson.M{"paused": paused},
	})
	return err
}

// UpdateObjectives replaces the primary and/or secondary objectives. Nil
// arguments keep the current values.
func UpdateObjectives(ctx context.Context, primary *string, secondary []string) (*models.Objectives, error) {
	being, err := GetBeing(ctx)
	if err != nil {
		return nil, err
	}
	if being == nil {
		return nil, ErrNotInitialized
	}

	objectives := being.Objectives
	if primary != nil {
		objectives.Primary = *primary
	}
	if secondary != nil {
		objectives.Secondary = secondary
	}

	_, err = GetCollection(beingStateCollection).UpdateByID(ctx, being.ID, bson.M{
		"$set": bson.M{"objectives": objectives},
	})
	if err != nil {
		return nil, err
	}
	return &objectives, nil
}
