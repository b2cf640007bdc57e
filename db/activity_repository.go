package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"being/db/models"
)

// RegisterActivity upserts a catalog entry by name. Execution bookkeeping
// (last_executed_at, execution_count) is preserved on update.
func RegisterActivity(ctx context.Context, activity *models.ActivityDocument) error {
	filter := bson.M{"name": activity.Name}
	update := bson.M{
		"$set": bson.M{
			"description":     activity.Description,
			"energy_cost":     activity.EnergyCost,
			"cooldown_ms":     activity.CooldownMs,
			"enabled":         activity.Enabled,
			"required_skills": activity.RequiredSkills,
		},
		"$setOnInsert": bson.M{
			"execution_count": int64(0),
		},
	}

	_, err := GetCollection(activitiesCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ListActivities returns the full catalog in insertion order
func ListActivities(ctx context.Context) ([]models.ActivityDocument, error) {
	cursor, err := GetCollection(activitiesCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []models.ActivityDocument
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetActivityByName looks up a single catalog entry
func GetActivityByName(ctx context.Context, name string) (*models.ActivityDocument, error) {
	var activity models.ActivityDocument
	err := GetCollection(activitiesCollection).FindOne(ctx, bson.M{"name": name}).Decode(&activity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// SetActivityEnabled toggles an activity on or off
func SetActivityEnabled(ctx context.Context, name string, enabled bool) error {
	result, err := GetCollection(activitiesCollection).UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"enabled": enabled}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetCooldown clears the last execution timestamp so the activity becomes
// immediately eligible again (admin operation)
func ResetCooldown(ctx context.Context, name string) error {
	result, err := GetCollection(activitiesCollection).UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$unset": bson.M{"last_executed_at": ""}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordExecution appends a history record and stamps the activity's
// last_executed_at / execution_count. The stamp happens on success and
// failure alike; a failed attempt still starts the cooldown window.
func RecordExecution(ctx context.Context, record *models.ActivityHistoryDocument) error {
	now := time.Now()
	record.ExecutedAt = now

	_, err := GetCollection(historyCollection).InsertOne(ctx, record)
	if err != nil {
		return err
	}

	_, err = GetCollection(activitiesCollection).UpdateOne(ctx,
		bson.M{"name": record.ActivityName},
		bson.M{
			"$set": bson.M{"last_executed_at": now},
			"$inc": bson.M{"execution_count": 1},
		})
	return err
}

// GetHistory retrieves paginated execution history, most recent first,
// optionally filtered by activity name
func GetHistory(ctx context.Context, activityName string, limit, offset int) ([]models.ActivityHistoryDocument, int64, error) {
	filter := bson.M{}
	if activityName != "" {
		filter["activity_name"] = activityName
	}

	collection := GetCollection(historyCollection)

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "executed_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var records []models.ActivityHistoryDocument
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
