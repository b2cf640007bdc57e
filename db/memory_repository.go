package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"being/db/models"
)

// MaxShortTermMemories caps the short-term store; the oldest entries beyond
// the cap are evicted FIFO on every insert.
const MaxShortTermMemories = 100

// Remember appends a short-term memory and prunes the store down to the cap
func Remember(ctx context.Context, content, memoryType string, metadata map[string]any, importance float64) (primitive.ObjectID, error) {
	doc := models.ShortTermMemoryDocument{
		Content:    content,
		Type:       memoryType,
		Metadata:   metadata,
		CreatedAt:  time.Now(),
		Importance: importance,
	}

	collection := GetCollection(shortTermMemoryCollection)
	result, err := collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	memoryID := result.InsertedID.(primitive.ObjectID)

	// Evict oldest entries beyond the cap
	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return memoryID, err
	}
	if excess := total - MaxShortTermMemories; excess > 0 {
		cursor, err := collection.Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetLimit(excess))
		if err != nil {
			return memoryID, err
		}
		defer cursor.Close(ctx)

		var oldest []models.ShortTermMemoryDocument
		if err := cursor.All(ctx, &oldest); err != nil {
			return memoryID, err
		}
		ids := make([]primitive.ObjectID, 0, len(oldest))
		for _, m := range oldest {
			ids = append(ids, m.ID)
		}
		if _, err := collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
			return memoryID, err
		}
	}

	return memoryID, nil
}

// GetRecentMemories returns the newest short-term memories, optionally
// filtered by type
func GetRecentMemories(ctx context.Context, limit int, memoryType string) ([]models.ShortTermMemoryDocument, error) {
	if limit <= 0 {
		limit = 10
	}
	filter := bson.M{}
	if memoryType != "" {
		filter["type"] = memoryType
	}

	cursor, err := GetCollection(shortTermMemoryCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var memories []models.ShortTermMemoryDocument
	if err := cursor.All(ctx, &memories); err != nil {
		return nil, err
	}
	return memories, nil
}

// GetMemoriesByTimeRange returns short-term memories created in [from, to]
func GetMemoriesByTimeRange(ctx context.Context, from, to time.Time) ([]models.ShortTermMemoryDocument, error) {
	filter := bson.M{"created_at": bson.M{"$gte": from, "$lte": to}}

	cursor, err := GetCollection(shortTermMemoryCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var memories []models.ShortTermMemoryDocument
	if err := cursor.All(ctx, &memories); err != nil {
		return nil, err
	}
	return memories, nil
}

// ConsolidateMemories collapses the given short-term entries into one
// long-term record and deletes the sources. The long-term record keeps the
// source ids for audit only; they resolve to nothing afterwards.
func ConsolidateMemories(ctx context.Context, memoryIDs []primitive.ObjectID, summary, category string) (primitive.ObjectID, error) {
	if len(memoryIDs) == 0 {
		return primitive.NilObjectID, fmt.Errorf("no memories to consolidate")
	}

	shortTerm := GetCollection(shortTermMemoryCollection)
	count, err := shortTerm.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": memoryIDs}})
	if err != nil {
		return primitive.NilObjectID, err
	}
	if count != int64(len(memoryIDs)) {
		return primitive.NilObjectID, fmt.Errorf("%w: %d of %d memories", ErrNotFound, int64(len(memoryIDs))-count, len(memoryIDs))
	}

	now := time.Now()
	doc := models.LongTermMemoryDocument{
		Summary:         summary,
		Category:        category,
		SourceMemoryIDs: memoryIDs,
		ConsolidatedAt:  now,
		AccessCount:     0,
		LastAccessedAt:  now,
	}

	result, err := GetCollection(longTermMemoryCollection).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if _, err := shortTerm.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": memoryIDs}}); err != nil {
		return primitive.NilObjectID, err
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

// GetLongTermMemories returns long-term records, optionally filtered by
// category, and bumps their access counters.
func GetLongTermMemories(ctx context.Context, category string, limit int) ([]models.LongTermMemoryDocument, error) {
	if limit <= 0 {
		limit = 20
	}
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	collection := GetCollection(longTermMemoryCollection)
	cursor, err := collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "consolidated_at", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var memories []models.LongTermMemoryDocument
	if err := cursor.All(ctx, &memories); err != nil {
		return nil, err
	}

	if len(memories) > 0 {
		ids := make([]primitive.ObjectID, 0, len(memories))
		for _, m := range memories {
			ids = append(ids, m.ID)
		}
		_, err = collection.UpdateMany(ctx,
			bson.M{"_id": bson.M{"$in": ids}},
			bson.M{
				"$inc": bson.M{"access_count": 1},
				"$set": bson.M{"last_accessed_at": time.Now()},
			})
		if err != nil {
			return nil, err
		}
	}

	return memories, nil
}
