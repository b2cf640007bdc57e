package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"being/db/models"
)

// RegisterSkill upserts a skill by name. New skills start disabled; an
// existing skill only has its required key list refreshed.
func RegisterSkill(ctx context.Context, name string, requiredAPIKeys []string) error {
	filter := bson.M{"name": name}
	update := bson.M{
		"$set": bson.M{
			"required_api_keys": requiredAPIKeys,
		},
		"$setOnInsert": bson.M{
			"enabled": false,
		},
	}

	_, err := GetCollection(skillsCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// EnableSkill marks a skill enabled and stamps its configuration time
func EnableSkill(ctx context.Context, name string) error {
	result, err := GetCollection(skillsCollection).UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{
			"enabled":       true,
			"configured_at": time.Now(),
		}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DisableSkill marks a skill disabled
func DisableSkill(ctx context.Context, name string) error {
	result, err := GetCollection(skillsCollection).UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"enabled": false}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSkills returns all skills
func ListSkills(ctx context.Context) ([]models.SkillDocument, error) {
	cursor, err := GetCollection(skillsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var skills []models.SkillDocument
	if err := cursor.All(ctx, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}
