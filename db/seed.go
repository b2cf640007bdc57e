package db

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"being/db/models"
)

type defaultSkill struct {
	Name            string
	RequiredAPIKeys []string
	EnabledAtStart  bool
}

var defaultSkills = []defaultSkill{
	{Name: "chat", RequiredAPIKeys: []string{"GEMINI_API_KEY"}, EnabledAtStart: true},
	{Name: "image_generation", RequiredAPIKeys: []string{"GEMINI_API_KEY"}},
	{Name: "web_scraping", RequiredAPIKeys: nil},
}

var defaultActivities = []models.ActivityDocument{
	{
		Name:           "daily_thought",
		Description:    "Generate a reflective thought about the day or objectives",
		EnergyCost:     0.1,
		CooldownMs:     4 * 60 * 60 * 1000, // 4 hours
		Enabled:        true,
		RequiredSkills: []string{"chat"},
	},
	{
		Name:           "analyze_day",
		Description:    "Analyze recent activities and progress toward objectives",
		EnergyCost:     0.15,
		CooldownMs:     24 * 60 * 60 * 1000, // 24 hours
		Enabled:        true,
		RequiredSkills: []string{"chat"},
	},
	{
		Name:           "rest",
		Description:    "Take a break and recover energy",
		EnergyCost:     -0.2, // Negative = energy gain
		CooldownMs:     30 * 60 * 1000,
		Enabled:        true,
		RequiredSkills: []string{},
	},
	{
		Name:           "generate_image",
		Description:    "Create an image based on current mood or thoughts",
		EnergyCost:     0.3,
		CooldownMs:     2 * 60 * 60 * 1000,
		Enabled:        true,
		RequiredSkills: []string{"chat", "image_generation"},
	},
	{
		Name:           "research_topic",
		Description:    "Research a topic related to objectives using web scraping",
		EnergyCost:     0.35,
		CooldownMs:     3 * 60 * 60 * 1000,
		Enabled:        true,
		RequiredSkills: []string{"chat", "web_scraping"},
	},
}

// DefaultPersonality used when initialization provides none
var DefaultPersonality = models.Personality{
	Friendliness: 0.7,
	Creativity:   0.8,
	Curiosity:    0.9,
	Enthusiasm:   0.75,
}

// SeedResult describes what Initialize created
type SeedResult struct {
	BeingID           primitive.ObjectID `json:"being_id"`
	SkillsCreated     int                `json:"skills_created"`
	ActivitiesCreated int                `json:"activities_created"`
}

// Initialize bootstraps a new being with the default skill and activity
// catalog and its first memory. Fails with ErrAlreadyInitialized if a being
// exists; the being starts paused until the operator resumes it.
func Initialize(ctx context.Context, name, primaryObjective string, secondaryObjectives []string, personality *models.Personality) (*SeedResult, error) {
	p := DefaultPersonality
	if personality != nil {
		p = *personality
	}

	beingID, err := CreateBeing(ctx, &models.BeingStateDocument{
		Name:        name,
		Mood:        models.MoodCurious,
		Energy:      1.0,
		Personality: p,
		Objectives: models.Objectives{
			Primary:   primaryObjective,
			Secondary: secondaryObjectives,
		},
		Paused: true, // Start paused until the operator is ready
	})
	if err != nil {
		return nil, err
	}

	for _, skill := range defaultSkills {
		if err := RegisterSkill(ctx, skill.Name, skill.RequiredAPIKeys); err != nil {
			return nil, err
		}
		if skill.EnabledAtStart {
			if err := EnableSkill(ctx, skill.Name); err != nil {
				return nil, err
			}
		}
	}

	for i := range defaultActivities {
		if err := RegisterActivity(ctx, &defaultActivities[i]); err != nil {
			return nil, err
		}
	}

	content := fmt.Sprintf("%s was born with the objective: %q", name, primaryObjective)
	if _, err := Remember(ctx, content, models.MemoryTypeObservation, map[string]any{"event": "initialization"}, 1.0); err != nil {
		return nil, err
	}

	log.Printf("[seed] Initialized being %q with %d skills and %d activities",
		name, len(defaultSkills), len(defaultActivities))

	return &SeedResult{
		BeingID:           beingID,
		SkillsCreated:     len(defaultSkills),
		ActivitiesCreated: len(defaultActivities),
	}, nil
}

// Reset wipes all being data, including stored image blobs
func Reset(ctx context.Context) (int64, error) {
	imageCount, err := DeleteAllImages(ctx)
	if err != nil {
		return 0, err
	}
	deleted := imageCount

	collections := []string{
		beingStateCollection,
		activitiesCollection,
		historyCollection,
		shortTermMemoryCollection,
		longTermMemoryCollection,
		skillsCollection,
	}
	for _, name := range collections {
		result, err := GetCollection(name).DeleteMany(ctx, bson.M{})
		if err != nil {
			return deleted, err
		}
		deleted += result.DeletedCount
	}

	log.Printf("[seed] Reset complete, %d records deleted", deleted)
	return deleted, nil
}
