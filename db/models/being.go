package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moods the being can be in.
const (
	MoodNeutral  = "neutral"
	MoodHappy    = "happy"
	MoodTired    = "tired"
	MoodCurious  = "curious"
	MoodCreative = "creative"
	MoodFocused  = "focused"
)

// Short-term memory entry types.
const (
	MemoryTypeActivity    = "activity"
	MemoryTypeThought     = "thought"
	MemoryTypeObservation = "observation"
	MemoryTypeInteraction = "interaction"
)

type Personality struct {
	Friendliness float64 `bson:"friendliness" json:"friendliness"`
	Creativity   float64 `bson:"creativity" json:"creativity"`
	Curiosity    float64 `bson:"curiosity" json:"curiosity"`
	Enthusiasm   float64 `bson:"enthusiasm" json:"enthusiasm"`
}

type Objectives struct {
	Primary   string   `bson:"primary" json:"primary"`
	Secondary []string `bson:"secondary,omitempty" json:"secondary,omitempty"`
}

// BeingStateDocument is the singleton simulation state. At most one exists.
type BeingStateDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Mood           string             `bson:"mood" json:"mood"`
	Energy         float64            `bson:"energy" json:"energy"` // 0.0 - 1.0
	Personality    Personality        `bson:"personality" json:"personality"`
	Objectives     Objectives         `bson:"objectives" json:"objectives"`
	Paused         bool               `bson:"paused" json:"paused"`
	LastActivityAt *time.Time         `bson:"last_activity_at,omitempty" json:"last_activity_at,omitempty"`
}

// ActivityDocument is a catalog entry describing one thing the being can do.
type ActivityDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	EnergyCost     float64            `bson:"energy_cost" json:"energy_cost"` // negative = energy gain
	CooldownMs     int64              `bson:"cooldown_ms" json:"cooldown_ms"`
	Enabled        bool               `bson:"enabled" json:"enabled"`
	RequiredSkills []string           `bson:"required_skills" json:"required_skills"`
	LastExecutedAt *time.Time         `bson:"last_executed_at,omitempty" json:"last_executed_at,omitempty"`
	ExecutionCount int64              `bson:"execution_count" json:"execution_count"`
}

type SkillDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Enabled         bool               `bson:"enabled" json:"enabled"`
	RequiredAPIKeys []string           `bson:"required_api_keys" json:"required_api_keys"`
	ConfiguredAt    *time.Time         `bson:"configured_at,omitempty" json:"configured_at,omitempty"`
}

// ActivityHistoryDocument is an append-only record of one execution attempt.
type ActivityHistoryDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActivityName string             `bson:"activity_name" json:"activity_name"`
	Success      bool               `bson:"success" json:"success"`
	Error        string             `bson:"error,omitempty" json:"error,omitempty"`
	Result       map[string]any     `bson:"result,omitempty" json:"result,omitempty"`
	EnergyBefore float64            `bson:"energy_before" json:"energy_before"`
	EnergyAfter  float64            `bson:"energy_after" json:"energy_after"`
	MoodBefore   string             `bson:"mood_before" json:"mood_before"`
	MoodAfter    string             `bson:"mood_after" json:"mood_after"`
	ExecutedAt   time.Time          `bson:"executed_at" json:"executed_at"`
	DurationMs   int64              `bson:"duration_ms" json:"duration_ms"`
}

type ShortTermMemoryDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content    string             `bson:"content" json:"content"`
	Type       string             `bson:"type" json:"type"`
	Metadata   map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	Importance float64            `bson:"importance" json:"importance"` // 0.0 - 1.0, used for consolidation
}

// LongTermMemoryDocument summarizes a batch of deleted short-term memories.
// SourceMemoryIDs are historical references only; the entries they point to
// are removed at consolidation time.
type LongTermMemoryDocument struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Summary         string               `bson:"summary" json:"summary"`
	Category        string               `bson:"category" json:"category"`
	SourceMemoryIDs []primitive.ObjectID `bson:"source_memory_ids" json:"source_memory_ids"`
	ConsolidatedAt  time.Time            `bson:"consolidated_at" json:"consolidated_at"`
	AccessCount     int64                `bson:"access_count" json:"access_count"`
	LastAccessedAt  time.Time            `bson:"last_accessed_at" json:"last_accessed_at"`
}

// GeneratedImageDocument is the metadata record for an image blob in GridFS.
type GeneratedImageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Prompt    string             `bson:"prompt" json:"prompt"`
	StorageID primitive.ObjectID `bson:"storage_id" json:"storage_id"`
	MIMEType  string             `bson:"mime_type" json:"mime_type"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ClampEnergy bounds an energy value to [0, 1].
func ClampEnergy(e float64) float64 {
	if e < 0 {
		return 0
	}
	if e > 1 {
		return 1
	}
	return e
}

// OnCooldown reports whether the activity's cooldown window is still open at now.
func (a *ActivityDocument) OnCooldown(now time.Time) bool {
	if a.LastExecutedAt == nil {
		return false
	}
	end := a.LastExecutedAt.Add(time.Duration(a.CooldownMs) * time.Millisecond)
	return now.Before(end)
}
