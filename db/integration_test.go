package db

// Integration tests against a real MongoDB. Set MONGODB_TEST_URI to run,
// e.g. MONGODB_TEST_URI=mongodb://localhost:27017 go test ./db/...
// Each test starts from a wiped database.

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"being/db/models"
)

var initOnce sync.Once

func setupDB(t *testing.T) context.Context {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	initOnce.Do(func() {
		os.Setenv("MONGODB_URI", uri)
		os.Setenv("MONGODB_DATABASE", "digital-being-test")
		if err := InitMongoDB(); err != nil {
			t.Fatalf("failed to connect: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	_, err := Reset(ctx)
	require.NoError(t, err)
	return ctx
}

func TestInitializeIsGuarded(t *testing.T) {
	ctx := setupDB(t)

	result, err := Initialize(ctx, "Orbit", "learn about the world", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.SkillsCreated)
	assert.Equal(t, 5, result.ActivitiesCreated)

	being, err := GetBeing(ctx)
	require.NoError(t, err)
	require.NotNil(t, being)
	assert.True(t, being.Paused)
	assert.Equal(t, models.MoodCurious, being.Mood)
	assert.Equal(t, 1.0, being.Energy)

	// Second initialization must fail and leave the being alone
	_, err = Initialize(ctx, "Other", "something else", nil, nil)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestRegisterActivityIsIdempotent(t *testing.T) {
	ctx := setupDB(t)

	first := models.ActivityDocument{
		Name:           "stargaze",
		Description:    "Watch the sky",
		EnergyCost:     0.1,
		CooldownMs:     1000,
		Enabled:        true,
		RequiredSkills: []string{},
	}
	require.NoError(t, RegisterActivity(ctx, &first))

	// Record an execution so the bookkeeping fields are non-zero
	require.NoError(t, RecordExecution(ctx, &models.ActivityHistoryDocument{
		ActivityName: "stargaze",
		Success:      true,
		MoodBefore:   models.MoodNeutral,
		MoodAfter:    models.MoodNeutral,
	}))

	second := first
	second.Description = "Watch the night sky"
	second.EnergyCost = 0.2
	require.NoError(t, RegisterActivity(ctx, &second))

	activities, err := ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1, "upsert by name must never duplicate")

	got := activities[0]
	assert.Equal(t, "Watch the night sky", got.Description)
	assert.Equal(t, 0.2, got.EnergyCost)
	// Execution bookkeeping survives re-registration
	assert.Equal(t, int64(1), got.ExecutionCount)
	assert.NotNil(t, got.LastExecutedAt)
}

func TestShortTermMemoryEviction(t *testing.T) {
	ctx := setupDB(t)

	_, err := Remember(ctx, "the very first memory", models.MemoryTypeObservation, nil, 0.5)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond) // keep the first entry strictly oldest

	for i := 0; i < MaxShortTermMemories; i++ {
		_, err := Remember(ctx, fmt.Sprintf("memory %d", i), models.MemoryTypeThought, nil, 0.5)
		require.NoError(t, err)
	}

	memories, err := GetRecentMemories(ctx, MaxShortTermMemories+10, "")
	require.NoError(t, err)
	assert.Len(t, memories, MaxShortTermMemories)
	for _, m := range memories {
		assert.NotEqual(t, "the very first memory", m.Content, "oldest entry must be evicted")
	}
}

func TestConsolidationRoundTrip(t *testing.T) {
	ctx := setupDB(t)

	m1, err := Remember(ctx, "met a falcon", models.MemoryTypeObservation, nil, 0.8)
	require.NoError(t, err)
	m2, err := Remember(ctx, "read about falcons", models.MemoryTypeThought, nil, 0.6)
	require.NoError(t, err)
	keep, err := Remember(ctx, "unrelated memory", models.MemoryTypeThought, nil, 0.5)
	require.NoError(t, err)

	longTermID, err := ConsolidateMemories(ctx, []primitive.ObjectID{m1, m2}, "learned about falcons", "wildlife")
	require.NoError(t, err)
	assert.False(t, longTermID.IsZero())

	// Sources are gone, the unrelated entry survives
	remaining, err := GetRecentMemories(ctx, 10, "")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep, remaining[0].ID)

	// Exactly one long-term record referencing both sources
	longTerm, err := GetLongTermMemories(ctx, "wildlife", 10)
	require.NoError(t, err)
	require.Len(t, longTerm, 1)
	assert.Equal(t, "learned about falcons", longTerm[0].Summary)
	assert.ElementsMatch(t, []primitive.ObjectID{m1, m2}, longTerm[0].SourceMemoryIDs)

	// Reading through the accessor bumped the access counter
	longTerm, err = GetLongTermMemories(ctx, "wildlife", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), longTerm[0].AccessCount)

	// Consolidating already-deleted ids fails cleanly
	_, err = ConsolidateMemories(ctx, []primitive.ObjectID{m1, m2}, "again", "wildlife")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAfterActivityClamps(t *testing.T) {
	ctx := setupDB(t)

	_, err := Initialize(ctx, "Orbit", "learn", nil, nil)
	require.NoError(t, err)

	// Energy gain beyond 1.0 clamps
	energy, mood, err := UpdateAfterActivity(ctx, -0.5, models.MoodNeutral)
	require.NoError(t, err)
	assert.Equal(t, 1.0, energy)
	assert.Equal(t, models.MoodNeutral, mood)

	// Spend beyond the floor clamps at 0, empty mood leaves it unchanged
	energy, mood, err = UpdateAfterActivity(ctx, 5.0, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, energy)
	assert.Equal(t, models.MoodNeutral, mood)

	being, err := GetBeing(ctx)
	require.NoError(t, err)
	assert.NotNil(t, being.LastActivityAt)
}
