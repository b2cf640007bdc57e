package loop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"being/activities"
	"being/db/models"
)

// memStore is an in-memory Store for exercising the tick state machine
type memStore struct {
	being      *models.BeingStateDocument
	activities []models.ActivityDocument
	skills     []models.SkillDocument
	memories   []models.ShortTermMemoryDocument
	history    []models.ActivityHistoryDocument
	recovered  []float64
}

func (s *memStore) GetBeing(ctx context.Context) (*models.BeingStateDocument, error) {
	return s.being, nil
}

func (s *memStore) ListActivities(ctx context.Context) ([]models.ActivityDocument, error) {
	return s.activities, nil
}

func (s *memStore) ListSkills(ctx context.Context) ([]models.SkillDocument, error) {
	return s.skills, nil
}

func (s *memStore) UpdateAfterActivity(ctx context.Context, energyCost float64, newMood string) (float64, string, error) {
	s.being.Energy = models.ClampEnergy(s.being.Energy - energyCost)
	if newMood != "" {
		s.being.Mood = newMood
	}
	return s.being.Energy, s.being.Mood, nil
}

func (s *memStore) RecoverEnergy(ctx context.Context, amount float64) (float64, error) {
	s.recovered = append(s.recovered, amount)
	s.being.Energy = models.ClampEnergy(s.being.Energy + amount)
	return s.being.Energy, nil
}

func (s *memStore) RecordExecution(ctx context.Context, record *models.ActivityHistoryDocument) error {
	s.history = append(s.history, *record)
	for i := range s.activities {
		if s.activities[i].Name == record.ActivityName {
			s.activities[i].ExecutionCount++
		}
	}
	return nil
}

func (s *memStore) Remember(ctx context.Context, content, memoryType string, metadata map[string]any, importance float64) error {
	s.memories = append(s.memories, models.ShortTermMemoryDocument{
		Content: content, Type: memoryType, Metadata: metadata, Importance: importance,
	})
	return nil
}

func (s *memStore) GetRecentMemories(ctx context.Context, limit int) ([]models.ShortTermMemoryDocument, error) {
	if len(s.memories) > limit {
		return s.memories[len(s.memories)-limit:], nil
	}
	return s.memories, nil
}

// stubRunner returns a canned result and records what it was asked to run
type stubRunner struct {
	result activities.Result
	ran    []string
}

func (r *stubRunner) Run(ctx context.Context, activityName string, being *models.BeingStateDocument, memoryContext string) activities.Result {
	r.ran = append(r.ran, activityName)
	return r.result
}

type zeroRand struct{}

func (zeroRand) Float64() float64 { return 0 }

func newTickFixture(energy float64) (*memStore, *stubRunner, *Controller) {
	store := &memStore{
		being: &models.BeingStateDocument{
			Name:        "Orbit",
			Mood:        models.MoodNeutral,
			Energy:      energy,
			Personality: models.Personality{Friendliness: 0.7, Creativity: 0.8, Curiosity: 0.9, Enthusiasm: 0.75},
			Objectives:  models.Objectives{Primary: "learn"},
		},
		activities: []models.ActivityDocument{
			{Name: "daily_thought", Description: "think", EnergyCost: 0.1, Enabled: true, RequiredSkills: []string{}},
		},
	}
	runner := &stubRunner{result: activities.Result{
		Success:       true,
		Data:          map[string]any{"thought": "hm"},
		MemoryContent: "Had a thought",
		MoodChange:    models.MoodCurious,
	}}
	return store, runner, NewController(store, runner, zeroRand{})
}

func TestTickSkipsWhenNotInitialized(t *testing.T) {
	store, runner, controller := newTickFixture(1.0)
	store.being = nil

	result, err := controller.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, "paused or not initialized", result.Reason)
	assert.Empty(t, runner.ran)
}

func TestTickSkipsWhenPaused(t *testing.T) {
	store, runner, controller := newTickFixture(1.0)
	store.being.Paused = true

	result, err := controller.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, "paused or not initialized", result.Reason)
	assert.Empty(t, runner.ran)
	assert.Empty(t, store.recovered)
}

func TestTickLowEnergyRecovers(t *testing.T) {
	store, runner, controller := newTickFixture(0.05)

	result, err := controller.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, "energy recovery", result.Reason)
	assert.Equal(t, []float64{0.1}, store.recovered)
	assert.InDelta(t, 0.15, store.being.Energy, 1e-9)
	assert.Empty(t, runner.ran)
	assert.Empty(t, store.history)
}

func TestTickIdleDriftWhenNothingEligible(t *testing.T) {
	store, runner, controller := newTickFixture(0.5)
	store.activities[0].Enabled = false

	result, err := controller.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, "no available activities", result.Reason)
	assert.Equal(t, []float64{0.05}, store.recovered)
	assert.Empty(t, runner.ran)
}

func TestTickCommitsSuccess(t *testing.T) {
	store, _, controller := newTickFixture(0.8)

	result, err := controller.Tick(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, "daily_thought", result.Executed)
	assert.True(t, result.Success)

	assert.InDelta(t, 0.7, store.being.Energy, 1e-9)
	assert.Equal(t, models.MoodCurious, store.being.Mood)

	require.Len(t, store.history, 1)
	record := store.history[0]
	assert.True(t, record.Success)
	assert.InDelta(t, 0.8, record.EnergyBefore, 1e-9)
	assert.InDelta(t, 0.7, record.EnergyAfter, 1e-9)
	assert.Equal(t, models.MoodNeutral, record.MoodBefore)
	assert.Equal(t, models.MoodCurious, record.MoodAfter)

	require.Len(t, store.memories, 1)
	assert.Equal(t, "Had a thought", store.memories[0].Content)
	assert.Equal(t, models.MemoryTypeActivity, store.memories[0].Type)
	assert.Equal(t, "daily_thought", store.memories[0].Metadata["activityName"])

	assert.Equal(t, int64(1), store.activities[0].ExecutionCount)
}

func TestTickFailureIsolation(t *testing.T) {
	store, runner, controller := newTickFixture(0.8)
	runner.result = activities.Result{Success: false, Error: "backend down"}

	result, err := controller.Tick(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "daily_thought", result.Executed)
	assert.False(t, result.Success)
	assert.Equal(t, "backend down", result.Error)

	// Energy and mood untouched, no memory written
	assert.InDelta(t, 0.8, store.being.Energy, 1e-9)
	assert.Equal(t, models.MoodNeutral, store.being.Mood)
	assert.Empty(t, store.memories)

	// Exactly one failed history record, and the attempt still counted
	require.Len(t, store.history, 1)
	record := store.history[0]
	assert.False(t, record.Success)
	assert.Equal(t, "backend down", record.Error)
	assert.Equal(t, record.EnergyBefore, record.EnergyAfter)
	assert.Equal(t, record.MoodBefore, record.MoodAfter)
	assert.Equal(t, int64(1), store.activities[0].ExecutionCount)
}

// Tired being, full energy, rest the only option: rest must win, energy stays
// clamped at 1.0, mood resets to neutral.
func TestTickRestClampsEnergy(t *testing.T) {
	store, runner, controller := newTickFixture(1.0)
	store.being.Mood = models.MoodTired
	store.activities = []models.ActivityDocument{
		{Name: "rest", Description: "Take a break and recover energy", EnergyCost: -0.2, Enabled: true, RequiredSkills: []string{}},
	}
	gain := -0.2
	runner.result = activities.Result{
		Success:       true,
		MemoryContent: "Took a moment to rest and recover energy.",
		MoodChange:    models.MoodNeutral,
		EnergyCost:    &gain,
	}

	result, err := controller.Tick(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "rest", result.Executed)
	assert.True(t, result.Success)
	assert.Equal(t, 1.0, store.being.Energy)
	assert.Equal(t, models.MoodNeutral, store.being.Mood)
}

func TestTickUsesCatalogCostWithoutOverride(t *testing.T) {
	store, runner, controller := newTickFixture(0.8)
	runner.result = activities.Result{Success: true}

	_, err := controller.Tick(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.7, store.being.Energy, 1e-9)
	// No mood change requested: mood stays
	assert.Equal(t, models.MoodNeutral, store.being.Mood)
	// No memory content: nothing remembered
	assert.Empty(t, store.memories)
}

func TestTickBuildsMemoryContext(t *testing.T) {
	store, _, controller := newTickFixture(0.8)
	for _, content := range []string{"one", "two", "three"} {
		store.memories = append(store.memories, models.ShortTermMemoryDocument{Content: content})
	}

	capture := &contextCapturingRunner{}
	controller.runner = capture

	_, err := controller.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "- one\n- two\n- three", capture.memoryContext)
}

type contextCapturingRunner struct {
	memoryContext string
}

func (r *contextCapturingRunner) Run(ctx context.Context, activityName string, being *models.BeingStateDocument, memoryContext string) activities.Result {
	r.memoryContext = memoryContext
	return activities.Result{Success: false, Error: "capture only"}
}

func TestRecoverEnergyPassive(t *testing.T) {
	store, _, controller := newTickFixture(0.9)

	require.NoError(t, controller.RecoverEnergy(context.Background()))
	assert.Equal(t, []float64{0.05}, store.recovered)
	assert.InDelta(t, 0.95, store.being.Energy, 1e-9)

	// Clamped at 1.0 on the next pass
	require.NoError(t, controller.RecoverEnergy(context.Background()))
	assert.Equal(t, 1.0, store.being.Energy)
}
