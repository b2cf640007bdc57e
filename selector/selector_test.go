package selector

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"being/db/models"
)

// fixedRand always returns the same draw
type fixedRand struct{ value float64 }

func (f fixedRand) Float64() float64 { return f.value }

func testBeing() *models.BeingStateDocument {
	return &models.BeingStateDocument{
		Name:   "Orbit",
		Mood:   models.MoodNeutral,
		Energy: 1.0,
		Personality: models.Personality{
			Friendliness: 0.7,
			Creativity:   0.8,
			Curiosity:    0.9,
			Enthusiasm:   1.0,
		},
		Objectives: models.Objectives{Primary: "learn about the world"},
	}
}

func activity(name string, cost float64, skills ...string) models.ActivityDocument {
	if skills == nil {
		skills = []string{}
	}
	return models.ActivityDocument{
		Name:           name,
		Description:    name,
		EnergyCost:     cost,
		Enabled:        true,
		RequiredSkills: skills,
	}
}

func enabledSkill(name string) models.SkillDocument {
	return models.SkillDocument{Name: name, Enabled: true}
}

func TestAvailableFilters(t *testing.T) {
	now := time.Now()
	being := testBeing()
	being.Energy = 0.2

	onCooldown := activity("cooling", 0.1)
	executed := now.Add(-1 * time.Minute)
	onCooldown.LastExecutedAt = &executed
	onCooldown.CooldownMs = 10 * 60 * 1000

	disabled := activity("disabled", 0.1)
	disabled.Enabled = false

	catalog := []models.ActivityDocument{
		activity("cheap", 0.1),
		activity("expensive", 0.5),
		disabled,
		onCooldown,
		activity("gated", 0.1, "chat"),
		activity("rest", -0.2),
	}

	available := Available(being, catalog, nil, now)

	names := make([]string, 0, len(available))
	for _, a := range available {
		names = append(names, a.Name)
	}
	// cheap affordable; expensive over budget; disabled off; cooling cooling
	// down; gated missing the chat skill; rest always affordable
	assert.Equal(t, []string{"cheap", "rest"}, names)

	// Enabling the skill admits the gated activity
	available = Available(being, catalog, []models.SkillDocument{enabledSkill("chat")}, now)
	assert.Len(t, available, 3)
}

func TestAvailableSkillMustBeEnabled(t *testing.T) {
	being := testBeing()
	catalog := []models.ActivityDocument{activity("gated", 0.1, "chat")}
	skills := []models.SkillDocument{{Name: "chat", Enabled: false}}

	assert.Empty(t, Available(being, catalog, skills, time.Now()))
}

func TestCooldownBoundary(t *testing.T) {
	being := testBeing()
	executed := time.Now().Add(-time.Hour)
	a := activity("timed", 0.1)
	a.LastExecutedAt = &executed
	a.CooldownMs = int64(time.Hour / time.Millisecond)
	catalog := []models.ActivityDocument{a}

	justBefore := executed.Add(time.Hour - time.Millisecond)
	atBoundary := executed.Add(time.Hour)

	assert.Empty(t, Available(being, catalog, nil, justBefore))
	assert.Len(t, Available(being, catalog, nil, atBoundary), 1)
}

func TestSelectNextPausedOrEmpty(t *testing.T) {
	being := testBeing()
	being.Paused = true
	catalog := []models.ActivityDocument{activity("a", 0.1)}

	assert.Nil(t, SelectNext(being, catalog, nil, time.Now(), fixedRand{0}))

	being.Paused = false
	assert.Nil(t, SelectNext(being, nil, nil, time.Now(), fixedRand{0}))
}

func TestSelectNextCatalogOrder(t *testing.T) {
	being := testBeing()
	catalog := []models.ActivityDocument{
		activity("first", 0.1),
		activity("middle", 0.1),
		activity("last", 0.1),
	}

	// A zero draw lands on the first eligible activity
	got := SelectNext(being, catalog, nil, time.Now(), fixedRand{0})
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Name)

	// A draw just under the total lands on the last
	got = SelectNext(being, catalog, nil, time.Now(), fixedRand{0.999999})
	require.NotNil(t, got)
	assert.Equal(t, "last", got.Name)
}

func TestSelectNextFallbackToFirst(t *testing.T) {
	being := testBeing()
	being.Personality.Enthusiasm = 0 // all weights collapse to zero
	catalog := []models.ActivityDocument{
		activity("first", 0.1),
		activity("second", 0.1),
	}

	got := SelectNext(being, catalog, nil, time.Now(), fixedRand{0.5})
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Name)
}

func TestWeightLowEnergyBias(t *testing.T) {
	being := testBeing()
	being.Energy = 0.2

	cheap := activity("cheap", 0.05)
	rest := activity("rest", -0.2)

	assert.InDelta(t, 0.95, Weight(being, &cheap), 1e-9)
	assert.InDelta(t, 1.2, Weight(being, &rest), 1e-9)
}

func TestWeightMoodBonus(t *testing.T) {
	being := testBeing()

	creative := activity("draw", 0.1)
	creative.Description = "Create an image based on current mood"
	research := activity("research", 0.1)
	research.Description = "Research a topic related to objectives"

	being.Mood = models.MoodCreative
	assert.InDelta(t, 1.5*0.8, Weight(being, &creative), 1e-9)
	assert.InDelta(t, 1.0, Weight(being, &research), 1e-9)

	being.Mood = models.MoodCurious
	assert.InDelta(t, 1.0, Weight(being, &creative), 1e-9)
	assert.InDelta(t, 1.5*0.9, Weight(being, &research), 1e-9)
}

// The tired-mood factor and the low-energy factor intentionally stack; both
// multiply by (1 - energyCost). Kept from the original behavior.
func TestWeightTiredStacksWithLowEnergy(t *testing.T) {
	being := testBeing()
	being.Mood = models.MoodTired
	being.Energy = 0.2

	a := activity("walk", 0.5)
	assert.InDelta(t, 0.25, Weight(being, &a), 1e-9)
}

func TestWeightRecencyPenalty(t *testing.T) {
	being := testBeing()

	fresh := activity("fresh", 0.1)
	run := activity("run", 0.1)
	run.ExecutionCount = 6

	assert.InDelta(t, 1.0, Weight(being, &fresh), 1e-9)
	assert.InDelta(t, 1.0/math.Log2(8), Weight(being, &run), 1e-9)
	assert.Greater(t, Weight(being, &run), 0.0)
}

// Costs above 1.0 are outside the documented domain; the weight clamps at 0
// instead of going negative.
func TestWeightNeverNegative(t *testing.T) {
	being := testBeing()
	being.Energy = 0.2
	being.Mood = models.MoodTired

	// Cost below current energy so it stays eligible, but above 1.0
	being.Energy = 1.0
	a := activity("overpriced", 1.5)
	assert.Equal(t, 0.0, Weight(being, &a))
}

func TestExplainReasons(t *testing.T) {
	now := time.Now()
	being := testBeing()
	being.Energy = 0.2

	disabled := activity("disabled", 0.1)
	disabled.Enabled = false

	cooling := activity("cooling", 0.1)
	executed := now.Add(-5 * time.Minute)
	cooling.LastExecutedAt = &executed
	cooling.CooldownMs = 30 * 60 * 1000

	catalog := []models.ActivityDocument{
		disabled,
		activity("expensive", 0.9),
		cooling,
		activity("gated", 0.1, "chat", "image_generation"),
		activity("ok", 0.1),
	}

	statuses := Explain(being, catalog, nil, now)
	require.Len(t, statuses, 5)

	assert.False(t, statuses[0].Available)
	assert.Equal(t, []string{"disabled"}, statuses[0].Reasons)

	assert.False(t, statuses[1].Available)
	assert.Equal(t, []string{"low energy (need 0.90, have 0.20)"}, statuses[1].Reasons)

	assert.False(t, statuses[2].Available)
	assert.Equal(t, []string{"on cooldown (25m remaining)"}, statuses[2].Reasons)

	assert.False(t, statuses[3].Available)
	assert.Equal(t, []string{"missing skills: chat, image_generation"}, statuses[3].Reasons)

	assert.True(t, statuses[4].Available)
	assert.Empty(t, statuses[4].Reasons)
}
