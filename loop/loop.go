// Package loop orchestrates one tick of the being's life: guard checks,
// activity selection, execution, and the commit of energy/mood/history/memory
// updates. It assumes the host serializes ticks; see Scheduler.
package loop

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"being/activities"
	"being/db/models"
	"being/selector"
)

const (
	lowEnergyThreshold = 0.1
	lowEnergyRecovery  = 0.1
	idleRecovery       = 0.05
	passiveRecovery    = 0.05
	memoryContextSize  = 5
	defaultImportance  = 0.5
)

// Store is the persistence surface a tick needs. The db package satisfies it.
type Store interface {
	GetBeing(ctx context.Context) (*models.BeingStateDocument, error)
	ListActivities(ctx context.Context) ([]models.ActivityDocument, error)
	ListSkills(ctx context.Context) ([]models.SkillDocument, error)
	UpdateAfterActivity(ctx context.Context, energyCost float64, newMood string) (float64, string, error)
	RecoverEnergy(ctx context.Context, amount float64) (float64, error)
	RecordExecution(ctx context.Context, record *models.ActivityHistoryDocument) error
	Remember(ctx context.Context, content, memoryType string, metadata map[string]any, importance float64) error
	GetRecentMemories(ctx context.Context, limit int) ([]models.ShortTermMemoryDocument, error)
}

// Runner executes a named activity; *activities.Runner satisfies it
type Runner interface {
	Run(ctx context.Context, activityName string, being *models.BeingStateDocument, memoryContext string) activities.Result
}

// TickResult describes which branch a tick took
type TickResult struct {
	Skipped  bool   `json:"skipped,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Executed string `json:"executed,omitempty"`
	Success  bool   `json:"success,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Controller struct {
	store  Store
	runner Runner
	rng    selector.Rand
}

// NewController wires a tick controller. A nil rng gets a time-seeded source;
// tests inject a fixed one.
func NewController(store Store, runner Runner, rng selector.Rand) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{store: store, runner: runner, rng: rng}
}

// Tick runs one pass of the activity loop
func (c *Controller) Tick(ctx context.Context) (*TickResult, error) {
	being, err := c.store.GetBeing(ctx)
	if err != nil {
		return nil, err
	}
	if being == nil || being.Paused {
		log.Println("[loop] Being paused or not initialized")
		return &TickResult{Skipped: true, Reason: "paused or not initialized"}, nil
	}

	if being.Energy < lowEnergyThreshold {
		log.Println("[loop] Energy too low, recovering...")
		if _, err := c.store.RecoverEnergy(ctx, lowEnergyRecovery); err != nil {
			return nil, err
		}
		return &TickResult{Skipped: true, Reason: "energy recovery"}, nil
	}

	catalog, err := c.store.ListActivities(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := c.store.ListSkills(ctx)
	if err != nil {
		return nil, err
	}

	activity := selector.SelectNext(being, catalog, skills, time.Now(), c.rng)
	if activity == nil {
		log.Println("[loop] No available activities")
		if _, err := c.store.RecoverEnergy(ctx, idleRecovery); err != nil {
			return nil, err
		}
		return &TickResult{Skipped: true, Reason: "no available activities"}, nil
	}

	log.Printf("[loop] Selected activity: %s", activity.Name)

	memoryContext, err := c.memoryContext(ctx)
	if err != nil {
		return nil, err
	}

	energyBefore := being.Energy
	moodBefore := being.Mood

	start := time.Now()
	result := c.runner.Run(ctx, activity.Name, being, memoryContext)
	durationMs := time.Since(start).Milliseconds()

	if err := c.commit(ctx, activity, result, energyBefore, moodBefore, durationMs); err != nil {
		return nil, err
	}

	log.Printf("[loop] Activity %s completed: %v", activity.Name, result.Success)
	return &TickResult{
		Executed: activity.Name,
		Success:  result.Success,
		Error:    result.Error,
	}, nil
}

// commit applies the result of an execution attempt. Energy, mood, and memory
// only change on success; the history record and the activity's cooldown
// stamp are written either way.
func (c *Controller) commit(ctx context.Context, activity *models.ActivityDocument, result activities.Result, energyBefore float64, moodBefore string, durationMs int64) error {
	energyAfter := energyBefore
	moodAfter := moodBefore

	if result.Success {
		cost := activity.EnergyCost
		if result.EnergyCost != nil {
			cost = *result.EnergyCost
		}
		var err error
		energyAfter, moodAfter, err = c.store.UpdateAfterActivity(ctx, cost, result.MoodChange)
		if err != nil {
			return err
		}
	}

	record := &models.ActivityHistoryDocument{
		ActivityName: activity.Name,
		Success:      result.Success,
		Error:        result.Error,
		Result:       result.Data,
		EnergyBefore: energyBefore,
		EnergyAfter:  energyAfter,
		MoodBefore:   moodBefore,
		MoodAfter:    moodAfter,
		DurationMs:   durationMs,
	}
	if err := c.store.RecordExecution(ctx, record); err != nil {
		return err
	}

	if result.Success && result.MemoryContent != "" {
		metadata := map[string]any{
			"activityName": activity.Name,
			"success":      result.Success,
		}
		if err := c.store.Remember(ctx, result.MemoryContent, models.MemoryTypeActivity, metadata, defaultImportance); err != nil {
			return err
		}
	}
	return nil
}

// memoryContext joins the most recent memories as bullet lines
func (c *Controller) memoryContext(ctx context.Context) (string, error) {
	memories, err := c.store.GetRecentMemories(ctx, memoryContextSize)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(memories))
	for _, m := range memories {
		lines = append(lines, "- "+m.Content)
	}
	return strings.Join(lines, "\n"), nil
}

// RecoverEnergy is the lower-frequency passive recovery operation, run on its
// own schedule independent of ticks
func (c *Controller) RecoverEnergy(ctx context.Context) error {
	being, err := c.store.GetBeing(ctx)
	if err != nil || being == nil {
		return err
	}

	newEnergy, err := c.store.RecoverEnergy(ctx, passiveRecovery)
	if err != nil {
		return err
	}
	log.Printf("[recovery] Energy: %.2f -> %.2f", being.Energy, newEnergy)
	return nil
}
