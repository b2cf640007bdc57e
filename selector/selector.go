// Package selector implements personality-weighted activity selection.
// Everything here is a pure function of the being state, the catalog, the
// skill set and the supplied clock/randomness, so eligibility is re-evaluated
// from scratch on every call.
package selector

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"being/db/models"
)

// Rand supplies the uniform random draw for weighted selection. *rand.Rand
// satisfies it; tests substitute fixed values.
type Rand interface {
	Float64() float64
}

var (
	creativeRe = regexp.MustCompile(`(?i)create|generate|write|draw`)
	curiousRe  = regexp.MustCompile(`(?i)research|analyze|explore|learn`)
)

// Available filters the catalog down to the activities that can run right
// now: enabled, affordable at the being's current energy, off cooldown, and
// with every required skill enabled. Activities with negative energy cost
// (rest) always pass the energy check since energy never goes below zero.
func Available(being *models.BeingStateDocument, activities []models.ActivityDocument, skills []models.SkillDocument, now time.Time) []models.ActivityDocument {
	enabledSkills := enabledSkillNames(skills)

	var available []models.ActivityDocument
	for _, activity := range activities {
		if !activity.Enabled {
			continue
		}
		if being.Energy < activity.EnergyCost {
			continue
		}
		if activity.OnCooldown(now) {
			continue
		}
		if !hasAllSkills(activity.RequiredSkills, enabledSkills) {
			continue
		}
		available = append(available, activity)
	}
	return available
}

// SelectNext picks the next activity by weighted random draw over the
// available set, or nil when the being is paused or nothing is eligible.
func SelectNext(being *models.BeingStateDocument, activities []models.ActivityDocument, skills []models.SkillDocument, now time.Time, rng Rand) *models.ActivityDocument {
	if being == nil || being.Paused {
		return nil
	}

	available := Available(being, activities, skills, now)
	if len(available) == 0 {
		return nil
	}

	weights := make([]float64, len(available))
	total := 0.0
	for i := range available {
		weights[i] = Weight(being, &available[i])
		total += weights[i]
	}

	random := rng.Float64() * total
	for i := range available {
		random -= weights[i]
		if random <= 0 {
			return &available[i]
		}
	}

	// Floating-point residue: fall back to the first available activity
	return &available[0]
}

// Weight computes an activity's selection weight given the being's current
// mood, energy, and personality. Weights start at 1.0 and never go below 0.
//
// When energy is low and the mood is "tired" the (1 - energyCost) factor
// applies twice; callers rely on that compounding.
func Weight(being *models.BeingStateDocument, activity *models.ActivityDocument) float64 {
	weight := 1.0

	// Prefer low-cost (or energy-gaining) activities when running low
	if being.Energy < 0.3 {
		weight *= 1.0 - activity.EnergyCost
	}

	switch being.Mood {
	case models.MoodCreative:
		if creativeRe.MatchString(activity.Description) {
			weight *= 1.5 * being.Personality.Creativity
		}
	case models.MoodCurious:
		if curiousRe.MatchString(activity.Description) {
			weight *= 1.5 * being.Personality.Curiosity
		}
	case models.MoodTired:
		weight *= 1.0 - activity.EnergyCost
	}

	// Enthusiasm bonus for less-frequently done activities
	recencyPenalty := 1.0
	if activity.ExecutionCount > 0 {
		recencyPenalty = 1.0 / math.Log2(float64(activity.ExecutionCount)+2)
	}
	weight *= recencyPenalty * being.Personality.Enthusiasm

	// Costs above 1.0 are out of the documented domain but must not
	// produce a negative weight
	if weight < 0 {
		weight = 0
	}
	return weight
}

// ActivityStatus is the per-activity diagnostic record returned by Explain
type ActivityStatus struct {
	Name           string   `json:"name"`
	Available      bool     `json:"available"`
	Reasons        []string `json:"reasons"`
	EnergyCost     float64  `json:"energy_cost"`
	ExecutionCount int64    `json:"execution_count"`
}

// Explain reports, for every catalog entry, whether it is currently eligible
// and the specific reasons it is not. Purely informational; dashboards use it.
func Explain(being *models.BeingStateDocument, activities []models.ActivityDocument, skills []models.SkillDocument, now time.Time) []ActivityStatus {
	enabledSkills := enabledSkillNames(skills)

	statuses := make([]ActivityStatus, 0, len(activities))
	for _, activity := range activities {
		reasons := []string{}

		if !activity.Enabled {
			reasons = append(reasons, "disabled")
		}
		if being.Energy < activity.EnergyCost {
			reasons = append(reasons, fmt.Sprintf("low energy (need %.2f, have %.2f)", activity.EnergyCost, being.Energy))
		}
		if activity.OnCooldown(now) {
			end := activity.LastExecutedAt.Add(time.Duration(activity.CooldownMs) * time.Millisecond)
			remaining := int(math.Ceil(end.Sub(now).Minutes()))
			reasons = append(reasons, fmt.Sprintf("on cooldown (%dm remaining)", remaining))
		}
		var missing []string
		for _, skill := range activity.RequiredSkills {
			if !enabledSkills[skill] {
				missing = append(missing, skill)
			}
		}
		if len(missing) > 0 {
			reasons = append(reasons, "missing skills: "+strings.Join(missing, ", "))
		}

		statuses = append(statuses, ActivityStatus{
			Name:           activity.Name,
			Available:      len(reasons) == 0,
			Reasons:        reasons,
			EnergyCost:     activity.EnergyCost,
			ExecutionCount: activity.ExecutionCount,
		})
	}
	return statuses
}

func enabledSkillNames(skills []models.SkillDocument) map[string]bool {
	names := make(map[string]bool, len(skills))
	for _, skill := range skills {
		if skill.Enabled {
			names[skill.Name] = true
		}
	}
	return names
}

func hasAllSkills(required []string, enabled map[string]bool) bool {
	for _, name := range required {
		if !enabled[name] {
			return false
		}
	}
	return true
}
