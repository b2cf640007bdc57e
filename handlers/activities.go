package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"being/db"
	"being/db/models"
	"being/selector"
)

type ActivityView struct {
	models.ActivityDocument
	Available bool     `json:"available"`
	Reasons   []string `json:"reasons,omitempty"`
}

// ActivitiesHandler lists the catalog with current availability per entry
func ActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	activities, err := db.ListActivities(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	being, err := db.GetBeing(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]ActivityView, 0, len(activities))
	if being == nil {
		for _, activity := range activities {
			views = append(views, ActivityView{ActivityDocument: activity})
		}
		writeJSON(w, views)
		return
	}

	skills, err := db.ListSkills(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	statuses := selector.Explain(being, activities, skills, time.Now())
	for i, activity := range activities {
		views = append(views, ActivityView{
			ActivityDocument: activity,
			Available:        statuses[i].Available,
			Reasons:          statuses[i].Reasons,
		})
	}

	writeJSON(w, views)
}

type ActivityToggleRequest struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// ActivityToggleHandler enables or disables a catalog entry
func ActivityToggleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ActivityToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := db.SetActivityEnabled(ctx, req.Name, req.Enabled); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"name": req.Name, "enabled": req.Enabled})
}

type ResetCooldownRequest struct {
	Name string `json:"name"`
}

// ResetCooldownHandler clears an activity's cooldown (admin)
func ResetCooldownHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ResetCooldownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := db.ResetCooldown(ctx, req.Name); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]string{"name": req.Name, "status": "cooldown reset"})
}

type ExplainResponse struct {
	Being         map[string]any            `json:"being"`
	Activities    []selector.ActivityStatus `json:"activities"`
	EnabledSkills []string                  `json:"enabled_skills"`
}

// ExplainHandler returns the full selection diagnostic for dashboards
func ExplainHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	being, err := db.GetBeing(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	if being == nil {
		http.Error(w, "Being not initialized", http.StatusNotFound)
		return
	}

	activities, err := db.ListActivities(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	skills, err := db.ListSkills(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	enabled := []string{}
	for _, skill := range skills {
		if skill.Enabled {
			enabled = append(enabled, skill.Name)
		}
	}

	writeJSON(w, ExplainResponse{
		Being: map[string]any{
			"name":   being.Name,
			"mood":   being.Mood,
			"energy": being.Energy,
			"paused": being.Paused,
		},
		Activities:    selector.Explain(being, activities, skills, time.Now()),
		EnabledSkills: enabled,
	})
}
