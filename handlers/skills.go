package handlers

import (
	"encoding/json"
	"net/http"

	"being/db"
)

// SkillsHandler lists all skills
func SkillsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	skills, err := db.ListSkills(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, skills)
}

type SkillToggleRequest struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// SkillToggleHandler enables or disables a skill
func SkillToggleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SkillToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var err error
	if req.Enabled {
		err = db.EnableSkill(ctx, req.Name)
	} else {
		err = db.DisableSkill(ctx, req.Name)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"name": req.Name, "enabled": req.Enabled})
}
