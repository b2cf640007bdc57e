package handlers

import (
	"encoding/json"
	"net/http"

	"being/db"
	"being/db/models"
)

type InitializeRequest struct {
	Name                string              `json:"name"`
	PrimaryObjective    string              `json:"primary_objective"`
	SecondaryObjectives []string            `json:"secondary_objectives,omitempty"`
	Personality         *models.Personality `json:"personality,omitempty"`
}

// InitializeHandler bootstraps a new being with the default catalog
func InitializeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req InitializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.PrimaryObjective == "" {
		http.Error(w, "Bad request: name and primary_objective are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := db.Initialize(ctx, req.Name, req.PrimaryObjective, req.SecondaryObjectives, req.Personality)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, result)
}

// ResetHandler wipes all being data including stored images (development)
func ResetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	deleted, err := db.Reset(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]int64{"deleted_count": deleted})
}
