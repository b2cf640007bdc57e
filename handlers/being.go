package handlers

import (
	"encoding/json"
	"net/http"

	"being/db"
)

// StatusHandler returns the current being state
func StatusHandler(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, being)
}

type PauseRequest struct {
	Paused bool `json:"paused"`
}

// PauseHandler pauses or resumes the activity loop
func PauseHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := db.SetPaused(ctx, req.Paused); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]bool{"paused": req.Paused})
}

type ObjectivesRequest struct {
	Primary   *string  `json:"primary"`
	Secondary []string `json:"secondary"`
}

// ObjectivesHandler adjusts the being's objectives
func ObjectivesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ObjectivesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	objectives, err := db.UpdateObjectives(ctx, req.Primary, req.Secondary)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, objectives)
}
