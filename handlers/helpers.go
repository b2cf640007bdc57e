package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"being/db"
)

const requestTimeout = 10 * time.Second

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP statuses; everything else is a 500
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, db.ErrNotInitialized):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, db.ErrAlreadyInitialized):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "Internal error: "+err.Error(), http.StatusInternalServerError)
	}
}
