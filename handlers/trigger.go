package handlers

import (
	"net/http"

	"being/loop"
)

// TriggerHandler runs one tick on demand, serialized by the scheduler
func TriggerHandler(scheduler *loop.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		result, err := scheduler.TriggerNow(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, result)
	}
}
