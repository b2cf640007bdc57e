package handlers

import (
	"net/http"
	"strconv"

	"being/db"
	"being/db/models"
)

type HistoryResponse struct {
	Records []models.ActivityHistoryDocument `json:"records"`
	Total   int64                            `json:"total"`
	HasMore bool                             `json:"has_more"`
}

// HistoryHandler retrieves paginated execution history, most recent first,
// optionally filtered by activity name
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	activityName := r.URL.Query().Get("activity")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	// Set defaults
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := requestContext()
	defer cancel()

	records, total, err := db.GetHistory(ctx, activityName, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []models.ActivityHistoryDocument{}
	}

	writeJSON(w, HistoryResponse{
		Records: records,
		Total:   total,
		HasMore: int64(offset+limit) < total,
	})
}
