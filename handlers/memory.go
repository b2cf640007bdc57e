package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"being/db"
	"being/db/models"
)

// MemoriesHandler returns short-term memories: most recent by default, or a
// time-range query when from/to (RFC 3339) are given. Optional type filter.
func MemoriesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	if fromRaw != "" || toRaw != "" {
		from, err := time.Parse(time.RFC3339, fromRaw)
		if err != nil {
			http.Error(w, "Bad 'from' timestamp", http.StatusBadRequest)
			return
		}
		to := time.Now()
		if toRaw != "" {
			to, err = time.Parse(time.RFC3339, toRaw)
			if err != nil {
				http.Error(w, "Bad 'to' timestamp", http.StatusBadRequest)
				return
			}
		}

		memories, err := db.GetMemoriesByTimeRange(ctx, from, to)
		if err != nil {
			writeError(w, err)
			return
		}
		writeMemories(w, memories)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	memories, err := db.GetRecentMemories(ctx, limit, r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeMemories(w, memories)
}

func writeMemories(w http.ResponseWriter, memories []models.ShortTermMemoryDocument) {
	if memories == nil {
		memories = []models.ShortTermMemoryDocument{}
	}
	writeJSON(w, memories)
}

type ConsolidateRequest struct {
	MemoryIDs []string `json:"memory_ids"`
	Summary   string   `json:"summary"`
	Category  string   `json:"category"`
}

// ConsolidateHandler collapses the named short-term memories into one
// long-term record and deletes the sources
func ConsolidateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ConsolidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.MemoryIDs) == 0 || req.Summary == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.MemoryIDs))
	for _, raw := range req.MemoryIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			http.Error(w, "Bad memory id: "+raw, http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	ctx, cancel := requestContext()
	defer cancel()

	longTermID, err := db.ConsolidateMemories(ctx, ids, req.Summary, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]string{"long_term_id": longTermID.Hex()})
}

// LongTermHandler returns long-term memories, optionally by category. Reading
// through this endpoint counts as an access and bumps access counters.
func LongTermHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	memories, err := db.GetLongTermMemories(ctx, r.URL.Query().Get("category"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if memories == nil {
		memories = []models.LongTermMemoryDocument{}
	}

	writeJSON(w, memories)
}
