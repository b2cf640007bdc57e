package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"being/db"
)

// ImagesHandler lists generated image metadata, newest first
func ImagesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	images, err := db.ListImages(ctx, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	type view struct {
		ID        string `json:"id"`
		Prompt    string `json:"prompt"`
		MIMEType  string `json:"mime_type"`
		CreatedAt string `json:"created_at"`
		URL       string `json:"url"`
	}
	views := make([]view, 0, len(images))
	for _, img := range images {
		views = append(views, view{
			ID:        img.ID.Hex(),
			Prompt:    img.Prompt,
			MIMEType:  img.MIMEType,
			CreatedAt: img.CreatedAt.Format(time.RFC3339),
			URL:       db.ImageURL(img.ID),
		})
	}

	writeJSON(w, views)
}

// ImageHandler streams one image blob by metadata id
func ImageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Bad image id", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var buf bytes.Buffer
	doc, err := db.GetImage(ctx, id, &buf)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.MIMEType)
	w.Write(buf.Bytes())
}
