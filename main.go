package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"being/activities"
	"being/config"
	"being/db"
	"being/handlers"
	"being/loop"
	"being/middleware"
	"being/providers"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Initialize MongoDB connection
	err = db.InitMongoDB()
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer db.Close()
	db.CreateIndexes()

	// Wire the activity loop: Gemini for text and images, DuckDuckGo for
	// lookups, GridFS for image blobs
	gemini := providers.NewGemini()
	runner := activities.NewRunner(gemini, gemini, providers.NewDuckDuckGo(), db.ImageStore{})
	controller := loop.NewController(db.Store{}, runner, nil)

	scheduler := loop.NewScheduler(controller, config.GetTickInterval(), config.GetRecoveryInterval())
	scheduler.Start()
	defer scheduler.Stop()

	// Set up HTTP handlers
	http.HandleFunc("/initialize", middleware.EnableCORS(handlers.InitializeHandler))
	http.HandleFunc("/reset", middleware.EnableCORS(handlers.ResetHandler))
	http.HandleFunc("/being", middleware.EnableCORS(handlers.StatusHandler))
	http.HandleFunc("/being/pause", middleware.EnableCORS(handlers.PauseHandler))
	http.HandleFunc("/being/objectives", middleware.EnableCORS(handlers.ObjectivesHandler))
	http.HandleFunc("/activities", middleware.EnableCORS(handlers.ActivitiesHandler))
	http.HandleFunc("/activities/toggle", middleware.EnableCORS(handlers.ActivityToggleHandler))
	http.HandleFunc("/activities/reset-cooldown", middleware.EnableCORS(handlers.ResetCooldownHandler))
	http.HandleFunc("/activities/explain", middleware.EnableCORS(handlers.ExplainHandler))
	http.HandleFunc("/skills", middleware.EnableCORS(handlers.SkillsHandler))
	http.HandleFunc("/skills/toggle", middleware.EnableCORS(handlers.SkillToggleHandler))
	http.HandleFunc("/history", middleware.EnableCORS(handlers.HistoryHandler))
	http.HandleFunc("/memories", middleware.EnableCORS(handlers.MemoriesHandler))
	http.HandleFunc("/memories/consolidate", middleware.EnableCORS(handlers.ConsolidateHandler))
	http.HandleFunc("/memories/long-term", middleware.EnableCORS(handlers.LongTermHandler))
	http.HandleFunc("/images", middleware.EnableCORS(handlers.ImagesHandler))
	http.HandleFunc("/image", middleware.EnableCORS(handlers.ImageHandler))
	http.HandleFunc("/trigger", middleware.EnableCORS(handlers.TriggerHandler(scheduler)))

	addr := ":" + config.GetPort()
	fmt.Println("Server running on http://localhost" + addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}
