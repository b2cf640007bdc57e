package db

import "errors"

// Domain errors raised to admin callers. Activity failures never surface
// through these; they are recorded in history instead.
var (
	ErrNotInitialized     = errors.New("being not initialized")
	ErrAlreadyInitialized = errors.New("being already initialized")
	ErrNotFound           = errors.New("not found")
)

// Collection names, one per entity.
const (
	beingStateCollection      = "beingState"
	activitiesCollection      = "activities"
	historyCollection         = "activityHistory"
	shortTermMemoryCollection = "shortTermMemory"
	longTermMemoryCollection  = "longTermMemory"
	skillsCollection          = "skills"
	imagesCollection          = "generatedImages"
)
