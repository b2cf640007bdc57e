// Package activities executes named activities against external generation
// backends. Handlers never write to the database; they return a Result the
// loop commits. Any backend error degrades to a failed Result rather than
// propagating.
package activities

import (
	"context"
	"fmt"
	"log"

	"being/db/models"
)

// Result is the normalized outcome of one activity execution
type Result struct {
	Success       bool           `json:"success"`
	Error         string         `json:"error,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
	MemoryContent string         `json:"memory_content,omitempty"`
	MoodChange    string         `json:"mood_change,omitempty"`
	EnergyCost    *float64       `json:"energy_cost,omitempty"` // overrides the catalog cost when set
}

// TextGenerator is the text-generation backend
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// GeneratedImage is the raw output of the image backend
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

// ImageGenerator is the image-generation backend
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error)
}

// SearchResult is a best-effort web lookup answer; Abstract may be empty
type SearchResult struct {
	Abstract string
	Source   string
}

// WebSearcher is the web lookup backend
type WebSearcher interface {
	Search(ctx context.Context, topic string) (*SearchResult, error)
}

// ImageStore persists generated image bytes and returns a retrievable URL
type ImageStore interface {
	Store(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}

// Handler executes one activity against a snapshot of the being state and a
// pre-built memory context string
type Handler func(ctx context.Context, being *models.BeingStateDocument, memoryContext string) Result

// Runner dispatches activity names to handlers, with a generic LLM-backed
// fallback for names without a built-in.
type Runner struct {
	text     TextGenerator
	images   ImageGenerator
	searcher WebSearcher
	store    ImageStore
	handlers map[string]Handler
}

func NewRunner(text TextGenerator, images ImageGenerator, searcher WebSearcher, store ImageStore) *Runner {
	r := &Runner{
		text:     text,
		images:   images,
		searcher: searcher,
		store:    store,
	}
	r.handlers = map[string]Handler{
		"daily_thought":  r.runDailyThought,
		"analyze_day":    r.runAnalyzeDay,
		"rest":           r.runRest,
		"research_topic": r.runResearchTopic,
		"generate_image": r.runGenerateImage,
	}
	return r
}

// Register adds or replaces a handler for an activity name
func (r *Runner) Register(name string, handler Handler) {
	r.handlers[name] = handler
}

// Run executes the named activity. It never panics out: a handler panic is
// converted to a failed Result at this boundary so a broken activity cannot
// corrupt the being's state.
func (r *Runner) Run(ctx context.Context, activityName string, being *models.BeingStateDocument, memoryContext string) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[runner] Activity %s panicked: %v", activityName, rec)
			result = Result{Success: false, Error: fmt.Sprintf("activity %s panicked: %v", activityName, rec)}
		}
	}()

	handler, ok := r.handlers[activityName]
	if !ok {
		return r.runGeneric(ctx, activityName, being, memoryContext)
	}
	return handler(ctx, being, memoryContext)
}

func failure(err error, fallbackMsg string) Result {
	msg := fallbackMsg
	if err != nil {
		msg = err.Error()
	}
	return Result{Success: false, Error: msg}
}
