package activities

import (
	"context"
	"fmt"
	"strings"

	"being/db/models"
	"being/prompts"
)

const restEnergyGain = -0.2

func (r *Runner) runDailyThought(ctx context.Context, being *models.BeingStateDocument, memoryContext string) Result {
	response, err := r.text.Generate(ctx, prompts.DailyThought(being, memoryContext), 300)
	if err != nil {
		return failure(err, "failed to generate thought")
	}

	moodChange := models.MoodNeutral
	if being.Energy > 0.5 {
		moodChange = models.MoodCurious
	}

	return Result{
		Success:       true,
		Data:          map[string]any{"thought": response},
		MemoryContent: fmt.Sprintf("Had a thought: %q", response),
		MoodChange:    moodChange,
	}
}

func (r *Runner) runAnalyzeDay(ctx context.Context, being *models.BeingStateDocument, memoryContext string) Result {
	response, err := r.text.Generate(ctx, prompts.AnalyzeDay(being, memoryContext), 300)
	if err != nil {
		return failure(err, "failed to analyze day")
	}

	return Result{
		Success:       true,
		Data:          map[string]any{"analysis": response},
		MemoryContent: "Daily analysis: " + response,
		MoodChange:    models.MoodFocused,
	}
}

// rest is the only built-in with no external calls; it cannot fail
func (r *Runner) runRest(ctx context.Context, being *models.BeingStateDocument, memoryContext string) Result {
	gain := restEnergyGain
	return Result{
		Success:       true,
		Data:          map[string]any{"rested": true},
		MemoryContent: "Took a moment to rest and recover energy.",
		MoodChange:    models.MoodNeutral,
		EnergyCost:    &gain,
	}
}

// runResearchTopic is a three-stage pipeline: pick a topic, look it up on the
// web, synthesize an insight from what came back.
func (r *Runner) runResearchTopic(ctx context.Context, being *models.BeingStateDocument, memoryContext string) Result {
	topic, err := r.text.Generate(ctx, prompts.ResearchTopic(being, memoryContext), 60)
	if err != nil {
		return failure(err, "failed to pick a research topic")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{Success: false, Error: "research topic generation returned nothing"}
	}

	lookup, err := r.searcher.Search(ctx, topic)
	if err != nil {
		return failure(err, "web lookup failed")
	}

	insight, err := r.text.Generate(ctx, prompts.ResearchInsight(being, topic, lookup.Abstract), 300)
	if err != nil {
		return failure(err, "failed to synthesize insight")
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"topic":   topic,
			"insight": insight,
			"source":  lookup.Source,
		},
		MemoryContent: fmt.Sprintf("Researched %q: %s", topic, insight),
		MoodChange:    models.MoodCurious,
	}
}

// runGenerateImage is a two-stage pipeline: ask the text backend for a visual
// prompt, render it with the image backend, then store the bytes.
func (r *Runner) runGenerateImage(ctx context.Context, being *models.BeingStateDocument, memoryContext string) Result {
	imagePrompt, err := r.text.Generate(ctx, prompts.ImagePrompt(being, memoryContext), 120)
	if err != nil {
		return failure(err, "failed to generate image prompt")
	}
	imagePrompt = strings.TrimSpace(imagePrompt)
	if imagePrompt == "" {
		return Result{Success: false, Error: "image prompt generation returned nothing"}
	}

	image, err := r.images.GenerateImage(ctx, imagePrompt)
	if err != nil {
		return failure(err, "image generation failed")
	}

	url, err := r.store.Store(ctx, imagePrompt, image.Data, image.MIMEType)
	if err != nil {
		return failure(err, "failed to store image")
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"prompt": imagePrompt,
			"url":    url,
		},
		MemoryContent: "Imagined a scene: " + imagePrompt,
		MoodChange:    models.MoodCreative,
	}
}

// runGeneric narrates any unrecognized activity with a single LLM call
func (r *Runner) runGeneric(ctx context.Context, activityName string, being *models.BeingStateDocument, memoryContext string) Result {
	response, err := r.text.Generate(ctx, prompts.Generic(activityName, being, memoryContext), 300)
	if err != nil {
		return failure(err, "failed to run "+activityName)
	}

	return Result{
		Success:       true,
		Data:          map[string]any{"output": response},
		MemoryContent: fmt.Sprintf("%s: %s", activityName, response),
	}
}
