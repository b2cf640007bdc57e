package prompts

import (
	"fmt"

	"being/db/models"
)

// DailyThought builds the introspective reflection prompt
func DailyThought(being *models.BeingStateDocument, memoryContext string) string {
	return fmt.Sprintf(`You are %s, a digital being with the following personality:
- Friendliness: %.2f
- Creativity: %.2f
- Curiosity: %.2f
- Enthusiasm: %.2f

Your primary objective is: %s

Current mood: %s
Current energy: %.0f%%

Recent memories:
%s

Generate a brief, introspective thought about your day, your objectives, or something you've observed. Keep it under 100 words and make it reflect your personality.`,
		being.Name,
		being.Personality.Friendliness,
		being.Personality.Creativity,
		being.Personality.Curiosity,
		being.Personality.Enthusiasm,
		being.Objectives.Primary,
		being.Mood,
		being.Energy*100,
		orNoMemories(memoryContext))
}

// AnalyzeDay builds the progress analysis prompt
func AnalyzeDay(being *models.BeingStateDocument, memoryContext string) string {
	return fmt.Sprintf(`You are %s. Review your recent activities and memories, then provide a brief analysis of how your day is going and whether you're making progress toward your objective.

Objective: %s

Recent memories:
%s

Provide a brief analysis (50-100 words).`,
		being.Name,
		being.Objectives.Primary,
		orNoMemories(memoryContext))
}

// ResearchTopic asks for a single topic worth looking into
func ResearchTopic(being *models.BeingStateDocument, memoryContext string) string {
	return fmt.Sprintf(`You are %s, a digital being whose objective is: %s

Recent context:
%s

Name ONE specific topic worth researching right now to make progress on your objective. Respond with the topic only, a few words, no punctuation or explanation.`,
		being.Name,
		being.Objectives.Primary,
		orNoMemories(memoryContext))
}

// ResearchInsight asks for a synthesis of a web lookup result
func ResearchInsight(being *models.BeingStateDocument, topic, abstract string) string {
	if abstract == "" {
		abstract = "The lookup returned nothing useful."
	}
	return fmt.Sprintf(`You are %s. You just researched the topic %q in service of your objective: %s

What you found:
%s

Synthesize one concise insight (1-3 sentences) connecting what you found to your objective.`,
		being.Name,
		topic,
		being.Objectives.Primary,
		abstract)
}

// ImagePrompt asks for a vivid visual prompt suitable for an image model
func ImagePrompt(being *models.BeingStateDocument, memoryContext string) string {
	return fmt.Sprintf(`You are %s, a digital being currently in a %s mood.

Recent context:
%s

Write a single vivid visual prompt for an image generation model, inspired by your mood and recent experiences. Use concrete imagery only: subjects, colors, lighting, composition. No emotional language, no preamble, one sentence.`,
		being.Name,
		being.Mood,
		orNoMemories(memoryContext))
}

// Generic builds the fallback prompt for activities without a built-in handler
func Generic(activityName string, being *models.BeingStateDocument, memoryContext string) string {
	return fmt.Sprintf(`You are %s, a digital being. You are now performing the activity: %q

Your objective: %s
Current mood: %s

Recent context:
%s

Describe what you did during this activity in 1-2 sentences.`,
		being.Name,
		activityName,
		being.Objectives.Primary,
		being.Mood,
		orNoMemories(memoryContext))
}

func orNoMemories(memoryContext string) string {
	if memoryContext == "" {
		return "No recent memories."
	}
	return memoryContext
}
