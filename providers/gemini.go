// Package providers implements the external generation backends: Gemini for
// text and images, DuckDuckGo for web lookups. Every call is bounded by a
// timeout so a hung upstream cannot block a tick forever.
package providers

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"being/activities"
	"being/config"
)

const callTimeout = 30 * time.Second

// Gemini backs both the text and the image generation interfaces
type Gemini struct {
	apiKey     string
	model      string
	imageModel string
}

func NewGemini() *Gemini {
	return &Gemini{
		apiKey:     config.GetGeminiAPIKey(),
		model:      config.GetGeminiModel(),
		imageModel: config.GetGeminiImageModel(),
	}
}

func (g *Gemini) newClient(ctx context.Context) (*genai.Client, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not configured")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
}

// Generate issues a single text prompt and returns the response text
func (g *Gemini) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	client, err := g.newClient(ctx)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no usable text")
	}
	return text, nil
}

// GenerateImage renders a single image for the prompt
func (g *Gemini) GenerateImage(ctx context.Context, prompt string) (*activities.GeneratedImage, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	client, err := g.newClient(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.Models.GenerateImages(ctx, g.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("image generation returned no image")
	}

	image := resp.GeneratedImages[0].Image
	mimeType := image.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return &activities.GeneratedImage{
		Data:     image.ImageBytes,
		MIMEType: mimeType,
	}, nil
}
