package config

import (
	"os"
	"strconv"
	"time"
)

// GetGeminiModel returns the Gemini text model to use from environment variable
// Defaults to "gemini-2.5-flash" if not set
func GetGeminiModel() string {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		// Default to flash model if not specified
		return "gemini-2.5-flash"
	}
	return model
}

// GetGeminiImageModel returns the image generation model from environment variable
func GetGeminiImageModel() string {
	model := os.Getenv("GEMINI_IMAGE_MODEL")
	if model == "" {
		return "imagen-3.0-generate-002"
	}
	return model
}

// GetGeminiAPIKey returns the Gemini API key from environment variable
func GetGeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// GetMongoDBURI returns the MongoDB connection URI from environment variable
func GetMongoDBURI() string {
	return os.Getenv("MONGODB_URI")
}

// GetMongoDBDatabase returns the database name, defaulting to "digital-being"
func GetMongoDBDatabase() string {
	name := os.Getenv("MONGODB_DATABASE")
	if name == "" {
		return "digital-being"
	}
	return name
}

// GetAllowedOrigins returns the allowed CORS origins from environment variable
func GetAllowedOrigins() string {
	return os.Getenv("ALLOWED_ORIGINS")
}

// GetPort returns the HTTP listen port, defaulting to 8080
func GetPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		return "8080"
	}
	return port
}

// GetTickInterval returns how often the main activity loop runs
// Defaults to 5 minutes
func GetTickInterval() time.Duration {
	return getMinutes("TICK_INTERVAL_MINUTES", 5)
}

// GetRecoveryInterval returns how often passive energy recovery runs
// Defaults to 15 minutes
func GetRecoveryInterval() time.Duration {
	return getMinutes("RECOVERY_INTERVAL_MINUTES", 15)
}

func getMinutes(key string, fallback int) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return time.Duration(fallback) * time.Minute
}
