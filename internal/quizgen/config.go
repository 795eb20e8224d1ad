package quizgen

import "github.com/rs/zerolog"

// Config holds tuning for the generation pipeline.
type Config struct {
	// MaxTokens caps each stage response. The Reader and Teacher stages
	// produce long free-text analyses, so the default is generous.
	MaxTokens int

	// Temperature for every stage.
	Temperature float64

	// Logger reports stage progress. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// DefaultConfig returns pipeline defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.2,
		Logger:      zerolog.Nop(),
	}
}
