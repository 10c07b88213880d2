package testing

import (
	"os"
	"time"

	"pkdindustries/dachat/internal/config"
)

// DefaultTestConfig returns a minimal configuration for testing
func DefaultTestConfig() *config.Configuration {
	return &config.Configuration{
		Chat: &config.ChatConfig{
			Verbose:      false,
			Instructions: "You are a test assistant.",
			ImageDir:     os.TempDir(),
			ProfilePath:  "profile.yaml",
			WebTimeout:   time.Second * 5,
		},
		Model: &config.ModelConfig{
			Model:       "test/model",
			MaxTokens:   100,
			Temperature: 0.7,
			Thinking:    false,
			ImageModel:  "test/imagemodel",
		},
		Session: &config.SessionConfig{
			MaxHistory: 50,
			TTL:        time.Minute * 10,
		},
		API: &config.APIConfig{
			Timeout: time.Second * 30,
		},
	}
}
