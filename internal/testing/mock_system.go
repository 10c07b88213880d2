package testing

import (
	"context"

	"github.com/alexschlessinger/pollytool/tools"

	"pkdindustries/dachat/internal/core"
)

// MockImageGenerator implements core.ImageGenerator for testing
type MockImageGenerator struct {
	Image []byte // bytes to return (nil = nothing produced)
	Err   error

	// Recorded calls (for assertions)
	Prompts []string
	Styles  []core.ImageStyle
}

var _ core.ImageGenerator = (*MockImageGenerator)(nil)

func (m *MockImageGenerator) Generate(ctx context.Context, prompt string, style core.ImageStyle) ([]byte, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.Styles = append(m.Styles, style)
	return m.Image, m.Err
}

// MockHealthStore implements core.HealthStore for testing
type MockHealthStore struct {
	Availability bool
	AuthErr      error
	ProfileData  core.HealthProfile
	ProfileErr   error

	AuthRequests int
}

var _ core.HealthStore = (*MockHealthStore)(nil)

func (m *MockHealthStore) Available() bool {
	return m.Availability
}

func (m *MockHealthStore) RequestAuthorization(ctx context.Context) error {
	m.AuthRequests++
	return m.AuthErr
}

func (m *MockHealthStore) Profile() (core.HealthProfile, error) {
	return m.ProfileData, m.ProfileErr
}

// MockSystem implements core.System for testing
type MockSystem struct {
	ToolRegistry *tools.ToolRegistry
	Images       *MockImageGenerator
	Health       *MockHealthStore
}

// NewMockSystem creates a MockSystem with sensible defaults
func NewMockSystem() *MockSystem {
	return &MockSystem{
		ToolRegistry: tools.NewToolRegistry([]tools.Tool{}),
		Images:       &MockImageGenerator{},
		Health:       &MockHealthStore{Availability: true},
	}
}

func (m *MockSystem) GetToolRegistry() *tools.ToolRegistry {
	return m.ToolRegistry
}

func (m *MockSystem) GetImageGenerator() core.ImageGenerator {
	return m.Images
}

func (m *MockSystem) GetHealthStore() core.HealthStore {
	return m.Health
}

// Verify MockSystem implements core.System
var _ core.System = (*MockSystem)(nil)
