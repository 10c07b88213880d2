package core

import (
	"github.com/alexschlessinger/pollytool/tools"
)

type System interface {
	GetToolRegistry() *tools.ToolRegistry
	GetImageGenerator() ImageGenerator
	GetHealthStore() HealthStore
}

type SystemImpl struct {
	Tools  *tools.ToolRegistry
	Images ImageGenerator
	Health HealthStore
}

func (s *SystemImpl) GetToolRegistry() *tools.ToolRegistry {
	return s.Tools
}

func (s *SystemImpl) GetImageGenerator() ImageGenerator {
	return s.Images
}

func (s *SystemImpl) GetHealthStore() HealthStore {
	return s.Health
}
