package tools

import (
	"context"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
)

// injectable for tests
var timeNow = time.Now

// ClockTool reports the current local date and time
type ClockTool struct {
	BaseTool
}

func (t *ClockTool) GetName() string {
	return "get_current_datetime"
}

func (t *ClockTool) GetSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title:       "get_current_datetime",
		Description: "Get the current local date and time",
		Type:        "object",
		Properties:  map[string]*jsonschema.Schema{},
		Required:    []string{},
	}
}

func (t *ClockTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	return timeNow().Format("Jan 2, 2006 at 3:04:05 PM"), nil
}
