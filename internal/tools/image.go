package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"

	"pkdindustries/dachat/internal/core"
)

type imageResult struct {
	Images []string `json:"images"`
}

// ImageTool generates an image from a prompt and saves it as a PNG in the
// image directory. Backend failures are fatal and abort the stream.
type ImageTool struct {
	BaseTool
	generator core.ImageGenerator
	dir       string
}

func NewImageTool(generator core.ImageGenerator, dir string) *ImageTool {
	return &ImageTool{generator: generator, dir: dir}
}

func (t *ImageTool) GetName() string {
	return "create_image"
}

func (t *ImageTool) GetSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title:       "create_image",
		Description: "Generate an image from a text prompt in an optional style (animation, illustration or sketch)",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			"prompt": {
				Type:        "string",
				Description: "Description of the image to generate",
			},
			"style": {
				Type:        "string",
				Description: "Visual style: animation, illustration or sketch (default sketch)",
			},
			"limit": {
				Type:        "integer",
				Description: "Number of images to generate (default 1)",
			},
		},
		Required: []string{"prompt"},
	}
}

// normalizeStyle maps free-form style input to a known category after
// trimming and lowercasing. Unrecognized input falls back to sketch.
func normalizeStyle(raw string) core.ImageStyle {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "animation", "animasi", "animate":
		return core.StyleAnimation
	case "illustration", "ilustrate":
		return core.StyleIllustration
	case "sketch", "drawing":
		return core.StyleSketch
	default:
		return core.StyleSketch
	}
}

func (t *ImageTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	prompt, ok := args["prompt"].(string)
	if !ok || prompt == "" {
		return "", fmt.Errorf("prompt must be a non-empty string")
	}

	styleArg, _ := args["style"].(string)
	style := normalizeStyle(styleArg)

	data, err := t.generator.Generate(ctx, prompt, style)
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}

	result := imageResult{Images: []string{}}
	if len(data) > 0 {
		if err := os.MkdirAll(t.dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create image directory: %w", err)
		}
		path := filepath.Join(t.dir, uuid.New().String()+".png")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to save image: %w", err)
		}
		result.Images = append(result.Images, "file://"+path)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
