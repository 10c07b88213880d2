package tools

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/alexschlessinger/pollytool/tools"

	"pkdindustries/dachat/internal/core"
)

// BaseTool provides common functionality for all chat tools
type BaseTool struct{}

func (t *BaseTool) SetContext(ctx any) {}
func (t *BaseTool) GetType() string    { return "native" }
func (t *BaseTool) GetSource() string  { return "builtin" }

// errorPayload encodes a recoverable tool failure. The model sees the
// message and can keep generating.
func errorPayload(msg string) string {
	payload, _ := json.Marshal(map[string]string{"error": msg})
	return string(payload)
}

// RegisterChatTools registers the built-in chat tools as native tools with
// polly's registry. RegisterNative only stores the factory, so each tool is
// then loaded to make it visible to All and Get.
func RegisterChatTools(registry *tools.ToolRegistry, generator core.ImageGenerator, store core.HealthStore, imageDir string, webTimeout time.Duration) {
	registry.RegisterNative("get_current_datetime", func() tools.Tool {
		return &ClockTool{}
	})
	registry.RegisterNative("analyze_web_page", func() tools.Tool {
		return NewWebMetaTool(webTimeout)
	})
	registry.RegisterNative("create_image", func() tools.Tool {
		return NewImageTool(generator, imageDir)
	})
	registry.RegisterNative("get_user_profile", func() tools.Tool {
		return NewProfileTool(store)
	})

	for _, name := range []string{"get_current_datetime", "analyze_web_page", "create_image", "get_user_profile"} {
		if _, err := registry.LoadToolAuto(name); err != nil {
			slog.Warn("failed to load tool", "tool", name, "error", err)
		}
	}
}
