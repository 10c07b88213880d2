package tools

import (
	"testing"
	"time"

	pollytools "github.com/alexschlessinger/pollytool/tools"

	mocktest "pkdindustries/dachat/internal/testing"
)

func TestRegisterChatTools_ExposesAllTools(t *testing.T) {
	registry := pollytools.NewToolRegistry([]pollytools.Tool{})
	RegisterChatTools(registry, &mocktest.MockImageGenerator{}, &mocktest.MockHealthStore{}, t.TempDir(), 5*time.Second)

	if got := len(registry.All()); got != 4 {
		t.Fatalf("expected 4 tools available to sessions, got %d", got)
	}

	names := []string{"get_current_datetime", "analyze_web_page", "create_image", "get_user_profile"}
	for _, name := range names {
		tool, ok := registry.Get(name)
		if !ok {
			t.Errorf("expected %s retrievable from registry", name)
			continue
		}
		if tool.GetName() != name {
			t.Errorf("expected tool name %s, got %s", name, tool.GetName())
		}
	}
}
