package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	pollytools "github.com/alexschlessinger/pollytool/tools"

	"pkdindustries/dachat/internal/chat"
	"pkdindustries/dachat/internal/config"
	"pkdindustries/dachat/internal/core"
	mocktest "pkdindustries/dachat/internal/testing"
	dachattools "pkdindustries/dachat/internal/tools"
)

// mockContext implements Context for command tests
type mockContext struct {
	context.Context

	command string
	args    []string
	replies []string
	cfg     *config.Configuration
	sys     *mocktest.MockSystem
	orch    *chat.Orchestrator
	quit    bool
}

func newMockContext(line string) *mockContext {
	args := strings.Fields(line)
	command := ""
	if len(args) > 0 {
		command = strings.ToLower(args[0])
	}

	cfg := mocktest.DefaultTestConfig()
	sys := mocktest.NewMockSystem()
	session := &mocktest.MockModelSession{
		Snapshots: mocktest.CumulativeSnapshots("hello"),
	}
	orch := chat.NewOrchestrator(cfg, sys.ToolRegistry, func(instructions string, reg *pollytools.ToolRegistry) core.ModelSession {
		return session
	})

	return &mockContext{
		Context: context.Background(),
		command: command,
		args:    args,
		cfg:     cfg,
		sys:     sys,
		orch:    orch,
	}
}

func (m *mockContext) GetCommand() string                  { return m.command }
func (m *mockContext) GetArgs() []string                   { return m.args }
func (m *mockContext) Reply(msg string)                    { m.replies = append(m.replies, msg) }
func (m *mockContext) GetConfig() *config.Configuration    { return m.cfg }
func (m *mockContext) GetSystem() core.System              { return m.sys }
func (m *mockContext) GetOrchestrator() *chat.Orchestrator { return m.orch }
func (m *mockContext) Quit()                               { m.quit = true }

func (m *mockContext) lastReply() string {
	if len(m.replies) == 0 {
		return ""
	}
	return m.replies[len(m.replies)-1]
}

func TestDispatch_KnownCommand(t *testing.T) {
	registry := RegisterAll("test")
	ctx := newMockContext("version")

	if !registry.Dispatch(ctx) {
		t.Fatal("expected dispatch to handle command")
	}
	if ctx.lastReply() != "dachat test" {
		t.Errorf("unexpected reply %q", ctx.lastReply())
	}
}

func TestDispatch_PlainTextFallsThroughToChat(t *testing.T) {
	registry := RegisterAll("test")
	ctx := newMockContext("hello there model")

	if !registry.Dispatch(ctx) {
		t.Fatal("expected default command to handle plain text")
	}

	msgs := ctx.orch.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected a turn in the transcript, got %d messages", len(msgs))
	}
	if msgs[0].Content != "hello there model" {
		t.Errorf("unexpected user message %q", msgs[0].Content)
	}
	if msgs[1].Content != "hello" {
		t.Errorf("unexpected assistant message %q", msgs[1].Content)
	}
}

func TestSetCommand_Temperature(t *testing.T) {
	ctx := newMockContext("set temperature 0.25")
	(&SetCommand{}).Execute(ctx)

	if ctx.cfg.Model.Temperature != 0.25 {
		t.Errorf("expected temperature updated, got %g", ctx.cfg.Model.Temperature)
	}
	if !strings.Contains(ctx.lastReply(), "temperature set to") {
		t.Errorf("unexpected reply %q", ctx.lastReply())
	}
}

func TestSetCommand_InvalidValue(t *testing.T) {
	ctx := newMockContext("set maxtokens banana")
	(&SetCommand{}).Execute(ctx)

	if ctx.cfg.Model.MaxTokens != 100 {
		t.Errorf("expected maxtokens unchanged, got %d", ctx.cfg.Model.MaxTokens)
	}
	if !strings.Contains(ctx.lastReply(), "invalid value for maxtokens") {
		t.Errorf("unexpected reply %q", ctx.lastReply())
	}
}

func TestSetCommand_UnknownKey(t *testing.T) {
	ctx := newMockContext("set nonsense 42")
	(&SetCommand{}).Execute(ctx)

	if !strings.Contains(ctx.lastReply(), "Unknown key") {
		t.Errorf("unexpected reply %q", ctx.lastReply())
	}
}

func TestSetCommand_InstructionsReconfigures(t *testing.T) {
	ctx := newMockContext("set instructions you are a pirate")
	(&SetCommand{}).Execute(ctx)

	if ctx.cfg.Chat.Instructions != "you are a pirate" {
		t.Errorf("expected instructions updated, got %q", ctx.cfg.Chat.Instructions)
	}
	if ctx.orch.Instructions() != "you are a pirate" {
		t.Errorf("expected session reconfigured, got %q", ctx.orch.Instructions())
	}
}

func TestGetCommand_MasksKeys(t *testing.T) {
	ctx := newMockContext("get openaikey")
	ctx.cfg.API.OpenAIKey = "sk-supersecret"
	(&GetCommand{}).Execute(ctx)

	reply := ctx.lastReply()
	if strings.Contains(reply, "supersecret") {
		t.Errorf("expected key masked, got %q", reply)
	}
	if !strings.HasPrefix(reply, "openaikey: sk-s") {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestResetCommand(t *testing.T) {
	ctx := newMockContext("reset")
	if err := ctx.orch.Send(context.Background(), "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	(&ResetCommand{}).Execute(ctx)

	if len(ctx.orch.Messages()) != 0 {
		t.Error("expected transcript cleared")
	}
	if ctx.lastReply() != "conversation cleared" {
		t.Errorf("unexpected reply %q", ctx.lastReply())
	}
}

func TestToolsCommand(t *testing.T) {
	ctx := newMockContext("tools")
	dachattools.RegisterChatTools(ctx.sys.ToolRegistry, ctx.sys.Images, ctx.sys.Health, t.TempDir(), time.Second)

	(&ToolsCommand{}).Execute(ctx)

	reply := ctx.lastReply()
	for _, name := range []string{"get_current_datetime", "analyze_web_page", "create_image", "get_user_profile"} {
		if !strings.Contains(reply, name) {
			t.Errorf("expected %s listed, got %q", name, reply)
		}
	}
}

func TestToolsCommand_Empty(t *testing.T) {
	ctx := newMockContext("tools")
	(&ToolsCommand{}).Execute(ctx)

	if ctx.lastReply() != "No tools loaded" {
		t.Errorf("unexpected reply %q", ctx.lastReply())
	}
}

func TestQuitCommand(t *testing.T) {
	ctx := newMockContext("quit")
	(&QuitCommand{}).Execute(ctx)

	if !ctx.quit {
		t.Error("expected quit requested")
	}
}
