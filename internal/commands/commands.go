package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"pkdindustries/dachat/internal/chat"
)

// RegisterAll wires the built-in commands and the default chat fallback
// into a fresh registry.
func RegisterAll(version string) *Registry {
	registry := NewRegistry()
	registry.Register(&SetCommand{})
	registry.Register(&GetCommand{})
	registry.Register(&ResetCommand{})
	registry.Register(&ToolsCommand{})
	registry.Register(&HelpCommand{registry: registry})
	registry.Register(&VersionCommand{Version: version})
	registry.Register(&QuitCommand{})
	registry.Register(&ChatCommand{})
	return registry
}

// SetCommand updates a configuration value. Setting instructions rebuilds
// the model session.
type SetCommand struct{}

func (c *SetCommand) Name() string  { return "set" }
func (c *SetCommand) Usage() string { return "/set <key> <value> - change a configuration value" }

func (c *SetCommand) Execute(ctx Context) {
	keys := getConfigKeys()
	args := ctx.GetArgs()
	if len(args) < 3 {
		ctx.Reply(fmt.Sprintf("Usage: /set <key> <value>. Available keys: %s", strings.Join(keys, ", ")))
		return
	}

	param := args[1]
	value := strings.Join(args[2:], " ")
	cfg := ctx.GetConfig()

	if param == "instructions" {
		cfg.Chat.Instructions = value
		ctx.GetOrchestrator().Reconfigure(value, nil)
		ctx.Reply(fmt.Sprintf("instructions set to: %s", value))
		return
	}

	field, ok := configFields[param]
	if !ok {
		ctx.Reply(fmt.Sprintf("Unknown key. Available keys: %s", strings.Join(keys, ", ")))
		return
	}
	if err := field.setter(cfg, value); err != nil {
		ctx.Reply(err.Error())
		return
	}
	ctx.Reply(fmt.Sprintf("%s set to: %s", param, field.getter(cfg)))
}

// GetCommand shows a configuration value
type GetCommand struct{}

func (c *GetCommand) Name() string  { return "get" }
func (c *GetCommand) Usage() string { return "/get <key> - show a configuration value" }

func (c *GetCommand) Execute(ctx Context) {
	keys := getConfigKeys()
	args := ctx.GetArgs()
	if len(args) < 2 {
		ctx.Reply(fmt.Sprintf("Usage: /get <key>. Available keys: %s", strings.Join(keys, ", ")))
		return
	}

	param := args[1]
	cfg := ctx.GetConfig()

	if param == "instructions" {
		ctx.Reply(fmt.Sprintf("instructions: %s", cfg.Chat.Instructions))
		return
	}

	field, ok := configFields[param]
	if !ok {
		ctx.Reply(fmt.Sprintf("Unknown key %s. Available keys: %s", param, strings.Join(keys, ", ")))
		return
	}
	ctx.Reply(fmt.Sprintf("%s: %s", param, field.getter(cfg)))
}

// ResetCommand clears the transcript
type ResetCommand struct{}

func (c *ResetCommand) Name() string  { return "reset" }
func (c *ResetCommand) Usage() string { return "/reset - clear the conversation" }

func (c *ResetCommand) Execute(ctx Context) {
	ctx.GetOrchestrator().Reset()
	ctx.Reply("conversation cleared")
}

// ToolsCommand lists the registered tools
type ToolsCommand struct{}

func (c *ToolsCommand) Name() string  { return "tools" }
func (c *ToolsCommand) Usage() string { return "/tools - list available tools" }

func (c *ToolsCommand) Execute(ctx Context) {
	registry := ctx.GetSystem().GetToolRegistry()
	allTools := registry.All()
	if len(allTools) == 0 {
		ctx.Reply("No tools loaded")
		return
	}

	var names []string
	for _, tool := range allTools {
		names = append(names, tool.GetName())
	}
	sort.Strings(names)
	ctx.Reply("Tools: " + strings.Join(names, ", "))
}

// HelpCommand lists all commands
type HelpCommand struct {
	registry *Registry
}

func (c *HelpCommand) Name() string  { return "help" }
func (c *HelpCommand) Usage() string { return "/help - show this help" }

func (c *HelpCommand) Execute(ctx Context) {
	var usages []string
	for _, cmd := range c.registry.All() {
		usages = append(usages, cmd.Usage())
	}
	sort.Strings(usages)
	ctx.Reply(strings.Join(usages, "\n"))
}

// VersionCommand shows the build version
type VersionCommand struct {
	Version string
}

func (c *VersionCommand) Name() string  { return "version" }
func (c *VersionCommand) Usage() string { return "/version - show the version" }

func (c *VersionCommand) Execute(ctx Context) {
	ctx.Reply("dachat " + c.Version)
}

// QuitCommand ends the session
type QuitCommand struct{}

func (c *QuitCommand) Name() string  { return "quit" }
func (c *QuitCommand) Usage() string { return "/quit - exit" }

func (c *QuitCommand) Execute(ctx Context) {
	ctx.Reply("bye.")
	ctx.Quit()
}

// ChatCommand is the default fallback: plain input becomes a conversation
// turn.
type ChatCommand struct{}

func (c *ChatCommand) Name() string  { return "" }
func (c *ChatCommand) Usage() string { return "<text> - talk to the model" }

func (c *ChatCommand) Execute(ctx Context) {
	msg := strings.Join(ctx.GetArgs(), " ")
	if strings.TrimSpace(msg) == "" {
		return
	}

	if err := ctx.GetOrchestrator().Send(ctx, msg); err != nil {
		if errors.Is(err, chat.ErrBusy) {
			ctx.Reply("still responding, hold on")
			return
		}
		ctx.Reply(fmt.Sprintf("error: %v", err))
	}
}
