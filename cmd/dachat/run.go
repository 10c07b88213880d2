package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alexschlessinger/pollytool/tools"
	"github.com/urfave/cli/v3"

	"pkdindustries/dachat/internal/chat"
	"pkdindustries/dachat/internal/commands"
	"pkdindustries/dachat/internal/config"
	"pkdindustries/dachat/internal/core"
	"pkdindustries/dachat/internal/llm"
	"pkdindustries/dachat/internal/platform"
	dachattools "pkdindustries/dachat/internal/tools"
)

func run(ctx context.Context, c *cli.Command) error {
	cfg := config.NewConfiguration(c)
	core.InitLogger(cfg.Chat.Verbose)
	if cfg.Chat.Verbose {
		cfg.PrintConfig()
	}

	sys, err := newSystem(ctx, cfg)
	if err != nil {
		return err
	}

	orchestrator := chat.NewOrchestrator(cfg, sys.GetToolRegistry(), llm.NewSessionFactory(cfg))

	render := newRenderer(orchestrator)
	orchestrator.OnUpdate = render.update

	cmdRegistry := commands.RegisterAll(version)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			rctx := newREPLContext(ctx, line, cfg, sys, orchestrator)
			cmdRegistry.Dispatch(rctx)
			if rctx.quit {
				return nil
			}
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

func newSystem(ctx context.Context, cfg *config.Configuration) (core.System, error) {
	registry := tools.NewToolRegistry([]tools.Tool{})

	images, err := platform.NewGeminiImageGenerator(ctx, cfg.API.GeminiKey, cfg.Model.ImageModel)
	if err != nil {
		return nil, err
	}
	health := platform.NewFileHealthStore(cfg.Chat.ProfilePath)

	dachattools.RegisterChatTools(registry, images, health, cfg.Chat.ImageDir, cfg.Chat.WebTimeout)
	slog.Info("loaded tools", "count", len(registry.All()))

	return &core.SystemImpl{
		Tools:  registry,
		Images: images,
		Health: health,
	}, nil
}

// replContext adapts one input line to the command interface
type replContext struct {
	context.Context

	command string
	args    []string
	cfg     *config.Configuration
	sys     core.System
	orch    *chat.Orchestrator
	quit    bool
}

var _ commands.Context = (*replContext)(nil)

func newREPLContext(ctx context.Context, line string, cfg *config.Configuration, sys core.System, orch *chat.Orchestrator) *replContext {
	args := strings.Fields(line)
	command := ""
	if strings.HasPrefix(line, "/") && len(args) > 0 {
		command = strings.ToLower(strings.TrimPrefix(args[0], "/"))
	}
	return &replContext{
		Context: ctx,
		command: command,
		args:    args,
		cfg:     cfg,
		sys:     sys,
		orch:    orch,
	}
}

func (r *replContext) GetCommand() string { return r.command }

// GetArgs returns the input tokens. For slash commands the leading token is
// the command itself, matching what the commands expect.
func (r *replContext) GetArgs() []string { return r.args }

func (r *replContext) Reply(msg string) { fmt.Println(msg) }

func (r *replContext) GetConfig() *config.Configuration    { return r.cfg }
func (r *replContext) GetSystem() core.System              { return r.sys }
func (r *replContext) GetOrchestrator() *chat.Orchestrator { return r.orch }
func (r *replContext) Quit()                               { r.quit = true }
