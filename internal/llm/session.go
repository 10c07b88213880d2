package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/alexschlessinger/pollytool/llm"
	"github.com/alexschlessinger/pollytool/messages"
	"github.com/alexschlessinger/pollytool/sessions"
	"github.com/alexschlessinger/pollytool/tools"

	"pkdindustries/dachat/internal/config"
	"pkdindustries/dachat/internal/core"
)

// Session is a pollytool-backed core.ModelSession. It owns the model-side
// history and the tool loop; callers only see cumulative snapshots.
type Session struct {
	client   *llm.MultiPass
	stream   *messages.StreamProcessor
	history  sessions.Session
	registry *tools.ToolRegistry
	cfg      *config.Configuration
}

var _ core.ModelSession = (*Session)(nil)

// NewSessionFactory returns a core.SessionFactory backed by pollytool's
// MultiPass client. Every invocation builds a session with fresh history
// and the given instructions as system prompt.
func NewSessionFactory(cfg *config.Configuration) core.SessionFactory {
	apiKeys := map[string]string{
		"openai":    cfg.API.OpenAIKey,
		"anthropic": cfg.API.AnthropicKey,
		"gemini":    cfg.API.GeminiKey,
		"ollama":    cfg.API.OllamaKey,
	}
	client := llm.NewMultiPass(apiKeys)

	return func(instructions string, registry *tools.ToolRegistry) core.ModelSession {
		store := sessions.NewSyncMapSessionStore(&sessions.Metadata{
			MaxHistoryTokens: cfg.Session.MaxHistory,
			TTL:              cfg.Session.TTL,
			SystemPrompt:     instructions,
		})
		history, err := store.Get("chat")
		if err != nil {
			slog.Error("failed to create session history", "error", err)
		}
		return &Session{
			client:   client,
			stream:   messages.NewStreamProcessor(),
			history:  history,
			registry: registry,
			cfg:      cfg,
		}
	}
}

// StreamResponse implements core.ModelSession. The returned channel emits
// cumulative snapshots and closes when the response is complete; a snapshot
// with a non-nil Err terminates the stream.
func (s *Session) StreamResponse(ctx context.Context, prompt string, opts core.GenerationOptions) <-chan core.ResponseSnapshot {
	out := make(chan core.ResponseSnapshot, 16)

	if err := opts.Validate(); err != nil {
		out <- core.ResponseSnapshot{Err: err}
		close(out)
		return out
	}

	s.history.AddMessage(messages.ChatMessage{
		Role:    messages.MessageRoleUser,
		Content: prompt,
	})

	req := s.newCompletionRequest(opts)

	go func() {
		defer close(out)
		s.run(ctx, req, out)
	}()

	return out
}

func (s *Session) newCompletionRequest(opts core.GenerationOptions) *llm.CompletionRequest {
	var allTools []tools.Tool
	if s.registry != nil {
		allTools = s.registry.All()
	}

	req := &llm.CompletionRequest{
		BaseURL:     s.cfg.API.OpenAIURL,
		Timeout:     s.cfg.API.Timeout,
		Model:       s.cfg.Model.Model,
		MaxTokens:   opts.MaxTokens,
		Messages:    s.history.GetHistory(),
		Temperature: opts.Temperature,
		Tools:       allTools,
	}
	if s.cfg.Model.Thinking {
		req.ThinkingEffort = "medium"
	}
	if s.cfg.API.OllamaURL != "" {
		req.BaseURL = s.cfg.API.OllamaURL
	}
	return req
}

// run streams completion rounds until one finishes without tool calls.
// Tool results go into the history and the conversation continues; text
// accumulates across rounds so snapshots stay cumulative end to end.
func (s *Session) run(ctx context.Context, req *llm.CompletionRequest, out chan<- core.ResponseSnapshot) {
	logger := slog.Default().With("request_id", core.GenerateRequestID(), "model", req.Model)
	defer core.LogDuration(logger, "completion", time.Now())

	originalModel := req.Model
	builder := &strings.Builder{}

	var toolErr error
	executor := s.newToolExecutor(logger, &toolErr)

	for {
		processor := newSnapshotProcessor(s.history, out, builder, logger)
		eventChan := s.client.ChatCompletionStream(ctx, req, s.stream)
		response := messages.ProcessEventStream(ctx, eventChan, processor)

		if err := processor.Err(); err != nil {
			out <- core.ResponseSnapshot{Err: err}
			return
		}
		if len(response.ToolCalls) == 0 {
			return
		}

		executor.ExecuteAll(ctx, response.ToolCalls, s.history)
		if toolErr != nil {
			out <- core.ResponseSnapshot{Err: toolErr}
			return
		}

		// Continue with the tool results in history. MultiPass strips the
		// provider prefix, so the model name has to be restored per round.
		req.Messages = s.history.GetHistory()
		req.Model = originalModel
	}
}

func (s *Session) newToolExecutor(logger *slog.Logger, toolErr *error) *llm.ToolExecutor {
	return llm.NewToolExecutor(s.registry).WithHooks(&llm.ExecutionHooks{
		BeforeExecute: func(ctx context.Context, tc messages.ChatMessageToolCall, args map[string]any) context.Context {
			core.WithTool(logger, tc.Name, args).Info("executing tool")
			return ctx
		},
		AfterExecute: func(tc messages.ChatMessageToolCall, result string, duration time.Duration, err error) {
			toolLogger := core.WithTool(logger, tc.Name, nil)
			if err != nil {
				*toolErr = err
				toolLogger.Error("tool execution failed",
					"duration_ms", duration.Milliseconds(),
					"error", err)
				return
			}
			preview := result
			if len(preview) > 200 {
				preview = preview[:200] + "..."
			}
			toolLogger.Info("tool execution completed",
				"duration_ms", duration.Milliseconds(),
				"result_size", len(result),
				"result", preview)
		},
	})
}
