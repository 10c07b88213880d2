package llm

import (
	"log/slog"
	"strings"

	"github.com/alexschlessinger/pollytool/messages"
	"github.com/alexschlessinger/pollytool/sessions"

	"pkdindustries/dachat/internal/core"
)

// SnapshotProcessor turns a pollytool event stream into cumulative
// ResponseSnapshots. The builder is shared across tool-continuation rounds
// so text produced before a tool call survives into the next round's
// snapshots.
type SnapshotProcessor struct {
	history  sessions.Session
	out      chan<- core.ResponseSnapshot
	builder  *strings.Builder
	logger   *slog.Logger
	response messages.ChatMessage
	err      error
}

func newSnapshotProcessor(history sessions.Session, out chan<- core.ResponseSnapshot, builder *strings.Builder, logger *slog.Logger) *SnapshotProcessor {
	return &SnapshotProcessor{
		history: history,
		out:     out,
		builder: builder,
		logger:  logger,
	}
}

// OnReasoning handles reasoning content - logged, never surfaced
func (p *SnapshotProcessor) OnReasoning(content string, totalLength int) {
	p.logger.Debug("reasoning update", "length", totalLength)
}

// OnContent appends the delta and emits the full text accumulated so far
func (p *SnapshotProcessor) OnContent(content string, firstChunk bool) {
	p.builder.WriteString(content)
	p.out <- core.ResponseSnapshot{Content: p.builder.String()}
}

// OnToolCall handles tool call events; execution happens after OnComplete
func (p *SnapshotProcessor) OnToolCall(toolCall messages.ChatMessageToolCall) {
	p.logger.Debug("received tool call", "tool", toolCall.Name, "id", toolCall.ID)
}

// OnComplete records the round's message in the model-side history
func (p *SnapshotProcessor) OnComplete(message *messages.ChatMessage) {
	if message != nil {
		p.history.AddMessage(*message)
		p.response = *message
		p.logger.Debug("round complete",
			"role", message.Role,
			"content_len", len(message.Content),
			"tool_calls", len(message.ToolCalls))
	}
}

// OnError records a terminal stream error
func (p *SnapshotProcessor) OnError(err error) {
	if err != nil {
		p.err = err
		p.logger.Debug("stream error", "error", err)
	}
}

// GetResponse returns the accumulated response message
func (p *SnapshotProcessor) GetResponse() messages.ChatMessage {
	return p.response
}

// Err returns the terminal error observed during the round, if any
func (p *SnapshotProcessor) Err() error {
	return p.err
}
